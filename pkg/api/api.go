// Package api holds the HTTP server interface and wire types generated from
// openapi.yaml.
package api

//go:generate oapi-codegen --package api --generate types,chi-server -o api.gen.go openapi.yaml
