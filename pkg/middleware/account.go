package middleware

import (
	"context"
	"net/http"
	"strings"
)

// AccountHeader carries the account authenticated by the upstream gateway.
const AccountHeader = "X-Account-Id"

type accountKey struct{}

// Account copies the authenticated account identity from AccountHeader into
// the request context. Requests without the header pass through; operations
// that need an account reject them.
func Account(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(AccountHeader)); id != "" {
			r = r.WithContext(WithAccountID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

// AccountID returns the authenticated account, or "" when there is none.
func AccountID(ctx context.Context) string {
	id, _ := ctx.Value(accountKey{}).(string)
	return id
}
