package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// more granular interfaces (WithdrawalStore, AuditReader, etc.) where they can.
type Storage interface {
	AccountReader
	DepositStore
	WithdrawalStore
	AuditReader
	StatsReader
}
