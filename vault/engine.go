package vault

// Engine creates sessions against a vault. Implementations must be safe to
// call from a goroutine other than the UI loop.
type Engine interface {
	// VaultExists reports whether a vault has already been initialized, which
	// decides whether the entrance form unlocks or creates.
	VaultExists() bool
	// CreateSession unlocks the vault with password, creating it first when it
	// does not exist. It is CPU-heavy.
	CreateSession(password string) (Session, error)
}

// Session is an unlocked vault.
type Session interface {
	// ListAliases returns a snapshot of the known aliases.
	ListAliases() []string
	// AliasUsesSecret reports whether a known alias was stored with a secret.
	// Unknown aliases report true.
	AliasUsesSecret(alias string) bool
	// AliasCharset returns the charset a known alias was stored with.
	// Unknown aliases report CharSetStandard.
	AliasCharset(alias string) CharSet
	// DeriveSecret deterministically derives the password for alias. An empty
	// secret means no secret.
	DeriveSecret(alias, secret string, charset CharSet) string
	AppendAlias(alias string, usesSecret bool, charset CharSet) error
	RemoveAlias(alias string) error
	// Close wipes key material and releases the store.
	Close() error
}
