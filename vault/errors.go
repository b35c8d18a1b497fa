package vault

import "errors"

var (
	ErrInvalidPassword  = errors.New("vault: invalid master password")
	ErrPasswordTooShort = errors.New("vault: password must be at least 8 characters")
	ErrAliasExists      = errors.New("vault: alias already exists")
	ErrAliasNotFound    = errors.New("vault: alias not found")
	ErrEmptyAlias       = errors.New("vault: alias is empty")
	ErrSessionClosed    = errors.New("vault: session is closed")
	ErrVaultCorrupted   = errors.New("vault: vault is corrupted")
)

// MinPasswordLength is the shortest master password accepted when a vault is created.
const MinPasswordLength = 8
