package session

import (
	"fmt"
	"strings"

	"github.com/uvizhe/psh-gui/vault"
)

// AliasHandle decides what Process does with the current alias.
type AliasHandle int

const (
	// HandleStore derives the password and stores an unknown alias.
	HandleStore AliasHandle = iota
	// HandleIgnore derives the password without storing the alias.
	HandleIgnore
	// HandleRemove removes a known alias from the vault.
	HandleRemove
)

// AliasHandles lists every handle in display order.
var AliasHandles = []AliasHandle{HandleStore, HandleIgnore, HandleRemove}

func (h AliasHandle) String() string {
	switch h {
	case HandleStore:
		return "Store"
	case HandleIgnore:
		return "Don't store"
	case HandleRemove:
		return "Remove"
	default:
		panic(fmt.Sprintf("session: invalid alias handle %d", int(h)))
	}
}

// AliasLookup is the read-only part of a vault session used to reconcile
// options for a known alias.
type AliasLookup interface {
	AliasUsesSecret(alias string) bool
	AliasCharset(alias string) vault.CharSet
}

// Options holds the per-alias policy fields of the unlocked form. The
// *Choice fields remember the user's last manual pick so it can be restored
// when the alias stops matching a known one.
type Options struct {
	Handle        AliasHandle
	HandleChoice  AliasHandle
	Charset       vault.CharSet
	CharsetChoice vault.CharSet
	UsesSecret    bool
	Known         bool
}

// DefaultOptions returns the options of an empty form.
func DefaultOptions() Options {
	return Options{
		Handle:        HandleStore,
		HandleChoice:  HandleStore,
		Charset:       vault.CharSetStandard,
		CharsetChoice: vault.CharSetStandard,
		UsesSecret:    true,
	}
}

// Reset restores the defaults, forgetting manual choices.
func (o *Options) Reset() {
	*o = DefaultOptions()
}

// Reconcile recomputes the derived fields after the alias text changed.
// Known aliases force Store and read their secret flag and charset from
// lookup. Unknown aliases restore the last manual choices, except Remove,
// which falls back to Store.
func (o *Options) Reconcile(alias string, known bool, lookup AliasLookup) {
	o.Known = known
	if known {
		o.Handle = HandleStore
		o.UsesSecret = lookup.AliasUsesSecret(alias)
		o.Charset = lookup.AliasCharset(alias)
		return
	}
	if o.HandleChoice == HandleRemove {
		o.Handle = HandleStore
	} else {
		o.Handle = o.HandleChoice
	}
	o.UsesSecret = true
	o.Charset = o.CharsetChoice
}

// HandleAllowed reports whether h can be picked for the current alias.
// Remove needs a known alias; Ignore only makes sense for an unknown one.
func (o Options) HandleAllowed(h AliasHandle) bool {
	switch h {
	case HandleStore:
		return true
	case HandleIgnore:
		return !o.Known
	case HandleRemove:
		return o.Known
	default:
		panic(fmt.Sprintf("session: invalid alias handle %d", int(h)))
	}
}

// SetHandle records a manual handle choice. It returns false and changes
// nothing when h is not allowed for the current alias.
func (o *Options) SetHandle(h AliasHandle) bool {
	if !o.HandleAllowed(h) {
		return false
	}
	o.Handle = h
	o.HandleChoice = h
	return true
}

// NextHandle cycles to the next allowed handle.
func (o *Options) NextHandle() {
	for i := 1; i <= len(AliasHandles); i++ {
		next := AliasHandles[(int(o.Handle)+i)%len(AliasHandles)]
		if o.SetHandle(next) {
			return
		}
	}
}

// CharsetLocked reports whether the charset is fixed by a known alias.
func (o Options) CharsetLocked() bool {
	return o.Known
}

// SetCharset records a manual charset choice. It returns false when the
// charset is locked.
func (o *Options) SetCharset(cs vault.CharSet) bool {
	if !cs.Valid() {
		panic(fmt.Sprintf("session: invalid charset %d", uint8(cs)))
	}
	if o.CharsetLocked() {
		return false
	}
	o.Charset = cs
	o.CharsetChoice = cs
	return true
}

// NextCharset cycles the charset when it is not locked.
func (o *Options) NextCharset() {
	o.SetCharset(o.Charset.Next())
}

// SecretArgument returns the secret to pass to the engine: the secret is
// passed only when it is non-empty and the alias uses one.
func (o Options) SecretArgument(secret string) string {
	if secret == "" || !o.UsesSecret {
		return ""
	}
	return secret
}

// CanProcess reports whether the Process action is enabled.
func (o Options) CanProcess(alias, secret string) bool {
	if o.Handle == HandleRemove {
		return o.Known
	}
	if strings.TrimSpace(alias) == "" {
		return false
	}
	return (o.UsesSecret && secret != "") || !o.UsesSecret || !o.Known
}

// MasterPasswordLooksValid is the Login guard: the password is long enough
// and, when a vault is being created, both entries are equal.
func MasterPasswordLooksValid(password, repeat string, vaultExists bool) bool {
	return len(password) >= vault.MinPasswordLength && (vaultExists || password == repeat)
}
