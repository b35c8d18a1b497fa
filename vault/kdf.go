package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the size in bytes of the master key and every subkey.
const KeySize = 32

const saltSize = 16

// HKDF info strings separating the subkeys derived from the master key.
// Changing any of these invalidates existing vaults.
var (
	hkdfInfoSeal   = []byte("psh.vault.seal.v1")
	hkdfInfoLookup = []byte("psh.vault.lookup.v1")
	hkdfInfoDerive = []byte("psh.vault.derive.v1")
)

const verifierContext = "psh 2026-01-01 vault master key verifier v1"

// KDFParams are the argon2id cost parameters. They are stored with the vault
// so later unlocks use the parameters the vault was created with.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams are used when the caller leaves params zero.
var DefaultKDFParams = KDFParams{Time: 3, MemoryKiB: 64 * 1024, Threads: 4}

func (p KDFParams) orDefault() KDFParams {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return DefaultKDFParams
	}
	return p
}

// keys holds the subkeys of one unlocked vault.
type keys struct {
	seal   [KeySize]byte
	lookup [KeySize]byte
	derive [KeySize]byte
}

func (k *keys) wipe() {
	clear(k.seal[:])
	clear(k.lookup[:])
	clear(k.derive[:])
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// masterKey stretches password with argon2id.
func masterKey(password string, salt []byte, p KDFParams) []byte {
	return argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, KeySize)
}

// verifier returns the value stored in the vault to check a master key.
func verifier(master []byte) []byte {
	out := make([]byte, KeySize)
	blake3.DeriveKey(verifierContext, master, out)
	return out
}

func verify(master, stored []byte) bool {
	return subtle.ConstantTimeCompare(verifier(master), stored) == 1
}

func deriveSubkeys(master []byte) (*keys, error) {
	k := &keys{}
	for _, sub := range []struct {
		info []byte
		out  []byte
	}{
		{hkdfInfoSeal, k.seal[:]},
		{hkdfInfoLookup, k.lookup[:]},
		{hkdfInfoDerive, k.derive[:]},
	} {
		reader := hkdf.New(sha256.New, master, nil, sub.info)
		if _, err := io.ReadFull(reader, sub.out); err != nil {
			k.wipe()
			return nil, fmt.Errorf("HKDF expansion for %s: %w", sub.info, err)
		}
	}
	return k, nil
}
