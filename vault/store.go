package vault

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/chacha20poly1305"

	_ "modernc.org/sqlite" // register sqlite driver
)

// sealedVersion prefixes every sealed alias record and is authenticated as AAD.
const sealedVersion byte = 0x01

const vaultSchema = `
CREATE TABLE IF NOT EXISTS meta (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	salt        BLOB NOT NULL,
	verifier    BLOB NOT NULL,
	kdf_time    INTEGER NOT NULL,
	kdf_memory  INTEGER NOT NULL,
	kdf_threads INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS aliases (
	id     INTEGER PRIMARY KEY,
	lookup BLOB NOT NULL UNIQUE,
	sealed BLOB NOT NULL
);
`

// aliasRecord is the plaintext of one sealed row.
type aliasRecord struct {
	Alias      string  `cbor:"alias"`
	UsesSecret bool    `cbor:"uses_secret"`
	Charset    CharSet `cbor:"charset"`
}

// SQLiteEngine is an Engine backed by a single SQLite file. Alias names and
// their options are sealed with XChaCha20-Poly1305; nothing readable is
// stored besides the KDF salt and parameters.
type SQLiteEngine struct {
	path   string
	params KDFParams
}

// NewSQLiteEngine returns an engine for the vault at path. params are used
// only when the vault is created; zero params select DefaultKDFParams.
func NewSQLiteEngine(path string, params KDFParams) *SQLiteEngine {
	return &SQLiteEngine{path: path, params: params.orDefault()}
}

// Path returns the vault file location.
func (e *SQLiteEngine) Path() string {
	return e.path
}

// VaultExists reports whether the file holds an initialized vault.
func (e *SQLiteEngine) VaultExists() bool {
	if _, err := os.Stat(e.path); err != nil {
		return false
	}
	db, err := sql.Open("sqlite", e.path)
	if err != nil {
		return false
	}
	defer db.Close()
	var one int
	return db.QueryRow(`SELECT 1 FROM meta WHERE id = 1`).Scan(&one) == nil
}

// CreateSession unlocks the vault, initializing it when it does not exist yet.
func (e *SQLiteEngine) CreateSession(password string) (Session, error) {
	db, err := openStore(e.path)
	if err != nil {
		return nil, err
	}

	s, err := e.unlock(db, password)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func openStore(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create vault directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}
	if _, err := db.Exec(vaultSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run schema migrations: %w", err)
	}
	if path != ":memory:" {
		if err := os.Chmod(path, 0600); err != nil {
			db.Close()
			return nil, fmt.Errorf("set vault permissions: %w", err)
		}
	}
	return db, nil
}

func (e *SQLiteEngine) unlock(db *sql.DB, password string) (*sqliteSession, error) {
	var (
		salt, stored []byte
		p            KDFParams
	)
	err := db.QueryRow(`SELECT salt, verifier, kdf_time, kdf_memory, kdf_threads FROM meta WHERE id = 1`).
		Scan(&salt, &stored, &p.Time, &p.MemoryKiB, &p.Threads)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return e.initialize(db, password)
	case err != nil:
		return nil, fmt.Errorf("read vault metadata: %w", err)
	}

	master := masterKey(password, salt, p)
	defer clear(master)
	if !verify(master, stored) {
		return nil, ErrInvalidPassword
	}
	k, err := deriveSubkeys(master)
	if err != nil {
		return nil, err
	}
	s := &sqliteSession{db: db, keys: k, byAlias: make(map[string]aliasRecord)}
	if err := s.load(); err != nil {
		k.wipe()
		return nil, err
	}
	return s, nil
}

func (e *SQLiteEngine) initialize(db *sql.DB, password string) (*sqliteSession, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	master := masterKey(password, salt, e.params)
	defer clear(master)

	const q = `INSERT INTO meta (id, salt, verifier, kdf_time, kdf_memory, kdf_threads, created_at) VALUES (1, ?, ?, ?, ?, ?, ?)`
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := db.Exec(q, salt, verifier(master), e.params.Time, e.params.MemoryKiB, e.params.Threads, createdAt); err != nil {
		return nil, fmt.Errorf("write vault metadata: %w", err)
	}
	k, err := deriveSubkeys(master)
	if err != nil {
		return nil, err
	}
	return &sqliteSession{db: db, keys: k, byAlias: make(map[string]aliasRecord)}, nil
}

// RemoveVault deletes the vault file and its WAL side files. A missing vault
// is not an error.
func RemoveVault(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %q: %w", p, err)
		}
	}
	return nil
}

// sqliteSession caches the decrypted alias records of an unlocked vault.
type sqliteSession struct {
	mu      sync.Mutex
	db      *sql.DB
	keys    *keys
	order   []string
	byAlias map[string]aliasRecord
	closed  bool
}

func (s *sqliteSession) load() error {
	rows, err := s.db.Query(`SELECT lookup, sealed FROM aliases ORDER BY id`)
	if err != nil {
		return fmt.Errorf("read aliases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lookup, sealed []byte
		if err := rows.Scan(&lookup, &sealed); err != nil {
			return fmt.Errorf("scan alias row: %w", err)
		}
		rec, err := s.open(sealed, lookup)
		if err != nil {
			return err
		}
		s.order = append(s.order, rec.Alias)
		s.byAlias[rec.Alias] = rec
	}
	return rows.Err()
}

func (s *sqliteSession) ListAliases() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *sqliteSession) AliasUsesSecret(alias string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byAlias[alias]
	if !ok {
		return true
	}
	return rec.UsesSecret
}

func (s *sqliteSession) AliasCharset(alias string) CharSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byAlias[alias].Charset
}

func (s *sqliteSession) DeriveSecret(alias, secret string, charset CharSet) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}
	return derivePassword(&s.keys.derive, alias, secret, charset)
}

func (s *sqliteSession) AppendAlias(alias string, usesSecret bool, charset CharSet) error {
	if strings.TrimSpace(alias) == "" {
		return ErrEmptyAlias
	}
	if !charset.Valid() {
		panic(fmt.Sprintf("vault: invalid charset %d", uint8(charset)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if _, ok := s.byAlias[alias]; ok {
		return ErrAliasExists
	}

	rec := aliasRecord{Alias: alias, UsesSecret: usesSecret, Charset: charset}
	lookup := s.lookup(alias)
	sealed, err := s.seal(rec, lookup)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`INSERT INTO aliases (lookup, sealed) VALUES (?, ?)`, lookup, sealed); err != nil {
		return fmt.Errorf("insert alias: %w", err)
	}
	s.order = append(s.order, alias)
	s.byAlias[alias] = rec
	return nil
}

func (s *sqliteSession) RemoveAlias(alias string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if _, ok := s.byAlias[alias]; !ok {
		return ErrAliasNotFound
	}

	res, err := s.db.Exec(`DELETE FROM aliases WHERE lookup = ?`, s.lookup(alias))
	if err != nil {
		return fmt.Errorf("delete alias: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAliasNotFound
	}
	delete(s.byAlias, alias)
	for i, a := range s.order {
		if a == alias {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *sqliteSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.keys.wipe()
	s.order = nil
	s.byAlias = nil
	return s.db.Close()
}

// lookup is the opaque unique key of an alias row.
func (s *sqliteSession) lookup(alias string) []byte {
	hasher, err := blake3.NewKeyed(s.keys.lookup[:])
	if err != nil {
		panic("vault: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.WriteString(alias)
	return hasher.Sum(nil)
}

// seal encrypts rec as [version][nonce][ciphertext+tag], binding it to lookup.
func (s *sqliteSession) seal(rec aliasRecord, lookup []byte) ([]byte, error) {
	plaintext, err := cbor.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode alias record: %w", err)
	}
	defer clear(plaintext)

	aead, err := chacha20poly1305.NewX(s.keys.seal[:])
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}

	out := make([]byte, 1+len(nonce), 1+len(nonce)+len(plaintext)+aead.Overhead())
	out[0] = sealedVersion
	copy(out[1:], nonce[:])
	return aead.Seal(out, nonce[:], plaintext, sealAAD(lookup)), nil
}

func (s *sqliteSession) open(sealed, lookup []byte) (aliasRecord, error) {
	var rec aliasRecord
	if len(sealed) < 1+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead || sealed[0] != sealedVersion {
		return rec, ErrVaultCorrupted
	}
	aead, err := chacha20poly1305.NewX(s.keys.seal[:])
	if err != nil {
		return rec, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	nonce := sealed[1 : 1+chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, sealed[1+chacha20poly1305.NonceSizeX:], sealAAD(lookup))
	if err != nil {
		return rec, fmt.Errorf("%w: %v", ErrVaultCorrupted, err)
	}
	defer clear(plaintext)
	if err := cbor.Unmarshal(plaintext, &rec); err != nil {
		return rec, fmt.Errorf("%w: decode alias record: %v", ErrVaultCorrupted, err)
	}
	if !rec.Charset.Valid() {
		return rec, fmt.Errorf("%w: unknown charset %d", ErrVaultCorrupted, uint8(rec.Charset))
	}
	return rec, nil
}

func sealAAD(lookup []byte) []byte {
	aad := make([]byte, 0, 1+len(lookup))
	aad = append(aad, sealedVersion)
	return append(aad, lookup...)
}
