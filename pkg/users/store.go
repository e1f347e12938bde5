// Package users implements the credential store: a username to
// password-hash mapping held in memory and mirrored to a single JSON file
// on every mutation.
//
// The durable copy is human-readable and rewritten wholesale; there is no
// incremental append. Persistence failures are logged and swallowed; the
// in-memory state stays authoritative and the triggering request is never
// aborted.
package users

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/shelfd/shelfd/pkg/debug"
)

// Sentinel errors for credential operations.
var (
	// ErrExists is returned when registering a username that is taken.
	// Usernames are case-sensitive; "Bob" and "bob" are distinct.
	ErrExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Record is the durable form of a single user.
type Record struct {
	PasswordHash string `json:"password_hash"`
}

// Store holds the username → record mapping. The mutex covers the
// read-modify-write of the mapping and the load/save pair.
type Store struct {
	mu     sync.Mutex
	path   string
	users  map[string]Record
	logger *slog.Logger
}

// Options configures a Store.
type Options struct {
	// Path of the JSON file mirroring the mapping.
	Path string

	// BootstrapUsername and BootstrapPassword seed one administrative
	// account when the loaded mapping is empty. This is a development
	// convenience default, not a security feature.
	BootstrapUsername string
	BootstrapPassword string

	Logger *slog.Logger
}

// Open loads the store from its durable file. A missing file, unreadable
// file, or malformed content yields an empty mapping; loading never fails
// the caller. If the mapping is empty afterwards and a bootstrap account is
// configured, it is created and persisted immediately.
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		path:   opts.Path,
		users:  load(opts.Path, logger),
		logger: logger,
	}

	if len(s.users) == 0 && opts.BootstrapUsername != "" {
		hash, err := bcrypt.GenerateFromPassword(prehash(opts.BootstrapPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.users[opts.BootstrapUsername] = Record{PasswordHash: string(hash)}
		s.save()
		logger.Info("bootstrapped default account", "username", opts.BootstrapUsername)
	}

	return s, nil
}

// load reconstructs the mapping from the durable file. Any error, and any
// entry without a password_hash, degrades to the empty state.
func load(path string, logger *slog.Logger) map[string]Record {
	users := make(map[string]Record)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("could not read user file, starting empty", "path", path, "error", err)
		}
		return users
	}

	var raw map[string]Record
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("malformed user file, starting empty", "path", path, "error", err)
		return users
	}

	for username, rec := range raw {
		if rec.PasswordHash == "" {
			continue
		}
		users[username] = rec
	}
	return users
}

// save rewrites the durable file from the full mapping. A write failure is
// logged and otherwise ignored; the in-memory state is left unchanged and
// no error propagates. Callers must hold s.mu.
func (s *Store) save() {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		s.logger.Warn("could not encode user file", "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Warn("could not write user file", "path", s.path, "error", err)
		return
	}
	debug.Log("users", "user file rewritten", "path", s.path, "entries", len(s.users))
}

// prehash folds a password of any length into a fixed-size input for
// bcrypt, which reads only the first 72 bytes. The digest is
// base64-encoded so it contains no NUL bytes.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Register creates a new user. The username must be unused and the password
// must pass the policy; the policy error is returned verbatim so the caller
// can surface its reason. The mapping is persisted before returning.
func (s *Store) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A taken username is reported before the password policy runs.
	if _, exists := s.users[username]; exists {
		return ErrExists
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.users[username] = Record{PasswordHash: string(hash)}
	s.save()
	return nil
}

// Verify checks a presented username/password pair against the store.
// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Store) Verify(username, password string) error {
	s.mu.Lock()
	rec, ok := s.users[username]
	s.mu.Unlock()

	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), prehash(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Len reports the number of registered users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
