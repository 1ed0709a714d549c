// Package account keeps the single local account record and the session flag
// that gates the protected commands.
package account

import (
	"encoding/json"
	"errors"
	"fmt"

	"focus/internal/storage"
)

var (
	// ErrNoAccount is returned by Login when nobody has registered yet.
	ErrNoAccount = errors.New("no account found")

	// ErrInvalidCredentials is returned by Login when email or password
	// do not match the stored account.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const sessionValue = "true"

// Account is the one registered user. The password is stored as entered.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store reads and writes the account record and the session flag.
type Store struct {
	kv storage.Store
}

// NewStore creates an account store over kv.
func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Register overwrites the account record and logs the new account in.
// Field validation is left to the caller.
func (s *Store) Register(name, email, password string) error {
	data, err := json.Marshal(Account{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := s.kv.Set(storage.KeyAccount, data); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return s.setSession()
}

// Account returns the stored record. A missing, unreadable or malformed
// record is reported as absent.
func (s *Store) Account() (Account, bool) {
	data, ok, err := s.kv.Get(storage.KeyAccount)
	if err != nil || !ok {
		return Account{}, false
	}
	var a Account
	if err := json.Unmarshal(data, &a); err != nil {
		return Account{}, false
	}
	return a, true
}

// Login checks email and password against the stored account, exactly and
// case-sensitively, and sets the session flag on success only.
func (s *Store) Login(email, password string) error {
	a, ok := s.Account()
	if !ok {
		return ErrNoAccount
	}
	if a.Email != email || a.Password != password {
		return ErrInvalidCredentials
	}
	return s.setSession()
}

// Logout clears the session flag. Logging out twice is fine.
func (s *Store) Logout() error {
	if err := s.kv.Delete(storage.KeySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Allowed reports whether protected commands may run.
func (s *Store) Allowed() bool {
	data, ok, err := s.kv.Get(storage.KeySession)
	if err != nil || !ok {
		return false
	}
	return string(data) == sessionValue
}

func (s *Store) setSession() error {
	if err := s.kv.Set(storage.KeySession, []byte(sessionValue)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
