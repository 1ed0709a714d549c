package account_test

import (
	"errors"
	"testing"

	"focus/internal/account"
	"focus/internal/storage"
)

func TestFreshStore(t *testing.T) {
	s := account.NewStore(storage.NewMemoryStore())

	if s.Allowed() {
		t.Error("fresh store should not be logged in")
	}
	if _, ok := s.Account(); ok {
		t.Error("fresh store should have no account")
	}
	if err := s.Login("ann@x.com", "pw1"); !errors.Is(err, account.ErrNoAccount) {
		t.Errorf("expected ErrNoAccount, got %v", err)
	}
	if s.Allowed() {
		t.Error("failed login must not set the session")
	}
}

func TestSessionScenario(t *testing.T) {
	s := account.NewStore(storage.NewMemoryStore())

	if err := s.Register("Ann", "ann@x.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !s.Allowed() {
		t.Fatal("register should log in")
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.Allowed() {
		t.Fatal("logout should clear the session")
	}

	if err := s.Login("ann@x.com", "pw1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.Allowed() {
		t.Fatal("login should set the session")
	}

	if err := s.Login("ann@x.com", "wrong"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if !s.Allowed() {
		t.Error("failed login must leave the session unchanged")
	}
}

func TestLogin_CaseSensitive(t *testing.T) {
	s := account.NewStore(storage.NewMemoryStore())
	if err := s.Register("Ann", "ann@x.com", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	s.Logout()

	if err := s.Login("Ann@x.com", "pw1"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Errorf("expected email match to be case-sensitive, got %v", err)
	}
	if err := s.Login("ann@x.com", "PW1"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Errorf("expected password match to be case-sensitive, got %v", err)
	}
	if s.Allowed() {
		t.Error("failed logins must not set the session")
	}
}

func TestRegister_Overwrites(t *testing.T) {
	s := account.NewStore(storage.NewMemoryStore())
	s.Register("Ann", "ann@x.com", "pw1")
	s.Register("Bob", "bob@x.com", "pw2")

	a, ok := s.Account()
	if !ok {
		t.Fatal("expected account")
	}
	if a != (account.Account{Name: "Bob", Email: "bob@x.com", Password: "pw2"}) {
		t.Errorf("expected last registration to win, got %+v", a)
	}

	s.Logout()
	if err := s.Login("ann@x.com", "pw1"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Errorf("old credentials should no longer work, got %v", err)
	}
}

func TestAccount_MalformedIsAbsent(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Set(storage.KeyAccount, []byte("{not json"))
	s := account.NewStore(kv)

	if _, ok := s.Account(); ok {
		t.Error("malformed record should be treated as absent")
	}
	if err := s.Login("ann@x.com", "pw1"); !errors.Is(err, account.ErrNoAccount) {
		t.Errorf("expected ErrNoAccount, got %v", err)
	}
}

func TestAllowed_RequiresTrue(t *testing.T) {
	kv := storage.NewMemoryStore()
	kv.Set(storage.KeySession, []byte("false"))
	s := account.NewStore(kv)

	if s.Allowed() {
		t.Error("only \"true\" should open the gate")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	s := account.NewStore(storage.NewMemoryStore())
	if err := s.Logout(); err != nil {
		t.Fatalf("logout when logged out should succeed, got %v", err)
	}
}
