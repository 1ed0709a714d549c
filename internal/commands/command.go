// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"io"
	"strings"

	"focus/internal/account"
	"focus/internal/config"
	"focus/internal/service"
	"focus/internal/storage"
	"focus/internal/tasks"
)

// ErrNoService is returned by Env.Service when no remote backend is wired.
var ErrNoService = errors.New("remote task service not configured")

// Env carries what a command needs for one invocation.
type Env struct {
	// Config is always provided (config dir, settings, logger).
	Config *config.Config

	// Store is the open key/value store.
	Store storage.Store

	// Accounts holds the account record and the session flag.
	Accounts *account.Store

	// Board is the loaded task board. Nil unless NeedsAuth() is true.
	Board *tasks.Board

	// NewService connects to the remote task service on demand.
	NewService func(ctx context.Context) (service.Service, error)
}

// Service connects to the remote task service.
func (e *Env) Service(ctx context.Context) (service.Service, error) {
	if e.NewService == nil {
		return nil, ErrNoService
	}
	return e.NewService(ctx)
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a logged-in session.
	// Commands like help, version, register, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// misplacedFlag returns the first argument that looks like a flag. Flag
// parsing stops at the first positional argument, so a flag written after
// one arrives here as plain text.
func misplacedFlag(args []string) (string, bool) {
	for _, a := range args {
		if len(a) > 1 && strings.HasPrefix(a, "-") {
			return a, true
		}
	}
	return "", false
}
