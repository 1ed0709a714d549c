package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"focus/internal/account"
	"focus/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the local account" }
func (c *LoginCmd) Usage() string     { return "focus login <email> <password>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if arg, ok := misplacedFlag(args); ok {
		fmt.Fprintf(errOut, "error: flags must come before arguments: %s\n", arg)
		return exitcode.UserError
	}
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: email and password required")
		return exitcode.UserError
	}

	err := env.Accounts.Login(args[0], args[1])
	switch {
	case errors.Is(err, account.ErrNoAccount):
		fmt.Fprintln(errOut, "error: no account found (run: focus register)")
		return exitcode.AuthError
	case errors.Is(err, account.ErrInvalidCredentials):
		fmt.Fprintln(errOut, "error: invalid email or password")
		return exitcode.AuthError
	case err != nil:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
