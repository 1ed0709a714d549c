package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"focus/internal/exitcode"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create the account and log in" }
func (c *RegisterCmd) Usage() string     { return "focus register <name...> <email> <password>" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if arg, ok := misplacedFlag(args); ok {
		fmt.Fprintf(errOut, "error: flags must come before arguments: %s\n", arg)
		return exitcode.UserError
	}
	if len(args) < 3 {
		fmt.Fprintln(errOut, "error: name, email and password required")
		return exitcode.UserError
	}

	// Everything before email and password is the name
	name := strings.TrimSpace(strings.Join(args[:len(args)-2], " "))
	email := args[len(args)-2]
	password := args[len(args)-1]
	if name == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		fmt.Fprintln(errOut, "error: name, email and password required")
		return exitcode.UserError
	}

	if err := env.Accounts.Register(name, email, password); err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
