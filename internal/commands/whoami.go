package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"focus/internal/exitcode"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the logged-in account" }
func (c *WhoamiCmd) Usage() string     { return "focus whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	a, ok := env.Accounts.Account()
	if !ok {
		// Session flag without an account record, e.g. a hand-edited store
		fmt.Fprintln(errOut, "error: no account found (run: focus register)")
		return exitcode.AuthError
	}
	fmt.Fprintf(out, "%s <%s>\n", a.Name, a.Email)
	return exitcode.Success
}
