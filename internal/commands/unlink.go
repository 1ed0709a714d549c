package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"focus/internal/exitcode"
	"focus/internal/storage"
)

func init() {
	Register(&UnlinkCmd{})
}

// UnlinkCmd implements the unlink command.
type UnlinkCmd struct{}

func (c *UnlinkCmd) Name() string      { return "unlink" }
func (c *UnlinkCmd) Aliases() []string { return nil }
func (c *UnlinkCmd) Synopsis() string  { return "Remove the Google Tasks token" }
func (c *UnlinkCmd) Usage() string     { return "focus unlink [common flags]" }
func (c *UnlinkCmd) NeedsAuth() bool   { return false }

func (c *UnlinkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UnlinkCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	cfg := env.Config

	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not linked")
		}
		return exitcode.Success
	}

	// oauth_client.json stays so link can run again
	if err := cfg.RemoveToken(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}
	// A later link may target another Google account
	if err := env.Store.Delete(storage.KeyMirror); err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
