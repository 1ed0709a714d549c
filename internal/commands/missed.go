package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"focus/internal/exitcode"
)

func init() {
	Register(&MissedCmd{})
}

// MissedCmd implements the missed command.
type MissedCmd struct{}

func (c *MissedCmd) Name() string      { return "missed" }
func (c *MissedCmd) Aliases() []string { return nil }
func (c *MissedCmd) Synopsis() string  { return "Show open tasks from earlier days" }
func (c *MissedCmd) Usage() string     { return "focus missed" }
func (c *MissedCmd) NeedsAuth() bool   { return true }

func (c *MissedCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MissedCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	missed := env.Board.Missed()
	if len(missed) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no missed tasks")
		}
		return exitcode.Success
	}
	printMissed(out, missed)
	return exitcode.Success
}
