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
	Register(&NoteCmd{})
}

// NoteCmd implements the note command.
type NoteCmd struct {
	clear bool
}

// SetClear sets the clear flag (for testing).
func (c *NoteCmd) SetClear(clear bool) {
	c.clear = clear
}

func (c *NoteCmd) Name() string      { return "note" }
func (c *NoteCmd) Aliases() []string { return nil }
func (c *NoteCmd) Synopsis() string  { return "Show or replace the note" }
func (c *NoteCmd) Usage() string     { return "focus note [--clear] [text...]" }
func (c *NoteCmd) NeedsAuth() bool   { return true }

func (c *NoteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.clear, "clear", false, "")
}

func (c *NoteCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if c.clear && len(args) > 0 {
		fmt.Fprintln(errOut, "error: cannot use both --clear and note text")
		return exitcode.UserError
	}

	if !c.clear && len(args) == 0 {
		if note := env.Board.Note(); note != "" {
			fmt.Fprintln(out, strings.TrimRight(note, "\n"))
		} else if !env.Config.Quiet {
			fmt.Fprintln(out, "no note")
		}
		return exitcode.Success
	}

	if err := env.Board.SetNote(strings.Join(args, " ")); err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
