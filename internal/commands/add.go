package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"focus/internal/exitcode"
	"focus/internal/tasks"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	date string
}

// SetDate sets the task date (for testing).
func (c *AddCmd) SetDate(date string) {
	c.date = date
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "focus add [--date <day>] <text...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	selected, err := selectedDay(env, c.date)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Join args to form the text
	text := strings.Join(args, " ")

	task, err := env.Board.Add(text, tasks.FormatDay(selected))
	if errors.Is(err, tasks.ErrEmptyTaskText) {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.BackendError
	}

	env.Config.Debugf("added task %d on %s", task.ID, task.Date)
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
