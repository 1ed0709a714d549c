package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"focus/internal/exitcode"
	"focus/internal/output"
	"focus/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the dashboard for one day.
type ListCmd struct {
	date string
}

// SetDate sets the selected date (for testing).
func (c *ListCmd) SetDate(date string) {
	c.date = date
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Show missed, active and done tasks" }
func (c *ListCmd) Usage() string     { return "focus list [--date <day>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	b := env.Board
	now := b.Now()
	selected, err := parseDate(c.date, now)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	printMissed(out, b.Missed())

	output.FormatSectionHeader(out, output.FormatDayTitle(tasks.FormatDay(selected), selected.Equal(tasks.Midnight(now))))
	active := b.Active(selected)
	for i, t := range active {
		output.FormatTask(out, output.Ref(SectionActive, i+1), t, false)
	}
	if len(active) == 0 && !env.Config.Quiet {
		fmt.Fprintln(out, "  no tasks for this day")
	}

	if done := b.Done(); len(done) > 0 {
		output.FormatSectionHeader(out, "Done")
		for i, t := range done {
			output.FormatTask(out, output.Ref(SectionDone, i+1), t, true)
		}
	}

	if note := b.Note(); note != "" {
		output.FormatSectionHeader(out, "Note")
		output.FormatNote(out, note)
	}

	return exitcode.Success
}

func printMissed(out io.Writer, missed []tasks.Task) {
	if len(missed) == 0 {
		return
	}
	output.FormatMissedAlert(out, len(missed))
	for i, t := range missed {
		output.FormatTask(out, output.Ref(SectionMissed, i+1), t, true)
	}
}

// selectedDay parses a --date flag against the board clock.
func selectedDay(env *Env, date string) (time.Time, error) {
	return parseDate(date, env.Board.Now())
}
