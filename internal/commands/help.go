package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"focus/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "focus help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  focus                                         Show today's tasks
  focus register <name...> <email> <password>   Create the account and log in
  focus login <email> <password>
  focus logout
  focus whoami
  focus list [--date <day>]                     Missed, active and done tasks
  focus add [--date <day>] <text...>
  focus done [--date <day>] <ref>               Toggle completion
  focus rm [--date <day>] <ref>
  focus missed
  focus note [--clear] [text...]
  focus config
  focus link                                    Authorize Google Tasks
  focus unlink
  focus push [--list <list-name>]               Mirror tasks to Google Tasks
  focus help
  focus version

Days:
  today, yesterday, tomorrow, 2006-01-02 or "Mon Jan 02 2006"

Task refs:
  <id>, or a1 / d1 / m1 for the first active, done or missed task in list

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
