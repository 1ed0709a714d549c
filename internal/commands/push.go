package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"focus/internal/exitcode"
	"focus/internal/mirror"
	"focus/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
}

// SetListName sets the target list (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return []string{"sync"} }
func (c *PushCmd) Synopsis() string  { return "Mirror tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "focus push [--list <list-name>]" }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	listName := strings.TrimSpace(c.listName)
	if listName == "" {
		listName = env.Config.GoogleList
	}
	if strings.TrimSpace(listName) == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	svc, err := env.Service(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "oauth") {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	pusher := mirror.NewPusher(svc, env.Store, env.Config.Logger)
	res, err := pusher.Push(ctx, listName, env.Board.Tasks())
	if err != nil {
		if errors.Is(err, service.ErrAmbiguous) {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", listName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "created %d, updated %d, deleted %d\n", res.Created, res.Updated, res.Deleted)
	}
	return exitcode.Success
}
