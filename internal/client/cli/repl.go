package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var (
	errNoCampaign = errors.New("no campaign selected, run 'campaigns' and 'use <id>'")
	errUsage      = errors.New("usage")
)

// usageError reports wrong arguments together with the expected form.
func usageError(form string) error {
	return fmt.Errorf("%w: %s", errUsage, form)
}

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Campaigns(ctx context.Context, args []string) error
	Use(ctx context.Context, args []string) error
	Campaign(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Relationships(ctx context.Context, args []string) error
	Convert(ctx context.Context, args []string) error
	Duplicate(ctx context.Context, args []string) error
	Templates(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  whoami, logout, stats
  campaigns                         list campaigns
  use <id>                          select the current campaign
  campaign new|show|edit|delete     manage campaigns
  list <kind> [words] [k=v ...]     list records (skip=, limit=, filters)
  show <kind> <id>                  show one record
  new <kind> [k=v ...]              create a record
  edit <kind> <id> k=v ...          update a record
  delete <kind> <id>                delete a record
  relationships <npc-id> [set <json>]
  convert <idea-id> <target>        npc|location|plot_hook|item|organization|event
  duplicate <session-id>
  templates <kind>                  locations, plot-hooks, items, organizations
  summary                           record counts of the current campaign
  exit
kinds: npcs, locations, plot-hooks, items, events, ideas, organizations, sessions`
)

// runREPL starts a simple read–eval–print loop for the campaignkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens. Errors returned
// by handlers are printed and the loop continues. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ck %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if cmdErr := dispatch(ctx, a, cmd, args); cmdErr != nil {
			printlnFn("error:", cmdErr)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx, args)
	case "login":
		return a.Login(ctx, args)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "whoami", "logout", "campaigns", "use", "campaign", "list", "l", "show", "new", "edit", "delete",
			"relationships", "convert", "duplicate", "templates", "summary", "stats":
			printlnFn("Please login first")
		default:
			printlnFn("Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "whoami":
		return a.WhoAmI(ctx, args)
	case "logout":
		return a.Logout(ctx, args)
	case "campaigns":
		return a.Campaigns(ctx, args)
	case "use":
		return a.Use(ctx, args)
	case "campaign":
		return a.Campaign(ctx, args)
	case "l", "list":
		return a.List(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "new":
		return a.New(ctx, args)
	case "edit":
		return a.Edit(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "relationships":
		return a.Relationships(ctx, args)
	case "convert":
		return a.Convert(ctx, args)
	case "duplicate":
		return a.Duplicate(ctx, args)
	case "templates":
		return a.Templates(ctx, args)
	case "summary":
		return a.Summary(ctx, args)
	case "stats":
		return a.Stats(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}
