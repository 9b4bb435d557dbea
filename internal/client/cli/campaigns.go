package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/campaignstate"
)

// Campaigns reloads and prints the campaign list; the current one is
// marked with '*'.
func (a *App) Campaigns(ctx context.Context, _ []string) error {
	if err := a.campaigns.Refresh(ctx, a.services.Campaigns); err != nil {
		return err
	}

	list := a.campaigns.Campaigns()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No campaigns yet, create one with 'campaign new <name>'")
		return nil
	}

	var currentID int64 = -1
	if c := a.campaigns.Current(); c != nil {
		currentID = c.ID
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tNAME\tWORLD")
	for _, c := range list {
		mark := " "
		if c.ID == currentID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", mark, c.ID, c.Name, deref(c.WorldName))
	}
	return tw.Flush()
}

// Use selects the current campaign, reloading the list once when the id is
// not known yet.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("use <campaign-id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	c, err := a.campaigns.Select(id)
	if errors.Is(err, campaignstate.ErrUnknownCampaign) {
		if err := a.campaigns.Refresh(ctx, a.services.Campaigns); err != nil {
			return err
		}
		c, err = a.campaigns.Select(id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Now working in %q\n", c.Name)
	return nil
}

// Campaign manages campaigns: new <name> [k=v...], show [id],
// edit [id] k=v..., delete <id>. Bare words after "new" form the name.
func (a *App) Campaign(ctx context.Context, args []string) error {
	const usage = "campaign new <name> [k=v ...] | show [id] | edit [id] k=v ... | delete <id>"
	if len(args) == 0 {
		return usageError(usage)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "new":
		var words, pairs []string
		for _, arg := range rest {
			if strings.Contains(arg, "=") {
				pairs = append(pairs, arg)
			} else {
				words = append(words, arg)
			}
		}
		if len(words) == 0 {
			return usageError("campaign new <name> [k=v ...]")
		}
		fields, err := ParseFields(pairs)
		if err != nil {
			return err
		}
		fields["name"] = strings.Join(words, " ")

		c, err := a.services.Campaigns.Create(ctx, fields)
		if err != nil {
			return err
		}
		if err := a.campaigns.Refresh(ctx, a.services.Campaigns); err != nil {
			return err
		}
		if _, err := a.campaigns.Select(c.ID); err != nil {
			a.campaigns.SetCurrent(&c)
		}
		fmt.Fprintf(a.out, "Created campaign %d %q and selected it\n", c.ID, c.Name)
		return nil

	case "show":
		id, err := a.campaignArg(rest)
		if err != nil {
			return err
		}
		c, err := a.services.Campaigns.Get(ctx, id)
		if err != nil {
			return err
		}
		return writeJSON(a.out, c)

	case "edit":
		id, pairs, err := a.campaignArgWithFields(rest)
		if err != nil {
			return err
		}
		fields, err := a.fields(pairs)
		if err != nil {
			return err
		}
		c, err := a.services.Campaigns.Update(ctx, id, fields)
		if err != nil {
			return err
		}
		if cur := a.campaigns.Current(); cur != nil && cur.ID == c.ID {
			a.campaigns.SetCurrent(&c)
		}
		fmt.Fprintf(a.out, "Updated campaign %d\n", c.ID)
		return nil

	case "delete":
		if len(rest) != 1 {
			return usageError("campaign delete <id>")
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		if err := a.services.Campaigns.Delete(ctx, id); err != nil {
			return err
		}
		if err := a.campaigns.Refresh(ctx, a.services.Campaigns); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted campaign %d\n", id)
		return nil

	default:
		return usageError(usage)
	}
}

// campaignArg resolves an optional leading campaign id, falling back to the
// current campaign.
func (a *App) campaignArg(args []string) (int64, error) {
	if len(args) > 0 {
		return parseID(args[0])
	}
	return a.currentCampaign()
}

func (a *App) campaignArgWithFields(args []string) (int64, []string, error) {
	if len(args) > 0 {
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			return id, args[1:], nil
		}
	}
	id, err := a.currentCampaign()
	return id, args, err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// fields parses inline pairs, or prompts for them when none were given.
func (a *App) fields(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		var err error
		if pairs, err = GetFields(a.reader, a.out); err != nil {
			return nil, err
		}
	}
	if len(pairs) == 0 {
		return nil, errors.New("no fields given")
	}
	return ParseFields(pairs)
}
