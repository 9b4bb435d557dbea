package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/services"
)

const summaryWidth = 48

// resourceOps is the type-erased view of a services.Collection used by the
// generic record commands.
type resourceOps interface {
	resource() string
	list(ctx context.Context, campaignID int64, p services.ListParams) (total int, rows []row, err error)
	get(ctx context.Context, campaignID, id int64) (any, error)
	create(ctx context.Context, campaignID int64, body any) (row, error)
	update(ctx context.Context, campaignID, id int64, body any) (row, error)
	remove(ctx context.Context, campaignID, id int64) error
}

type collectionOps[T any] struct {
	c         services.Collection[T]
	summarize func(T) row
}

func opsFor[T any](c services.Collection[T], summarize func(T) row) resourceOps {
	return collectionOps[T]{c: c, summarize: summarize}
}

func (o collectionOps[T]) resource() string { return o.c.Resource() }

func (o collectionOps[T]) list(ctx context.Context, campaignID int64, p services.ListParams) (int, []row, error) {
	page, err := o.c.List(ctx, campaignID, p)
	if err != nil {
		return 0, nil, err
	}
	rows := make([]row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, o.summarize(item))
	}
	return page.Total, rows, nil
}

func (o collectionOps[T]) get(ctx context.Context, campaignID, id int64) (any, error) {
	return o.c.Get(ctx, campaignID, id)
}

func (o collectionOps[T]) create(ctx context.Context, campaignID int64, body any) (row, error) {
	v, err := o.c.Create(ctx, campaignID, body)
	if err != nil {
		return row{}, err
	}
	return o.summarize(v), nil
}

func (o collectionOps[T]) update(ctx context.Context, campaignID, id int64, body any) (row, error) {
	v, err := o.c.Update(ctx, campaignID, id, body)
	if err != nil {
		return row{}, err
	}
	return o.summarize(v), nil
}

func (o collectionOps[T]) remove(ctx context.Context, campaignID, id int64) error {
	return o.c.Delete(ctx, campaignID, id)
}

// kindAliases maps every accepted spelling to its resource name.
var kindAliases = map[string]string{
	"npc": services.ResourceNPCs, "npcs": services.ResourceNPCs,
	"location": services.ResourceLocations, "locations": services.ResourceLocations,
	"plot-hook": services.ResourcePlotHooks, "plot-hooks": services.ResourcePlotHooks, "hook": services.ResourcePlotHooks, "hooks": services.ResourcePlotHooks,
	"item": services.ResourceItems, "items": services.ResourceItems,
	"event": services.ResourceEvents, "events": services.ResourceEvents,
	"idea": services.ResourceIdeas, "ideas": services.ResourceIdeas,
	"org": services.ResourceOrganizations, "orgs": services.ResourceOrganizations,
	"organization": services.ResourceOrganizations, "organizations": services.ResourceOrganizations,
	"session": services.ResourceSessions, "sessions": services.ResourceSessions,
}

func resolveKind(kind string) (string, error) {
	r, ok := kindAliases[strings.ToLower(kind)]
	if !ok {
		return "", fmt.Errorf("unknown kind %q", kind)
	}
	return r, nil
}

func (a *App) resources() map[string]resourceOps {
	s := a.services
	ops := []resourceOps{
		opsFor(s.NPCs.Collection, func(n models.NPC) row {
			return row{ID: n.ID, Title: n.Name, Detail: deref(n.Occupation), Status: n.Status}
		}),
		opsFor(s.Locations.Collection, func(l models.Location) row {
			return row{ID: l.ID, Title: l.Name, Detail: deref(l.Type), Status: l.Status}
		}),
		opsFor(s.PlotHooks.Collection, func(p models.PlotHook) row {
			return row{ID: p.ID, Title: p.Title, Detail: deref(p.Urgency), Status: p.Status}
		}),
		opsFor(s.Items.Collection, func(i models.Item) row {
			return row{ID: i.ID, Title: i.Name, Detail: deref(i.Rarity), Status: i.Status}
		}),
		opsFor(s.Events.Collection, func(e models.Event) row {
			return row{ID: e.ID, Title: e.Title, Detail: deref(e.Date), Status: e.Status}
		}),
		opsFor(s.Ideas.Collection, func(i models.Idea) row {
			return row{ID: i.ID, Title: truncate(i.Content, summaryWidth), Detail: i.Priority, Status: i.Status}
		}),
		opsFor(s.Organizations.Collection, func(o models.Organization) row {
			return row{ID: o.ID, Title: o.Name, Detail: deref(o.Scope), Status: o.Status}
		}),
		opsFor(s.Sessions.Collection, func(n models.SessionNote) row {
			detail := deref(n.SessionDate)
			if n.SessionNumber != nil {
				detail = strings.TrimSpace(fmt.Sprintf("#%d %s", *n.SessionNumber, detail))
			}
			return row{ID: n.ID, Title: n.Title, Detail: detail, Status: n.Status}
		}),
	}

	m := make(map[string]resourceOps, len(ops))
	for _, o := range ops {
		m[o.resource()] = o
	}
	return m
}

// target resolves the kind argument and the current campaign.
func (a *App) target(kind string) (resourceOps, int64, error) {
	name, err := resolveKind(kind)
	if err != nil {
		return nil, 0, err
	}
	cid, err := a.currentCampaign()
	if err != nil {
		return nil, 0, err
	}
	return a.resources()[name], cid, nil
}

// listParams splits list arguments into search words and k=v filters;
// skip= and limit= set the paging window.
func listParams(args []string) (services.ListParams, error) {
	var (
		p     services.ListParams
		words []string
	)
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			words = append(words, arg)
			continue
		}
		switch k {
		case "skip", "limit":
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return p, fmt.Errorf("invalid %s %q", k, v)
			}
			if k == "skip" {
				p.Skip = n
			} else {
				p.Limit = n
			}
		case "search":
			words = append(words, v)
		default:
			if p.Filters == nil {
				p.Filters = make(map[string]any)
			}
			p.Filters[k] = v
		}
	}
	p.Search = strings.Join(words, " ")
	return p, nil
}

// List prints one page of records of a kind in the current campaign.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("list <kind> [words] [k=v ...]")
	}
	ops, cid, err := a.target(args[0])
	if err != nil {
		return err
	}
	p, err := listParams(args[1:])
	if err != nil {
		return err
	}

	total, rows, err := ops.list(ctx, cid, p)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s: %d of %d\n", heading(ops.resource()), len(rows), total)
	if len(rows) == 0 {
		return nil
	}
	return writeRows(a.out, rows)
}

// Show prints a single record as indented JSON.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("show <kind> <id>")
	}
	ops, cid, err := a.target(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	v, err := ops.get(ctx, cid, id)
	if err != nil {
		return err
	}
	return writeJSON(a.out, v)
}

// New creates a record from inline k=v pairs or, without any, from prompted
// ones. Ideas are captured as free multi-line text.
func (a *App) New(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("new <kind> [k=v ...]")
	}
	ops, cid, err := a.target(args[0])
	if err != nil {
		return err
	}

	var fields map[string]any
	if ops.resource() == services.ResourceIdeas && len(args) == 1 {
		content, err := GetMultiline(a.reader, "Idea:", a.out)
		if err != nil {
			return err
		}
		if strings.TrimSpace(content) == "" {
			return errors.New("empty idea")
		}
		fields = map[string]any{"content": content}
	} else if fields, err = a.fields(args[1:]); err != nil {
		return err
	}

	r, err := ops.create(ctx, cid, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s %d %q\n", ops.resource(), r.ID, r.Title)
	return nil
}

// Edit sends a partial update built from k=v pairs.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("edit <kind> <id> k=v ...")
	}
	ops, cid, err := a.target(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	fields, err := a.fields(args[2:])
	if err != nil {
		return err
	}

	r, err := ops.update(ctx, cid, id, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %d %q\n", ops.resource(), r.ID, r.Title)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("delete <kind> <id>")
	}
	ops, cid, err := a.target(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	if err := ops.remove(ctx, cid, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %d\n", ops.resource(), id)
	return nil
}
