package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/services"
)

// Relationships prints an NPC's links, or replaces them with
// "set <json-array>".
func (a *App) Relationships(ctx context.Context, args []string) error {
	const usage = "relationships <npc-id> [set <json>]"
	if len(args) == 0 {
		return usageError(usage)
	}
	cid, err := a.currentCampaign()
	if err != nil {
		return err
	}
	npcID, err := parseID(args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		rels, err := a.services.NPCs.Relationships(ctx, cid, npcID)
		if err != nil {
			return err
		}
		return writeRelationships(a, rels.NPCName, rels.Relationships)
	}

	if args[1] != "set" || len(args) < 3 {
		return usageError(usage)
	}
	var rels []models.Relationship
	if err := json.Unmarshal([]byte(strings.Join(args[2:], " ")), &rels); err != nil {
		return fmt.Errorf("relationships must be a JSON array: %w", err)
	}

	res, err := a.services.NPCs.UpdateRelationships(ctx, cid, npcID, rels)
	if err != nil {
		return err
	}
	if res.Message != "" {
		fmt.Fprintln(a.out, res.Message)
	}
	return writeRelationships(a, "", res.Relationships)
}

func writeRelationships(a *App, name string, rels []models.Relationship) error {
	if name != "" {
		fmt.Fprintf(a.out, "%s: %d relationship(s)\n", name, len(rels))
	}
	if len(rels) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tID\tNAME\tTYPE\tDESCRIPTION")
	for _, r := range rels {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", r.TargetType, r.TargetID, r.TargetName, r.RelationshipType, truncate(r.Description, summaryWidth))
	}
	return tw.Flush()
}

func (a *App) Convert(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("convert <idea-id> <" + strings.Join(services.ConversionTargets, "|") + ">")
	}
	cid, err := a.currentCampaign()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	res, err := a.services.Ideas.Convert(ctx, cid, id, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (idea %d is now %s)\n", res.Message, res.Idea.ID, res.Idea.Status)
	return nil
}

func (a *App) Duplicate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("duplicate <session-id>")
	}
	cid, err := a.currentCampaign()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	n, err := a.services.Sessions.Duplicate(ctx, cid, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Duplicated session %d as %d %q\n", id, n.ID, n.Title)
	return nil
}

// Templates prints the subtype field sets of a kind. Location templates are
// per campaign, the others are global.
func (a *App) Templates(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("templates <locations|plot-hooks|items|organizations>")
	}
	kind, err := resolveKind(args[0])
	if err != nil {
		return err
	}

	var fields models.TemplateFields
	switch kind {
	case services.ResourceLocations:
		cid, err := a.currentCampaign()
		if err != nil {
			return err
		}
		fields, err = a.services.Locations.TemplateFields(ctx, cid)
		if err != nil {
			return err
		}
	case services.ResourcePlotHooks:
		fields, err = a.services.PlotHooks.TemplateFields(ctx)
	case services.ResourceItems:
		fields, err = a.services.Items.TemplateFields(ctx)
	case services.ResourceOrganizations:
		fields, err = a.services.Organizations.TemplateFields(ctx)
	default:
		return fmt.Errorf("%s have no templates", kind)
	}
	if err != nil {
		return err
	}

	return writeTemplates(a, fields)
}

func writeTemplates(a *App, fields models.TemplateFields) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, subtype := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(tw, "%s:\n", heading(subtype))
		set := fields[subtype]
		for _, name := range slices.Sorted(maps.Keys(set)) {
			f := set[name]
			req := ""
			if f.Required {
				req = "required"
			}
			opts := ""
			if len(f.Options) > 0 {
				opts = strings.Join(f.Options, ", ")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", name, f.Type, f.Label, req, opts)
		}
	}
	return tw.Flush()
}

// Summary prints the record counts of the current campaign.
func (a *App) Summary(ctx context.Context, _ []string) error {
	cid, err := a.currentCampaign()
	if err != nil {
		return err
	}

	totals, err := a.services.Summary(ctx, cid)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, name := range slices.Sorted(maps.Keys(totals)) {
		fmt.Fprintf(tw, "%s\t%d\n", heading(name), totals[name])
	}
	return tw.Flush()
}
