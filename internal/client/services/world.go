package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
)

type NPCService struct {
	Collection[models.NPC]
}

func (s NPCService) relationshipsPath(campaignID, npcID int64) string {
	return s.itemPath(campaignID, npcID) + "/relationships"
}

// Relationships returns the NPC's links with the target names resolved by
// the server.
func (s NPCService) Relationships(ctx context.Context, campaignID, npcID int64) (models.NPCRelationships, error) {
	return client.Decode[models.NPCRelationships](ctx, s.doer, s.relationshipsPath(campaignID, npcID), nil)
}

// UpdateRelationships replaces the NPC's relationship list.
func (s NPCService) UpdateRelationships(ctx context.Context, campaignID, npcID int64, rels []models.Relationship) (models.RelationshipsUpdate, error) {
	if rels == nil {
		rels = []models.Relationship{}
	}
	return client.Decode[models.RelationshipsUpdate](ctx, s.doer, s.relationshipsPath(campaignID, npcID), &client.RequestOptions{
		Method: http.MethodPut,
		Body:   rels,
	})
}

type LocationService struct {
	Collection[models.Location]
}

// TemplateFields returns the location type templates of a campaign.
func (s LocationService) TemplateFields(ctx context.Context, campaignID int64) (models.TemplateFields, error) {
	return s.templateFields(ctx, campaignID)
}

type PlotHookService struct {
	Collection[models.PlotHook]
}

func (s PlotHookService) TemplateFields(ctx context.Context) (models.TemplateFields, error) {
	return s.templateFields(ctx, globalTemplates)
}

type ItemService struct {
	Collection[models.Item]
}

func (s ItemService) TemplateFields(ctx context.Context) (models.TemplateFields, error) {
	return s.templateFields(ctx, globalTemplates)
}

type OrganizationService struct {
	Collection[models.Organization]
}

func (s OrganizationService) TemplateFields(ctx context.Context) (models.TemplateFields, error) {
	return s.templateFields(ctx, globalTemplates)
}

type EventService struct {
	Collection[models.Event]
}

// ConversionTargets are the kinds an idea can be converted into.
var ConversionTargets = []string{"npc", "location", "plot_hook", "item", "organization", "event"}

// ErrInvalidTarget is returned by IdeaService.Convert for an unknown kind.
var ErrInvalidTarget = errors.New("invalid conversion target")

type IdeaService struct {
	Collection[models.Idea]
}

// Convert marks the idea as turned into a world element of kind target.
func (s IdeaService) Convert(ctx context.Context, campaignID, ideaID int64, target string) (models.IdeaConversion, error) {
	if !slices.Contains(ConversionTargets, target) {
		return models.IdeaConversion{}, fmt.Errorf("%w %q, want one of %v", ErrInvalidTarget, target, ConversionTargets)
	}
	path := client.WithQuery(s.itemPath(campaignID, ideaID)+"/convert", client.Params{"target_type": target})
	return client.Decode[models.IdeaConversion](ctx, s.doer, path, &client.RequestOptions{Method: http.MethodPost})
}

type SessionService struct {
	Collection[models.SessionNote]
}

// Duplicate copies a session note and returns the copy.
func (s SessionService) Duplicate(ctx context.Context, campaignID, sessionID int64) (models.SessionNote, error) {
	return client.Decode[models.SessionNote](ctx, s.doer, s.itemPath(campaignID, sessionID)+"/duplicate", &client.RequestOptions{
		Method: http.MethodPost,
	})
}
