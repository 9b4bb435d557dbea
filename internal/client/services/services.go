package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// summaryConcurrency bounds the parallel list calls made by Summary.
const summaryConcurrency = 4

// Services bundles every call set over one pipeline.
type Services struct {
	Auth          AuthService
	Campaigns     CampaignService
	NPCs          NPCService
	Locations     LocationService
	PlotHooks     PlotHookService
	Items         ItemService
	Events        EventService
	Ideas         IdeaService
	Organizations OrganizationService
	Sessions      SessionService
}

func New(doer client.Doer, session Session) *Services {
	return &Services{
		Auth:          NewAuthService(doer, session),
		Campaigns:     NewCampaignService(doer),
		NPCs:          NPCService{NewCollection[models.NPC](doer, ResourceNPCs)},
		Locations:     LocationService{NewCollection[models.Location](doer, ResourceLocations)},
		PlotHooks:     PlotHookService{NewCollection[models.PlotHook](doer, ResourcePlotHooks)},
		Items:         ItemService{NewCollection[models.Item](doer, ResourceItems)},
		Events:        EventService{NewCollection[models.Event](doer, ResourceEvents)},
		Ideas:         IdeaService{NewCollection[models.Idea](doer, ResourceIdeas)},
		Organizations: OrganizationService{NewCollection[models.Organization](doer, ResourceOrganizations)},
		Sessions:      SessionService{NewCollection[models.SessionNote](doer, ResourceSessions)},
	}
}

type totaler interface {
	Resource() string
	Total(ctx context.Context, campaignID int64) (int, error)
}

func (s *Services) collections() []totaler {
	return []totaler{s.NPCs, s.Locations, s.PlotHooks, s.Items, s.Events, s.Ideas, s.Organizations, s.Sessions}
}

// Summary returns the number of records of every campaign-scoped resource,
// keyed by resource name. The lists are fetched concurrently; the first
// failure cancels the rest and is returned.
func (s *Services) Summary(ctx context.Context, campaignID int64) (map[string]int, error) {
	var (
		mu     sync.Mutex
		totals = make(map[string]int, 8)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for _, c := range s.collections() {
		g.Go(func() error {
			n, err := c.Total(ctx, campaignID)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.Resource(), err)
			}
			mu.Lock()
			totals[c.Resource()] = n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}
