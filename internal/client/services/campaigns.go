package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
)

const campaignsPath = "/campaigns/"

// CampaignService is the call set of the top-level campaigns resource.
type CampaignService struct {
	doer client.Doer
}

func NewCampaignService(doer client.Doer) CampaignService {
	return CampaignService{doer: doer}
}

func campaignPath(id int64) string {
	return fmt.Sprintf("/campaigns/%d", id)
}

// List returns every campaign of the signed-in user.
func (s CampaignService) List(ctx context.Context) ([]models.Campaign, error) {
	return client.Decode[[]models.Campaign](ctx, s.doer, campaignsPath, nil)
}

// Get returns the campaign with its per-kind counters.
func (s CampaignService) Get(ctx context.Context, id int64) (models.CampaignWithStats, error) {
	return client.Decode[models.CampaignWithStats](ctx, s.doer, campaignPath(id), nil)
}

func (s CampaignService) Create(ctx context.Context, body any) (models.Campaign, error) {
	return client.Decode[models.Campaign](ctx, s.doer, campaignsPath, &client.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
}

func (s CampaignService) Update(ctx context.Context, id int64, body any) (models.Campaign, error) {
	return client.Decode[models.Campaign](ctx, s.doer, campaignPath(id), &client.RequestOptions{
		Method: http.MethodPut,
		Body:   body,
	})
}

func (s CampaignService) Delete(ctx context.Context, id int64) error {
	_, err := s.doer.Do(ctx, campaignPath(id), &client.RequestOptions{Method: http.MethodDelete})
	return err
}
