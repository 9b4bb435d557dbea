package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/client"
	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
)

// Resource names as they appear in campaign-scoped paths.
const (
	ResourceNPCs          = "npcs"
	ResourceLocations     = "locations"
	ResourcePlotHooks     = "plot-hooks"
	ResourceItems         = "items"
	ResourceEvents        = "events"
	ResourceIdeas         = "ideas"
	ResourceOrganizations = "organizations"
	ResourceSessions      = "sessions"
)

// globalTemplates is the campaign id used by template endpoints that are not
// campaign specific.
const globalTemplates = 0

// Collection is the CRUD call set of one campaign-scoped resource.
type Collection[T any] struct {
	doer     client.Doer
	resource string
}

func NewCollection[T any](doer client.Doer, resource string) Collection[T] {
	return Collection[T]{doer: doer, resource: resource}
}

// Resource returns the path segment of the collection, e.g. "plot-hooks".
func (c Collection[T]) Resource() string {
	return c.resource
}

func (c Collection[T]) basePath(campaignID int64) string {
	return fmt.Sprintf("/campaigns/%d/%s", campaignID, c.resource)
}

func (c Collection[T]) itemPath(campaignID, id int64) string {
	return fmt.Sprintf("%s/%d", c.basePath(campaignID), id)
}

// List returns one page of the collection.
func (c Collection[T]) List(ctx context.Context, campaignID int64, p ListParams) (models.Page[T], error) {
	return client.Decode[models.Page[T]](ctx, c.doer, client.WithQuery(c.basePath(campaignID), p.Params()), nil)
}

// Total returns the size of the collection without fetching it.
func (c Collection[T]) Total(ctx context.Context, campaignID int64) (int, error) {
	page, err := c.List(ctx, campaignID, ListParams{Limit: 1})
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

func (c Collection[T]) Get(ctx context.Context, campaignID, id int64) (T, error) {
	return client.Decode[T](ctx, c.doer, c.itemPath(campaignID, id), nil)
}

// Create posts body, a T or a field map, and returns the stored record.
func (c Collection[T]) Create(ctx context.Context, campaignID int64, body any) (T, error) {
	return client.Decode[T](ctx, c.doer, c.basePath(campaignID), &client.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
}

// Update puts body, a T or a map of the fields to change.
func (c Collection[T]) Update(ctx context.Context, campaignID, id int64, body any) (T, error) {
	return client.Decode[T](ctx, c.doer, c.itemPath(campaignID, id), &client.RequestOptions{
		Method: http.MethodPut,
		Body:   body,
	})
}

func (c Collection[T]) Delete(ctx context.Context, campaignID, id int64) error {
	_, err := c.doer.Do(ctx, c.itemPath(campaignID, id), &client.RequestOptions{Method: http.MethodDelete})
	return err
}

// templateFields fetches /campaigns/{cid}/{resource}/templates/fields.
func (c Collection[T]) templateFields(ctx context.Context, campaignID int64) (models.TemplateFields, error) {
	return client.Decode[models.TemplateFields](ctx, c.doer, c.basePath(campaignID)+"/templates/fields", nil)
}
