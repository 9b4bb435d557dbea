package services

import "github.com/dmitrijs2005/campaignkeeper/internal/client/client"

// ListParams are the query parameters shared by every campaign-scoped list.
// Zero Skip, Limit and Search are omitted. Filters carries the
// resource-specific ones (status, visibility, location_id, idea_type,
// priority, session_number, ...); nil and empty values are dropped.
type ListParams struct {
	Skip    int
	Limit   int
	Search  string
	Filters client.Params
}

func (p ListParams) Params() client.Params {
	q := make(client.Params, len(p.Filters)+3)
	for k, v := range p.Filters {
		q[k] = v
	}
	if p.Skip > 0 {
		q["skip"] = p.Skip
	}
	if p.Limit > 0 {
		q["limit"] = p.Limit
	}
	if p.Search != "" {
		q["search"] = p.Search
	}
	return q
}
