// Package campaignstate keeps the campaign the user is working in, the
// list of their campaigns and whether that list is being fetched. Each of
// the three is observable on its own.
package campaignstate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/campaignkeeper/internal/client/models"
	"github.com/dmitrijs2005/campaignkeeper/internal/logging"
	"github.com/dmitrijs2005/campaignkeeper/internal/observable"
)

// ErrUnknownCampaign is returned by Select for an id missing from the list.
var ErrUnknownCampaign = errors.New("campaign not in list")

// Lister fetches the user's campaigns. services.CampaignService satisfies it.
type Lister interface {
	List(ctx context.Context) ([]models.Campaign, error)
}

type Store struct {
	current   *observable.Value[*models.Campaign]
	campaigns *observable.Value[[]models.Campaign]
	loading   *observable.Value[bool]
	logger    logging.Logger
}

func New(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		current:   observable.New[*models.Campaign](nil),
		campaigns: observable.New([]models.Campaign{}),
		loading:   observable.New(false),
		logger:    logger,
	}
}

// Current returns a copy of the selected campaign, or nil.
func (s *Store) Current() *models.Campaign {
	c := s.current.Get()
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *Store) Campaigns() []models.Campaign {
	return slices.Clone(s.campaigns.Get())
}

func (s *Store) Loading() bool {
	return s.loading.Get()
}

func (s *Store) SubscribeCurrent(fn func(*models.Campaign)) (unsubscribe func()) {
	return s.current.Subscribe(fn)
}

func (s *Store) SubscribeCampaigns(fn func([]models.Campaign)) (unsubscribe func()) {
	return s.campaigns.Subscribe(fn)
}

func (s *Store) SubscribeLoading(fn func(bool)) (unsubscribe func()) {
	return s.loading.Subscribe(fn)
}

// Refresh reloads the list through l, with Loading set for the duration of
// the call. The selection follows the fresh copy of the same campaign, or is
// cleared when that campaign is gone. On error the previous list is kept.
func (s *Store) Refresh(ctx context.Context, l Lister) error {
	s.loading.Set(true)
	defer s.loading.Set(false)

	list, err := l.List(ctx)
	if err != nil {
		s.logger.Warn(ctx, "refresh campaigns", "error", err)
		return fmt.Errorf("refresh campaigns: %w", err)
	}
	if list == nil {
		list = []models.Campaign{}
	}
	s.campaigns.Set(list)

	if cur := s.current.Get(); cur != nil {
		i := slices.IndexFunc(list, func(c models.Campaign) bool { return c.ID == cur.ID })
		if i < 0 {
			s.current.Set(nil)
		} else {
			fresh := list[i]
			s.current.Set(&fresh)
		}
	}
	return nil
}

// Select makes the listed campaign with the given id current.
func (s *Store) Select(id int64) (models.Campaign, error) {
	list := s.campaigns.Get()
	i := slices.IndexFunc(list, func(c models.Campaign) bool { return c.ID == id })
	if i < 0 {
		return models.Campaign{}, fmt.Errorf("%w: %d", ErrUnknownCampaign, id)
	}
	c := list[i]
	s.current.Set(&c)
	return c, nil
}

// SetCurrent replaces the selection without consulting the list. A nil c
// clears it.
func (s *Store) SetCurrent(c *models.Campaign) {
	if c == nil {
		s.current.Set(nil)
		return
	}
	cp := *c
	s.current.Set(&cp)
}

// Clear drops the selection and the list, e.g. on logout.
func (s *Store) Clear() {
	s.current.Set(nil)
	s.campaigns.Set([]models.Campaign{})
}
