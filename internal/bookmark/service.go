package bookmark

import (
	"context"
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("bookmark not found")
	ErrDuplicate = errors.New("bookmark already exists")
)

// Enricher produces the metadata attached to a bookmark at creation time.
// Implementations absorb their own failures and return fallback values
// instead of errors.
type Enricher interface {
	TitleAndFavicon(ctx context.Context, url string) (title, favicon string)
	Summary(ctx context.Context, url string) string
}

type Service struct {
	Store  Store
	Enrich Enricher
}

// Create saves a new bookmark for userID. The URL must not already be
// saved by this user; the new bookmark goes to the end of the display
// order. Both enrichment fetches complete before anything is written, so
// a failed fetch degrades the record instead of half-writing it.
func (s *Service) Create(ctx context.Context, userID uint64, rawURL string, tags []string) (*Bookmark, error) {
	rawURL = strings.TrimSpace(rawURL)

	exists, err := s.Store.ExistsURL(ctx, userID, rawURL)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	max, err := s.Store.MaxOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	title, favicon := s.Enrich.TitleAndFavicon(ctx, rawURL)
	summary := s.Enrich.Summary(ctx, rawURL)

	b := &Bookmark{
		UserID:  userID,
		URL:     rawURL,
		Title:   title,
		Favicon: favicon,
		Summary: summary,
		Tags:    pq.StringArray(tags),
		Order:   max + 1,
	}
	if err := s.Store.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the user's bookmarks ascending by order. A non-empty
// tagFilter restricts the result to bookmarks whose tags contain that
// exact string.
func (s *Service) List(ctx context.Context, userID uint64, tagFilter string) ([]Bookmark, error) {
	return s.Store.List(ctx, userID, tagFilter)
}

func (s *Service) Get(ctx context.Context, userID, id uint64) (*Bookmark, error) {
	return s.Store.Get(ctx, userID, id)
}

// Update modifies only tags and order; nil fields keep their value.
func (s *Service) Update(ctx context.Context, userID, id uint64, tags *[]string, order *int) (*Bookmark, error) {
	return s.Store.Update(ctx, userID, id, tags, order)
}

func (s *Service) Delete(ctx context.Context, userID, id uint64) error {
	return s.Store.Delete(ctx, userID, id)
}

// Reorder rewrites each listed bookmark's order to its position in ids.
// Each id is updated independently; ids that match no row for this user
// are skipped rather than failing the batch. Returns the count of rows
// actually updated so callers can detect partial application.
func (s *Service) Reorder(ctx context.Context, userID uint64, ids []uint64) (int, error) {
	updated := 0
	for i, id := range ids {
		ok, err := s.Store.SetOrder(ctx, userID, id, i)
		if err != nil {
			return updated, err
		}
		if ok {
			updated++
		}
	}
	return updated, nil
}
