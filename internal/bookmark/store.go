package bookmark

import "context"

// Store is the persistence contract for bookmarks. Every operation is
// scoped by user id; ownership is part of the lookup predicate, so a row
// owned by someone else is indistinguishable from a missing one.
type Store interface {
	Insert(ctx context.Context, b *Bookmark) error
	List(ctx context.Context, userID uint64, tag string) ([]Bookmark, error)
	Get(ctx context.Context, userID, id uint64) (*Bookmark, error)
	ExistsURL(ctx context.Context, userID uint64, url string) (bool, error)

	// MaxOrder returns the highest order value among the user's bookmarks,
	// or -1 when there are none.
	MaxOrder(ctx context.Context, userID uint64) (int, error)

	// Update touches only the provided fields; nil means keep.
	Update(ctx context.Context, userID, id uint64, tags *[]string, order *int) (*Bookmark, error)
	Delete(ctx context.Context, userID, id uint64) error

	// SetOrder rewrites a single bookmark's order and reports whether a row
	// matched.
	SetOrder(ctx context.Context, userID, id uint64, order int) (bool, error)
}
