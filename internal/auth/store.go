package auth

import "context"

// AccountStore persists user accounts. The GORM implementation backs
// production; the memory implementation backs tests.
type AccountStore interface {
	Insert(ctx context.Context, u *User) error
	ByEmail(ctx context.Context, email string) (*User, error)
}
