package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("account not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrInvalidInput = errors.New("invalid email or password")
)

const minPasswordLen = 6

// Accounts implements registration and credential verification. The
// plaintext password never leaves this package un-hashed.
type Accounts struct {
	Store AccountStore
}

// Register creates an account with a case-normalized email and a bcrypt
// password hash. Fails with ErrEmailTaken when the email is registered.
func (a *Accounts) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || len(password) < minPasswordLen {
		return ErrInvalidInput
	}

	if _, err := a.Store.ByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	return a.Store.Insert(ctx, &User{Email: email, PasswordHash: hash})
}

// Verify compares a plaintext password against the stored hash and returns
// the matching account.
func (a *Accounts) Verify(ctx context.Context, email, password string) (*User, bool) {
	u, err := a.Store.ByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, false
	}
	if !ComparePassword(u.PasswordHash, password) {
		return nil, false
	}
	return u, true
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
