// Package auth provides the local identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/memty/internal/store"
)

// ErrSignedOut is returned by Current when no profile is stored.
var ErrSignedOut = errors.New("not signed in")

// User is a signed-in profile.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Provider signs users in and out.
type Provider interface {
	SignIn(ctx context.Context) (*User, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (*User, error)
}

// Profile is the identity the local provider signs in as.
type Profile struct {
	Name  string
	Email string
}

// LocalProvider keeps the signed-in profile under the global user key.
// Per-user data is untouched by sign-out.
type LocalProvider struct {
	ns      *store.Namespace
	profile Profile
	now     func() time.Time
}

// NewLocalProvider creates a provider for profile. ns must be the
// unscoped namespace.
func NewLocalProvider(ns *store.Namespace, profile Profile) *LocalProvider {
	if profile.Name == "" {
		profile.Name = "Learner"
	}
	if profile.Email == "" {
		profile.Email = "learner@localhost"
	}
	return &LocalProvider{ns: ns, profile: profile, now: time.Now}
}

// SignIn stores the configured profile. The user id is derived from the
// email, so signing out and back in reaches the same per-user data.
func (p *LocalProvider) SignIn(ctx context.Context) (*User, error) {
	var existing User
	ok, err := p.ns.Get(ctx, store.KeyUser, &existing)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if ok && strings.EqualFold(existing.Email, p.profile.Email) {
		if existing.Name != p.profile.Name {
			existing.Name = p.profile.Name
			if err := p.ns.Set(ctx, store.KeyUser, existing); err != nil {
				return nil, fmt.Errorf("save profile: %w", err)
			}
		}
		return &existing, nil
	}

	user := &User{
		ID:        UserID(p.profile.Email),
		Email:     p.profile.Email,
		Name:      p.profile.Name,
		CreatedAt: p.now(),
	}
	if err := p.ns.Set(ctx, store.KeyUser, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}

// UserID returns the stable id for an email address.
func UserID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(strings.TrimSpace(email)))).String()
}

// SignOut removes the stored profile only.
func (p *LocalProvider) SignOut(ctx context.Context) error {
	if err := p.ns.Remove(ctx, store.KeyUser); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}
	return nil
}

// Current returns the stored profile or ErrSignedOut.
func (p *LocalProvider) Current(ctx context.Context) (*User, error) {
	var u User
	ok, err := p.ns.Get(ctx, store.KeyUser, &u)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if !ok {
		return nil, ErrSignedOut
	}
	return &u, nil
}
