package client

import (
	"context"
	"fmt"
	"sync"

	"viva/pkg/logger"
)

// Session ties sign-in state to the per-user stores.
type Session struct {
	auth   Authenticator
	tokens TokenProvider

	Favorites *FavoritesStore
	Comments  *CommentsStore
	Recent    *RecentlyViewed

	mu  sync.RWMutex
	uid string
}

func NewSession(auth Authenticator, tokens TokenProvider, favorites *FavoritesStore, comments *CommentsStore, recent *RecentlyViewed) *Session {
	return &Session{
		auth:      auth,
		tokens:    tokens,
		Favorites: favorites,
		Comments:  comments,
		Recent:    recent,
	}
}

// SignIn authenticates, caches a fresh token and loads the user's favorites
// and history. Load failures leave the session signed in.
func (s *Session) SignIn(ctx context.Context, email, password string) (string, error) {
	uid, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return "", err
	}
	if _, err := s.tokens.Token(ctx, true); err != nil {
		s.auth.SignOut()
		return "", fmt.Errorf("fetch token: %w", err)
	}

	s.mu.Lock()
	s.uid = uid
	s.mu.Unlock()

	if err := s.Favorites.Load(ctx); err != nil {
		logger.Warn("Failed to load favorites for %s: %v", uid, err)
	}
	if err := s.Recent.Load(uid); err != nil {
		logger.Warn("Failed to load recently viewed for %s: %v", uid, err)
	}

	return uid, nil
}

func (s *Session) SignOut() {
	s.auth.SignOut()

	s.mu.Lock()
	s.uid = ""
	s.mu.Unlock()

	s.Favorites.Clear()
	s.Comments.Clear()
	s.Recent.Reset()
}

func (s *Session) UID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uid
}

func (s *Session) SignedIn() bool {
	return s.UID() != ""
}
