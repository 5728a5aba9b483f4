package client

import (
	"context"
	"sync"

	"viva/internal/domain/entity"
)

type FavoritesAPI interface {
	ListFavorites(ctx context.Context) ([]*entity.Anuncio, error)
	AddFavorite(ctx context.Context, anuncioID string) error
	RemoveFavorite(ctx context.Context, anuncioID string) error
	ReorderFavorites(ctx context.Context, anuncioIDs []string) error
}

// FavoritesStore is the signed-in user's favorites list. Mutations are applied
// locally first and rolled back when the server refuses them.
type FavoritesStore struct {
	api FavoritesAPI

	mu       sync.RWMutex
	items    []*entity.Anuncio
	loadErr  error
	inFlight int
}

func NewFavoritesStore(api FavoritesAPI) *FavoritesStore {
	return &FavoritesStore{api: api}
}

// Load replaces the list with the server's. On failure the list is emptied.
func (s *FavoritesStore) Load(ctx context.Context) error {
	items, err := s.api.ListFavorites(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = nil
		s.loadErr = err
		return err
	}
	s.items = items
	s.loadErr = nil
	return nil
}

func (s *FavoritesStore) Favorites() []*entity.Anuncio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.Anuncio(nil), s.items...)
}

func (s *FavoritesStore) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Pending reports how many mutations are waiting on the server.
func (s *FavoritesStore) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}

func (s *FavoritesStore) IsFavorite(anuncioID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.items, anuncioID) >= 0
}

func (s *FavoritesStore) Add(ctx context.Context, anuncio *entity.Anuncio) *Mutation {
	m := &Mutation{Kind: MutationAdd, TargetID: anuncio.ID, State: Pending}

	snapshot := s.begin(func(items []*entity.Anuncio) []*entity.Anuncio {
		if indexOf(items, anuncio.ID) >= 0 {
			return items
		}
		return append(items, anuncio)
	})

	err := s.api.AddFavorite(ctx, anuncio.ID)
	s.finish(err, snapshot)
	return m.settle(err, Reverted)
}

func (s *FavoritesStore) Remove(ctx context.Context, anuncioID string) *Mutation {
	m := &Mutation{Kind: MutationRemove, TargetID: anuncioID, State: Pending}

	snapshot := s.begin(func(items []*entity.Anuncio) []*entity.Anuncio {
		out := items[:0]
		for _, a := range items {
			if a.ID != anuncioID {
				out = append(out, a)
			}
		}
		return out
	})

	err := s.api.RemoveFavorite(ctx, anuncioID)
	s.finish(err, snapshot)
	return m.settle(err, Reverted)
}

// Reorder applies ordered locally and persists it. When the server refuses,
// the list is reloaded; if that fails too the previous order comes back.
func (s *FavoritesStore) Reorder(ctx context.Context, ordered []*entity.Anuncio) *Mutation {
	m := &Mutation{Kind: MutationReorder, State: Pending}

	snapshot := s.begin(func([]*entity.Anuncio) []*entity.Anuncio {
		return append([]*entity.Anuncio(nil), ordered...)
	})

	ids := make([]string, len(ordered))
	for i, a := range ordered {
		ids[i] = a.ID
	}

	err := s.api.ReorderFavorites(ctx, ids)
	if err == nil {
		s.finish(nil, snapshot)
		return m.settle(nil, Committed)
	}

	items, loadErr := s.api.ListFavorites(ctx)

	s.mu.Lock()
	s.inFlight--
	if loadErr != nil {
		s.items = snapshot
		s.mu.Unlock()
		return m.settle(err, Reverted)
	}
	s.items = items
	s.mu.Unlock()
	return m.settle(err, Resynced)
}

// UpdateLocal replaces a favorite in place without contacting the server.
func (s *FavoritesStore) UpdateLocal(anuncio *entity.Anuncio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, anuncio.ID); i >= 0 {
		s.items[i] = anuncio
	}
}

func (s *FavoritesStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loadErr = nil
}

// begin applies change to a copy of the list and returns the prior list.
func (s *FavoritesStore) begin(change func([]*entity.Anuncio) []*entity.Anuncio) []*entity.Anuncio {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.items
	s.items = change(append([]*entity.Anuncio(nil), s.items...))
	s.inFlight++
	return snapshot
}

func (s *FavoritesStore) finish(err error, snapshot []*entity.Anuncio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if err != nil {
		s.items = snapshot
	}
}

func indexOf(items []*entity.Anuncio, id string) int {
	for i, a := range items {
		if a.ID == id {
			return i
		}
	}
	return -1
}
