package client

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"viva/internal/domain/entity"
)

const (
	MaxRecentlyViewed = 10

	recentKeyPrefix = "@recentlyViewed_"
)

func recentKey(uid string) string {
	return recentKeyPrefix + uid
}

// RecentlyViewed is the per-user history of opened listings, most recent
// first, persisted in a KeyValueStore.
type RecentlyViewed struct {
	store KeyValueStore

	mu    sync.RWMutex
	uid   string
	items []*entity.Anuncio
}

func NewRecentlyViewed(store KeyValueStore) *RecentlyViewed {
	return &RecentlyViewed{store: store}
}

// Load switches to uid's history. A missing key is an empty history.
func (r *RecentlyViewed) Load(uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.uid = uid
	r.items = nil

	raw, err := r.store.Get(recentKey(uid))
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load recently viewed: %w", err)
	}

	var items []*entity.Anuncio
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode recently viewed: %w", err)
	}
	if len(items) > MaxRecentlyViewed {
		items = items[:MaxRecentlyViewed]
	}
	r.items = items
	return nil
}

// Add puts anuncio at the front, dropping an earlier entry for the same
// listing and anything past the cap.
func (r *RecentlyViewed) Add(anuncio *entity.Anuncio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.uid == "" {
		return ErrNotSignedIn
	}

	items := make([]*entity.Anuncio, 0, MaxRecentlyViewed)
	items = append(items, anuncio)
	for _, a := range r.items {
		if len(items) == MaxRecentlyViewed {
			break
		}
		if a.ID != anuncio.ID {
			items = append(items, a)
		}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := r.store.Set(recentKey(r.uid), raw); err != nil {
		return fmt.Errorf("save recently viewed: %w", err)
	}
	r.items = items
	return nil
}

func (r *RecentlyViewed) Items() []*entity.Anuncio {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*entity.Anuncio(nil), r.items...)
}

// Forget deletes the persisted history of the current user.
func (r *RecentlyViewed) Forget() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.uid == "" {
		return nil
	}
	if err := r.store.Delete(recentKey(r.uid)); err != nil {
		return err
	}
	r.items = nil
	return nil
}

// Reset drops the in-memory state; persisted history is kept for the next sign-in.
func (r *RecentlyViewed) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uid = ""
	r.items = nil
}
