package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"viva/internal/domain/entity"
	"viva/pkg/errors"
)

// In-memory stand-ins for the Firestore repositories.

type memoryStore struct {
	mu          sync.Mutex
	anuncios    map[string]entity.Anuncio
	comentarios map[string]map[string]entity.Comentario
	favorites   map[string]map[string]entity.Favorite
	users       map[string]entity.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		anuncios:    map[string]entity.Anuncio{},
		comentarios: map[string]map[string]entity.Comentario{},
		favorites:   map[string]map[string]entity.Favorite{},
		users:       map[string]entity.User{},
	}
}

func (s *memoryStore) nextID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

type memAnuncioRepo struct{ s *memoryStore }

func (r memAnuncioRepo) Create(ctx context.Context, a *entity.Anuncio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.nextID("L")
	r.s.anuncios[a.ID] = *a
	return nil
}

func (r memAnuncioRepo) GetByID(ctx context.Context, id string) (*entity.Anuncio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.anuncios[id]
	if !ok {
		return nil, errors.NotFound("Anuncio", nil)
	}
	return &a, nil
}

func (r memAnuncioRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Anuncio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Anuncio
	for _, id := range ids {
		if a, ok := r.s.anuncios[id]; ok {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r memAnuncioRepo) List(ctx context.Context) ([]*entity.Anuncio, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Anuncio{}
	for _, a := range r.s.anuncios {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memAnuncioRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Anuncio, error) {
	all, _ := r.List(ctx)
	out := []*entity.Anuncio{}
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAnuncioRepo) Update(ctx context.Context, id string, patch entity.AnuncioPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.anuncios[id]
	if !ok {
		return errors.NotFound("Anuncio", nil)
	}
	r.s.anuncios[id] = patch.Apply(a)
	return nil
}

func (r memAnuncioRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.anuncios, id)
	return nil
}

type memComentarioRepo struct{ s *memoryStore }

func (r memComentarioRepo) ListByAnuncio(ctx context.Context, anuncioID string) ([]*entity.Comentario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Comentario{}
	for _, c := range r.s.comentarios[anuncioID] {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memComentarioRepo) Create(ctx context.Context, c *entity.Comentario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID("c")
	if r.s.comentarios[c.AnuncioID] == nil {
		r.s.comentarios[c.AnuncioID] = map[string]entity.Comentario{}
	}
	r.s.comentarios[c.AnuncioID][c.ID] = *c
	return nil
}

func (r memComentarioRepo) GetByID(ctx context.Context, anuncioID, id string) (*entity.Comentario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comentarios[anuncioID][id]
	if !ok {
		return nil, errors.NotFound("Comment", nil)
	}
	return &c, nil
}

func (r memComentarioRepo) Update(ctx context.Context, anuncioID string, c *entity.Comentario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comentarios[anuncioID][c.ID]; !ok {
		return errors.NotFound("Comment", nil)
	}
	r.s.comentarios[anuncioID][c.ID] = *c
	return nil
}

func (r memComentarioRepo) Delete(ctx context.Context, anuncioID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.comentarios[anuncioID], id)
	return nil
}

type memFavoriteRepo struct{ s *memoryStore }

func (r memFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Favorite{}
	for _, f := range r.s.favorites[userID] {
		out = append(out, f)
	}
	return out, nil
}

func (r memFavoriteRepo) Add(ctx context.Context, userID, anuncioID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.favorites[userID] == nil {
		r.s.favorites[userID] = map[string]entity.Favorite{}
	}
	if _, ok := r.s.favorites[userID][anuncioID]; ok {
		return nil
	}
	r.s.favorites[userID][anuncioID] = entity.Favorite{AnuncioID: anuncioID, AddedAt: time.Now()}
	return nil
}

func (r memFavoriteRepo) Remove(ctx context.Context, userID, anuncioID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.favorites[userID], anuncioID)
	return nil
}

func (r memFavoriteRepo) SetOrder(ctx context.Context, userID string, anuncioIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range anuncioIDs {
		if _, ok := r.s.favorites[userID][id]; !ok {
			return errors.Internal("Error updating favorites order", nil)
		}
	}
	for i, id := range anuncioIDs {
		f := r.s.favorites[userID][id]
		idx := i
		f.OrderIndex = &idx
		r.s.favorites[userID][id] = f
	}
	return nil
}

type memUserRepo struct{ s *memoryStore }

func (r memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return &u, nil
}

func (r memUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			u := u
			out = append(out, &u)
		}
	}
	return out, nil
}

type tokenTable map[string]string

func (t tokenTable) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := t[token]
	if !ok {
		return "", errors.Unauthorized("bad token", nil)
	}
	return uid, nil
}

func (t tokenTable) GetUserEmail(ctx context.Context, uid string) (string, error) {
	return uid + "@example.com", nil
}
