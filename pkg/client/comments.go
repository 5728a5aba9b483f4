package client

import (
	"context"
	"sync"
	"time"

	"viva/internal/domain/entity"
)

type CommentsAPI interface {
	ListComentarios(ctx context.Context, anuncioID string) ([]*entity.Comentario, error)
	CreateComentario(ctx context.Context, anuncioID string, input CommentInput) (*entity.Comentario, error)
	UpdateComentario(ctx context.Context, anuncioID, id string, input CommentInput) (*entity.Comentario, error)
	DeleteComentario(ctx context.Context, anuncioID, id string) error
}

// CommentsStore holds the comments of the listing being viewed.
type CommentsStore struct {
	api CommentsAPI
	now func() time.Time

	mu        sync.RWMutex
	anuncioID string
	items     []*entity.Comentario
}

func NewCommentsStore(api CommentsAPI) *CommentsStore {
	return &CommentsStore{api: api, now: time.Now}
}

func (s *CommentsStore) Load(ctx context.Context, anuncioID string) error {
	items, err := s.api.ListComentarios(ctx, anuncioID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.anuncioID = anuncioID
	if err != nil {
		s.items = nil
		return err
	}
	s.items = items
	return nil
}

func (s *CommentsStore) AnuncioID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.anuncioID
}

func (s *CommentsStore) Comments() []*entity.Comentario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*entity.Comentario(nil), s.items...)
}

// Add is not optimistic: the comment appears once the server returns it.
func (s *CommentsStore) Add(ctx context.Context, input CommentInput) (*entity.Comentario, error) {
	anuncioID := s.AnuncioID()
	created, err := s.api.CreateComentario(ctx, anuncioID, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.anuncioID == anuncioID {
		s.items = append(s.items, created)
	}
	return created, nil
}

// Update shows the edit immediately and swaps in the server's record, or the
// original one on failure.
func (s *CommentsStore) Update(ctx context.Context, id string, input CommentInput) *Mutation {
	m := &Mutation{Kind: MutationUpdate, TargetID: id, State: Pending}

	s.mu.Lock()
	anuncioID := s.anuncioID
	i := commentIndex(s.items, id)
	var original *entity.Comentario
	if i >= 0 {
		original = s.items[i]
		edited := *original
		edited.Titulo = input.Titulo
		edited.Texto = input.Texto
		edited.Rating = input.Rating
		edited.UpdatedAt = s.now()
		s.items = replaceComment(s.items, i, &edited)
	}
	s.mu.Unlock()

	updated, err := s.api.UpdateComentario(ctx, anuncioID, id, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if j := commentIndex(s.items, id); j >= 0 {
		switch {
		case err != nil && original != nil:
			s.items = replaceComment(s.items, j, original)
		case err == nil:
			s.items = replaceComment(s.items, j, updated)
		}
	}
	return m.settle(err, Reverted)
}

func (s *CommentsStore) Delete(ctx context.Context, id string) *Mutation {
	m := &Mutation{Kind: MutationRemove, TargetID: id, State: Pending}

	s.mu.Lock()
	anuncioID := s.anuncioID
	snapshot := s.items
	out := make([]*entity.Comentario, 0, len(s.items))
	for _, c := range s.items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.items = out
	s.mu.Unlock()

	err := s.api.DeleteComentario(ctx, anuncioID, id)
	if err != nil {
		s.mu.Lock()
		if s.anuncioID == anuncioID {
			s.items = snapshot
		}
		s.mu.Unlock()
	}
	return m.settle(err, Reverted)
}

func (s *CommentsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.anuncioID = ""
	s.items = nil
}

func commentIndex(items []*entity.Comentario, id string) int {
	for i, c := range items {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// replaceComment returns a copy of items with position i set to c, so slices
// handed out by Comments are never mutated.
func replaceComment(items []*entity.Comentario, i int, c *entity.Comentario) []*entity.Comentario {
	out := append([]*entity.Comentario(nil), items...)
	out[i] = c
	return out
}
