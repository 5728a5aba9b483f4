package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"viva/internal/domain/entity"
)

var errServer = &APIError{Status: 500, Code: "INTERNAL_ERROR", Message: "boom"}

type fakeFavoritesAPI struct {
	mu        sync.Mutex
	server    []*entity.Anuncio
	addErr    error
	removeErr error
	orderErr  error
	listErr   error
	ordered   [][]string
	// hook runs while a mutation is in flight.
	hook func()
}

func (f *fakeFavoritesAPI) ListFavorites(ctx context.Context) ([]*entity.Anuncio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*entity.Anuncio(nil), f.server...), nil
}

func (f *fakeFavoritesAPI) AddFavorite(ctx context.Context, anuncioID string) error {
	f.inFlight()
	return f.addErr
}

func (f *fakeFavoritesAPI) RemoveFavorite(ctx context.Context, anuncioID string) error {
	f.inFlight()
	return f.removeErr
}

func (f *fakeFavoritesAPI) ReorderFavorites(ctx context.Context, anuncioIDs []string) error {
	f.inFlight()
	f.mu.Lock()
	f.ordered = append(f.ordered, anuncioIDs)
	f.mu.Unlock()
	return f.orderErr
}

func (f *fakeFavoritesAPI) inFlight() {
	if f.hook != nil {
		f.hook()
	}
}

type fakeCommentsAPI struct {
	items     map[string][]*entity.Comentario
	createErr error
	updateErr error
	deleteErr error
	nextID    int
	hook      func()
}

func (f *fakeCommentsAPI) ListComentarios(ctx context.Context, anuncioID string) ([]*entity.Comentario, error) {
	return append([]*entity.Comentario(nil), f.items[anuncioID]...), nil
}

func (f *fakeCommentsAPI) CreateComentario(ctx context.Context, anuncioID string, input CommentInput) (*entity.Comentario, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	return &entity.Comentario{
		ID:        fmt.Sprintf("c%d", f.nextID),
		AnuncioID: anuncioID,
		Titulo:    input.Titulo,
		Texto:     input.Texto,
		Rating:    input.Rating,
	}, nil
}

func (f *fakeCommentsAPI) UpdateComentario(ctx context.Context, anuncioID, id string, input CommentInput) (*entity.Comentario, error) {
	if f.hook != nil {
		f.hook()
	}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &entity.Comentario{ID: id, AnuncioID: anuncioID, Titulo: input.Titulo, Texto: input.Texto, Rating: input.Rating, UserID: "server"}, nil
}

func (f *fakeCommentsAPI) DeleteComentario(ctx context.Context, anuncioID, id string) error {
	if f.hook != nil {
		f.hook()
	}
	return f.deleteErr
}

type fakeListingAPI struct {
	uploadErr error
	createErr error
	uploads   int
	created   []*entity.Anuncio
}

func (f *fakeListingAPI) UploadImage(ctx context.Context, filename, contentType string, image io.Reader) (string, error) {
	f.uploads++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if _, err := io.ReadAll(image); err != nil {
		return "", err
	}
	return "https://cdn.example.com/anuncios/" + filename, nil
}

func (f *fakeListingAPI) CreateAnuncio(ctx context.Context, anuncio *entity.Anuncio) (*entity.Anuncio, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *anuncio
	out.ID = "new"
	f.created = append(f.created, &out)
	return &out, nil
}

type fakeAuth struct {
	uid      string
	err      error
	signOuts int
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.uid, nil
}

func (f *fakeAuth) SignOut() { f.signOuts++ }

type memKV struct {
	data   map[string][]byte
	setErr error
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

var errKV = errors.New("disk full")

func listing(id string) *entity.Anuncio {
	return &entity.Anuncio{ID: id, Titulo: "Anuncio " + id}
}

func ids(items []*entity.Anuncio) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.ID
	}
	return out
}
