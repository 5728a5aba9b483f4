package entity

import (
	"time"
)

// AuthorSnapshot is the author's name and photo copied from the profile when a
// comment is created. Later profile edits do not update it.
type AuthorSnapshot struct {
	UserName  *string `json:"userName" firestore:"userName"`
	UserPhoto *string `json:"userPhoto" firestore:"userPhoto"`
}

func SnapshotOf(user *User) AuthorSnapshot {
	if user == nil {
		return AuthorSnapshot{}
	}
	var snap AuthorSnapshot
	if user.Nome != "" {
		name := user.Nome
		snap.UserName = &name
	}
	if user.Foto != "" {
		photo := user.Foto
		snap.UserPhoto = &photo
	}
	return snap
}

type Comentario struct {
	ID        string `json:"id" firestore:"-"`
	AnuncioID string `json:"anuncioId" firestore:"anuncioId"`
	UserID    string `json:"userId" firestore:"userId"`
	AuthorSnapshot
	Titulo    string    `json:"titulo" firestore:"titulo"`
	Texto     string    `json:"texto" firestore:"texto"`
	Rating    int       `json:"rating" firestore:"rating"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

const (
	MinRating = 1
	MaxRating = 5
)
