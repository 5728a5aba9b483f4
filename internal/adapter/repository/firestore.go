package repository

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	anunciosCollection    = "anuncio"
	comentariosCollection = "comentarios"
	usersCollection       = "users"
	favoritesCollection   = "favorites"
)

func IsNotFound(err error) bool {
	return err != nil && status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return err != nil && status.Code(err) == codes.AlreadyExists
}
