package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAndStatusOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading comment: %w", Forbidden("Sem permissão", nil))

	assert.True(t, Is(err, "FORBIDDEN"))
	assert.False(t, Is(err, "NOT_FOUND"))
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(fmt.Errorf("boom")))
}

func TestErrorIncludesCause(t *testing.T) {
	err := Internal("Failed to get anuncio", fmt.Errorf("deadline exceeded"))

	assert.Equal(t, "INTERNAL_ERROR: Failed to get anuncio: deadline exceeded", err.Error())
	assert.Equal(t, "NOT_FOUND: Anuncio not found", NotFound("Anuncio", nil).Error())
}
