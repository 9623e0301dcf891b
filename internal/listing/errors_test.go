package listing

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(InvalidInput))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(Unauthorized))
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Internal))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Kind(42)))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, NotFound, KindOf(fmt.Errorf("wrapped: %w", notFound(nil))))
	assert.Equal(t, Unauthorized, KindOf(unauthorized()))
}

func TestPublicMessageHidesInternals(t *testing.T) {
	err := internal(errors.New("pq: password authentication failed"))
	assert.Equal(t, "Internal Server Error", PublicMessage(err))
	assert.Contains(t, err.Error(), "password authentication failed")

	assert.Equal(t, "Internal Server Error", PublicMessage(errors.New("raw")))
	assert.Equal(t, "Room not found", PublicMessage(notFound(nil)))
}
