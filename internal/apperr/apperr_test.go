package apperr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campuslink/campuslink-backend/internal/apperr"
)

func TestMapTranslatesGormErrors(t *testing.T) {
	mapped := apperr.Map(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(mapped))

	// unique-index violations surface as conflicts, not 500s
	mapped = apperr.Map(gorm.ErrDuplicatedKey)
	var ae *apperr.Error
	require.ErrorAs(t, mapped, &ae)
	assert.Equal(t, apperr.KindConflict, ae.Kind)
	assert.Equal(t, http.StatusConflict, apperr.HTTPStatus(mapped))

	mapped = apperr.Map(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, apperr.HTTPStatus(mapped))
}

func TestMapPassesDomainErrorsThrough(t *testing.T) {
	assert.Same(t, apperr.ErrPreferenceExists, apperr.Map(apperr.ErrPreferenceExists))
	assert.Nil(t, apperr.Map(nil))
}

func TestHTTPStatusPerKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.Validation("X", "x"), http.StatusBadRequest},
		{apperr.New(apperr.KindUnauthenticated, "X", "x"), http.StatusUnauthorized},
		{apperr.Forbidden("X", "x"), http.StatusForbidden},
		{apperr.NotFound("X", "x"), http.StatusNotFound},
		{apperr.Conflict("X", "x"), http.StatusConflict},
		{errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, apperr.HTTPStatus(tc.err))
	}
}
