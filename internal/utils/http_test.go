package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteJSON(rec, map[string]string{"result": "pending"}, http.StatusOK)

	require.NoError(t, err)
	assert.Greater(t, n, 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"result":"pending"}`, rec.Body.String())
}

func TestWriteJSON_CustomStatusCode(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSON(rec, map[string]bool{"error": true}, http.StatusNotFound)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteJSON_MarshalError(t *testing.T) {
	rec := httptest.NewRecorder()

	// NaN is not representable in JSON
	_, err := WriteJSON(rec, math.NaN(), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetClientIDFromContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetClientIDFromContext(r.Context())
	assert.False(t, ok)
}
