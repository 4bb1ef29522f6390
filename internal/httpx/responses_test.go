package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccess(w, http.StatusCreated, map[string]string{"id": "1"}, map[string]any{
		"count": 1,
		"stats": map[string]int{"total": 1},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"id": "1"}, body["data"])
	assert.Equal(t, 1.0, body["count"])
	assert.Contains(t, body, "stats")
}

func TestJSONSuccess_NoData(t *testing.T) {
	w := httptest.NewRecorder()
	JSONSuccess(w, http.StatusOK, nil, map[string]any{"message": "deleted"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "data")
	assert.Equal(t, "deleted", body["message"])
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	JSONError(w, http.StatusNotFound, "Book not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success": false, "message": "Book not found"}`, w.Body.String())
}
