package eleve

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/storage/sqlite"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	db, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	router := http.NewServeMux()
	router.HandleFunc("GET /api/all", GetAll(db))
	router.HandleFunc("POST /api/save", Save(db))
	router.HandleFunc("DELETE /api/delete/{id}", Delete(db))
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func all(t *testing.T, router http.Handler) []types.Eleve {
	t.Helper()
	rec := serve(router, http.MethodGet, "/api/all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []types.Eleve
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestGetAllEmpty(t *testing.T) {
	rec := serve(newRouter(t), http.MethodGet, "/api/all", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSave(t *testing.T) {
	router := newRouter(t)

	t.Run("Should insert when no id is given", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/api/save",
			`{"nom":"Doe","prenom":"John","dateNaissance":"2000-01-01T00:00:00.000+00:00"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got types.Eleve
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, types.Eleve{ID: 1, Nom: "Doe", Prenom: "John", DateNaissance: "2000-01-01"}, got)
	})

	t.Run("Should replace when the id exists", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/api/save",
			`{"id":1,"nom":"Doe","prenom":"Jane","dateNaissance":"2000-01-01"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		list := all(t, router)
		require.Len(t, list, 1)
		assert.Equal(t, "Jane", list[0].Prenom)
	})

	t.Run("Should answer 404 for an unknown id", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/api/save",
			`{"id":9,"nom":"Doe","prenom":"Jane","dateNaissance":"2000-01-01"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Should reject a blank field", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/api/save", `{"nom":"Doe","prenom":"","dateNaissance":"2000-01-01"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Prenom is required")
		assert.Len(t, all(t, router), 1)
	})
}

func TestDelete(t *testing.T) {
	router := newRouter(t)
	serve(router, http.MethodPost, "/api/save", `{"nom":"Doe","prenom":"John","dateNaissance":"2000-01-01"}`)

	rec := serve(router, http.MethodDelete, "/api/delete/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, all(t, router))

	rec = serve(router, http.MethodDelete, "/api/delete/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodDelete, "/api/delete/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
