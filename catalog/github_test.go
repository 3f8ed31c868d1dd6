package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"konigfood_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrapBase64 re-wraps a base64 string at 60 columns, the way the GitHub
// contents API serves file blobs.
func wrapBase64(s string) string {
	var out []byte
	for len(s) > 60 {
		out = append(out, s[:60]...)
		out = append(out, '\n')
		s = s[60:]
	}
	return string(append(out, s...))
}

func newGitHubFixture(t *testing.T, handler http.Handler) (*GitHubStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewGitHubStore(gecho.NewDefaultLogger(), &structs.CatalogConfig{
		Repo:           "konigfood/content",
		FilePath:       "configs/products.json",
		Token:          "test-pat",
		Branch:         "main",
		APIBaseURL:     server.URL,
		CommitterName:  "KonigFood Bot",
		CommitterEmail: "bot@konigfood.example",
	})
	return store, server
}

func TestGitHubLoadDecodesWrappedContent(t *testing.T) {
	catalogJSON, err := json.Marshal([]structs.Product{
		{ID: "p1", Title: "Борщ", Slug: "borsch"},
		{ID: "p2", Title: "Пельмени", Slug: "pelmeni"},
	})
	require.NoError(t, err)

	var gotPath, gotAuth, gotAccept string
	store, _ := newGitHubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "main", r.URL.Query().Get("ref"))

		json.NewEncoder(w).Encode(map[string]string{
			"content": wrapBase64(base64.StdEncoding.EncodeToString(catalogJSON)),
			"sha":     "abc123",
		})
	}))

	products, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Борщ", products[0].Title)

	assert.Equal(t, "/repos/konigfood/content/contents/configs/products.json", gotPath)
	assert.Equal(t, "Bearer test-pat", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
}

func TestGitHubReplaceCommitsOnFetchedSHA(t *testing.T) {
	var putBody map[string]any
	store, _ := newGitHubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString([]byte("[]")),
				"sha":     "oldsha",
			})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("{}"))
		}
	}))

	err := store.Replace(context.Background(), []structs.Product{{ID: "p1", Title: "Борщ"}})
	require.NoError(t, err)

	assert.Equal(t, "Update products catalog", putBody["message"])
	assert.Equal(t, "oldsha", putBody["sha"])
	assert.Equal(t, "main", putBody["branch"])

	committer, ok := putBody["committer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "KonigFood Bot", committer["name"])

	raw, err := base64.StdEncoding.DecodeString(putBody["content"].(string))
	require.NoError(t, err)
	var committed []structs.Product
	require.NoError(t, json.Unmarshal(raw, &committed))
	require.Len(t, committed, 1)
	assert.Equal(t, "p1", committed[0].ID)
}

func TestGitHubLoadSurfacesRemoteError(t *testing.T) {
	store, _ := newGitHubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))

	_, err := store.Load(context.Background())
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Equal(t, "Not Found", remoteErr.Message)
}

func TestGitHubReplacePayloadTooLarge(t *testing.T) {
	store, _ := newGitHubFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString([]byte("[]")),
				"sha":     "oldsha",
			})
		case http.MethodPut:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			w.Write([]byte(`{"error":"payload exceeds limit"}`))
		}
	}))

	err := store.Replace(context.Background(), []structs.Product{{ID: "p1", Title: "Борщ"}})
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.True(t, remoteErr.IsPayloadTooLarge())
	assert.Equal(t, "payload exceeds limit", remoteErr.Message)
}

func TestReadErrorMessage(t *testing.T) {
	build := func(contentType, body string) *http.Response {
		rec := httptest.NewRecorder()
		if contentType != "" {
			rec.Header().Set("Content-Type", contentType)
		}
		rec.WriteString(body)
		return rec.Result()
	}

	assert.Equal(t, "boom", readErrorMessage(build("application/json", `{"message":"boom"}`), "fallback"))
	assert.Equal(t, "bad input", readErrorMessage(build("application/json", `{"error":"bad input"}`), "fallback"))
	assert.Equal(t, "fallback", readErrorMessage(build("application/json", `{"detail":"other"}`), "fallback"))
	assert.Equal(t, "plain failure", readErrorMessage(build("text/plain", "  plain failure\n"), "fallback"))
	assert.Equal(t, "fallback", readErrorMessage(build("text/plain", "   "), "fallback"))
}
