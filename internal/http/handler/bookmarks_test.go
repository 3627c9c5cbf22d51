package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"linksaver/internal/auth"
	"linksaver/internal/bookmark"
	"linksaver/internal/config"
	httpx "linksaver/internal/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEnricher struct{}

func (stubEnricher) TitleAndFavicon(context.Context, string) (string, string) {
	return "Stub Title", "https://example.com/favicon.ico"
}

func (stubEnricher) Summary(context.Context, string) string {
	return "stub summary"
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := httpx.NewRouter(config.Config{}, httpx.Deps{
		Accounts:  &auth.Accounts{Store: auth.NewMemoryAccountStore()},
		JWT:       auth.NewJWT("test-secret"),
		Bookmarks: &bookmark.Service{Store: bookmark.NewMemoryStore(), Enrich: stubEnricher{}},
		Log:       zap.NewNop(),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func register(t *testing.T, base, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret123"}

	resp := do(t, http.MethodPost, base+"/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

type bookmarkDTO struct {
	ID      uint64   `json:"id"`
	URL     string   `json:"url"`
	Title   string   `json:"title"`
	Favicon string   `json:"favicon"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Order   int      `json:"order"`
	UserID  uint64   `json:"userId"`
}

func createBookmark(t *testing.T, base, token, url string, tags []string) bookmarkDTO {
	t.Helper()
	resp := do(t, http.MethodPost, base+"/bookmarks", token, map[string]any{"url": url, "tags": tags})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var b bookmarkDTO
	decode(t, resp, &b)
	return b
}

func TestBookmarksRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/bookmarks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	creds := map[string]string{"email": "a@x.com", "password": "secret123"}

	resp := do(t, http.MethodPost, srv.URL+"/register", "", creds)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// differently-cased email is the same account
	resp = do(t, http.MethodPost, srv.URL+"/register", "", map[string]string{"email": "A@x.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv.URL, "a@x.com")

	resp := do(t, http.MethodPost, srv.URL+"/login", "", map[string]string{"email": "a@x.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateBookmark(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv.URL, "a@x.com")

	resp := do(t, http.MethodPost, srv.URL+"/bookmarks", token, map[string]any{"tags": []string{"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	b := createBookmark(t, srv.URL, token, "https://example.com", []string{"work"})
	assert.Equal(t, "Stub Title", b.Title)
	assert.Equal(t, "https://example.com/favicon.ico", b.Favicon)
	assert.Equal(t, "stub summary", b.Summary)
	assert.Equal(t, []string{"work"}, b.Tags)
	assert.Equal(t, 0, b.Order)

	resp = do(t, http.MethodPost, srv.URL+"/bookmarks", token, map[string]any{"url": "https://example.com"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	b2 := createBookmark(t, srv.URL, token, "https://other.com", nil)
	assert.Equal(t, 1, b2.Order)
}

func TestListBookmarksWithTagFilter(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv.URL, "a@x.com")

	createBookmark(t, srv.URL, token, "https://a.com", []string{"work"})
	createBookmark(t, srv.URL, token, "https://b.com", []string{"home"})
	createBookmark(t, srv.URL, token, "https://c.com", []string{"work"})

	resp := do(t, http.MethodGet, srv.URL+"/bookmarks?tag=work", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []bookmarkDTO
	decode(t, resp, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://a.com", rows[0].URL)
	assert.Equal(t, "https://c.com", rows[1].URL)
}

func TestGetUpdateDeleteBookmark(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv.URL, "a@x.com")
	other := register(t, srv.URL, "b@x.com")

	b := createBookmark(t, srv.URL, token, "https://a.com", nil)
	id := jsonID(b.ID)

	resp := do(t, http.MethodGet, srv.URL+"/bookmarks/"+id, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// another account can't see it
	resp = do(t, http.MethodGet, srv.URL+"/bookmarks/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/bookmarks/"+id, token, map[string]any{"tags": []string{"x"}, "order": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated bookmarkDTO
	decode(t, resp, &updated)
	assert.Equal(t, []string{"x"}, updated.Tags)
	assert.Equal(t, 5, updated.Order)

	// deleting someone else's bookmark is a 404 and leaves it in place
	resp = do(t, http.MethodDelete, srv.URL+"/bookmarks/"+id, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/bookmarks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg map[string]string
	decode(t, resp, &msg)
	assert.Equal(t, "Bookmark deleted successfully", msg["message"])

	resp = do(t, http.MethodGet, srv.URL+"/bookmarks/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReorderBookmarks(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv.URL, "a@x.com")

	b1 := createBookmark(t, srv.URL, token, "https://a.com", nil)
	b2 := createBookmark(t, srv.URL, token, "https://b.com", nil)
	b3 := createBookmark(t, srv.URL, token, "https://c.com", nil)

	resp := do(t, http.MethodPost, srv.URL+"/bookmarks/reorder", token, map[string]any{
		"bookmarkIds": []uint64{b3.ID, b1.ID, b2.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Message string `json:"message"`
		Updated int    `json:"updated"`
	}
	decode(t, resp, &out)
	assert.Equal(t, 3, out.Updated)

	listResp := do(t, http.MethodGet, srv.URL+"/bookmarks", token, nil)
	var rows []bookmarkDTO
	decode(t, listResp, &rows)
	require.Len(t, rows, 3)
	assert.Equal(t, b3.ID, rows[0].ID)
	assert.Equal(t, b1.ID, rows[1].ID)
	assert.Equal(t, b2.ID, rows[2].ID)
}

func TestReorderRejectsNonArray(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv.URL, "a@x.com")

	resp := do(t, http.MethodPost, srv.URL+"/bookmarks/reorder", token, map[string]any{"bookmarkIds": "nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/bookmarks/reorder", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func jsonID(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
