package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/skrivbok/noted/internal/notes/http"
	"github.com/skrivbok/noted/internal/notes/service"
	"github.com/skrivbok/noted/internal/notes/store/drivers/sqlite"
	"github.com/skrivbok/noted/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// setupAPI wires the full router against a throwaway database and
// serves it in-process.
func setupAPI(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "noted-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256Signer([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewHS256Verifier([]byte(testSecret), "noted-test")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	router := httpapi.NewRouter(verifier, "test", st, logger)
	router.UserService = &service.UserService{Store: st}
	router.TokenService = &service.TokenService{
		Signer: signer,
		Issuer: "noted-test",
		TTL:    time.Hour,
	}
	router.NoteService = &service.NoteService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func signupAndLogin(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/user/signup", "",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/user/login", "",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok httpapi.TokenResponse
	require.NoError(t, json.Unmarshal(raw, &tok))
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func TestSignupAndLoginFlow(t *testing.T) {
	srv := setupAPI(t)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/user/signup", "",
		map[string]string{"username": "alice", "password": "password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("duplicate username is rejected", func(t *testing.T) {
		resp, raw := doRequest(t, http.MethodPost, srv.URL+"/user/signup", "",
			map[string]string{"username": "alice", "password": "password2"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var e httpapi.ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &e))
		require.NotEmpty(t, e.Error)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/user/signup", "",
			map[string]string{"username": "bob", "password": "1234"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login returns a token", func(t *testing.T) {
		resp, raw := doRequest(t, http.MethodPost, srv.URL+"/user/login", "",
			map[string]string{"username": "alice", "password": "password1"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tok httpapi.TokenResponse
		require.NoError(t, json.Unmarshal(raw, &tok))
		require.NotEmpty(t, tok.Token)
	})

	t.Run("wrong password is a 400", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/user/login", "",
			map[string]string{"username": "alice", "password": "wrong"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown username is the same 400", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/user/login", "",
			map[string]string{"username": "mallory", "password": "password1"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNotesRequireAuthentication(t *testing.T) {
	srv := setupAPI(t)

	t.Run("missing token", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/notes", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/notes", "not-a-token", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		signer, err := jwtx.NewHS256Signer([]byte(testSecret))
		require.NoError(t, err)

		claims := jwtx.NewIdentityClaims("user-1", "alice", "noted-test",
			time.Hour, time.Now().UTC().Add(-2*time.Hour))
		expired, err := signer.Sign(claims)
		require.NoError(t, err)

		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/notes", expired, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestNoteCRUDFlow(t *testing.T) {
	srv := setupAPI(t)
	token := signupAndLogin(t, srv, "alice", "password1")

	// Create
	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/notes", token,
		map[string]string{"title": "Groceries", "text": "milk, eggs"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created httpapi.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Groceries", created.Title)
	require.NotEmpty(t, created.OwnerID)

	// List
	resp, raw = doRequest(t, http.MethodGet, srv.URL+"/notes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed []httpapi.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &listed))
	require.Len(t, listed, 1)

	// Update, with the clock guaranteed to have moved since create
	time.Sleep(10 * time.Millisecond)
	resp, raw = doRequest(t, http.MethodPut, srv.URL+"/notes/"+created.ID, token,
		map[string]string{"title": "Groceries v2", "text": "milk, eggs, bread"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated httpapi.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	require.Equal(t, "Groceries v2", updated.Title)
	require.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)
	require.True(t, updated.ModifiedAt.After(updated.CreatedAt))

	// Delete
	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/notes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("second delete is a 404", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodDelete, srv.URL+"/notes/"+created.ID, token, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("oversized note is a 400", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/notes", token,
			map[string]string{"title": "ok", "text": string(bytes.Repeat([]byte("x"), 301))})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNoteSearchAndIsolation(t *testing.T) {
	srv := setupAPI(t)
	aliceToken := signupAndLogin(t, srv, "alice", "password1")
	bobToken := signupAndLogin(t, srv, "bob", "password1")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/notes", aliceToken,
		map[string]string{"title": "Groceries", "text": "milk, eggs"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var note httpapi.NoteResponse
	require.NoError(t, json.Unmarshal(raw, &note))

	t.Run("mixed-case substring finds alice's note", func(t *testing.T) {
		resp, raw := doRequest(t, http.MethodGet, srv.URL+"/notes/search?title=gRoC", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var found []httpapi.NoteResponse
		require.NoError(t, json.Unmarshal(raw, &found))
		require.Len(t, found, 1)
		require.Equal(t, note.ID, found[0].ID)
	})

	t.Run("bob's search comes back empty", func(t *testing.T) {
		resp, raw := doRequest(t, http.MethodGet, srv.URL+"/notes/search?title=groc", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var found []httpapi.NoteResponse
		require.NoError(t, json.Unmarshal(raw, &found))
		require.Empty(t, found)
	})

	t.Run("missing query is a 400", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/notes/search", aliceToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bob cannot update alice's note", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodPut, srv.URL+"/notes/"+note.ID, bobToken,
			map[string]string{"title": "hijack", "text": "mine now"})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bob cannot delete alice's note", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodDelete, srv.URL+"/notes/"+note.ID, bobToken, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := setupAPI(t)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doRequest(t, http.MethodGet, srv.URL+"/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health httpapi.HealthResponse
	require.NoError(t, json.Unmarshal(raw, &health))
	require.Equal(t, "ok", health.Status)
}
