package bookstack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		TokenID:       "id",
		TokenSecret:   "secret",
		PageSize:      2,
		RetryAttempts: 3,
		RetryDelayMs:  1,
		MinIntervalMs: 0,
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(testConfig(baseURL), zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing base URL", Config{TokenID: "a", TokenSecret: "b"}},
		{"missing token ID", Config{BaseURL: "http://x", TokenSecret: "b"}},
		{"missing token secret", Config{BaseURL: "http://x", TokenID: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.cfg, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestClient_AuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":[],"total":0}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Token id:secret", gotAuth)
}

func TestClient_ListAll_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/books", r.URL.Path)
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"data":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"total":3}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"id":3,"name":"C"}],"total":3}`)
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "C", books[2].Name)
}

func TestClient_ListAll_StopsOnEmptyPage(t *testing.T) {
	// A stale total must not loop forever.
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"data":[{"id":1}],"total":10}`)
			return
		}
		fmt.Fprint(w, `{"data":[],"total":10}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_RetriesNonJSONResponse(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html>503 maintenance</html>")
			return
		}
		fmt.Fprint(w, `{"data":[],"total":0}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_TransportErrorAfterExhaustion(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListBooks(context.Background())
	require.Error(t, err)

	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ListShelves_PopulatesBookIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/shelves":
			fmt.Fprint(w, `{"data":[{"id":1,"name":"Ops","slug":"ops"}],"total":1}`)
		case "/api/shelves/1":
			fmt.Fprint(w, `{"id":1,"name":"Ops","slug":"ops","books":[{"id":5},{"id":9}]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	shelves, err := c.ListShelves(context.Background())
	require.NoError(t, err)
	require.Len(t, shelves, 1)
	assert.Equal(t, []int64{5, 9}, shelves[0].BookIDs)
}

func TestClient_CreateShelf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/shelves", r.URL.Path)
		fmt.Fprint(w, `{"id":7,"name":"Getting Started"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	id, err := c.CreateShelf(context.Background(), "Getting Started", "Intro shelf")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestClient_CreateWithoutID_IsMutationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"validation failed"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.CreateBook(context.Background(), "X", "")
	require.Error(t, err)

	var merr *MutationError
	assert.ErrorAs(t, err, &merr)
}

func TestClient_GetPageContent_StripsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pages/9", r.URL.Path)
		fmt.Fprint(w, `{"id":9,"html":"<style>p{}</style><p>hello&nbsp;world</p>","tags":[{"name":"status","value":"draft"}]}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	tags, length, err := c.GetPageContent(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, len("hello world"), length)
	require.Len(t, tags, 1)
	assert.Equal(t, "status", tags[0].Name)
}
