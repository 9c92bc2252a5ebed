package bookstack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the BookStack REST API. All requests carry the static
// token pair and pass through a shared rate limiter so scheduled runs never
// hammer the instance. Fetches retry when the response body is not
// JSON-shaped; BookStack fronts (proxies, maintenance pages) occasionally
// answer with HTML.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient creates a BookStack API client from the configuration.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("bookstack: base_url is required")
	}
	if cfg.TokenID == "" || cfg.TokenSecret == "" {
		return nil, fmt.Errorf("bookstack: token_id and token_secret are required")
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelayMs <= 0 {
		cfg.RetryDelayMs = 500
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}

	interval := time.Duration(cfg.MinIntervalMs) * time.Millisecond
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		limiter: limiter,
		log:     log,
	}, nil
}

// BaseURL returns the configured BookStack root URL without trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}

// do issues one API request and returns the raw body. It enforces the
// minimum inter-request delay, retries non-JSON responses with linear
// backoff, and wraps exhaustion in a TransportError.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("bookstack: encode %s %s: %w", method, path, err)
		}
	}

	op := method + " " + path
	baseDelay := time.Duration(c.cfg.RetryDelayMs) * time.Millisecond

	var out []byte
	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			url := c.BaseURL() + "/api" + path
			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, url, reader)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", "Token "+c.cfg.TokenID+":"+c.cfg.TokenSecret)
			req.Header.Set("Accept", "application/json")
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if !jsonShaped(raw) {
				snippet := strings.TrimSpace(string(raw))
				if len(snippet) > 120 {
					snippet = snippet[:120]
				}
				return fmt.Errorf("non-JSON response (status %d): %q", resp.StatusCode, snippet)
			}

			if resp.StatusCode >= 400 {
				// JSON error payload; not a transport problem, so do not retry.
				return retry.Unrecoverable(fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw, 200)))
			}

			out = raw
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.RetryAttempts)),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * baseDelay
		}),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying API request",
				zap.String("op", op),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return out, nil
}

// jsonShaped reports whether a body looks like a JSON document. Empty
// bodies count: BookStack DELETE returns 204 with no content.
func jsonShaped(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	return trimmed[0] == '{' || trimmed[0] == '['
}

func truncate(raw []byte, n int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > n {
		return s[:n]
	}
	return s
}

// listAll fetches every page of a collection endpoint, accumulating data
// entries until the reported total is reached. An empty page terminates
// the loop early in case the reported total is stale.
func (c *Client) listAll(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	offset := 0
	for {
		path := fmt.Sprintf("%s?count=%d&offset=%d", endpoint, c.cfg.PageSize, offset)
		raw, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, &TransportError{Op: "GET " + endpoint, Err: err}
		}

		items = append(items, env.Data...)
		offset += len(env.Data)

		if len(env.Data) == 0 || offset >= env.Total {
			return items, nil
		}
	}
}

func listTyped[T any](c *Client, ctx context.Context, endpoint string) ([]T, error) {
	raw, err := c.listAll(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, &TransportError{Op: "GET " + endpoint, Err: err}
		}
		out = append(out, item)
	}
	return out, nil
}

// ListShelves fetches all shelves. The list endpoint omits the book
// relation, so each shelf's detail is fetched to populate BookIDs.
func (c *Client) ListShelves(ctx context.Context) ([]Shelf, error) {
	shelves, err := listTyped[Shelf](c, ctx, "/shelves")
	if err != nil {
		return nil, err
	}
	for i := range shelves {
		detail, err := c.getShelfDetail(ctx, shelves[i].ID)
		if err != nil {
			return nil, err
		}
		ids := make([]int64, 0, len(detail.Books))
		for _, b := range detail.Books {
			ids = append(ids, b.ID)
		}
		shelves[i].BookIDs = ids
	}
	return shelves, nil
}

func (c *Client) getShelfDetail(ctx context.Context, id int64) (*shelfDetail, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/shelves/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var detail shelfDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, &TransportError{Op: "GET /shelves/{id}", Err: err}
	}
	return &detail, nil
}

// ListBooks fetches all books.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	return listTyped[Book](c, ctx, "/books")
}

// ListChapters fetches all chapters.
func (c *Client) ListChapters(ctx context.Context) ([]Chapter, error) {
	return listTyped[Chapter](c, ctx, "/chapters")
}

// ListPages fetches all pages. ContentLength and Tags are not present in
// the list payload; use GetPageContent to derive them per page.
func (c *Client) ListPages(ctx context.Context) ([]Page, error) {
	return listTyped[Page](c, ctx, "/pages")
}

// GetPageContent fetches a page detail and returns its tags along with the
// length of the visible text. HTML pages are stripped of markup first so a
// template-only skeleton still counts as near-empty.
func (c *Client) GetPageContent(ctx context.Context, id int64) (tags []Tag, contentLength int, err error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pages/%d", id), nil)
	if err != nil {
		return nil, 0, err
	}
	var detail pageDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, 0, &TransportError{Op: "GET /pages/{id}", Err: err}
	}

	text := detail.Markdown
	if strings.TrimSpace(text) == "" {
		text = stripHTML(detail.HTML)
	}
	return detail.Tags, len(strings.TrimSpace(text)), nil
}

// createResource POSTs a resource and returns its new ID. A response
// without an id field is a MutationError.
func (c *Client) createResource(ctx context.Context, endpoint string, body any) (int64, error) {
	raw, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return 0, &MutationError{Op: "POST " + endpoint, Err: err}
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return 0, &MutationError{Op: "POST " + endpoint, Err: err}
	}
	if created.ID == 0 {
		return 0, &MutationError{Op: "POST " + endpoint}
	}
	return created.ID, nil
}

// updateResource PUTs a resource; same no-id-means-failure rule as create.
func (c *Client) updateResource(ctx context.Context, endpoint string, body any) error {
	raw, err := c.do(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return &MutationError{Op: "PUT " + endpoint, Err: err}
	}
	var updated struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(raw, &updated); err != nil {
		return &MutationError{Op: "PUT " + endpoint, Err: err}
	}
	if updated.ID == 0 {
		return &MutationError{Op: "PUT " + endpoint}
	}
	return nil
}

// CreateShelf creates an empty shelf and returns its ID.
func (c *Client) CreateShelf(ctx context.Context, name, description string) (int64, error) {
	return c.createResource(ctx, "/shelves", map[string]any{
		"name":        name,
		"description": description,
	})
}

// UpdateShelfDescription rewrites a shelf's description; the name is left
// untouched.
func (c *Client) UpdateShelfDescription(ctx context.Context, id int64, description string) error {
	return c.updateResource(ctx, fmt.Sprintf("/shelves/%d", id), map[string]any{
		"description": description,
	})
}

// UpdateShelfBooks replaces a shelf's book-ID list. Callers must pass the
// union with the existing list; BookStack treats this as a full replace.
func (c *Client) UpdateShelfBooks(ctx context.Context, id int64, bookIDs []int64) error {
	return c.updateResource(ctx, fmt.Sprintf("/shelves/%d", id), map[string]any{
		"books": bookIDs,
	})
}

// CreateBook creates a book and returns its ID. The book is unshelved
// until attached via UpdateShelfBooks.
func (c *Client) CreateBook(ctx context.Context, name, description string) (int64, error) {
	return c.createResource(ctx, "/books", map[string]any{
		"name":        name,
		"description": description,
	})
}

// UpdateBookDescription rewrites a book's description.
func (c *Client) UpdateBookDescription(ctx context.Context, id int64, description string) error {
	return c.updateResource(ctx, fmt.Sprintf("/books/%d", id), map[string]any{
		"description": description,
	})
}

// CreateChapter creates a chapter inside the given book and returns its ID.
func (c *Client) CreateChapter(ctx context.Context, bookID int64, name, description string) (int64, error) {
	return c.createResource(ctx, "/chapters", map[string]any{
		"book_id":     bookID,
		"name":        name,
		"description": description,
	})
}

// UpdateChapterDescription rewrites a chapter's description.
func (c *Client) UpdateChapterDescription(ctx context.Context, id int64, description string) error {
	return c.updateResource(ctx, fmt.Sprintf("/chapters/%d", id), map[string]any{
		"description": description,
	})
}

// DeleteShelf removes a shelf. Only the explicit prune command calls this;
// reconciliation never deletes.
func (c *Client) DeleteShelf(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/shelves/%d", id), nil)
	return err
}

// DeleteBook removes a book and everything inside it.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil)
	return err
}

// DeleteChapter removes a chapter and its pages.
func (c *Client) DeleteChapter(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/chapters/%d", id), nil)
	return err
}
