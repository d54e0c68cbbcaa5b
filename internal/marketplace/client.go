package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/matchday/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Matchday/1.0"
)

// Client implements domain.FixtureRepository and domain.DirectoryRepository
// against the marketplace REST API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new marketplace API client.
// A zero timeout uses the default.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	c.logger.Debug("marketplace request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("marketplace request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrParentNotFound
	case http.StatusTooManyRequests:
		return nil, domain.ErrRateLimited
	}

	c.logger.Error("marketplace request error", "status", resp.StatusCode, "body", string(body))
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.Error)
	}
	return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
}

// getJSON performs a request and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetFixtures returns one page of a parent's fixtures.
// Returns (items, total, error). Month and venue are never sent together:
// when both are set the venue is dropped.
func (c *Client) GetFixtures(
	ctx context.Context,
	kind domain.ParentKind,
	parentID string,
	q domain.FixtureQuery,
	page, limit int,
) ([]domain.Fixture, int, error) {
	if parentID == "" {
		return []domain.Fixture{}, 0, nil
	}

	query := url.Values{}
	switch {
	case q.Month != "":
		query.Set("month", string(q.Month))
	case q.VenueID != "":
		query.Set("venueId", q.VenueID)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := fmt.Sprintf("/api/%s/%s/fixtures", kind.Plural(), url.PathEscape(parentID))
	var list FixtureList
	if err := c.getJSON(ctx, path, query, &list); err != nil {
		return nil, 0, err
	}

	total := list.Meta.Total
	if total == 0 {
		total = len(list.Data) // Fallback if total not provided
	}

	return MapFixtures(list.Data, c.logger), total, nil
}

// GetParentPage returns a league or team with its unfiltered fixtures
func (c *Client) GetParentPage(ctx context.Context, kind domain.ParentKind, slug string) (*domain.ParentPage, error) {
	path := fmt.Sprintf("/api/%s/%s", kind.Plural(), url.PathEscape(slug))
	var dto ParentPageDTO
	if err := c.getJSON(ctx, path, nil, &dto); err != nil {
		return nil, err
	}

	return &domain.ParentPage{
		Parent:   mapParent(dto.Parent, kind),
		Fixtures: MapFixtures(dto.Fixtures, c.logger),
	}, nil
}

// GetParentMetadata returns the months a league or team has fixtures in
func (c *Client) GetParentMetadata(ctx context.Context, kind domain.ParentKind, idOrSlug string) (*domain.ParentMetadata, error) {
	path := fmt.Sprintf("/api/%s/%s/metadata", kind.Plural(), url.PathEscape(idOrSlug))
	var dto MetadataDTO
	if err := c.getJSON(ctx, path, nil, &dto); err != nil {
		return nil, err
	}
	return MapMetadata(dto), nil
}

// GetParents returns every league or team in the directory
func (c *Client) GetParents(ctx context.Context, kind domain.ParentKind) ([]domain.Parent, error) {
	var list ParentList
	if err := c.getJSON(ctx, "/api/"+kind.Plural(), nil, &list); err != nil {
		return nil, err
	}
	return MapParents(list.Data, kind), nil
}

// Ping checks that the server is reachable and the API key is accepted
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doRequest(ctx, "/api/health", nil)
	return err
}
