// Package directory is the client for the remote debate directory API.
// The API is an external collaborator: every call can fail, and every
// response status is checked before the body is touched. Results are mapped
// from wire records to domain entities at the package boundary so nothing
// above this layer sees raw JSON.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hottake/hottake/internal/errors"
	"github.com/hottake/hottake/internal/logging"
	"github.com/hottake/hottake/internal/profile"
)

// defaultTimeout is the per-request timeout when none is configured.
const defaultTimeout = 10 * time.Second

// Client talks to the debates REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.WithComponent("directory")
	}
}

// NewClient creates a directory client for the API rooted at baseURL
// (e.g. "http://localhost:3000/api").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Draft is the client-supplied portion of a new debate. The server assigns
// everything else (id, creation time); the owner fields are bound from the
// current profile at call time.
type Draft struct {
	Title string
	Owner profile.Profile
}

// Validate checks the draft locally, before any network call is made.
func (d Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return errors.NewValidationError("title must not be empty").WithField("title")
	}
	if len([]rune(title)) > MaxTitleLength {
		return errors.NewValidationError(
			fmt.Sprintf("title must be at most %d characters", MaxTitleLength)).
			WithField("title").
			WithValue(d.Title)
	}
	return nil
}

// createRequest is the POST /debates request body.
type createRequest struct {
	Title       string `json:"title"`
	OwnerID     string `json:"ownerId"`
	OwnerName   string `json:"ownerName"`
	OwnerAge    *int   `json:"ownerAge,omitempty"`
	OwnerGender string `json:"ownerGender,omitempty"`
}

// List fetches all debates in server-returned order. An empty directory is
// a valid, non-error result.
func (c *Client) List(ctx context.Context) ([]Debate, error) {
	body, err := c.get(ctx, "/debates")
	if err != nil {
		return nil, err
	}

	var records []debateRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.NewDirectoryError("failed to decode debate list", err).
			WithOperation("list")
	}

	debates := make([]Debate, 0, len(records))
	for _, r := range records {
		debates = append(debates, r.toDomain())
	}

	c.logger.Debug("listed debates", "count", len(debates))
	return debates, nil
}

// Get fetches one debate by id. A 404-class response maps to a not-found
// error distinct from a generic network failure.
func (c *Client) Get(ctx context.Context, id string) (Debate, error) {
	if id == "" {
		return Debate{}, errors.NewValidationError("debate id must not be empty").WithField("id")
	}

	endpoint := "/debates/" + id
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Debate{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Debate{}, errors.NewNetworkError("GET "+endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return Debate{}, errors.NewNotFoundError("debate", id)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Debate{}, errors.NewNetworkError("GET "+endpoint, nil).
			WithStatusCode(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Debate{}, errors.NewNetworkError("GET "+endpoint, err)
	}

	var record debateRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return Debate{}, errors.NewDirectoryError("failed to decode debate", err).
			WithOperation("get").
			WithDebateID(id)
	}

	return record.toDomain(), nil
}

// Create asks the server to create a debate from the draft. The server
// assigns the id, owner binding, and creation time; none of them exist
// until the call returns.
func (c *Client) Create(ctx context.Context, draft Draft) (Debate, error) {
	if err := draft.Validate(); err != nil {
		return Debate{}, err
	}

	payload, err := json.Marshal(createRequest{
		Title:       strings.TrimSpace(draft.Title),
		OwnerID:     draft.Owner.ID,
		OwnerName:   draft.Owner.Name,
		OwnerAge:    draft.Owner.Age,
		OwnerGender: string(draft.Owner.Gender),
	})
	if err != nil {
		return Debate{}, errors.NewDirectoryError("failed to encode draft", err).
			WithOperation("create")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/debates", bytes.NewReader(payload))
	if err != nil {
		return Debate{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Debate{}, errors.NewNetworkError("POST /debates", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Debate{}, errors.NewNetworkError("POST /debates", nil).
			WithStatusCode(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Debate{}, errors.NewNetworkError("POST /debates", err)
	}

	var record debateRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return Debate{}, errors.NewDirectoryError("failed to decode created debate", err).
			WithOperation("create")
	}

	created := record.toDomain()
	c.logger.Info("created debate", "debate_id", created.ID, "title", created.Title)
	return created, nil
}

// Remove deletes a debate by id and reports whether the deletion
// succeeded. A missing id is not-success rather than an error; only a
// server failure status produces one.
func (c *Client) Remove(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, errors.NewValidationError("debate id must not be empty").WithField("id")
	}

	endpoint := "/debates/" + id
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.NewNetworkError("DELETE "+endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		c.logger.Info("removed debate", "debate_id", id)
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, errors.NewNetworkError("DELETE "+endpoint, nil).
			WithStatusCode(resp.StatusCode)
	}
}

// get performs a GET and returns the body after a successful status check.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("GET "+endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewNetworkError("GET "+endpoint, nil).
			WithStatusCode(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("GET "+endpoint, err)
	}

	return body, nil
}

// newRequest builds a request against the configured base URL.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, errors.NewDirectoryError("failed to build request", err).
			WithOperation(method + " " + endpoint)
	}
	return req, nil
}
