// Package upload posts admin report files to the third-party upload
// endpoint, a separate host from the booking backend with its own, looser
// response contract.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"booking-console/internal/model"
)

// DefaultEndpoint is the production upload service.
const DefaultEndpoint = "https://ql6cijuo0e.execute-api.us-east-1.amazonaws.com/prod"

type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithClock overrides the upload timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send uploads one file as a multipart "file" field and returns the local
// report record: the service's id and file_url (or url) when it supplies
// them, a generated id and the local filename otherwise. One sequential
// request, no chunking, no resume.
func (c *Client) Send(ctx context.Context, filename string, contents io.Reader) (model.Report, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return model.Report{}, fmt.Errorf("upload: form file: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return model.Report{}, fmt.Errorf("upload: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.Report{}, fmt.Errorf("upload: finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return model.Report{}, fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Report{}, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().Int("status", resp.StatusCode).Str("file", filename).Msg("upload rejected")
		return model.Report{}, fmt.Errorf("upload: request failed (status %d)", resp.StatusCode)
	}

	// the service sometimes answers {id, file_url}, sometimes {url},
	// sometimes nothing useful
	var result struct {
		ID      string `json:"id"`
		FileURL string `json:"file_url"`
		URL     string `json:"url"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&result)

	rep := model.Report{
		ID:         result.ID,
		Filename:   filename,
		UploadedAt: c.now(),
		FileURL:    result.FileURL,
	}
	if rep.FileURL == "" {
		rep.FileURL = result.URL
	}
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	return rep, nil
}

// Fetch downloads a previously uploaded report by its stored URL.
func (c *Client) Fetch(ctx context.Context, rep model.Report) ([]byte, error) {
	if rep.FileURL == "" {
		return nil, fmt.Errorf("upload: report %s has no file url", rep.ID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rep.FileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("upload: build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: fetch %s: %w", rep.Filename, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upload: fetch %s: status %d", rep.Filename, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
