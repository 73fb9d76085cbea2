package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk/selector"
	"newsdesk/types"
)

// CurationClient is a thin HTTP client for the curation API.
type CurationClient struct {
	baseURL string
	client  *http.Client
}

// NewCurationClient creates a client for the given API base URL.
func NewCurationClient(baseURL string) *CurationClient {
	return &CurationClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type newsListResponse struct {
	Success bool            `json:"success"`
	Total   int             `json:"total"`
	Data    []types.Article `json:"data"`
}

type previewResponse struct {
	Preview    selector.Preview    `json:"preview"`
	Validation selector.Validation `json:"validation"`
}

// Recommended fetches the top-N recommendations.
func (c *CurationClient) Recommended(topN int) ([]types.Article, error) {
	var resp newsListResponse
	url := fmt.Sprintf("%s/news/recommended?top_n=%d", c.baseURL, topN)
	if err := c.getJSON(url, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// NewsletterPreview fetches the preview with validation.
func (c *CurationClient) NewsletterPreview() (selector.Preview, selector.Validation, error) {
	var resp previewResponse
	if err := c.getJSON(c.baseURL+"/newsletter/preview", &resp); err != nil {
		return selector.Preview{}, selector.Validation{}, err
	}
	return resp.Preview, resp.Validation, nil
}

// Select marks an article for the newsletter.
func (c *CurationClient) Select(id string) error {
	return c.do(http.MethodPost, c.baseURL+"/news/select/"+id)
}

// Deselect removes an article from the newsletter.
func (c *CurationClient) Deselect(id string) error {
	return c.do(http.MethodDelete, c.baseURL+"/news/select/"+id)
}

// ClearSelections clears every selection.
func (c *CurationClient) ClearSelections() error {
	return c.do(http.MethodDelete, c.baseURL+"/news/select")
}

// TriggerSync runs one sync cycle on the server.
func (c *CurationClient) TriggerSync() error {
	return c.do(http.MethodPost, c.baseURL+"/sync")
}

func (c *CurationClient) getJSON(url string, out any) error {
	resp, err := c.client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *CurationClient) do(method, url string) error {
	req, err := http.NewRequest(method, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
