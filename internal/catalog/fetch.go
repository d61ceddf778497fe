package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ondrel/curio/internal/models"
)

// DefaultIndexURL is the published topic-keyed index of awesome lists.
const DefaultIndexURL = "https://raw.githubusercontent.com/curio-index/awesome-index/main/index.json"

// Client fetches the remote catalog index.
type Client struct {
	indexURL string
	hc       *http.Client
}

// NewClient creates a catalog client for the given index URL (empty means
// DefaultIndexURL).
func NewClient(indexURL string) *Client {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return &Client{
		indexURL: indexURL,
		hc:       &http.Client{Timeout: 30 * time.Second},
	}
}

// indexEntry is one raw entry of the remote index document.
type indexEntry struct {
	User        string `json:"user"`
	Name        string `json:"name"`
	Repo        string `json:"repo"`
	Description string `json:"description"`
}

// FetchIndex downloads the topic-keyed index and flattens it into sources.
func (c *Client) FetchIndex(ctx context.Context) ([]models.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: index fetch returned %s", resp.Status)
	}

	var byTopic map[string][]indexEntry
	if err := json.NewDecoder(resp.Body).Decode(&byTopic); err != nil {
		return nil, fmt.Errorf("catalog: decode index: %w", err)
	}

	var out []models.Source
	for topic, entries := range byTopic {
		for _, e := range entries {
			repo := e.Repo
			if repo == "" && e.User != "" && e.Name != "" {
				repo = e.User + "/" + e.Name
			}
			if repo == "" {
				continue
			}
			out = append(out, models.Source{
				Repo:        repo,
				Name:        e.Name,
				User:        e.User,
				Topic:       topic,
				Description: e.Description,
			})
		}
	}
	return out, nil
}
