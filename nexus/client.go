// Package nexus is a minimal NexusMods API client, used to compare installed
// mods against their latest published versions. Network access stays out of
// the core engine; only the check-updates command touches this package.
package nexus

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	nexusAPIURL    = "https://api.nexusmods.com/v1"
	gameDomain     = "marvelrivals"
	defaultTimeout = 10 * time.Second
)

// Client handles communication with the NexusMods API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a NexusMods API client. The API key is required; Nexus
// rejects unauthenticated requests.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NEXUS_API_KEY is not configured")
	}
	return &Client{
		BaseURL: nexusAPIURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

func (c *Client) makeRequest(path string, target interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode json response: %w", err)
	}
	return nil
}

// GetMod retrieves the current published state of a mod.
func (c *Client) GetMod(modID int) (*Mod, error) {
	var mod Mod
	path := fmt.Sprintf("/games/%s/mods/%d.json", gameDomain, modID)
	if err := c.makeRequest(path, &mod); err != nil {
		return nil, fmt.Errorf("failed to get mod %d: %w", modID, err)
	}
	return &mod, nil
}

// GetFile retrieves details for one file of a mod.
func (c *Client) GetFile(modID, fileID int) (*ModFile, error) {
	var file ModFile
	path := fmt.Sprintf("/games/%s/mods/%d/files/%d.json", gameDomain, modID, fileID)
	if err := c.makeRequest(path, &file); err != nil {
		return nil, fmt.Errorf("failed to get file %d of mod %d: %w", fileID, modID, err)
	}
	return &file, nil
}

// Mod is the subset of the NexusMods mod response this tool needs.
type Mod struct {
	ModID            int    `json:"mod_id"`
	Name             string `json:"name"`
	Summary          string `json:"summary"`
	Version          string `json:"version"`
	Author           string `json:"author"`
	UpdatedTimestamp int64  `json:"updated_timestamp"`
	Available        bool   `json:"available"`
}

// ModFile is the subset of the NexusMods file response this tool needs.
type ModFile struct {
	FileID       int    `json:"file_id"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	FileName     string `json:"file_name"`
	SizeKB       int64  `json:"size_kb"`
	UploadedTime int64  `json:"uploaded_timestamp"`
}
