// Package portal reads job postings from the job portal's HTTP API.
package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client communicates with the job portal HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Skill is one entry of a posting's structured skill list.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Job is the subset of a posting needed for matching.
type Job struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company,omitempty"`
	SkillsRequired []string `json:"skillsRequired"`
	SkillSection   []Skill  `json:"skillSection"`
}

// SkillNames returns the posting's required skills. The flat list wins;
// older postings only carry the structured section.
func (j *Job) SkillNames() []string {
	if len(j.SkillsRequired) > 0 {
		return j.SkillsRequired
	}
	names := make([]string, 0, len(j.SkillSection))
	for _, s := range j.SkillSection {
		if n := strings.TrimSpace(s.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// GetJob fetches a posting by ID. A missing posting returns nil, nil.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	u := c.baseURL + "/api/v1/job/" + url.PathEscape(id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RetryableError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(respBody)}
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get job %s: status %d: %s", id, resp.StatusCode, string(respBody))
	}

	var result struct {
		Success bool `json:"success"`
		Job     *Job `json:"job"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return result.Job, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
