// Package ranker is the HTTP client for the external job-ranking service.
// Transport failures and malformed payloads surface as plain errors; the
// recommendation usecase absorbs them into its fallback path, so they never
// reach an end caller.
package ranker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

type WorkerProfilePayload struct {
	Skills string `json:"skills"`
}

type JobPayload struct {
	ID             string `json:"id"`
	RequiredSkills string `json:"required_skills"`
}

type Request struct {
	WorkerProfile WorkerProfilePayload `json:"worker_profile"`
	JobPostings   []JobPayload         `json:"job_postings"`
}

// Response carries ranked job ids, highest relevance first.
type Response struct {
	RankedJobIDs []string `json:"ranked_job_ids"`
}

type Client interface {
	RankJobs(ctx context.Context, req Request) (Response, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *httpClient) RankJobs(ctx context.Context, req Request) (Response, error) {
	if c == nil {
		return Response{}, errors.New("nil ranker client")
	}
	endpoint := c.baseURL + "/recommendations/jobs"

	b, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("ranker call failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Ranker] RankJobs error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return Response{}, err
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, err
	}
	return out, nil
}

var _ Client = (*httpClient)(nil)
