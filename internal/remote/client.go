package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"learning-engine/internal/models"
)

var _ API = (*Client)(nil)

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the collection/quiz service at baseURL.
// token, when set, is sent as a bearer token on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &models.RemoteError{Op: path, Err: fmt.Errorf("marshal request: %w", err)}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &models.RemoteError{Op: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &models.RemoteError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &models.RemoteError{
			Op:         path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("server rejected request: %s", strings.TrimSpace(string(detail))),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.RemoteError{Op: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) GetAllCollections(ctx context.Context) ([]models.CollectionSummary, error) {
	var list []models.CollectionSummary
	if err := c.do(ctx, http.MethodGet, "/collections", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) RegisterCollection(ctx context.Context, collectionID int64, goal int) (*RegisterResult, error) {
	body := map[string]any{"goal": goal}
	var res RegisterResult
	path := fmt.Sprintf("/collections/%d/register", collectionID)
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetRandomQuizBatch(ctx context.Context, collectionID int64, isReview bool) ([]models.Quiz, error) {
	path := fmt.Sprintf("/collections/%d/quizzes/random", collectionID)
	if isReview {
		path += "?review=true"
	}
	var batch []models.Quiz
	if err := c.do(ctx, http.MethodGet, path, nil, &batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (c *Client) SubmitAnswer(ctx context.Context, collectionID, cardID int64, quizType, rating string, isNew bool) (*MutationResult, error) {
	body := map[string]any{
		"quiz_type": quizType,
		"is_new":    isNew,
	}
	if rating != "" {
		body["rating"] = rating
	}
	var res MutationResult
	path := fmt.Sprintf("/collections/%d/cards/%d/answer", collectionID, cardID)
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SetCardStatus(ctx context.Context, collectionID, cardID int64, status string) (*MutationResult, error) {
	body := map[string]any{"status": status}
	var res MutationResult
	path := fmt.Sprintf("/collections/%d/cards/%d/status", collectionID, cardID)
	if err := c.do(ctx, http.MethodPut, path, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) SetCollectionStatus(ctx context.Context, collectionID int64, status string) error {
	body := map[string]any{"status": status}
	path := fmt.Sprintf("/collections/%d/status", collectionID)
	return c.do(ctx, http.MethodPut, path, body, nil)
}
