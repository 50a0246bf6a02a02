package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hadirin/absensi-backend-go/internal/config"
)

// Client calls the external face-recognition service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a recognition client from configuration.
func NewClient(cfg config.FaceConfig) *Client {
	return &Client{
		baseURL: cfg.ServiceURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError represents a recognition service error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("face service error [%d]: %s", e.StatusCode, e.Message)
}

type matchResponse struct {
	Enrolled   bool     `json:"enrolled"`
	Confidence *float64 `json:"confidence"`
}

// MatchConfidence implements Recognizer. It returns nil confidence when the
// user has no enrolled face template; the caller decides what that means.
func (c *Client) MatchConfidence(ctx context.Context, userID string, image []byte) (*float64, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("user_id", userID); err != nil {
		return nil, fmt.Errorf("failed to build match request: %w", err)
	}

	part, err := writer.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to build match request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build match request: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/match", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var result matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}

	if !result.Enrolled {
		return nil, nil
	}

	return result.Confidence, nil
}
