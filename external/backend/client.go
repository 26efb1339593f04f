package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "backend")

const defaultTimeout = 10 * time.Second

// APIError is a backend failure with the user-facing message extracted from
// the JSON error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == status
}

// Client calls the rural Plus Code platform backend. The cookie jar carries
// the refresh-token cookie across auth calls.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base url is empty")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// Online probes backend reachability. Any HTTP response counts as online;
// only transport-level failures count as offline.
func (c *Client) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError extracts a display message from an error body, preferring the
// backend's `detail` field, then `message` and `error`. FastAPI validation
// errors arrive as a detail array of {msg} objects.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("Erro %d", resp.StatusCode),
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}

	for _, key := range []string{"detail", "message", "error"} {
		raw, ok := body[key]
		if !ok {
			continue
		}

		var text string
		if err := json.Unmarshal(raw, &text); err == nil && text != "" {
			apiErr.Message = text
			return apiErr
		}

		var items []struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				switch {
				case item.Msg != "":
					parts = append(parts, item.Msg)
				case item.Message != "":
					parts = append(parts, item.Message)
				}
			}
			if len(parts) > 0 {
				apiErr.Message = strings.Join(parts, "\n")
				return apiErr
			}
		}
	}

	return apiErr
}
