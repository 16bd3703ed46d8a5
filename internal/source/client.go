package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const (
	contentType = "application/json"
	userAgent   = "jobradar/1.0"
)

// GetJSON makes a GET request to a provider API and decodes the JSON body
// into target.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	setHeaders(req)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return do(client, req, target)
}

// PostJSON makes a POST request with a JSON payload and decodes the JSON
// response into target.
func PostJSON(ctx context.Context, client *http.Client, rawURL string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return err
	}

	setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return do(client, req, target)
}

func do(client *http.Client, req *http.Request, target any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", contentType)
}
