// Package tika wraps the Apache Tika server's HTTP API: text extraction,
// metadata extraction and MIME detection, each a single PUT with the file
// streamed as the request body.
//
// There is no Go client library for Tika in wide use, and its surface here
// is three PUT endpoints differing only by path and Accept header - a
// bespoke net/http client is simpler and has fewer moving parts than
// adopting a general-purpose HTTP client library for it.
package tika

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Client talks to a running Tika server over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a Client targeting the Tika server at host:port.
func New(host, port string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    fmt.Sprintf("http://%s:%s", host, port),
	}
}

// IsConnected reports whether the Tika server answers on /tika.
func (c *Client) IsConnected(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/tika"), nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// Text extracts the plain text content of the file at path.
func (c *Client) Text(ctx context.Context, path string) (string, error) {
	resp, err := c.put(ctx, "/tika", "text/plain", path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tika text response: %w", err)
	}
	return string(body), nil
}

// TextIntoFile extracts the plain text content of the file at inputPath,
// streaming it directly into outputPath without buffering the whole
// response in memory.
func (c *Client) TextIntoFile(ctx context.Context, inputPath, outputPath string) error {
	resp, err := c.put(ctx, "/tika", "text/plain", inputPath)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create tika text output: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("stream tika text response: %w", err)
	}
	return nil
}

// Metadata extracts the file's metadata as a raw JSON document.
func (c *Client) Metadata(ctx context.Context, path string) (string, error) {
	resp, err := c.put(ctx, "/meta", "application/json", path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tika metadata response: %w", err)
	}
	return string(body), nil
}

// detectResponse is the shape of Tika's /meta/Content-Type response.
type detectResponse struct {
	ContentType string `json:"Content-Type"`
}

// Detect asks Tika to identify the media type of the file at path.
func (c *Client) Detect(ctx context.Context, path string) (string, error) {
	resp, err := c.put(ctx, "/meta/Content-Type", "application/json", path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("parse tika detect response: %w", err)
	}
	if parsed.ContentType == "" {
		return "", fmt.Errorf("tika detect response carried no Content-Type")
	}
	return parsed.ContentType, nil
}

func (c *Client) put(ctx context.Context, endpoint, accept, path string) (*http.Response, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file for tika request: %w", err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(endpoint), f)
	if err != nil {
		return nil, fmt.Errorf("build tika request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Tika-Skip-Embedded", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tika request to %s: %w", endpoint, err)
	}
	return resp, nil
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + endpoint
}
