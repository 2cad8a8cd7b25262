// Package pdfclient calls a remote generate-pdf endpoint.
package pdfclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// GeneratePath is the endpoint path relative to the base URL.
const GeneratePath = "/api/resume/generate-pdf"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// unexpectedResponse is reported when a JSON body has neither pdf nor detail.
const unexpectedResponse = "Unexpected response from server"

// Error represents a transport failure talking to the server.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf request to %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf request to %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// RemoteError is a failure reported by the server itself.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	return e.Detail
}

// Client posts bundles to a generate-pdf endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a client for baseURL, or DefaultBaseURL when it is empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Endpoint returns the absolute generate-pdf URL.
func (c *Client) Endpoint() (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", &Error{URL: c.BaseURL, Message: "invalid base URL", Cause: err}
	}
	return strings.TrimRight(base.String(), "/") + GeneratePath, nil
}

// Generate sends the bundle and returns the PDF bytes. The server may answer
// with a PDF body or with JSON carrying a base64 "pdf" or an error "detail".
func (c *Client) Generate(ctx context.Context, b types.Bundle) ([]byte, error) {
	endpoint, err := c.Endpoint()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(b)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to encode payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf, application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to read response body", Cause: err}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return decodeResponse(resp.StatusCode, mediaType, body)
}

// decodeResponse turns a response into PDF bytes or a RemoteError.
func decodeResponse(status int, mediaType string, body []byte) ([]byte, error) {
	ok := status < http.StatusInternalServerError
	if ok && mediaType == "application/pdf" {
		return body, nil
	}

	var parsed struct {
		PDF    string          `json:"pdf"`
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &RemoteError{StatusCode: status, Detail: plainDetail(status, mediaType, body)}
	}

	if ok && parsed.PDF != "" {
		data, err := base64.StdEncoding.DecodeString(parsed.PDF)
		if err != nil {
			return nil, &RemoteError{StatusCode: status, Detail: "server returned an invalid base64 PDF"}
		}
		return data, nil
	}
	if detail := detailText(parsed.Detail); detail != "" {
		return nil, &RemoteError{StatusCode: status, Detail: detail}
	}
	if parsed.Error != "" {
		return nil, &RemoteError{StatusCode: status, Detail: parsed.Error}
	}
	return nil, &RemoteError{StatusCode: status, Detail: unexpectedResponse}
}

// detailText reads a "detail" that is either a string or structured JSON.
func detailText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

// plainDetail summarises a non-JSON body, reducing HTML error pages to their text.
func plainDetail(status int, mediaType string, body []byte) string {
	if mediaType == "application/pdf" {
		return fmt.Sprintf("HTTP status %d", status)
	}
	detail := strings.TrimSpace(string(body))
	if mediaType == "text/html" || strings.HasPrefix(detail, "<") {
		detail = htmlText(detail)
	}
	if detail == "" {
		detail = fmt.Sprintf("HTTP status %d", status)
	}
	return detail
}

// htmlText extracts the visible text of an HTML page with collapsed whitespace.
func htmlText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, head").Remove()

	text := doc.Find("h1").First().Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}
	return strings.Join(strings.Fields(text), " ")
}
