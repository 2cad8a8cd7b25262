package pdfclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePDF = []byte("%PDF-1.4 fake")

func bundle() types.Bundle {
	return types.NewBundle(types.SampleResume(), nil, layout.Defaults())
}

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL + "/")
}

func TestGenerate_PDFBody(t *testing.T) {
	var payload map[string]json.RawMessage
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, GeneratePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(fakePDF)
	})

	data, err := client.Generate(context.Background(), bundle())
	require.NoError(t, err)
	assert.Equal(t, fakePDF, data)

	for _, key := range []string{"resume_data", "section_order", "font_size", "margin_top", "margin_bottom", "margin_left", "margin_right", "one_line_education"} {
		assert.Contains(t, payload, key)
	}
}

func TestGenerate_Base64JSON(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"pdf": base64.StdEncoding.EncodeToString(fakePDF)})
	})

	data, err := client.Generate(context.Background(), bundle())
	require.NoError(t, err)
	assert.Equal(t, fakePDF, data)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantDetail  string
	}{
		{"detail on 500", 500, "application/json", `{"detail": "PDF generation failed: boom"}`, "PDF generation failed: boom"},
		{"detail on 400", 400, "application/json", `{"detail": "bad input"}`, "bad input"},
		{"structured detail", 422, "application/json", `{"detail": [{"loc": ["body"], "msg": "field required"}]}`, `[{"loc":["body"],"msg":"field required"}]`},
		{"error field", 429, "application/json", `{"error": "rate limit exceeded"}`, "rate limit exceeded"},
		{"json without pdf", 200, "application/json", `{"ok": true}`, unexpectedResponse},
		{"pdf on 500", 500, "application/pdf", `%PDF-1.4`, "HTTP status 500"},
		{"html error page", 502, "text/html", `<html><head><title>x</title></head><body><center><h1>502 Bad Gateway</h1></center><hr><center>nginx</center></body></html>`, "502 Bad Gateway"},
		{"plain text", 503, "text/plain", "upstream unavailable\n", "upstream unavailable"},
		{"empty body", 504, "", "", "HTTP status 504"},
		{"bad base64", 200, "application/json", `{"pdf": "***"}`, "server returned an invalid base64 PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), bundle())
			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.status, remote.StatusCode)
			assert.Equal(t, tt.wantDetail, remote.Detail)
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(url).Generate(context.Background(), bundle())
	var clientErr *Error
	require.ErrorAs(t, err, &clientErr)
	assert.Contains(t, err.Error(), "HTTP request failed")
}

func TestEndpoint(t *testing.T) {
	endpoint, err := New("").Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/resume/generate-pdf", endpoint)

	endpoint, err = New("https://pdf.example.com/").Endpoint()
	require.NoError(t, err)
	assert.Equal(t, "https://pdf.example.com/api/resume/generate-pdf", endpoint)

	_, err = New("not a url").Endpoint()
	var clientErr *Error
	assert.ErrorAs(t, err, &clientErr)
}
