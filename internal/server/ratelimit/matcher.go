package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint picks the endpoint limit for a request, or nil when the
// default limit applies. Health checks are never limited.
//
// Configured paths are tried in this order:
//   - exact paths, e.g. "/api/resume/generate-pdf"
//   - patterns with {wildcard} segments, e.g. "/api/sessions/{id}/pdf"
//   - the longest prefix ending in "/", e.g. "/api/drafts/" for "/api/drafts/{id}"
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && (method == http.MethodGet || method == http.MethodHead) {
		return &EndpointConfig{}
	}

	var pattern, prefix *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		switch {
		case config.Path == path:
			return config
		case strings.Contains(config.Path, "{"):
			if pattern == nil && segmentsMatch(config.Path, path) {
				pattern = config
			}
		case strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path):
			if prefix == nil || len(config.Path) > len(prefix.Path) {
				prefix = config
			}
		}
	}

	if pattern != nil {
		return pattern
	}
	return prefix
}

// segmentsMatch compares path segments, letting "{name}" stand for any one segment.
func segmentsMatch(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}
