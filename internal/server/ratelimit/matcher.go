package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the first endpoint config whose method and path pattern
// match the request, or nil. Pattern segments written as "{name}" match any single
// path segment, so "/documents/{id}/pages" covers every document.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Path: "/health", Method: "GET"}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && matchPattern(cfg.Path, path) {
			return cfg
		}
	}
	return nil
}

func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}

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
