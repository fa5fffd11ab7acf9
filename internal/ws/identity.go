package ws

import (
	"net"
	"net/http"
	"strings"
)

// Browsers cannot attach custom headers to a websocket upgrade request, so
// the frontend passes identity values as query parameters. Headers still
// win when present (server-side or proxied callers).

func deviceIDFrom(r *http.Request) string {
	if id := r.Header.Get("X-Device-Id"); id != "" {
		return id
	}
	return r.URL.Query().Get("deviceId")
}

func requestIDFrom(r *http.Request) string {
	if id := r.Header.Get("X-Request-Id"); id != "" {
		return id
	}
	return r.URL.Query().Get("requestId")
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
