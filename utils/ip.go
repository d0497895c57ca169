package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP resolves the originating client address for access logs.
// Behind a proxy X-Forwarded-For carries a comma-separated hop chain; the
// first entry is the client, the rest are intermediaries.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		first, _, _ := strings.Cut(xfwd, ",")
		return strings.TrimSpace(first)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
