package http

import (
	"net"
	"net/http"
	"strings"
)

// ipHeaders in priority order. X-Forwarded-For wins because it is what
// the usual proxy/CDN chain sets; its first value is the original client.
var ipHeaders = []string{"X-Forwarded-For", "X-Real-Ip", "Cf-Connecting-Ip", "X-Client-Ip"}

// ResolveClientIP derives the caller's apparent public IP from proxy
// headers, falling back to the connection's remote address. Returns
// "unknown" if nothing usable is present. The server always resolves
// this itself; a client-supplied IP is never trusted.
func ResolveClientIP(r *http.Request) string {
	for _, header := range ipHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if header == "X-Forwarded-For" {
			value = strings.Split(value, ",")[0]
		}
		if ip := strings.TrimSpace(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host = strings.TrimSpace(host); host != "" {
		return host
	}

	return "unknown"
}
