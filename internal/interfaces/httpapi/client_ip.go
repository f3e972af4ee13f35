package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

// forwardedIPHeaders are consulted in order before RemoteAddr.
var forwardedIPHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

// clientIP returns the caller address for logs. It is not used for
// authorization, so forwarded headers are taken at face value.
func clientIP(r *http.Request) string {
	for _, name := range forwardedIPHeaders {
		raw := r.Header.Get(name)
		// X-Forwarded-For lists the original client first.
		first, _, _ := strings.Cut(raw, ",")
		if addr, ok := parseAddr(first); ok {
			return addr
		}
	}
	if addr, ok := parseAddr(r.RemoteAddr); ok {
		return addr
	}
	return ""
}

func parseAddr(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if ap, err := netip.ParseAddrPort(raw); err == nil {
		return ap.Addr().Unmap().String(), true
	}
	if a, err := netip.ParseAddr(raw); err == nil {
		return a.Unmap().String(), true
	}
	return "", false
}
