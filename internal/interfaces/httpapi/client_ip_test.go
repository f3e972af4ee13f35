package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "10.1.2.3:5555", want: "10.1.2.3"},
		{name: "forwarded first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:80", want: "203.0.113.7"},
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "198.51.100.2", "X-Real-IP": "192.0.2.1"}, want: "198.51.100.2"},
		{name: "garbage header skipped", headers: map[string]string{"X-Forwarded-For": "unknown"}, remote: "[::1]:8080", want: "::1"},
		{name: "mapped v4", remote: "[::ffff:192.0.2.9]:1", want: "192.0.2.9"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, clientIP(r))
		})
	}
}
