package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	cases := []struct {
		name         string
		remoteAddr   string
		realIP       string
		forwardedFor string
		expectedIP   string
	}{
		{name: "remote addr with port", remoteAddr: "83.12.53.65:2145", expectedIP: "83.12.53.65"},
		{name: "remote addr ipv6", remoteAddr: "[::1]:8080", expectedIP: "::1"},
		{name: "real ip header wins", remoteAddr: "172.20.0.1:60102", realIP: "111.12.56.65", expectedIP: "111.12.56.65"},
		{name: "forwarded for first entry", remoteAddr: "172.20.0.1:60102", forwardedFor: "111.12.56.65, 10.0.0.1", expectedIP: "111.12.56.65"},
		{name: "no port", remoteAddr: "83.12.53.65", expectedIP: "83.12.53.65"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.realIP != "" {
				req.Header.Set("X-Real-Ip", tc.realIP)
			}
			if tc.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tc.forwardedFor)
			}
			assert.Equal(t, tc.expectedIP, ClientIP(req))
		})
	}
}
