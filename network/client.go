// Package network provides the shared HTTP client used for episode downloads and release checks.
package network

import (
	"net"
	"net/http"
	"time"

	"github.com/onair-cli/onair/constant"
	"github.com/samber/lo"
	"golang.org/x/net/http2"
)

// Client is the singleton HTTP client shared across the application.
// It sets no overall timeout since episode bodies may take minutes to stream; callers bound requests with a context.
var Client = &http.Client{
	Transport: &userAgentTransport{base: newTransport()},
}

// newTransport initializes a tuned http.Transport with pool and timeout parameters.
// HTTP/2 connections are pinged when idle so a stalled episode stream fails instead of hanging.
func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	t := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 5 * time.Second,
	}

	h2 := lo.Must(http2.ConfigureTransports(t))
	h2.ReadIdleTimeout = 30 * time.Second
	h2.PingTimeout = 15 * time.Second

	return t
}

// userAgentTransport stamps every outgoing request with the application User-Agent unless one is already set.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", constant.UserAgent)
	return t.base.RoundTrip(clone)
}
