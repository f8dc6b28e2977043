package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient rooted at baseURL.
//
// Every request carries Content-Type: application/json unless it sets its
// own. timeout bounds each call; zero leaves it unbounded. When
// sendCredentials is false the cookie jar is removed, so cookies set by the
// server are neither stored nor sent.
func NewHTTPClient(baseURL string, timeout time.Duration, sendCredentials bool) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	if !sendCredentials {
		client.SetCookieJar(nil)
	}

	return &HTTPClient{Client: client}
}
