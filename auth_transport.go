package client

import (
	"net/http"

	"github.com/google/uuid"
)

// bearerTransport is the adapter's single choke point: it attaches the
// session token, tags the request with an id, and on 401 forces a logout
// before handing the response back.
type bearerTransport struct {
	base    http.RoundTripper
	session *Session
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if cloned.Header.Get("X-Request-ID") == "" {
		cloned.Header.Set("X-Request-ID", uuid.NewString())
	}

	token := t.session.Token()
	if token != "" {
		cloned.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base.RoundTrip(cloned)
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(statusClass(resp.StatusCode)).Inc()

	// Only a request that carried the current token can end the session; an
	// anonymous 401 (bad login) is the caller's to present.
	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		t.session.forceLogout(token)
	}
	return resp, nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
