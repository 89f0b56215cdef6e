package customHttpClient

import (
	"net/http"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
)

// one transport for every llm client so idle connections are reused across calls
var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
	ForceAttemptHTTP2:   true,
}

// NewClient returns a client on the shared transport. A zero timeout means no
// client side limit, leaving the deadline to the request context.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
