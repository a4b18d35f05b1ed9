package clients

import (
	"net/http"
	"time"
)

// HTTP talks to the ML sidecars (ASR, sentence embeddings).
type HTTP struct{ c *http.Client }

func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTP{c: &http.Client{Timeout: timeout}}
}
