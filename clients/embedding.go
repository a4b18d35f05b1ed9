package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// --- Sentence embeddings (/embed) ---
type EmbedReq struct {
	Texts []string `json:"texts"`
}

type EmbedResp struct {
	Embeddings [][]float32 `json:"embeddings"`
	Model      string      `json:"model"`
}

type HealthResp struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// EmbeddingClient is a scoring.Embedder backed by the embedding sidecar.
type EmbeddingClient struct {
	http *HTTP
	url  string
	log  *logrus.Entry
}

func NewEmbeddingClient(h *HTTP, url string, log *logrus.Entry) *EmbeddingClient {
	return &EmbeddingClient{http: h, url: url, log: log}
}

func (e *EmbeddingClient) Name() string { return "embedding@" + e.url }

func (e *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	b, _ := json.Marshal(EmbedReq{Texts: texts})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+"/embed", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embed %s: %s", resp.Status, string(body))
	}

	var out EmbedResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embed decode: %w", err)
	}
	if len(out.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(out.Embeddings), len(texts))
	}
	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"texts":   len(texts),
			"model":   out.Model,
			"elapsed": time.Since(start),
		}).Debug("embedded batch")
	}
	return out.Embeddings, nil
}

// Health checks that the sidecar is up and has its model loaded.
func (e *EmbeddingClient) Health(ctx context.Context) (*HealthResp, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.http.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding health %s: %s", resp.Status, string(body))
	}
	var out HealthResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embedding health decode: %w", err)
	}
	if out.Status != "" && out.Status != "ok" {
		return nil, fmt.Errorf("embedding health: status %q", out.Status)
	}
	return &out, nil
}
