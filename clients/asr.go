package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type TransSeg struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type ASRResp struct {
	Transcript string     `json:"transcript"`
	Duration   float64    `json:"duration"`
	Language   string     `json:"language"`
	Segments   []TransSeg `json:"segments"`
}

// Text is the transcript, joined from segments when the service sent none.
func (r *ASRResp) Text() string {
	if t := strings.TrimSpace(r.Transcript); t != "" {
		return t
	}
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// DurationS is the reported duration, or the end of the last segment.
func (r *ASRResp) DurationS() float64 {
	if r.Duration > 0 {
		return r.Duration
	}
	if n := len(r.Segments); n > 0 {
		return r.Segments[n-1].End
	}
	return 0
}

func (h *HTTP) ASR(ctx context.Context, url, audioPath string) (*ASRResp, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	n, err := io.Copy(fw, fd)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("asr: %s is empty", audioPath)
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url+"/transcribe", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("asr %s: %s", resp.Status, string(body))
	}

	var out ASRResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}
	return &out, nil
}
