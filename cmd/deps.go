package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/interview-coach/coach-pipeline/clients"
	cfg "github.com/interview-coach/coach-pipeline/config"
	"github.com/interview-coach/coach-pipeline/orchestrator"
	"github.com/interview-coach/coach-pipeline/rubric"
	"github.com/interview-coach/coach-pipeline/scoring"
)

func newEmbedder(conf *cfg.Root, log *logrus.Logger) scoring.Embedder {
	if conf.Embedding.Backend == "hash" {
		return scoring.NewHashEmbedder(conf.Embedding.Dimensions)
	}
	url := conf.Services.Embedding.URL
	timeout := cfg.DurSeconds(conf.Services.Embedding.Timeout)
	retry := cfg.DurSeconds(conf.Embedding.InitRetry)
	return scoring.NewLazyEmbedder("embedding@"+url, retry, func(ctx context.Context) (scoring.Embedder, error) {
		elog := log.WithField("component", "embedding")
		c := clients.NewEmbeddingClient(clients.NewHTTP(timeout), url, elog)
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		h, err := c.Health(ctx)
		if err != nil {
			return nil, err
		}
		elog.WithField("model", h.Model).Info("embedding backend ready")
		return c, nil
	})
}

func newAnalyzer(conf *cfg.Root, log *logrus.Logger) *scoring.Analyzer {
	return scoring.NewAnalyzer(newEmbedder(conf, log),
		scoring.WithPolicy(conf.ScoringPolicy()),
		scoring.WithFillers(conf.Scoring.Fillers),
		scoring.WithImportance(conf.Scoring.Importance),
		scoring.WithLogger(log.WithField("component", "scoring")),
	)
}

func loadBank(conf *cfg.Root) (*rubric.Bank, error) {
	if conf.Paths.Rubrics == "" {
		return rubric.Default(), nil
	}
	return rubric.Load(conf.Paths.Rubrics)
}

// newStore returns the configured store and a close func.
func newStore(ctx context.Context, conf *cfg.Root) (orchestrator.Store, func(), error) {
	switch conf.Store.Backend {
	case "redis":
		rc := conf.Store.Redis
		client := redis.NewClient(&redis.Options{Addr: rc.Addr, Password: rc.Password, DB: rc.DB})
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", rc.Addr, err)
		}
		return orchestrator.NewRedisStore(client, rc.Prefix, cfg.DurSeconds(rc.TTL)), func() { client.Close() }, nil
	default:
		return orchestrator.NewFileStore(conf.Paths.Outputs), func() {}, nil
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
