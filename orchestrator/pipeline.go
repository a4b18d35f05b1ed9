package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/interview-coach/coach-pipeline/clients"
	cfg "github.com/interview-coach/coach-pipeline/config"
	"github.com/interview-coach/coach-pipeline/rubric"
	"github.com/interview-coach/coach-pipeline/scoring"
)

// fallbackDurationS is used when the ASR service reports no duration.
const fallbackDurationS = 60.0

type Pipeline struct {
	cfg      *cfg.Root
	http     *clients.HTTP
	analyzer *scoring.Analyzer
	bank     *rubric.Bank
	store    Store
	log      *logrus.Entry
	now      func() time.Time
}

func NewPipeline(c *cfg.Root, analyzer *scoring.Analyzer, bank *rubric.Bank, store Store, log *logrus.Entry) *Pipeline {
	return &Pipeline{
		cfg:      c,
		http:     clients.NewHTTP(cfg.DurSeconds(c.Services.ASR.Timeout)),
		analyzer: analyzer,
		bank:     bank,
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// Run transcribes the job's audio, scores it against the question's rubric
// and saves the record. A storage failure still returns the record along
// with the error.
func (p *Pipeline) Run(ctx context.Context, job Job) (*Record, error) {
	q, err := p.bank.Lookup(job.Role, job.QuestionID)
	if err != nil {
		return nil, err
	}
	if job.SessionID == "" {
		job.SessionID = uuid.NewString()
	}
	log := p.log.WithFields(logrus.Fields{"session": job.SessionID, "role": q.Role, "question": q.ID})

	start := time.Now()
	asr, err := p.http.ASR(ctx, p.cfg.Services.ASR.URL, job.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", job.AudioPath, err)
	}
	dur := asr.DurationS()
	if dur <= 0 {
		log.Warnf("asr reported no duration, assuming %.0fs", fallbackDurationS)
		dur = fallbackDurationS
	}
	log.WithFields(logrus.Fields{"language": asr.Language, "duration_s": dur, "elapsed": time.Since(start)}).Info("transcribed")

	rec, err := p.score(ctx, job.SessionID, q, asr.Text(), dur)
	if err != nil {
		return nil, err
	}
	rec.Language = asr.Language

	if err := p.Save(ctx, rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// AnalyzeText scores a transcript without calling the ASR service and
// without saving.
func (p *Pipeline) AnalyzeText(ctx context.Context, job TextJob) (*Record, error) {
	q := rubric.Question{Role: job.Role, ID: job.QuestionID, KeyPoints: rubric.CleanKeyPoints(job.KeyPoints)}
	if len(job.KeyPoints) == 0 {
		var err error
		if q, err = p.bank.Lookup(job.Role, job.QuestionID); err != nil {
			return nil, err
		}
	}
	if job.SessionID == "" {
		job.SessionID = uuid.NewString()
	}
	return p.score(ctx, job.SessionID, q, job.Transcript, job.DurationS)
}

func (p *Pipeline) score(ctx context.Context, sessionID string, q rubric.Question, transcript string, durationS float64) (*Record, error) {
	metrics, err := p.analyzer.Analyze(ctx, scoring.Input{
		Transcript: transcript,
		Role:       q.Role,
		KeyPoints:  q.KeyPoints,
		DurationS:  durationS,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze session %s: %w", sessionID, err)
	}
	p.log.WithFields(logrus.Fields{
		"session":  sessionID,
		"overall":  metrics.Overall,
		"coverage": metrics.Coverage.Score,
		"wpm":      metrics.WPM,
		"fillers":  metrics.Filler.Total,
	}).Info("scored")

	return &Record{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Role:       q.Role,
		QuestionID: q.ID,
		Question:   q.Text,
		Transcript: transcript,
		DurationS:  durationS,
		Metrics:    metrics,
		CreatedAt:  p.now(),
	}, nil
}

func (p *Pipeline) Save(ctx context.Context, rec *Record) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.Save(ctx, rec); err != nil {
		p.log.WithError(err).WithField("session", rec.SessionID).Error("saving analysis failed")
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// Report returns the flattened latest analysis of a session.
func (p *Pipeline) Report(ctx context.Context, sessionID string) (*Report, error) {
	if p.store == nil {
		return nil, ErrNoAnalysis
	}
	rec, err := p.store.Latest(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rep := NewReport(rec)
	return &rep, nil
}
