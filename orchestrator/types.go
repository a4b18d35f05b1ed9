package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/interview-coach/coach-pipeline/scoring"
)

var ErrNoAnalysis = errors.New("no analysis for session")

// Job is one recorded answer to transcribe and score.
type Job struct {
	SessionID  string
	AudioPath  string
	Role       string
	QuestionID int
}

// TextJob scores an already transcribed answer. KeyPoints, when set, replace
// the bank lookup by Role and QuestionID.
type TextJob struct {
	SessionID  string
	Role       string
	QuestionID int
	KeyPoints  []string
	Transcript string
	DurationS  float64
}

// Record is what gets persisted for each analysed answer.
type Record struct {
	ID         string                  `json:"id"`
	SessionID  string                  `json:"session_id"`
	Role       string                  `json:"role"`
	QuestionID int                     `json:"question_id,omitempty"`
	Question   string                  `json:"question,omitempty"`
	Transcript string                  `json:"transcript"`
	DurationS  float64                 `json:"duration_s"`
	Language   string                  `json:"language,omitempty"`
	Metrics    *scoring.AnalysisResult `json:"metrics"`
	CreatedAt  time.Time               `json:"created_at"`
}

// Report is the flattened view of a session's latest analysis.
type Report struct {
	SessionID     string    `json:"session_id"`
	Overall       float64   `json:"overall"`
	WPM           int       `json:"wpm"`
	FillerTotal   int       `json:"filler_total"`
	CoverageScore float64   `json:"coverage_score"`
	Matched       []string  `json:"matched"`
	Tips          []string  `json:"tips"`
	Transcript    string    `json:"transcript"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewReport(r *Record) Report {
	rep := Report{
		SessionID:  r.SessionID,
		Matched:    []string{},
		Tips:       []string{},
		Transcript: r.Transcript,
		CreatedAt:  r.CreatedAt,
	}
	if m := r.Metrics; m != nil {
		rep.Overall = m.Overall
		rep.WPM = m.WPM
		rep.FillerTotal = m.Filler.Total
		rep.CoverageScore = m.Coverage.Score
		if m.Coverage.Matched != nil {
			rep.Matched = m.Coverage.Matched
		}
		if m.Tips != nil {
			rep.Tips = m.Tips
		}
	}
	return rep
}

// Store persists analysis records. Latest returns ErrNoAnalysis when the
// session has none.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Latest(ctx context.Context, sessionID string) (*Record, error)
}
