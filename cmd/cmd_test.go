package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/interview-coach/coach-pipeline/orchestrator"
	"github.com/interview-coach/coach-pipeline/scoring"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	outputs := filepath.Join(dir, "outputs")
	path := filepath.Join(dir, "config.yaml")
	body := "pipeline:\n  log_level: error\nembedding:\n  backend: hash\npaths:\n  outputs: " + outputs + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, outputs
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeTextCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	out, err := execute(t, "", "--config", cfgPath, "analyze-text",
		"--transcript", "I did root cause analysis and it had impact.",
		"--duration", "4")
	if err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	var res scoring.AnalysisResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Role != "SWE" || res.WPM != 135 {
		t.Errorf("got %+v", res)
	}
	if len(res.Coverage.Matched) < 2 {
		t.Errorf("matched %v", res.Coverage.Matched)
	}
}

func TestAnalyzeTextStdinAndSave(t *testing.T) {
	cfgPath, outputs := writeTestConfig(t)
	out, err := execute(t, "um, like, you know, basically, um\n", "--config", cfgPath, "analyze-text",
		"--key-point", "impact", "--session", "s-1", "--save", "--duration", "0")
	if err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	var rec orchestrator.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rec.SessionID != "s-1" || rec.Metrics.Filler.Total != 5 {
		t.Errorf("got %+v", rec)
	}
	if entries, _ := os.ReadDir(filepath.Join(outputs, "s-1")); len(entries) != 1 {
		t.Errorf("want one stored analysis, got %d", len(entries))
	}

	out, err = execute(t, "", "--config", cfgPath, "report", "s-1")
	if err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	var rep orchestrator.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rep.FillerTotal != 5 || rep.SessionID != "s-1" {
		t.Errorf("report %+v", rep)
	}
}

func TestAnalyzeTextRejectsBothSources(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	if _, err := execute(t, "", "--config", cfgPath, "analyze-text", "--transcript", "x", "--file", "y.txt"); err == nil {
		t.Error("expected error")
	}
}

func TestQuestionsCommand(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	out, err := execute(t, "", "--config", cfgPath, "questions", "--role", "swe")
	if err != nil {
		t.Fatalf("%v: %s", err, out)
	}
	if !strings.Contains(out, "Describe a system you designed.") || !strings.Contains(out, "trade-offs") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestReportMissingSession(t *testing.T) {
	cfgPath, _ := writeTestConfig(t)
	_, err := execute(t, "", "--config", cfgPath, "report", "nobody")
	if err == nil || !strings.Contains(err.Error(), "no analysis") {
		t.Errorf("got %v", err)
	}
}
