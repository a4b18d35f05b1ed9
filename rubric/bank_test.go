package rubric_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/interview-coach/coach-pipeline/rubric"
)

func TestDefaultLookup(t *testing.T) {
	b := rubric.Default()
	q, err := b.Lookup("swe", 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"root cause analysis", "debugging steps", "tools used", "impact", "lesson learned"}
	if !reflect.DeepEqual(q.KeyPoints, want) {
		t.Errorf("key points: got %v", q.KeyPoints)
	}
	if q.Role != "SWE" {
		t.Errorf("role: got %q", q.Role)
	}
	if len(b.Questions("SWE")) != 3 {
		t.Errorf("want 3 SWE questions, got %d", len(b.Questions("SWE")))
	}
}

func TestLookupMissing(t *testing.T) {
	_, err := rubric.Default().Lookup("PM", 1)
	if !errors.Is(err, rubric.ErrQuestionNotFound) {
		t.Errorf("got %v, want ErrQuestionNotFound", err)
	}
}

func TestCleanKeyPoints(t *testing.T) {
	got := rubric.CleanKeyPoints([]string{"  impact ", "", "Impact", "root  cause\tanalysis", "   "})
	want := []string{"impact", "root cause analysis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	body := `roles:
  pm:
    - id: 7
      text: "  Walk me through a launch.  "
      key_points: ["goal", "", "metrics", "Goal"]
  SWE:
    - id: 1
      text: Describe a system you designed.
      key_points: [requirements]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := rubric.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	q, err := b.Lookup("PM", 7)
	if err != nil {
		t.Fatal(err)
	}
	if q.Text != "Walk me through a launch." || !reflect.DeepEqual(q.KeyPoints, []string{"goal", "metrics"}) {
		t.Errorf("got %+v", q)
	}
	if got := b.Roles(); !reflect.DeepEqual(got, []string{"PM", "SWE"}) {
		t.Errorf("roles: got %v", got)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	body := `roles:
  SWE:
    - {id: 1, text: a, key_points: [x]}
    - {id: 1, text: b, key_points: [y]}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := rubric.Load(path); err == nil {
		t.Error("expected duplicate id error")
	}
}
