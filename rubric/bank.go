// Package rubric holds the interview question bank and the key points each
// answer is scored against.
package rubric

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrQuestionNotFound = errors.New("question not found")

type Question struct {
	ID        int      `yaml:"id" json:"id"`
	Role      string   `yaml:"-" json:"role"`
	Text      string   `yaml:"text" json:"text"`
	KeyPoints []string `yaml:"key_points" json:"key_points"`
}

// Bank maps an upper-cased role to its questions.
type Bank struct {
	roles map[string][]Question
}

type bankFile struct {
	Roles map[string][]Question `yaml:"roles"`
}

// Default returns the built-in SWE questions.
func Default() *Bank {
	b := &Bank{roles: map[string][]Question{}}
	b.add("SWE", Question{ID: 1, Text: "Tell me about a challenging bug you fixed.",
		KeyPoints: []string{"root cause analysis", "debugging steps", "tools used", "impact", "lesson learned"}})
	b.add("SWE", Question{ID: 2, Text: "Describe a system you designed.",
		KeyPoints: []string{"requirements", "trade-offs", "scalability", "bottlenecks", "monitoring"}})
	b.add("SWE", Question{ID: 3, Text: "Tell me about a time you improved a process.",
		KeyPoints: []string{"baseline", "change made", "measurement", "impact", "follow-up"}})
	return b
}

// Load reads a YAML question bank:
//
//	roles:
//	  SWE:
//	    - id: 1
//	      text: Tell me about a challenging bug you fixed.
//	      key_points: [root cause analysis, impact]
func Load(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw bankFile
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("rubric decode %s: %w", path, err)
	}
	b := &Bank{roles: map[string][]Question{}}
	for role, qs := range raw.Roles {
		for _, q := range qs {
			if q.ID <= 0 {
				return nil, fmt.Errorf("rubric %s: role %s: question %q has no id", path, role, q.Text)
			}
			if _, err := b.Lookup(role, q.ID); err == nil {
				return nil, fmt.Errorf("rubric %s: role %s: duplicate question id %d", path, role, q.ID)
			}
			b.add(role, q)
		}
	}
	return b, nil
}

func (b *Bank) add(role string, q Question) {
	role = normRole(role)
	q.Role = role
	q.Text = strings.TrimSpace(q.Text)
	q.KeyPoints = CleanKeyPoints(q.KeyPoints)
	b.roles[role] = append(b.roles[role], q)
}

// Lookup finds a question by role (case-insensitive) and id.
func (b *Bank) Lookup(role string, id int) (Question, error) {
	for _, q := range b.roles[normRole(role)] {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, fmt.Errorf("%w: role %s id %d", ErrQuestionNotFound, normRole(role), id)
}

// Questions lists the questions for role, or for every role when role is
// empty, sorted by role then id.
func (b *Bank) Questions(role string) []Question {
	var out []Question
	for r, qs := range b.roles {
		if role != "" && r != normRole(role) {
			continue
		}
		out = append(out, qs...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (b *Bank) Roles() []string {
	out := make([]string, 0, len(b.roles))
	for r := range b.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// CleanKeyPoints trims entries and drops blanks and case-insensitive
// duplicates, keeping the first spelling.
func CleanKeyPoints(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, kp := range in {
		kp = strings.Join(strings.Fields(kp), " ")
		if kp == "" {
			continue
		}
		key := strings.ToLower(kp)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kp)
	}
	return out
}

func normRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
