// Package schema has configs, models and constants for all parts of usdcheck.
package schema

import "time"

// Outcome is the result of one validation check against an opened scene.
// It is created once by a check and never mutated afterwards.
type Outcome struct {
	ID      CheckID `json:"id"`      // Which check produced this outcome
	Passed  bool    `json:"passed"`  // Whether the check passed
	Message string  `json:"message"` // Diagnostic text, possibly multi-line
}

// Report collects everything one validation run produced.
type Report struct {
	ScenePath string        `json:"scene_path"`
	OpenedOK  bool          `json:"opened_ok"`
	OpenError string        `json:"open_error,omitempty"`
	Outcomes  []Outcome     `json:"outcomes"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Passed returns the number of passing outcomes.
func (r *Report) Passed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failing outcomes.
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Passed()
}

// Verdict returns the closing sentence for the run summary.
func (r *Report) Verdict() string {
	passed, failed := r.Passed(), r.Failed()
	switch {
	case failed > 0 && passed > 0:
		return "Some checks failed. Please review the scene and address the failing checks."
	case failed > 0:
		return "All checks failed. The scene may have serious issues. Please review it thoroughly."
	default:
		return "Congratulations, all checks were successful!"
	}
}
