package operations

import (
	"time"
)

// Report holds the state of every section requested in a run
type Report struct {
	RunID     string          `json:"run_id"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Sections  []*SectionState `json:"sections"`
}

// NewReport creates an empty report
func NewReport(runID string) *Report {
	return &Report{
		RunID:     runID,
		StartTime: time.Now(),
		Sections:  make([]*SectionState, 0),
	}
}

// Add appends a section state
func (r *Report) Add(state *SectionState) {
	r.Sections = append(r.Sections, state)
}

// Finish stamps the end time
func (r *Report) Finish() {
	r.EndTime = time.Now()
}

// Get returns the state of a section, or nil
func (r *Report) Get(id string) *SectionState {
	for _, s := range r.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Duration returns the wall time of the run
func (r *Report) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

// Count returns the number of sections with the given status
func (r *Report) Count(status SectionStatus) int {
	n := 0
	for _, s := range r.Sections {
		if s.Status == status {
			n++
		}
	}
	return n
}

// HasFailures reports whether any section failed
func (r *Report) HasFailures() bool {
	return r.Count(SectionStatusFailed) > 0
}

// Errors collects section errors
func (r *Report) Errors() *ErrorList {
	list := &ErrorList{}
	for _, s := range r.Sections {
		if s.Error != nil {
			list.Add(WrapError(s.Error, s.ID))
		}
	}
	return list
}

// Artifacts returns every chart and table written, in section order
func (r *Report) Artifacts() []string {
	var out []string
	for _, s := range r.Sections {
		if s.Outcome == nil {
			continue
		}
		out = append(out, s.Outcome.Artifacts...)
		out = append(out, s.Outcome.Tables...)
	}
	return out
}
