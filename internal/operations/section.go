package operations

import (
	"context"
	"time"
)

// Section is one independent analysis of the film table
type Section interface {
	// ID returns the unique identifier used on the command line
	ID() string

	// Name returns the human-readable title
	Name() string

	// Execute computes the aggregate and writes the section artifacts
	Execute(ctx context.Context, env *Environment) (*Outcome, error)
}

// Outcome describes what a section produced
type Outcome struct {
	RowsIn    int      `json:"rows_in"`
	RowsOut   int      `json:"rows_out"`
	Artifacts []string `json:"artifacts"`
	Tables    []string `json:"tables,omitempty"`
	Summary   string   `json:"summary,omitempty"`
}

// SectionStatus represents the current status of a section
type SectionStatus string

const (
	SectionStatusPending   SectionStatus = "pending"
	SectionStatusActive    SectionStatus = "active"
	SectionStatusCompleted SectionStatus = "completed"
	SectionStatusFailed    SectionStatus = "failed"
	SectionStatusSkipped   SectionStatus = "skipped"
)

// SectionState represents the runtime state of a section
type SectionState struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    SectionStatus `json:"status"`
	StartTime *time.Time    `json:"start_time,omitempty"`
	EndTime   *time.Time    `json:"end_time,omitempty"`
	Message   string        `json:"message,omitempty"`
	Error     error         `json:"-"`
	ErrorText string        `json:"error,omitempty"`
	Outcome   *Outcome      `json:"outcome,omitempty"`
}

// NewSectionState creates a pending section state
func NewSectionState(id, name string) *SectionState {
	return &SectionState{
		ID:     id,
		Name:   name,
		Status: SectionStatusPending,
	}
}

// Start marks the section as active and sets the start time
func (s *SectionState) Start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = SectionStatusActive
}

// Complete marks the section as completed with its outcome
func (s *SectionState) Complete(outcome *Outcome) {
	now := time.Now()
	s.EndTime = &now
	s.Status = SectionStatusCompleted
	s.Outcome = outcome
	if outcome != nil {
		s.Message = outcome.Summary
	}
}

// Fail marks the section as failed with the given error
func (s *SectionState) Fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = SectionStatusFailed
	s.Error = err
	if err != nil {
		s.ErrorText = err.Error()
	}
}

// Skip marks the section as skipped with the given reason
func (s *SectionState) Skip(reason string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = SectionStatusSkipped
	s.Message = reason
}

// Duration returns how long the section ran
func (s *SectionState) Duration() time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// ArtifactCount returns the number of charts and tables written
func (s *SectionState) ArtifactCount() int {
	if s.Outcome == nil {
		return 0
	}
	return len(s.Outcome.Artifacts) + len(s.Outcome.Tables)
}

// BaseSection provides the identity part of Section implementations
type BaseSection struct {
	id   string
	name string
}

// NewBaseSection creates a new base section
func NewBaseSection(id, name string) BaseSection {
	return BaseSection{id: id, name: name}
}

// ID returns the section ID
func (b *BaseSection) ID() string {
	if b == nil {
		return ""
	}
	return b.id
}

// Name returns the section name
func (b *BaseSection) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}
