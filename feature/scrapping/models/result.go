package models

import (
	"time"

	"scrapper/core/retry"
)

// Phase is one step of an entity pipeline.
type Phase string

const (
	PhaseCollect   Phase = "collect"
	PhaseClassify  Phase = "classify"
	PhaseConvert   Phase = "convert"
	PhaseIntegrate Phase = "integrate"
)

// Action is what integration did with a record.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

// IntegrationResult describes the row written for a record.
type IntegrationResult struct {
	Table      string `json:"table"`
	ID         uint   `json:"id"`
	Action     Action `json:"action"`
	RelatedIDs []uint `json:"related_ids,omitempty"`
	Links      []Link `json:"links,omitempty"`
}

// Link is one relation written with a record.
type Link struct {
	Kind       EntityKind `json:"kind"`
	ExternalID int        `json:"external_id"`
	Table      string     `json:"table"`
	ID         uint       `json:"id"`
	// Action is created when the related record was written by the same
	// transaction, skipped when it already existed.
	Action Action `json:"action"`
}

// ErrorInfo is the structured failure of one entity.
type ErrorInfo struct {
	Class     retry.Class     `json:"class"`
	Condition retry.Condition `json:"condition"`
	Phase     Phase           `json:"phase"`
	Message   string          `json:"message"`
	Attempts  int             `json:"attempts"`
	Status    int             `json:"status,omitempty"`
}

// ImportResult is the outcome of one entity import.
type ImportResult struct {
	Kind       EntityKind         `json:"kind"`
	ExternalID int                `json:"external_id"`
	Success    bool               `json:"success"`
	Data       *IntegrationResult `json:"data"`
	Converted  *ConvertedRecord   `json:"converted,omitempty"`
	Related    []ImportResult     `json:"related,omitempty"`
	Warnings   []Warning          `json:"warnings,omitempty"`
	Error      *ErrorInfo         `json:"error"`
	States     []JobStatus        `json:"states,omitempty"`
}

// EntityRef names one entity to import.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   int        `json:"id"`
}

// JobStatus is the state of an import job.
type JobStatus string

const (
	JobPending     JobStatus = "pending"
	JobCollecting  JobStatus = "collecting"
	JobClassifying JobStatus = "classifying"
	JobConverting  JobStatus = "converting"
	JobIntegrating JobStatus = "integrating"
	JobSucceeded   JobStatus = "succeeded"
	JobFailed      JobStatus = "failed"
	JobPartial     JobStatus = "partial"
	JobCancelled   JobStatus = "cancelled"
)

// Terminal reports whether no further transition can happen.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobSucceeded, JobFailed, JobPartial, JobCancelled:
		return true
	default:
		return false
	}
}

var transitions = map[JobStatus][]JobStatus{
	JobPending:     {JobCollecting, JobClassifying, JobConverting, JobSucceeded, JobFailed, JobPartial, JobCancelled},
	JobCollecting:  {JobClassifying, JobConverting, JobSucceeded, JobFailed, JobPartial, JobCancelled},
	JobClassifying: {JobConverting, JobFailed, JobPartial, JobCancelled},
	JobConverting:  {JobIntegrating, JobSucceeded, JobFailed, JobPartial, JobCancelled},
	JobIntegrating: {JobSucceeded, JobFailed, JobPartial, JobCancelled},
}

// CanTransition reports whether the pipeline may move from s to next.
// Records handed over by a listing start at classifying or converting, and
// previews end after converting.
func (s JobStatus) CanTransition(next JobStatus) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Stage orders the running states. Terminal states have no stage.
func (s JobStatus) Stage() int {
	switch s {
	case JobPending:
		return 0
	case JobCollecting:
		return 1
	case JobClassifying:
		return 2
	case JobConverting:
		return 3
	case JobIntegrating:
		return 4
	default:
		return -1
	}
}

// Summary counts the entities of a job.
type Summary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Errors  int `json:"errors"`
}

// BatchResult is the outcome of a job. Error is set when the job itself
// failed, e.g. a category listing that could not be collected.
type BatchResult struct {
	JobID      string         `json:"job_id"`
	Kind       EntityKind     `json:"kind,omitempty"`
	Status     JobStatus      `json:"status"`
	States     []JobStatus    `json:"states"`
	Results    []ImportResult `json:"results"`
	Summary    Summary        `json:"summary"`
	Error      *ErrorInfo     `json:"error,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
}

// Summarize counts successes and errors of results.
func Summarize(results []ImportResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Success++
		} else {
			s.Errors++
		}
	}
	return s
}

// StatusFor derives the terminal status of a batch from its summary.
func StatusFor(s Summary) JobStatus {
	switch {
	case s.Errors == 0:
		return JobSucceeded
	case s.Success == 0:
		return JobFailed
	default:
		return JobPartial
	}
}
