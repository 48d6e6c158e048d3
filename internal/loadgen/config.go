// Package loadgen drives a running careerlens service with synthetic
// assessments and checks that every accepted submission settles.
package loadgen

import (
	"time"

	"github.com/okian/careerlens/internal/domain/model"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL        string        // Base URL of the service
	Submissions    int           // Number of distinct submissions
	DuplicateRatio float64       // Fraction of submissions sent a second time
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	SettleTimeout  time.Duration // How long to wait for async records to settle
	PollInterval   time.Duration // Delay between record polls
	Seed           int64         // Seed for synthetic inputs
	OutputFile     string        // Optional file for generated submissions
}

// Submission is one body sent to POST /assessments/async.
type Submission struct {
	SubmissionID string `json:"submission_id"`
	CandidateID  string `json:"candidate_id"`
	model.RawAssessmentInput
}

// Ack is the response of POST /assessments/async.
type Ack struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int            `json:"generated"`
	Submitted  int            `json:"submitted"`
	Accepted   int            `json:"accepted"`
	Duplicate  int            `json:"duplicate"`
	Rejected   int            `json:"rejected"`
	Failed     int            `json:"failed"`
	Settled    int            `json:"settled"`
	ByStatus   map[string]int `json:"by_status"`
	Analytics  int            `json:"analytics_total"`
	Duration   time.Duration  `json:"duration"`
	Throughput float64        `json:"submissions_per_second"`
}
