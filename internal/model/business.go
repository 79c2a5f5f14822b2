package model

import "time"

// Business represents one raw listing plus the contact fields derived by the
// enrichment pipeline. Name is the upstream dedup key and is never re-derived.
type Business struct {
	Name           string  `json:"name"`
	Address        string  `json:"address,omitempty"`
	Website        string  `json:"website,omitempty"`
	RawPhone       string  `json:"phone_number,omitempty"`
	ReviewsCount   int     `json:"reviews_count,omitempty"`
	ReviewsAverage float64 `json:"reviews_average,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`

	// Derived fields. Phone never appears in AdditionalPhones by digit
	// identity; Email never appears in AdditionalEmails case-insensitively.
	Phone            string   `json:"phone,omitempty"`
	AdditionalPhones []string `json:"additional_phones,omitempty"`
	Email            string   `json:"email,omitempty"`
	AdditionalEmails []string `json:"additional_emails,omitempty"`
}

// RunStatus represents the current state of an enrichment run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// EnrichmentRun records one pipeline invocation over an input file or query.
type EnrichmentRun struct {
	ID        string     `json:"id"`
	Input     string     `json:"input"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult summarizes the outcome of a run.
type RunResult struct {
	Records     int    `json:"records"`
	PhonesFound int    `json:"phones_found"`
	EmailsFound int    `json:"emails_found"`
	FetchFailed int    `json:"fetch_failed"`
	Output      string `json:"output,omitempty"`
	Error       string `json:"error,omitempty"`
}
