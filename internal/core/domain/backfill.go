package domain

import "time"

// BackfillOptions controls a backfill run.
type BackfillOptions struct {
	DryRun bool
}

// BackfillFailure records one event the run could not post.
type BackfillFailure struct {
	EntryType EntryType `json:"entryType"`
	SourceID  int64     `json:"sourceID"`
	Reason    string    `json:"reason"`
}

// BackfillResult summarizes a backfill run.
type BackfillResult struct {
	RunID          string            `json:"runID"`
	DryRun         bool              `json:"dryRun"`
	StartedAt      time.Time         `json:"startedAt"`
	FinishedAt     time.Time         `json:"finishedAt"`
	Created        int               `json:"created"`
	AlreadyPresent int               `json:"alreadyPresent"`
	NotPostable    int               `json:"notPostable"`
	Failures       []BackfillFailure `json:"failures"`
}
