package domain

import "time"

// BatchOptions bounds the work of one ingestion batch
type BatchOptions struct {
	BatchSize       int           // number of feeds sampled per batch
	MaxItemsPerFeed int           // items taken from the head of each feed
	InterItemDelay  time.Duration // minimal spacing between extraction calls
}

// BatchSummary is the result of one batch, returned to the trigger caller
type BatchSummary struct {
	RunID      string        `json:"run_id"`
	Success    bool          `json:"success"`
	Feeds      int           `json:"feeds"`
	Processed  int           `json:"processed"`
	Inserted   int           `json:"inserted"`
	Duplicates int           `json:"duplicates"`
	Skipped    int           `json:"skipped"`
	Errors     int           `json:"errors"`
	Message    string        `json:"message"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
}
