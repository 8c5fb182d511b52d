package model

// BatchStatus tracks a whole batch through the pipeline.
type BatchStatus string

// Batch status constants.
const (
	BatchPending    BatchStatus = "pending"
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// BatchProgress is the pollable progress document overwritten after every
// item completion. It is the durable source of truth for how far along a
// batch is, readable by a stateless external poller even after a process
// restart. The JSON field names are a published contract.
type BatchProgress struct {
	ProcessedIdeas         int         `json:"processed_ideas"`
	TotalIdeas             int         `json:"total_ideas"`
	Status                 BatchStatus `json:"status"`
	EstimatedTimeRemaining string      `json:"estimated_time_remaining"`
	Error                  string      `json:"error,omitempty"`
}
