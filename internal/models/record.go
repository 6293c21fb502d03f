// Package models defines the data structures for the batch record processor.
package models

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidRecord = errors.New("invalid record format")
)

// RecordStatus is the processing status carried by a record.
type RecordStatus string

// Observed record statuses. An absent status is treated as valid.
const (
	RecordStatusValid   RecordStatus = "valid"
	RecordStatusInvalid RecordStatus = "invalid"
)

// Record is a single unit of work supplied by the caller or synthesized.
// Records are ephemeral and never persisted.
type Record struct {
	ID     string       `json:"id"`
	Value  int          `json:"value"`
	Status RecordStatus `json:"status,omitempty"`
}

// IsInvalid reports whether the record is explicitly marked invalid.
func (r Record) IsInvalid() bool {
	return r.Status == RecordStatusInvalid
}

// InvalidRecordError builds the per-record failure detail for r.
func InvalidRecordError(r Record) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, r.ID)
}

// ProcessingResult summarizes one batch run.
type ProcessingResult struct {
	Processed   int     `json:"processed"`
	Errors      int     `json:"errors"`
	DurationSec float64 `json:"duration_sec"`
}

// sampleRecordCount is the size of the demo fixture.
const sampleRecordCount = 30

// SampleRecords returns the deterministic demo fixture used when the caller
// supplies no records: 30 valid records with indices 5 and 15 forced invalid.
func SampleRecords() []Record {
	records := make([]Record, sampleRecordCount)
	for i := range records {
		records[i] = Record{
			ID:     fmt.Sprintf("rec-%d", i),
			Value:  i * 10,
			Status: RecordStatusValid,
		}
	}
	records[5].Status = RecordStatusInvalid
	records[15].Status = RecordStatusInvalid
	return records
}
