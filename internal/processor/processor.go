// Package processor runs the simulated batch over an ordered record sequence.
package processor

import (
	"math"
	"time"

	"github.com/google/uuid"

	"batch-record-processor/internal/logging"
	"batch-record-processor/internal/models"
)

// recordDelay simulates per-record work. Fixed, not configurable.
const recordDelay = 100 * time.Millisecond

// progressInterval is how often (in records) a progress entry is logged.
const progressInterval = 10

// Processor iterates records in order, counting successes and failures.
type Processor struct {
	logger *logging.Logger
	delay  time.Duration
}

// New creates a processor logging through logger.
func New(logger *logging.Logger) *Processor {
	return &Processor{
		logger: logger,
		delay:  recordDelay,
	}
}

// Process runs the batch. Records marked invalid are tallied and logged but
// never abort the run; the rest count as processed. The returned result
// always satisfies processed + errors == len(records).
func (p *Processor) Process(records []models.Record) models.ProcessingResult {
	start := time.Now()
	processed := 0
	errorCount := 0

	p.logger.Info("Starting record processing",
		logging.Int("record_count", len(records)),
		logging.String("process_id", uuid.New().String()))

	for i, record := range records {
		// Simulate processing time
		time.Sleep(p.delay)

		// Log progress for long-running batches
		if (i+1)%progressInterval == 0 {
			p.logger.Info("Processing progress",
				logging.Int("processed", i+1),
				logging.Int("total", len(records)),
				logging.Float64("elapsed_sec", round2(time.Since(start).Seconds())))
		}

		if record.IsInvalid() {
			errorCount++
			recordID := record.ID
			if recordID == "" {
				recordID = "unknown"
			}
			p.logger.Error("Failed to process record",
				logging.String("record_id", recordID),
				logging.Error(models.InvalidRecordError(record)))
			continue
		}

		processed++
	}

	duration := time.Since(start).Seconds()
	throughput := 0.0
	if duration > 0 {
		throughput = round2(float64(processed) / duration)
	}

	p.logger.Info("Completed record processing",
		logging.Int("processed_count", processed),
		logging.Int("error_count", errorCount),
		logging.Float64("duration_sec", round2(duration)),
		logging.Float64("throughput", throughput))

	return models.ProcessingResult{
		Processed:   processed,
		Errors:      errorCount,
		DurationSec: round2(duration),
	}
}

// round2 rounds v to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
