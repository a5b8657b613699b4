package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/Ramsey-B/fern/pkg/tracing"
)

// BatchResult summarizes a batch ingestion. Rejections are indexed by the
// record's position in the input so callers can tie them back to the export.
type BatchResult struct {
	Accepted   int
	Rejected   int
	Failed     int
	Rejections map[int]*RejectionError
}

// ProcessBatch ingests a slice of legacy records concurrently. Records are
// independent, so per-record failures never stop the batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, legacy []map[string]any, source string) BatchResult {
	ctx, span := tracing.StartSpan(ctx, "pipeline.ProcessBatch")
	defer span.End()

	type outcome struct {
		index     int
		rejection *RejectionError
		err       error
	}

	jobs := make(chan int)
	outcomes := make(chan outcome, len(legacy))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				_, err := p.Ingest(ctx, legacy[i], source)
				out := outcome{index: i, err: err}
				if err != nil {
					var rejection *RejectionError
					if errors.As(err, &rejection) {
						out.rejection = rejection
						out.err = nil
					}
				}
				outcomes <- out
			}
		}()
	}

	for i := range legacy {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	result := BatchResult{Rejections: make(map[int]*RejectionError)}
	for out := range outcomes {
		switch {
		case out.rejection != nil:
			result.Rejected++
			result.Rejections[out.index] = out.rejection
		case out.err != nil:
			result.Failed++
		default:
			result.Accepted++
		}
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"source":   source,
		"total":    len(legacy),
		"accepted": result.Accepted,
		"rejected": result.Rejected,
		"failed":   result.Failed,
	}).Info("Batch processed")

	return result
}
