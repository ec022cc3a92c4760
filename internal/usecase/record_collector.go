package usecase

import (
	"context"

	"VitalPull/internal/domain/models"
	drepo "VitalPull/internal/domain/repository"
	mid "VitalPull/internal/middleware"
)

// RecordCollector pulls records from the wearable stream and feeds them
// through the realtime pipeline into the processor.
type RecordCollector struct {
	stream  drepo.TelemetryStream
	proc    *RecordProcessor
	metrics drepo.Metrics
	pipe    *mid.RealtimePipeline
}

func NewRecordCollector(stream drepo.TelemetryStream, proc *RecordProcessor, metrics drepo.Metrics, pipe *mid.RealtimePipeline) *RecordCollector {
	return &RecordCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected reports whether the vendor stream is up.
func (c *RecordCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *RecordCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	recCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, recCh, errCh)
	return nil
}

func (c *RecordCollector) consume(ctx context.Context, recCh <-chan *models.Record, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case rec := <-recCh:
			if rec == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, rec)
			} else {
				_ = c.proc.Process(ctx, rec)
			}
		}
	}
}

// Processor returns the underlying RecordProcessor for lifecycle management.
func (c *RecordCollector) Processor() *RecordProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *RecordCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
