package ton

import (
	"context"
	"time"
)

// TransferRecorder receives the outcome of every transfer request.
type TransferRecorder interface {
	RecordTransfer(ctx context.Context, op string, duration time.Duration, err error)
}

// RequestObserver receives the latency of every toncenter call.
type RequestObserver interface {
	ObserveRequest(endpoint string, duration time.Duration, err error)
}

// MetricsSender times the wrapped sender and reports each request.
type MetricsSender struct {
	next     Sender
	recorder TransferRecorder
}

// NewMetricsSender wraps next.
func NewMetricsSender(next Sender, recorder TransferRecorder) *MetricsSender {
	return &MetricsSender{next: next, recorder: recorder}
}

func (s *MetricsSender) Send(ctx context.Context, req *TransferRequest) error {
	start := time.Now()
	err := s.next.Send(ctx, req)
	s.recorder.RecordTransfer(ctx, requestOp(req), time.Since(start), err)
	return err
}

func requestOp(req *TransferRequest) string {
	for _, msg := range req.Messages {
		if msg.Payload != nil && msg.Payload.Op != "" {
			return msg.Payload.Op
		}
	}
	return "transfer"
}
