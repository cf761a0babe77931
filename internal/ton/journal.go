package ton

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RecordWriter receives one journal row per message.
type RecordWriter interface {
	WriteRecord(record []string) error
}

// JournalSender records every transfer request it forwards, one row per
// message, with the outcome of the send.
type JournalSender struct {
	next    Sender
	journal RecordWriter
	status  string
	logger  *zap.Logger
	now     func() time.Time
}

// NewJournalSender wraps next. okStatus is the status written for requests
// next accepted, e.g. "sent" or "logged".
func NewJournalSender(next Sender, journal RecordWriter, okStatus string, logger *zap.Logger) *JournalSender {
	return &JournalSender{
		next:    next,
		journal: journal,
		status:  okStatus,
		logger:  logger.Named("journal"),
		now:     time.Now,
	}
}

func (s *JournalSender) Send(ctx context.Context, req *TransferRequest) error {
	err := s.next.Send(ctx, req)

	status := s.status
	if err != nil {
		status = "failed: " + err.Error()
	}

	ts := s.now().UTC().Format(time.RFC3339)
	for _, msg := range req.Messages {
		var op, jettonAmount string
		if msg.Payload != nil {
			op, jettonAmount = msg.Payload.Op, msg.Payload.JettonAmount
		}
		record := []string{ts, req.ID, req.Network, req.From, op, msg.Address, msg.Amount, jettonAmount, status}
		if werr := s.journal.WriteRecord(record); werr != nil {
			// the journal never masks the send result
			s.logger.Warn("Failed to journal transfer request", zap.String("id", req.ID), zap.Error(werr))
		}
	}
	return err
}
