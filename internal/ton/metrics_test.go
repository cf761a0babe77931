package ton

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type transferCall struct {
	op  string
	err error
}

type observed struct {
	mu        sync.Mutex
	transfers []transferCall
	requests  []string
	failed    int
}

func (o *observed) RecordTransfer(_ context.Context, op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transfers = append(o.transfers, transferCall{op: op, err: err})
}

func (o *observed) ObserveRequest(endpoint string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.requests = append(o.requests, endpoint)
	if err != nil {
		o.failed++
	}
}

func TestMetricsSenderRecordsOp(t *testing.T) {
	next := &recordingSender{}
	rec := &observed{}
	s := NewMetricsSender(next, rec)

	req := &TransferRequest{Messages: []Message{{Address: "EQJetton", Payload: &Payload{Op: OpSell}}}}
	require.NoError(t, s.Send(context.Background(), req))

	require.Len(t, rec.transfers, 1)
	assert.Equal(t, OpSell, rec.transfers[0].op)
	assert.NoError(t, rec.transfers[0].err)
	assert.Len(t, next.reqs, 1)
}

func TestMetricsSenderPassesError(t *testing.T) {
	boom := errors.New("bridge down")
	rec := &observed{}
	s := NewMetricsSender(&recordingSender{err: boom}, rec)

	err := s.Send(context.Background(), &TransferRequest{Messages: []Message{{Address: "EQMinter"}}})
	assert.ErrorIs(t, err, boom)

	require.Len(t, rec.transfers, 1)
	assert.Equal(t, "transfer", rec.transfers[0].op)
	assert.ErrorIs(t, rec.transfers[0].err, boom)
}

func TestToncenterObserver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v3/jetton/masters" {
			_, _ = w.Write([]byte(`{"jetton_masters":[{"address":"EQMinter","total_supply":"1"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rec := &observed{}
	c := NewToncenter(srv.URL, "", 0, fastRetry, zap.NewNop())
	c.SetObserver(rec)

	_, err := c.JettonMaster(context.Background(), "EQMinter")
	require.NoError(t, err)
	_, err = c.JettonWallet(context.Background(), "EQOwner", "EQMinter")
	require.Error(t, err)

	assert.Equal(t, []string{"/api/v3/jetton/masters", "/api/v3/jetton/wallets"}, rec.requests)
	assert.Equal(t, 1, rec.failed)
}
