package ton

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var fastRetry = RetryOptions{MaxTries: 3, InitialInterval: time.Millisecond, MaxElapsedTime: time.Second}

func testRequest() *TransferRequest {
	return &TransferRequest{
		ID:         "req-1",
		From:       "EQOwner",
		Network:    Mainnet,
		ValidUntil: 1700000000,
		Messages: []Message{{
			Address: "EQMinter",
			Amount:  "1000000000",
			Payload: &Payload{Op: OpBuy, QueryID: 7},
		}},
	}
}

func TestBridgeSenderDelivers(t *testing.T) {
	var got TransferRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewBridgeSender(srv.URL, fastRetry, zaptest.NewLogger(t))
	require.NoError(t, s.Send(context.Background(), testRequest()))

	assert.Equal(t, "req-1", got.ID)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "1000000000", got.Messages[0].Amount)
	assert.Equal(t, OpBuy, got.Messages[0].Payload.Op)
}

func TestBridgeSenderRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewBridgeSender(srv.URL, fastRetry, zap.NewNop())
	require.NoError(t, s.Send(context.Background(), testRequest()))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestBridgeSenderGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewBridgeSender(srv.URL, fastRetry, zap.NewNop())
	err := s.Send(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "req-1")
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestBridgeSenderClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewBridgeSender(srv.URL, fastRetry, zap.NewNop())
	err := s.Send(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad payload")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(zaptest.NewLogger(t))
	assert.NoError(t, s.Send(context.Background(), testRequest()))
}
