// ==================================
// File: internal/ton/session.go
// ==================================
package ton

import (
	"errors"
	"strings"
	"sync"
)

// ErrNotConnected is returned when a contract call needs a wallet session.
var ErrNotConnected = errors.New("wallet is not connected")

// Session is the wallet connection shared by the widget and the contracts.
type Session struct {
	mu      sync.RWMutex
	address string
}

// NewSession creates a session; an empty address means disconnected.
func NewSession(address string) *Session {
	return &Session{address: strings.TrimSpace(address)}
}

// Connect attaches the wallet with the given address.
func (s *Session) Connect(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = strings.TrimSpace(address)
}

// Disconnect drops the wallet.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = ""
}

// Connected reports whether a wallet is attached.
func (s *Session) Connected() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address != ""
}

// Address returns the connected wallet address or "".
func (s *Session) Address() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

// ShortAddress returns the address shortened for display.
func (s *Session) ShortAddress() string {
	addr := s.Address()
	if len(addr) > 12 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}
