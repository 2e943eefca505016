// Package sandbox is the in-repo ledger substrate: it stores raw account
// bytes keyed by address and exposes a controllable logical clock. Oracle
// provider registries write through it via the ledger.Sandbox contract.
package sandbox

import (
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/solmock/shadow-oracle/ledger"
)

// Sandbox is an in-memory account store with an optional pebble-backed
// persistence layer. It is single-writer by convention: hand its handle to at
// most one registry façade at a time.
type Sandbox struct {
	accounts map[solana.PublicKey]ledger.Account
	clock    *ManualClock
	store    *Store
	log      *zap.Logger
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithLogger enables write tracing through the given logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Sandbox) { s.log = log }
}

// WithClock replaces the default manual clock.
func WithClock(clock *ManualClock) Option {
	return func(s *Sandbox) { s.clock = clock }
}

// New creates an in-memory sandbox.
func New(opts ...Option) *Sandbox {
	s := &Sandbox{
		accounts: make(map[solana.PublicKey]ledger.Account),
		clock:    NewManualClock(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a sandbox whose account writes also persist to a pebble store
// at path. Reads fall back to the store for addresses written by an earlier
// session. Use for heavy suites that fabricate accounts once and reuse them.
func Open(path string, opts ...Option) (*Sandbox, error) {
	s := New(opts...)
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	s.store = store
	return s, nil
}

// SetAccount replaces the full account content at addr. The stored data is a
// private copy, so callers may reuse their buffer.
func (s *Sandbox) SetAccount(addr solana.PublicKey, account ledger.Account) error {
	data := make([]byte, len(account.Data))
	copy(data, account.Data)
	account.Data = data

	s.accounts[addr] = account
	if s.store != nil {
		if err := s.store.Put(addr, account); err != nil {
			return err
		}
	}
	s.log.Debug("account written",
		zap.Stringer("address", addr),
		zap.Stringer("owner", account.Owner),
		zap.Int("bytes", len(account.Data)))
	return nil
}

// GetAccount returns the account at addr, if any.
func (s *Sandbox) GetAccount(addr solana.PublicKey) (ledger.Account, bool) {
	if acct, ok := s.accounts[addr]; ok {
		return acct, true
	}
	if s.store != nil {
		acct, ok, err := s.store.Get(addr)
		if err == nil && ok {
			return acct, true
		}
	}
	return ledger.Account{}, false
}

// Clock returns the current logical time.
func (s *Sandbox) Clock() ledger.Clock {
	return s.clock.Snapshot()
}

// ManualClock exposes the underlying clock so tests can advance or warp it.
func (s *Sandbox) ManualClock() *ManualClock {
	return s.clock
}

// Close releases the persistent store, if any.
func (s *Sandbox) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
