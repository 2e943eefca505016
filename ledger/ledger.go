// Package ledger defines the narrow contracts the oracle providers consume
// from the execution substrate: a logical clock and a full-buffer account
// write. Anything that satisfies Sandbox can back the providers; the sandbox
// package ships the in-repo implementation.
package ledger

import (
	"github.com/gagliardetto/solana-go"
)

// Clock is a snapshot of the substrate's logical time.
type Clock struct {
	Slot          uint64
	UnixTimestamp int64
}

// Account is the byte-level account record written to the substrate.
type Account struct {
	Lamports   uint64
	Data       []byte
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
}

// Sandbox is the substrate handle held by a provider registry.
//
// A registry holds its handle exclusively for its lifetime: at most one
// registry (or one façade owning several registries) may write through a
// given handle at a time. This is a handle-passing rule, not a runtime lock.
type Sandbox interface {
	// SetAccount replaces the full account content at addr. A failure
	// indicates a misconfigured or exhausted substrate, not a domain
	// condition; callers treat it as fatal.
	SetAccount(addr solana.PublicKey, account Account) error
	// Clock returns the current logical time.
	Clock() Clock
}
