// Package provider holds the error taxonomy and policy constants shared by
// the oracle provider registries.
package provider

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Errors returned by registry operations. Lookup failures are always returned
// typed, never swallowed; only pure getters report absence without an error.
var (
	// ErrPriceFeedNotFound is returned when an operation references an
	// address with no retained record.
	ErrPriceFeedNotFound = errors.New("price feed not found")

	// ErrInvalidPriceData is reserved for malformed configurations.
	ErrInvalidPriceData = errors.New("invalid price data")

	// ErrSerialization is reserved for account encode failures. Current
	// layouts are fixed-size, so it is unreachable today.
	ErrSerialization = errors.New("failed to serialize account")

	// ErrProviderNotAvailable is reserved for provider-disable conditions.
	ErrProviderNotAvailable = errors.New("provider not available")
)

// NotFound wraps ErrPriceFeedNotFound with the offending feed address.
func NotFound(feed solana.PublicKey) error {
	return fmt.Errorf("%w: %s", ErrPriceFeedNotFound, feed)
}

// CrashConfMultiplier widens a feed's confidence/deviation on a simulated
// crash, modeling increased uncertainty after a shock. Fixed policy constant.
const CrashConfMultiplier = 5

// FeedLamports is the balance every fabricated feed account carries.
const FeedLamports = 1_000_000_000
