// Package price holds the provider-agnostic price configuration and the
// numeric conversions shared by all oracle providers.
package price

import (
	"github.com/gagliardetto/solana-go"
)

// Status is the trading status of a price feed.
//
// Each provider encodes this differently on the wire; the zero value is
// Trading, matching the common case for freshly created feeds.
type Status uint8

const (
	StatusTrading Status = iota
	StatusHalted
	StatusUnknown
	StatusAuction
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusTrading:
		return "trading"
	case StatusHalted:
		return "halted"
	case StatusUnknown:
		return "unknown"
	case StatusAuction:
		return "auction"
	}
	return "invalid"
}

// DefaultExpo is the price exponent used for USD feeds (price scaled by 10^8).
const DefaultExpo = -8

// DefaultDecimals is the decimal count used by providers that key their
// integer scale off a decimal count instead of an exponent.
const DefaultDecimals = 8

// Config describes a price point independently of any provider's wire format.
// Each provider converts it to its own on-chain layout.
//
// Expo and Decimals are independent knobs: some providers scale by 10^|Expo|,
// others by 10^Decimals. A Config may be handed to any provider, so both must
// be populated consistently by the caller; no cross-validation is performed.
type Config struct {
	// Price value, scaled by 10^|Expo|.
	Price int64
	// Confidence interval, scaled by 10^|Expo|.
	Conf uint64
	// Price exponent, typically -8 for USD prices.
	Expo int32
	// EMA price override; nil defaults to Price.
	EMAPrice *int64
	// EMA confidence override; nil defaults to Conf.
	EMAConf *uint64
	// Publish timestamp override; nil defaults to the sandbox clock time.
	PublishTime *int64
	// Trading status.
	Status Status
	// Decimal count for providers that scale by decimals.
	Decimals uint8
}

// Default returns a zero-price config with the standard USD scaling.
func Default() Config {
	return Config{
		Expo:     DefaultExpo,
		Status:   StatusTrading,
		Decimals: DefaultDecimals,
	}
}

// NewUSD builds a config from human-readable USD values.
//
//	// $100.50 with $0.05 confidence
//	cfg := price.NewUSD(100.50, 0.05)
func NewUSD(priceUSD, confidenceUSD float64) Config {
	c := Default()
	c.Price = ToScaled(priceUSD, -c.Expo)
	c.Conf = ToScaledU(confidenceUSD, -c.Expo)
	return c
}

// Stablecoin returns a config pegged to $1.00 with a tight confidence.
func Stablecoin() Config {
	return NewUSD(1.0, 0.0001)
}

// Volatile returns a config with a wide confidence interval (2% of price).
func Volatile(priceUSD float64) Config {
	return NewUSD(priceUSD, priceUSD*0.02)
}

// WithDecimals sets a custom decimal count.
func (c Config) WithDecimals(decimals uint8) Config {
	c.Decimals = decimals
	return c
}

// WithExpo sets a custom exponent.
func (c Config) WithExpo(expo int32) Config {
	c.Expo = expo
	return c
}

// WithStatus sets the trading status.
func (c Config) WithStatus(status Status) Config {
	c.Status = status
	return c
}

// WithPublishTime pins the publish timestamp instead of using the clock.
func (c Config) WithPublishTime(unix int64) Config {
	c.PublishTime = &unix
	return c
}

// StaleBy pins the publish timestamp to secondsAgo before now, so the feed is
// born stale. Useful for staleness-check tests.
func (c Config) StaleBy(secondsAgo, now int64) Config {
	t := now - secondsAgo
	c.PublishTime = &t
	return c
}

// PriceUSD returns the price as a USD value.
func (c Config) PriceUSD() float64 {
	return FromScaled(c.Price, c.Expo)
}

// ConfUSD returns the confidence as a USD value.
func (c Config) ConfUSD() float64 {
	return FromScaled(int64(c.Conf), c.Expo)
}

// StandardFeeds bundles the addresses returned by a registry's bulk feed
// creation: sol, btc, eth and two stablecoins with opinionated default prices.
type StandardFeeds struct {
	SOL  solana.PublicKey
	BTC  solana.PublicKey
	ETH  solana.PublicKey
	USDC solana.PublicKey
	USDT solana.PublicKey
}
