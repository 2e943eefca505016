// Package switchboard fabricates Switchboard V2 aggregator accounts for
// sandbox testing.
package switchboard

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
	"github.com/solmock/shadow-oracle/provider"
)

// ProgramID is the mainnet Switchboard V2 program.
const ProgramID = "SW1TCH7qEPTdLsDHRgPuMQjbQxKdH2aBStViMFnt64f"

// OnDemandProgramID is the mainnet Switchboard On-Demand program.
const OnDemandProgramID = "SBondMDrcV3K4kxZR1HNVT7osZxAHVHgYXL5Ze1oMUv"

// Registry tracks Switchboard aggregator accounts by address and writes every
// mutation through to the sandbox.
type Registry struct {
	lg        ledger.Sandbox
	feeds     map[solana.PublicKey]*aggregator
	programID solana.PublicKey
}

// New creates a registry owned by the mainnet Switchboard V2 program ID.
func New(lg ledger.Sandbox) *Registry {
	return NewWithProgramID(lg, solana.MustPublicKeyFromBase58(ProgramID))
}

// NewWithProgramID creates a registry with a custom owner program.
func NewWithProgramID(lg ledger.Sandbox, programID solana.PublicKey) *Registry {
	return &Registry{
		lg:        lg,
		feeds:     make(map[solana.PublicKey]*aggregator),
		programID: programID,
	}
}

// CreatePriceFeed creates an aggregator at a fresh address and returns the
// address.
func (r *Registry) CreatePriceFeed(cfg price.Config) solana.PublicKey {
	return r.CreatePriceFeedAt(solana.NewWallet().PublicKey(), cfg)
}

// CreatePriceFeedAt creates an aggregator at a caller-supplied address,
// silently overwriting any record already there.
func (r *Registry) CreatePriceFeedAt(addr solana.PublicKey, cfg price.Config) solana.PublicKey {
	agg := newAggregator(cfg, r.lg.Clock())
	r.write(addr, agg)
	r.feeds[addr] = agg
	return addr
}

// SetPrice opens a new round at the given USD price and standard deviation.
func (r *Registry) SetPrice(feed solana.PublicKey, priceUSD, stdDev float64) error {
	agg, ok := r.feeds[feed]
	if !ok {
		return provider.NotFound(feed)
	}
	agg.setPrice(decimal.NewFromFloat(priceUSD), decimal.NewFromFloat(stdDev), r.lg.Clock())
	r.write(feed, agg)
	return nil
}

// SetPriceUSD is an alias for SetPrice; Switchboard prices are already USD.
func (r *Registry) SetPriceUSD(feed solana.PublicKey, priceUSD, stdDev float64) error {
	return r.SetPrice(feed, priceUSD, stdDev)
}

// Price returns the current USD price and standard deviation.
func (r *Registry) Price(feed solana.PublicKey) (p, stdDev float64, ok bool) {
	agg, ok := r.feeds[feed]
	if !ok {
		return 0, 0, false
	}
	p, _ = agg.price.Float64()
	stdDev, _ = agg.stdDeviation.Float64()
	return p, stdDev, true
}

// PriceUSD is an alias for Price.
func (r *Registry) PriceUSD(feed solana.PublicKey) (p, stdDev float64, ok bool) {
	return r.Price(feed)
}

// Timestamp returns the round-open timestamp of the last update.
func (r *Registry) Timestamp(feed solana.PublicKey) (int64, bool) {
	agg, ok := r.feeds[feed]
	if !ok {
		return 0, false
	}
	return agg.timestamp, true
}

// Slot returns the round-open slot of the last update.
func (r *Registry) Slot(feed solana.PublicKey) (uint64, bool) {
	agg, ok := r.feeds[feed]
	if !ok {
		return 0, false
	}
	return agg.slot, true
}

// LatestRound returns the aggregator's current round id.
func (r *Registry) LatestRound(feed solana.PublicKey) (uint32, bool) {
	agg, ok := r.feeds[feed]
	if !ok {
		return 0, false
	}
	return agg.roundID, true
}

// MakeStale rewinds only the round-open timestamp to secondsAgo before the
// clock, leaving price and deviation untouched. Useful for staleness-check
// tests.
func (r *Registry) MakeStale(feed solana.PublicKey, secondsAgo int64) error {
	agg, ok := r.feeds[feed]
	if !ok {
		return provider.NotFound(feed)
	}
	agg.timestamp = r.lg.Clock().UnixTimestamp - secondsAgo
	r.write(feed, agg)
	return nil
}

// CreateStandardFeeds creates the canonical asset bundle with default prices.
func (r *Registry) CreateStandardFeeds() price.StandardFeeds {
	return price.StandardFeeds{
		SOL:  r.CreatePriceFeed(price.NewUSD(100.0, 0.1)),
		BTC:  r.CreatePriceFeed(price.NewUSD(43000.0, 10.0)),
		ETH:  r.CreatePriceFeed(price.NewUSD(2200.0, 1.0)),
		USDC: r.CreatePriceFeed(price.Stablecoin()),
		USDT: r.CreatePriceFeed(price.Stablecoin()),
	}
}

// SimulateCrash drops the price by crashPercent and widens the deviation by
// the fixed crash multiplier.
func (r *Registry) SimulateCrash(feed solana.PublicKey, crashPercent float64) error {
	agg, ok := r.feeds[feed]
	if !ok {
		return provider.NotFound(feed)
	}
	newPrice := price.PercentageShiftDecimal(agg.price, crashPercent)
	newStd := agg.stdDeviation.Mul(decimal.NewFromInt(provider.CrashConfMultiplier))
	agg.setPrice(newPrice, newStd, r.lg.Clock())
	r.write(feed, agg)
	return nil
}

// SimulateDepeg moves a nominally $1-pegged feed to newPrice, deriving the
// deviation from the distance to the peg.
func (r *Registry) SimulateDepeg(feed solana.PublicKey, newPrice float64) error {
	return r.SetPrice(feed, newPrice, price.DepegConfidence(newPrice))
}

func (r *Registry) write(addr solana.PublicKey, agg *aggregator) {
	err := r.lg.SetAccount(addr, ledger.Account{
		Lamports: provider.FeedLamports,
		Data:     agg.encode(),
		Owner:    r.programID,
	})
	if err != nil {
		panic(fmt.Sprintf("switchboard: failed to set account %s: %v", addr, err))
	}
}
