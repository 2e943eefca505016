// Package chainlink fabricates Chainlink Solana transmissions accounts for
// sandbox testing.
package chainlink

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
	"github.com/solmock/shadow-oracle/provider"
)

// ProgramID is the mainnet Chainlink feeds program.
const ProgramID = "HEvSKofvBgfaexv23kMabbYqxasxU3mQ4ibBMEmJWHny"

// StoreProgramID is the mainnet Chainlink store program.
const StoreProgramID = "CaH12fwNTKJAG8PxEvo9R96Zc2j8Jq3Q5K9B7tTFQ2by"

// Registry tracks Chainlink feed accounts by address and writes every
// mutation through to the sandbox. Chainlink feeds carry no confidence
// concept, so price updates take a single value.
type Registry struct {
	lg        ledger.Sandbox
	feeds     map[solana.PublicKey]*feed
	programID solana.PublicKey
}

// New creates a registry owned by the mainnet Chainlink program ID.
func New(lg ledger.Sandbox) *Registry {
	return NewWithProgramID(lg, solana.MustPublicKeyFromBase58(ProgramID))
}

// NewWithProgramID creates a registry with a custom owner program.
func NewWithProgramID(lg ledger.Sandbox, programID solana.PublicKey) *Registry {
	return &Registry{
		lg:        lg,
		feeds:     make(map[solana.PublicKey]*feed),
		programID: programID,
	}
}

// CreatePriceFeed creates a feed at a fresh address and returns the address.
func (r *Registry) CreatePriceFeed(cfg price.Config) solana.PublicKey {
	return r.CreatePriceFeedAt(solana.NewWallet().PublicKey(), cfg)
}

// CreatePriceFeedAt creates a feed at a caller-supplied address, silently
// overwriting any record already there.
func (r *Registry) CreatePriceFeedAt(addr solana.PublicKey, cfg price.Config) solana.PublicKey {
	f := newFeed(cfg, r.lg.Clock())
	r.write(addr, f)
	r.feeds[addr] = f
	return addr
}

// SetPrice starts a new round at the given USD price.
func (r *Registry) SetPrice(feedAddr solana.PublicKey, priceUSD float64) error {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return provider.NotFound(feedAddr)
	}
	f.setPrice(decimal.NewFromFloat(priceUSD), r.lg.Clock())
	r.write(feedAddr, f)
	return nil
}

// SetPriceUSD matches the other providers' signature; the confidence argument
// is ignored since Chainlink feeds carry none.
func (r *Registry) SetPriceUSD(feedAddr solana.PublicKey, priceUSD, _ float64) error {
	return r.SetPrice(feedAddr, priceUSD)
}

// Price returns the current USD price.
func (r *Registry) Price(feedAddr solana.PublicKey) (float64, bool) {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return 0, false
	}
	p, _ := f.price.Float64()
	return p, true
}

// PriceUSD returns (price, 0) for signature compatibility with the other
// providers.
func (r *Registry) PriceUSD(feedAddr solana.PublicKey) (p, conf float64, ok bool) {
	p, ok = r.Price(feedAddr)
	return p, 0, ok
}

// LatestAnswer returns the raw scaled answer (price * 10^decimals).
func (r *Registry) LatestAnswer(feedAddr solana.PublicKey) (*big.Int, bool) {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return nil, false
	}
	return f.answer(), true
}

// Decimals returns the feed's decimal count.
func (r *Registry) Decimals(feedAddr solana.PublicKey) (uint8, bool) {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return 0, false
	}
	return f.decimals, true
}

// LatestRound returns the feed's current round id.
func (r *Registry) LatestRound(feedAddr solana.PublicKey) (uint32, bool) {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return 0, false
	}
	return f.roundID, true
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

// SimulateCrash drops the price by crashPercent.
func (r *Registry) SimulateCrash(feedAddr solana.PublicKey, crashPercent float64) error {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return provider.NotFound(feedAddr)
	}
	f.setPrice(price.PercentageShiftDecimal(f.price, crashPercent), r.lg.Clock())
	r.write(feedAddr, f)
	return nil
}

// SimulateDepeg moves a nominally $1-pegged feed to newPrice.
func (r *Registry) SimulateDepeg(feedAddr solana.PublicKey, newPrice float64) error {
	return r.SetPrice(feedAddr, newPrice)
}

// MakeStale rewinds only the live transmission's timestamp to secondsAgo
// before the clock, leaving the price and round untouched.
func (r *Registry) MakeStale(feedAddr solana.PublicKey, secondsAgo int64) error {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return provider.NotFound(feedAddr)
	}
	f.timestamp = uint32(r.lg.Clock().UnixTimestamp - secondsAgo)
	r.write(feedAddr, f)
	return nil
}

// Timestamp returns the live transmission's timestamp.
func (r *Registry) Timestamp(feedAddr solana.PublicKey) (uint32, bool) {
	f, ok := r.feeds[feedAddr]
	if !ok {
		return 0, false
	}
	return f.timestamp, true
}

func (r *Registry) write(addr solana.PublicKey, f *feed) {
	err := r.lg.SetAccount(addr, ledger.Account{
		Lamports: provider.FeedLamports,
		Data:     f.encode(),
		Owner:    r.programID,
	})
	if err != nil {
		panic(fmt.Sprintf("chainlink: failed to set account %s: %v", addr, err))
	}
}
