// Package pyth fabricates Pyth V2 price accounts for sandbox testing.
package pyth

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
	"github.com/solmock/shadow-oracle/provider"
)

// ProgramID is the mainnet Pyth oracle program, used as the owner of every
// fabricated feed account.
const ProgramID = "FsJ3A3u2vn5cTVofAjvy6y5kwABJAqYWpe4975bi2epH"

// Registry tracks Pyth feed accounts by address and writes every mutation
// through to the sandbox. Reads are served from the retained records and
// never touch the sandbox.
type Registry struct {
	lg        ledger.Sandbox
	feeds     map[solana.PublicKey]*priceAccount
	programID solana.PublicKey
}

// New creates a registry owned by the mainnet Pyth program ID.
func New(lg ledger.Sandbox) *Registry {
	return NewWithProgramID(lg, solana.MustPublicKeyFromBase58(ProgramID))
}

// NewWithProgramID creates a registry with a custom owner program.
func NewWithProgramID(lg ledger.Sandbox, programID solana.PublicKey) *Registry {
	return &Registry{
		lg:        lg,
		feeds:     make(map[solana.PublicKey]*priceAccount),
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
	acct := newPriceAccount(cfg, r.lg.Clock())
	r.write(addr, acct)
	r.feeds[addr] = acct
	return addr
}

// SetPrice updates a feed's aggregate price and confidence (scaled values).
func (r *Registry) SetPrice(feed solana.PublicKey, p int64, conf uint64) error {
	acct, ok := r.feeds[feed]
	if !ok {
		return provider.NotFound(feed)
	}
	acct.setPrice(p, conf, r.lg.Clock().UnixTimestamp)
	r.write(feed, acct)
	return nil
}

// SetPriceUSD updates a feed from human-readable USD values.
func (r *Registry) SetPriceUSD(feed solana.PublicKey, priceUSD, confidenceUSD float64) error {
	return r.SetPrice(feed,
		price.ToScaled(priceUSD, price.DefaultDecimals),
		price.ToScaledU(confidenceUSD, price.DefaultDecimals))
}

// SetStatus updates a feed's trading status without touching the price.
func (r *Registry) SetStatus(feed solana.PublicKey, status price.Status) error {
	acct, ok := r.feeds[feed]
	if !ok {
		return provider.NotFound(feed)
	}
	acct.setStatus(status)
	r.write(feed, acct)
	return nil
}

// Price returns the current aggregate price and confidence (scaled values).
func (r *Registry) Price(feed solana.PublicKey) (p int64, conf uint64, ok bool) {
	acct, ok := r.feeds[feed]
	if !ok {
		return 0, 0, false
	}
	return acct.agg.price, acct.agg.conf, true
}

// PriceUSD returns the current price and confidence as USD values.
func (r *Registry) PriceUSD(feed solana.PublicKey) (p, conf float64, ok bool) {
	sp, sc, ok := r.Price(feed)
	if !ok {
		return 0, 0, false
	}
	return price.FromScaled(sp, price.DefaultDecimals),
		price.FromScaled(int64(sc), price.DefaultDecimals), true
}

// EMAPrice returns the current EMA price and confidence (scaled values).
func (r *Registry) EMAPrice(feed solana.PublicKey) (p int64, conf uint64, ok bool) {
	acct, ok := r.feeds[feed]
	if !ok {
		return 0, 0, false
	}
	return acct.emaPrice, acct.emaConf, true
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

// SimulateCrash drops the price by crashPercent and widens the confidence by
// the fixed crash multiplier.
func (r *Registry) SimulateCrash(feed solana.PublicKey, crashPercent float64) error {
	p, conf, ok := r.Price(feed)
	if !ok {
		return provider.NotFound(feed)
	}
	return r.SetPrice(feed,
		price.PercentageShift(p, crashPercent),
		conf*provider.CrashConfMultiplier)
}

// SimulateDepeg moves a nominally $1-pegged feed to newPrice, deriving the
// confidence from the distance to the peg.
func (r *Registry) SimulateDepeg(feed solana.PublicKey, newPrice float64) error {
	return r.SetPriceUSD(feed, newPrice, price.DepegConfidence(newPrice))
}

// MakeStale rewinds only the feed's timestamp to secondsAgo before the clock,
// leaving price and confidence untouched.
func (r *Registry) MakeStale(feed solana.PublicKey, secondsAgo int64) error {
	acct, ok := r.feeds[feed]
	if !ok {
		return provider.NotFound(feed)
	}
	acct.timestamp = r.lg.Clock().UnixTimestamp - secondsAgo
	r.write(feed, acct)
	return nil
}

// write pushes the full encoded buffer to the sandbox. A sandbox write
// failure means the test environment itself is broken, so it panics rather
// than returning a domain error.
func (r *Registry) write(addr solana.PublicKey, acct *priceAccount) {
	err := r.lg.SetAccount(addr, ledger.Account{
		Lamports: provider.FeedLamports,
		Data:     acct.encode(),
		Owner:    r.programID,
	})
	if err != nil {
		panic(fmt.Sprintf("pyth: failed to set account %s: %v", addr, err))
	}
}
