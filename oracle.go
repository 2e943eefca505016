// Package shadoworacle provides mock price oracles for sandbox testing.
// Create and manipulate Pyth, Switchboard and Chainlink feeds instantly,
// without network calls.
//
//	sb := sandbox.New()
//	oracle := shadoworacle.New(sb)
//
//	// Create a Pyth price feed at $100
//	solFeed := oracle.Pyth().CreatePriceFeed(price.NewUSD(100.0, 0.1))
//
//	// Update prices and simulate market events
//	oracle.Pyth().SetPriceUSD(solFeed, 150.0, 0.2)
//	oracle.Pyth().SimulateCrash(solFeed, 50.0)
//
// The providers can also be used directly: pyth.New(sb), switchboard.New(sb),
// chainlink.New(sb).
package shadoworacle

import (
	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/provider/chainlink"
	"github.com/solmock/shadow-oracle/provider/pyth"
	"github.com/solmock/shadow-oracle/provider/switchboard"
)

// Oracle is the main entry point: one façade over all three providers,
// sharing a single sandbox handle. The façade (not individual registries)
// owns the handle; keep one Oracle per sandbox.
type Oracle struct {
	pyth        *pyth.Registry
	switchboard *switchboard.Registry
	chainlink   *chainlink.Registry
}

// New creates an Oracle over the given sandbox handle.
func New(lg ledger.Sandbox) *Oracle {
	return &Oracle{
		pyth:        pyth.New(lg),
		switchboard: switchboard.New(lg),
		chainlink:   chainlink.New(lg),
	}
}

// Pyth returns the Pyth provider registry.
func (o *Oracle) Pyth() *pyth.Registry { return o.pyth }

// Switchboard returns the Switchboard provider registry.
func (o *Oracle) Switchboard() *switchboard.Registry { return o.switchboard }

// Chainlink returns the Chainlink provider registry.
func (o *Oracle) Chainlink() *chainlink.Registry { return o.chainlink }
