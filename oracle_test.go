package shadoworacle_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shadoworacle "github.com/solmock/shadow-oracle"
	"github.com/solmock/shadow-oracle/price"
	"github.com/solmock/shadow-oracle/sandbox"
)

func TestAllProvidersShareOneSandbox(t *testing.T) {
	sb := sandbox.New()
	oracle := shadoworacle.New(sb)

	pythFeed := oracle.Pyth().CreatePriceFeed(price.NewUSD(100.0, 0.1))
	swbFeed := oracle.Switchboard().CreatePriceFeed(price.NewUSD(100.0, 0.1))
	linkFeed := oracle.Chainlink().CreatePriceFeed(price.NewUSD(100.0, 0.1))

	for _, tc := range []struct {
		name string
		addr solana.PublicKey
	}{
		{"pyth", pythFeed},
		{"switchboard", swbFeed},
		{"chainlink", linkFeed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			acct, ok := sb.GetAccount(tc.addr)
			require.True(t, ok)
			assert.NotEmpty(t, acct.Data)
		})
	}

	// The three feeds live at distinct addresses in the same account space.
	assert.NotEqual(t, pythFeed, swbFeed)
	assert.NotEqual(t, swbFeed, linkFeed)
}

// The full lifecycle a protocol test suite would drive: create, read back,
// reprice, crash, then depeg a stablecoin.
func TestMarketScenario(t *testing.T) {
	sb := sandbox.New()
	oracle := shadoworacle.New(sb)

	sol := oracle.Pyth().CreatePriceFeed(price.NewUSD(100.0, 0.1))

	p, conf, ok := oracle.Pyth().Price(sol)
	require.True(t, ok)
	assert.Equal(t, int64(10_000_000_000), p)
	assert.Equal(t, uint64(10_000_000), conf)

	require.NoError(t, oracle.Pyth().SetPriceUSD(sol, 150.0, 0.2))
	p, _, _ = oracle.Pyth().Price(sol)
	assert.Equal(t, int64(15_000_000_000), p)

	require.NoError(t, oracle.Pyth().SimulateCrash(sol, 50.0))
	p, conf, _ = oracle.Pyth().Price(sol)
	assert.Equal(t, int64(7_500_000_000), p)
	assert.Equal(t, uint64(100_000_000), conf, "confidence widened x5")

	usdc := oracle.Pyth().CreatePriceFeed(price.Stablecoin())
	require.NoError(t, oracle.Pyth().SimulateDepeg(usdc, 0.95))
	usd, confUSD, _ := oracle.Pyth().PriceUSD(usdc)
	assert.InDelta(t, 0.95, usd, 0.0000001)
	assert.InDelta(t, 0.006, confUSD, 0.0000001)
}

func TestScenarioAcrossProviders(t *testing.T) {
	sb := sandbox.New()
	oracle := shadoworacle.New(sb)

	// The same asset quoted by all three providers, then crashed everywhere.
	pythSOL := oracle.Pyth().CreatePriceFeed(price.NewUSD(100.0, 0.1))
	swbSOL := oracle.Switchboard().CreatePriceFeed(price.NewUSD(100.0, 0.1))
	linkSOL := oracle.Chainlink().CreatePriceFeed(price.NewUSD(100.0, 0.1))

	require.NoError(t, oracle.Pyth().SimulateCrash(pythSOL, 40.0))
	require.NoError(t, oracle.Switchboard().SimulateCrash(swbSOL, 40.0))
	require.NoError(t, oracle.Chainlink().SimulateCrash(linkSOL, 40.0))

	usd, _, _ := oracle.Pyth().PriceUSD(pythSOL)
	assert.InDelta(t, 60.0, usd, 0.001)

	usd, _, _ = oracle.Switchboard().PriceUSD(swbSOL)
	assert.InDelta(t, 60.0, usd, 0.001)

	usd, _, _ = oracle.Chainlink().PriceUSD(linkSOL)
	assert.InDelta(t, 60.0, usd, 0.001)
}

func TestClockAdvancesAreVisibleToAllProviders(t *testing.T) {
	sb := sandbox.New()
	oracle := shadoworacle.New(sb)

	sb.ManualClock().SetSlot(1000)
	feed := oracle.Switchboard().CreatePriceFeed(price.NewUSD(100.0, 0.1))

	slot, ok := oracle.Switchboard().Slot(feed)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), slot)

	sb.ManualClock().AdvanceSlot(5)
	require.NoError(t, oracle.Switchboard().SetPrice(feed, 101.0, 0.1))

	slot, _ = oracle.Switchboard().Slot(feed)
	assert.Equal(t, uint64(1005), slot)
}
