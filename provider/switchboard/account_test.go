package switchboard

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
)

var testClock = ledger.Clock{Slot: 42, UnixTimestamp: 1577836800}

func TestAccountLayout(t *testing.T) {
	agg := newAggregator(price.NewUSD(100.0, 0.1), testClock)
	buf := agg.encode()
	require.Len(t, buf, AccountSize)

	assert.Equal(t, discriminator[:], buf[:8])

	le := binary.LittleEndian
	assert.Equal(t, uint32(3), le.Uint32(buf[roundOffset:]), "num_success")
	assert.Equal(t, uint32(0), le.Uint32(buf[roundOffset+4:]), "num_error")
	assert.Equal(t, byte(1), buf[roundOffset+8], "is_closed")
	assert.Equal(t, uint64(42), le.Uint64(buf[roundOffset+roundSlotOffset:]))
	assert.Equal(t, int64(1577836800), int64(le.Uint64(buf[roundOffset+roundTsOffset:])))

	result := roundOffset + roundResultOffset
	mantissa := price.Int128LE(buf[result:])
	assert.Equal(t, int64(10000000000), mantissa.Int64(), "100 * 10^8")
	assert.Equal(t, uint32(8), le.Uint32(buf[result+mantissaSize:]), "scale")

	stdDev := result + decimalSize
	stdMantissa := price.Int128LE(buf[stdDev:])
	assert.Equal(t, int64(10000000), stdMantissa.Int64(), "0.1 * 10^8")
	assert.Equal(t, uint32(8), le.Uint32(buf[stdDev+mantissaSize:]), "std scale")
}

func TestUnpopulatedRegionsStayZero(t *testing.T) {
	agg := newAggregator(price.NewUSD(100.0, 0.1), testClock)
	buf := agg.encode()

	for i := 8; i < roundOffset; i++ {
		require.Equal(t, byte(0), buf[i], "byte %d", i)
	}
	end := roundOffset + roundResultOffset + 2*decimalSize
	for i := end; i < AccountSize; i++ {
		require.Equal(t, byte(0), buf[i], "byte %d", i)
	}
}

func TestSetPriceOpensNewRound(t *testing.T) {
	agg := newAggregator(price.NewUSD(100.0, 0.1), testClock)
	require.Equal(t, uint32(1), agg.roundID)

	clk := ledger.Clock{Slot: 100, UnixTimestamp: testClock.UnixTimestamp + 60}
	agg.setPrice(agg.price, agg.stdDeviation, clk)

	assert.Equal(t, uint32(2), agg.roundID)
	assert.Equal(t, uint64(100), agg.slot)
	assert.Equal(t, clk.UnixTimestamp, agg.timestamp)
}

func TestCustomDecimalsScale(t *testing.T) {
	agg := newAggregator(price.NewUSD(100.0, 0.1).WithDecimals(6), testClock)
	buf := agg.encode()

	result := roundOffset + roundResultOffset
	assert.Equal(t, int64(100000000), price.Int128LE(buf[result:]).Int64(), "100 * 10^6")
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(buf[result+mantissaSize:]))
}
