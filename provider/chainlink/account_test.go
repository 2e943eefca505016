package chainlink

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
	f := newFeed(price.NewUSD(100.0, 0.1), testClock)
	buf := f.encode()
	require.Len(t, buf, AccountSize)
	require.Equal(t, 960, AccountSize)

	le := binary.LittleEndian
	assert.Equal(t, byte(1), buf[0], "version")
	assert.Equal(t, byte(1), buf[1], "state (initialized)")
	assert.Equal(t, byte(8), buf[offDecimals])
	assert.Equal(t, uint32(flaggingThreshold), le.Uint32(buf[offFlaggingThreshold:]))
	assert.Equal(t, uint32(1), le.Uint32(buf[offLatestRoundID:]))
	assert.Equal(t, byte(1), buf[offGranularity])
	assert.Equal(t, uint32(numTransmissions), le.Uint32(buf[offLiveLength:]))
	assert.Equal(t, uint32(0), le.Uint32(buf[offLiveCursor:]), "cursor of round 1")

	// Round 1 lives in the first transmission slot.
	tx := headerSize
	assert.Equal(t, uint64(42), le.Uint64(buf[tx:]), "slot")
	assert.Equal(t, uint32(1577836800), le.Uint32(buf[tx+8:]), "timestamp")
	answer := price.Int128LE(buf[tx+txAnswerOffset:])
	assert.Equal(t, int64(10000000000), answer.Int64(), "100 * 10^8")
	assert.Equal(t, byte(quorumCount), buf[tx+txObsCountOffset])
	assert.Equal(t, byte(quorumCount), buf[tx+txObserverOffset])
}

func TestCursorWraps(t *testing.T) {
	f := newFeed(price.NewUSD(100.0, 0.1), testClock)
	require.Equal(t, uint32(0), f.cursor())

	clk := testClock
	for i := 0; i < numTransmissions; i++ {
		clk.Slot++
		f.setPrice(f.price, clk)
	}
	// Round 17 wraps back to the first slot.
	assert.Equal(t, uint32(17), f.roundID)
	assert.Equal(t, uint32(0), f.cursor())

	buf := f.encode()
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[offLiveCursor:]))
	assert.Equal(t, clk.Slot, binary.LittleEndian.Uint64(buf[headerSize:]))
}

func TestTransmissionMovesWithCursor(t *testing.T) {
	f := newFeed(price.NewUSD(100.0, 0.1), testClock)
	clk := testClock
	clk.Slot = 100
	f.setPrice(f.price, clk) // round 2, cursor 1

	buf := f.encode()
	le := binary.LittleEndian
	assert.Equal(t, uint32(1), le.Uint32(buf[offLiveCursor:]))

	tx := headerSize + transmissionSize
	assert.Equal(t, uint64(100), le.Uint64(buf[tx:]))

	// Only the live slot is populated; the previous one stays zero in the
	// freshly encoded buffer.
	for i := headerSize; i < headerSize+transmissionSize; i++ {
		assert.Equal(t, byte(0), buf[i], "byte %d", i)
	}
}

func TestAnswerUsesDecimals(t *testing.T) {
	f := newFeed(price.NewUSD(100.0, 0.1).WithDecimals(6), testClock)
	assert.Equal(t, int64(100000000), f.answer().Int64(), "100 * 10^6")
}
