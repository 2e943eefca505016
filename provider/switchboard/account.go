package switchboard

import (
	"encoding/binary"

	"github.com/shopspring/decimal"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
)

// AccountSize is the full size of a Switchboard V2 AggregatorAccountData
// account. Only the discriminator and the latest confirmed round are
// populated; everything else stays zero.
const AccountSize = 3851

// roundOffset locates the latest confirmed round record inside the account.
const roundOffset = 1144

// Offsets within the round record: num_success (4), num_error (4),
// is_closed (1), round_open_slot (8), round_open_timestamp (8), then the
// result and its standard deviation back to back, each a SwitchboardDecimal
// (i128 mantissa + u32 scale, padded to 32 bytes).
const (
	roundSlotOffset   = 9
	roundTsOffset     = 17
	roundResultOffset = 25
	decimalSize       = 32
	mantissaSize      = 16
)

// Every round reports full quorum: 3 successes, 0 errors.
const (
	roundNumSuccess = 3
	roundNumError   = 0
)

// discriminator tags an AggregatorAccountData account.
var discriminator = [8]byte{217, 230, 65, 101, 201, 162, 27, 125}

// aggregator is the in-memory projection of one aggregator account. Price and
// standard deviation are carried as exact decimals; mantissas are derived on
// encode using the decimals-derived scale.
type aggregator struct {
	price        decimal.Decimal
	stdDeviation decimal.Decimal
	decimals     uint8
	slot         uint64
	timestamp    int64
	roundID      uint32
}

func newAggregator(cfg price.Config, clk ledger.Clock) *aggregator {
	now := clk.UnixTimestamp
	if cfg.PublishTime != nil {
		now = *cfg.PublishTime
	}
	return &aggregator{
		price:        price.FromConfig(cfg),
		stdDeviation: price.ConfFromConfig(cfg),
		decimals:     cfg.Decimals,
		slot:         clk.Slot,
		timestamp:    now,
		roundID:      1,
	}
}

// setPrice opens a new round: the round id advances by one and the
// slot/timestamp refresh from the clock.
func (a *aggregator) setPrice(p, stdDev decimal.Decimal, clk ledger.Clock) {
	a.price = p
	a.stdDeviation = stdDev
	a.slot = clk.Slot
	a.roundID++
	a.timestamp = clk.UnixTimestamp
}

// encode serializes the account: discriminator at offset 0, the latest
// confirmed round at its fixed offset, zeroes everywhere else.
func (a *aggregator) encode() []byte {
	buf := make([]byte, AccountSize)

	copy(buf[:8], discriminator[:])

	binary.LittleEndian.PutUint32(buf[roundOffset:], roundNumSuccess)
	binary.LittleEndian.PutUint32(buf[roundOffset+4:], roundNumError)
	buf[roundOffset+8] = 1 // is_closed
	binary.LittleEndian.PutUint64(buf[roundOffset+roundSlotOffset:], a.slot)
	binary.LittleEndian.PutUint64(buf[roundOffset+roundTsOffset:], uint64(a.timestamp))

	scale := uint32(a.decimals)
	result := roundOffset + roundResultOffset
	price.PutInt128LE(buf[result:], price.ScaledMantissa(a.price, a.decimals))
	binary.LittleEndian.PutUint32(buf[result+mantissaSize:], scale)

	stdDev := result + decimalSize
	price.PutInt128LE(buf[stdDev:], price.ScaledMantissa(a.stdDeviation, a.decimals))
	binary.LittleEndian.PutUint32(buf[stdDev+mantissaSize:], scale)

	return buf
}
