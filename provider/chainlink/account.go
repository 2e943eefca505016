package chainlink

import (
	"encoding/binary"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
)

const (
	headerSize       = 192
	transmissionSize = 48
	numTransmissions = 16

	// AccountSize is the exact encoded size of a transmissions account:
	// fixed header plus the circular transmission buffer.
	AccountSize = headerSize + transmissionSize*numTransmissions

	// flaggingThreshold is a fixed header constant; the generator never
	// flags rounds.
	flaggingThreshold = 1000
)

// Header offsets. The 32-byte owner/proposed-owner/writer/description fields
// between offsets 2 and 130 are left zero.
const (
	offVersion           = 0
	offState             = 1
	offDecimals          = 130
	offFlaggingThreshold = 131
	offLatestRoundID     = 135
	offGranularity       = 141
	offLiveLength        = 142
	offLiveCursor        = 150
)

// Offsets within one transmission slot: slot (8), timestamp (4), pad (4),
// answer i128 (16), observation and observer counts (1 each), pad to 48.
const (
	txAnswerOffset   = 16
	txObsCountOffset = 32
	txObserverOffset = 33
)

// Every transmission reports a healthy 3-of-3 quorum.
const quorumCount = 3

// feed is the in-memory projection of one transmissions account. The price is
// carried as an exact decimal; the scaled answer is derived on encode.
type feed struct {
	price     decimal.Decimal
	decimals  uint8
	slot      uint64
	timestamp uint32
	roundID   uint32
}

func newFeed(cfg price.Config, clk ledger.Clock) *feed {
	now := clk.UnixTimestamp
	if cfg.PublishTime != nil {
		now = *cfg.PublishTime
	}
	return &feed{
		price:     price.FromConfig(cfg),
		decimals:  cfg.Decimals,
		slot:      clk.Slot,
		timestamp: uint32(now),
		roundID:   1,
	}
}

// setPrice starts a new round: the round id advances by one, the cursor moves
// with it and the slot/timestamp refresh from the clock.
func (f *feed) setPrice(p decimal.Decimal, clk ledger.Clock) {
	f.price = p
	f.slot = clk.Slot
	f.roundID++
	f.timestamp = uint32(clk.UnixTimestamp)
}

// answer returns the price scaled by 10^decimals, truncated.
func (f *feed) answer() *big.Int {
	return price.ScaledMantissa(f.price, f.decimals)
}

// cursor addresses the live transmission slot in the ring.
func (f *feed) cursor() uint32 {
	return (f.roundID - 1) % numTransmissions
}

// encode serializes the account. Only the current transmission slot is
// populated; the ring is logical (cursor-addressed) and historical slots stay
// zero since each encode is a full-buffer replacement.
func (f *feed) encode() []byte {
	buf := make([]byte, AccountSize)

	buf[offVersion] = 1
	buf[offState] = 1 // initialized
	buf[offDecimals] = f.decimals
	binary.LittleEndian.PutUint32(buf[offFlaggingThreshold:], flaggingThreshold)
	binary.LittleEndian.PutUint32(buf[offLatestRoundID:], f.roundID)
	buf[offGranularity] = 1
	binary.LittleEndian.PutUint32(buf[offLiveLength:], numTransmissions)
	cursor := f.cursor()
	binary.LittleEndian.PutUint32(buf[offLiveCursor:], cursor)

	tx := headerSize + int(cursor)*transmissionSize
	binary.LittleEndian.PutUint64(buf[tx:], f.slot)
	binary.LittleEndian.PutUint32(buf[tx+8:], f.timestamp)
	price.PutInt128LE(buf[tx+txAnswerOffset:], f.answer())
	buf[tx+txObsCountOffset] = quorumCount
	buf[tx+txObserverOffset] = quorumCount

	return buf
}
