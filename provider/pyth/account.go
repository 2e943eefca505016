package pyth

import (
	"encoding/binary"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
)

const (
	// Magic identifies a Pyth V2 account.
	Magic = 0xa1b2c3d4
	// Version is the account format version emitted by this package.
	Version = 2
	// accountTypePrice tags a price account (as opposed to product/mapping).
	accountTypePrice = 3

	// AccountSize is the exact encoded size of a price account.
	AccountSize = 208
)

// Slots are seeded at creation and advance by one per update, independent of
// the sandbox clock's slot.
const (
	initialSlot     = 1000
	initialPrevSlot = 999
)

// priceInfo mirrors Pyth's aggregate price sub-record.
type priceInfo struct {
	price   int64
	conf    uint64
	status  uint32
	corpAct uint32
	pubSlot uint64
}

// priceAccount is the in-memory projection of one Pyth price account. The
// encoded buffer is a derived projection, recomputed on every mutation.
type priceAccount struct {
	magic         uint32
	ver           uint32
	atype         uint32
	size          uint32
	priceType     uint32
	expo          int32
	num           uint32
	numQt         uint32
	lastSlot      uint64
	validSlot     uint64
	emaPrice      int64
	emaConf       uint64
	timestamp     int64
	minPub        uint8
	drv2          uint8
	drv3          int16
	drv4          int32
	prod          [32]byte
	next          [32]byte
	prevSlot      uint64
	prevPrice     int64
	prevConf      uint64
	prevTimestamp int64
	agg           priceInfo
}

// newPriceAccount builds a price account from a config and a clock snapshot.
// The previous-value snapshot is seeded from the current values.
func newPriceAccount(cfg price.Config, clk ledger.Clock) *priceAccount {
	now := clk.UnixTimestamp
	if cfg.PublishTime != nil {
		now = *cfg.PublishTime
	}

	emaPrice := cfg.Price
	if cfg.EMAPrice != nil {
		emaPrice = *cfg.EMAPrice
	}
	emaConf := cfg.Conf
	if cfg.EMAConf != nil {
		emaConf = *cfg.EMAConf
	}

	return &priceAccount{
		magic:         Magic,
		ver:           Version,
		atype:         accountTypePrice,
		size:          AccountSize,
		priceType:     1,
		expo:          cfg.Expo,
		num:           1,
		numQt:         1,
		lastSlot:      initialSlot,
		validSlot:     initialSlot,
		emaPrice:      emaPrice,
		emaConf:       emaConf,
		timestamp:     now,
		minPub:        1,
		prevSlot:      initialPrevSlot,
		prevPrice:     cfg.Price,
		prevConf:      cfg.Conf,
		prevTimestamp: now - 1,
		agg: priceInfo{
			price:   cfg.Price,
			conf:    cfg.Conf,
			status:  statusCode(cfg.Status),
			pubSlot: initialSlot,
		},
	}
}

// setPrice shifts the current aggregate into the previous snapshot, writes the
// new values, advances the slot counters by one and folds the new observation
// into both EMA fields.
func (a *priceAccount) setPrice(p int64, conf uint64, now int64) {
	a.prevPrice = a.agg.price
	a.prevConf = a.agg.conf
	a.prevTimestamp = a.timestamp
	a.prevSlot = a.lastSlot

	a.agg.price = p
	a.agg.conf = conf
	a.lastSlot++
	a.validSlot = a.lastSlot
	a.agg.pubSlot = a.lastSlot
	a.timestamp = now

	a.emaPrice = price.EMAStep(a.emaPrice, p)
	a.emaConf = price.EMAStep(a.emaConf, conf)
}

func (a *priceAccount) setStatus(s price.Status) {
	a.agg.status = statusCode(s)
}

// statusCode maps the provider-agnostic status to Pyth's on-wire encoding.
func statusCode(s price.Status) uint32 {
	switch s {
	case price.StatusUnknown:
		return 0
	case price.StatusTrading:
		return 1
	case price.StatusHalted:
		return 2
	case price.StatusAuction:
		return 3
	}
	return 0
}

// encode serializes the account to its fixed 208-byte little-endian layout.
// Field order matches the native Pyth price account struct; a decoder built
// against the real layout must parse this unmodified.
func (a *priceAccount) encode() []byte {
	buf := make([]byte, AccountSize)

	binary.LittleEndian.PutUint32(buf[0:], a.magic)
	binary.LittleEndian.PutUint32(buf[4:], a.ver)
	binary.LittleEndian.PutUint32(buf[8:], a.atype)
	binary.LittleEndian.PutUint32(buf[12:], a.size)
	binary.LittleEndian.PutUint32(buf[16:], a.priceType)
	binary.LittleEndian.PutUint32(buf[20:], uint32(a.expo))
	binary.LittleEndian.PutUint32(buf[24:], a.num)
	binary.LittleEndian.PutUint32(buf[28:], a.numQt)
	binary.LittleEndian.PutUint64(buf[32:], a.lastSlot)
	binary.LittleEndian.PutUint64(buf[40:], a.validSlot)
	binary.LittleEndian.PutUint64(buf[48:], uint64(a.emaPrice))
	binary.LittleEndian.PutUint64(buf[56:], a.emaConf)
	binary.LittleEndian.PutUint64(buf[64:], uint64(a.timestamp))
	buf[72] = a.minPub
	buf[73] = a.drv2
	binary.LittleEndian.PutUint16(buf[74:], uint16(a.drv3))
	binary.LittleEndian.PutUint32(buf[76:], uint32(a.drv4))
	copy(buf[80:112], a.prod[:])
	copy(buf[112:144], a.next[:])
	binary.LittleEndian.PutUint64(buf[144:], a.prevSlot)
	binary.LittleEndian.PutUint64(buf[152:], uint64(a.prevPrice))
	binary.LittleEndian.PutUint64(buf[160:], a.prevConf)
	binary.LittleEndian.PutUint64(buf[168:], uint64(a.prevTimestamp))
	binary.LittleEndian.PutUint64(buf[176:], uint64(a.agg.price))
	binary.LittleEndian.PutUint64(buf[184:], a.agg.conf)
	binary.LittleEndian.PutUint32(buf[192:], a.agg.status)
	binary.LittleEndian.PutUint32(buf[196:], a.agg.corpAct)
	binary.LittleEndian.PutUint64(buf[200:], a.agg.pubSlot)

	return buf
}
