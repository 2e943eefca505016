package price

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// EMAWeight is the weight given to the previous EMA value on each step.
const EMAWeight = 9

// ToScaled converts a decimal USD value to an integer scaled by 10^|scale|.
// The fractional remainder below one scaled unit is truncated toward zero,
// never rounded; callers must expect silent sub-unit loss.
func ToScaled(value float64, scale int32) int64 {
	if scale < 0 {
		scale = -scale
	}
	return decimal.NewFromFloat(value).Shift(scale).IntPart()
}

// ToScaledU is ToScaled for unsigned quantities (confidence intervals).
// Negative inputs clamp to zero.
func ToScaledU(value float64, scale int32) uint64 {
	v := ToScaled(value, scale)
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// FromScaled converts a scaled integer back to a decimal USD value.
func FromScaled(scaled int64, scale int32) float64 {
	if scale > 0 {
		scale = -scale
	}
	f, _ := decimal.NewFromInt(scaled).Shift(scale).Float64()
	return f
}

// FromConfig returns the config's price as an exact decimal, avoiding a float
// round trip for providers that carry decimal prices internally.
func FromConfig(c Config) decimal.Decimal {
	expo := c.Expo
	if expo > 0 {
		expo = -expo
	}
	return decimal.NewFromInt(c.Price).Shift(expo)
}

// ConfFromConfig returns the config's confidence as an exact decimal.
func ConfFromConfig(c Config) decimal.Decimal {
	expo := c.Expo
	if expo > 0 {
		expo = -expo
	}
	return decimal.NewFromInt(int64(c.Conf)).Shift(expo)
}

// EMAStep folds a new observation into an exponential moving average:
// (old*weight + new) / (weight+1) with integer truncation.
func EMAStep[T ~int64 | ~uint64](old, next T) T {
	return (old*EMAWeight + next) / (EMAWeight + 1)
}

// PercentageShift returns value reduced by percent percent, truncated toward
// zero. A 50% shift of 100 yields 50.
func PercentageShift(value int64, percent float64) int64 {
	return decimal.NewFromInt(value).Mul(shiftFactor(percent)).IntPart()
}

// PercentageShiftDecimal applies the same transform to a decimal value.
func PercentageShiftDecimal(value decimal.Decimal, percent float64) decimal.Decimal {
	return value.Mul(shiftFactor(percent))
}

func shiftFactor(percent float64) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100)))
}

// DepegConfidence derives a confidence/deviation for a nominally $1-pegged
// asset trading at newPrice: |1 - newPrice| * 0.1 + 0.001. The uncertainty
// grows the further the price strays from the peg. The 0.1 slope and 0.001
// floor are fixed policy constants with no stated derivation.
func DepegConfidence(newPrice float64) float64 {
	d := decimal.NewFromInt(1).
		Sub(decimal.NewFromFloat(newPrice)).
		Abs().
		Mul(decimal.NewFromFloat(0.1)).
		Add(decimal.NewFromFloat(0.001))
	f, _ := d.Float64()
	return f
}

// ScaledMantissa returns value scaled by 10^decimals as a big integer with the
// fractional remainder truncated. Used for 128-bit on-wire answers.
func ScaledMantissa(value decimal.Decimal, decimals uint8) *big.Int {
	return value.Shift(int32(decimals)).BigInt()
}

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// PutInt128LE writes v into the first 16 bytes of dst as a little-endian
// two's-complement 128-bit integer. Values outside the 128-bit range are
// reduced modulo 2^128.
func PutInt128LE(dst []byte, v *big.Int) {
	_ = dst[15]
	m := new(big.Int).Set(v)
	if m.Sign() < 0 {
		m.Add(m, two128)
	}
	b := m.Bytes() // big-endian
	for i := 0; i < 16; i++ {
		dst[i] = 0
	}
	for i := 0; i < len(b) && i < 16; i++ {
		dst[i] = b[len(b)-1-i]
	}
}

// Int128LE reads a little-endian two's-complement 128-bit integer from the
// first 16 bytes of src.
func Int128LE(src []byte) *big.Int {
	_ = src[15]
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = src[15-i]
	}
	v := new(big.Int).SetBytes(be)
	if src[15]&0x80 != 0 {
		v.Sub(v, two128)
	}
	return v
}
