package runtime

import "math/big"

var (
	two128 = new(big.Int).Lsh(bigOne, 128)
	two127 = new(big.Int).Lsh(bigOne, 127)
	mask64 = new(big.Int).SetUint64(^uint64(0))
)

// Int128 is a two's complement signed 128-bit integer.
type Int128 struct {
	Hi uint64
	Lo uint64
}

// UInt128 is an unsigned 128-bit integer.
type UInt128 struct {
	Hi uint64
	Lo uint64
}

// NewInt128 truncates n to 128 bits and reads the result as signed.
func NewInt128(n *big.Int) Int128 {
	hi, lo := split128(n)
	return Int128{Hi: hi, Lo: lo}
}

// NewUInt128 truncates n to 128 bits.
func NewUInt128(n *big.Int) UInt128 {
	hi, lo := split128(n)
	return UInt128{Hi: hi, Lo: lo}
}

// Big returns v as a big.Int.
func (v Int128) Big() *big.Int {
	n := join128(v.Hi, v.Lo)
	if n.Cmp(two127) >= 0 {
		n.Sub(n, two128)
	}
	return n
}

// Big returns v as a big.Int.
func (v UInt128) Big() *big.Int {
	return join128(v.Hi, v.Lo)
}

// split128 reduces n modulo 2^128 and returns the high and low words.
func split128(n *big.Int) (hi, lo uint64) {
	m := new(big.Int).Mod(n, two128) // non-negative for a positive modulus
	lo = new(big.Int).And(m, mask64).Uint64()
	hi = new(big.Int).Rsh(m, 64).Uint64()
	return hi, lo
}

func join128(hi, lo uint64) *big.Int {
	n := new(big.Int).SetUint64(hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(lo))
}

// Fits128 reports whether n is representable by the given 128-bit kind
// without wrapping.
func Fits128(n *big.Int, k Kind) bool {
	switch k {
	case KindInt128:
		return n.Cmp(new(big.Int).Neg(two127)) >= 0 && n.Cmp(two127) < 0
	case KindUInt128:
		return n.Sign() >= 0 && n.Cmp(two128) < 0
	default:
		return false
	}
}
