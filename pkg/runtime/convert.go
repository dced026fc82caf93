package runtime

import (
	"math"
	"math/big"
)

// FromBig converts n into a value of kind k. It reports false when n is out
// of range for k or k is not numeric.
func FromBig(n *big.Int, k Kind) (Value, bool) {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		if !n.IsInt64() {
			return nil, false
		}
		return fromInt64(n.Int64(), k)
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		if !n.IsUint64() {
			return nil, false
		}
		return fromUint64(n.Uint64(), k)
	case KindInt128:
		if !Fits128(n, k) {
			return nil, false
		}
		return NewInt128(n), true
	case KindUInt128:
		if !Fits128(n, k) {
			return nil, false
		}
		return NewUInt128(n), true
	case KindFloat32:
		f, _ := new(big.Float).SetInt(n).Float32()
		return Float32(f), true
	case KindFloat64:
		f, _ := new(big.Float).SetInt(n).Float64()
		return Float64(f), true
	default:
		return nil, false
	}
}

// FromFloat converts f into a value of kind k. Integer kinds accept only
// integral values in range.
func FromFloat(f float64, k Kind) (Value, bool) {
	switch k {
	case KindFloat32:
		if math.Abs(f) > math.MaxFloat32 {
			return nil, false
		}
		return Float32(f), true
	case KindFloat64:
		return Float64(f), true
	}
	bf := big.NewFloat(f)
	if !bf.IsInt() {
		return nil, false
	}
	n, _ := bf.Int(nil)
	return FromBig(n, k)
}

func fromInt64(v int64, k Kind) (Value, bool) {
	switch k {
	case KindInt8:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return nil, false
		}
		return Int8(v), true
	case KindInt16:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, false
		}
		return Int16(v), true
	case KindInt32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, false
		}
		return Int32(v), true
	default:
		return Int64(v), true
	}
}

func fromUint64(v uint64, k Kind) (Value, bool) {
	switch k {
	case KindUInt8:
		if v > math.MaxUint8 {
			return nil, false
		}
		return UInt8(v), true
	case KindUInt16:
		if v > math.MaxUint16 {
			return nil, false
		}
		return UInt16(v), true
	case KindUInt32:
		if v > math.MaxUint32 {
			return nil, false
		}
		return UInt32(v), true
	default:
		return UInt64(v), true
	}
}
