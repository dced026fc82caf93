package runtime

import (
	"math/big"
	"strconv"
)

// Value is the shared behaviour for all runtime values. Every concrete value
// is comparable with ==.
type Value interface {
	Kind() Kind
	// Inspect renders the value the way the host prints it.
	Inspect() string
}

type (
	Bool    bool
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	UInt8   uint8
	UInt16  uint16
	UInt32  uint32
	UInt64  uint64
	Float32 float32
	Float64 float64
	Char    rune
	String  string
)

// AbyssValue is the language's nil.
type AbyssValue struct{}

type uninitialized struct{}

var (
	// Abyss is the single nil value.
	Abyss Value = AbyssValue{}
	// Uninitialized is bound by a declaration without an initializer. It
	// never escapes a lookup; reading it is an error.
	Uninitialized Value = uninitialized{}
)

func (Bool) Kind() Kind          { return KindBool }
func (Int8) Kind() Kind          { return KindInt8 }
func (Int16) Kind() Kind         { return KindInt16 }
func (Int32) Kind() Kind         { return KindInt32 }
func (Int64) Kind() Kind         { return KindInt64 }
func (Int128) Kind() Kind        { return KindInt128 }
func (UInt8) Kind() Kind         { return KindUInt8 }
func (UInt16) Kind() Kind        { return KindUInt16 }
func (UInt32) Kind() Kind        { return KindUInt32 }
func (UInt64) Kind() Kind        { return KindUInt64 }
func (UInt128) Kind() Kind       { return KindUInt128 }
func (Float32) Kind() Kind       { return KindFloat32 }
func (Float64) Kind() Kind       { return KindFloat64 }
func (Char) Kind() Kind          { return KindChar }
func (String) Kind() Kind        { return KindString }
func (AbyssValue) Kind() Kind    { return KindAbyss }
func (uninitialized) Kind() Kind { return KindUninitialized }

func (v Bool) Inspect() string    { return strconv.FormatBool(bool(v)) }
func (v Int8) Inspect() string    { return strconv.FormatInt(int64(v), 10) }
func (v Int16) Inspect() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int32) Inspect() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int64) Inspect() string   { return strconv.FormatInt(int64(v), 10) }
func (v Int128) Inspect() string  { return v.Big().String() }
func (v UInt8) Inspect() string   { return strconv.FormatUint(uint64(v), 10) }
func (v UInt16) Inspect() string  { return strconv.FormatUint(uint64(v), 10) }
func (v UInt32) Inspect() string  { return strconv.FormatUint(uint64(v), 10) }
func (v UInt64) Inspect() string  { return strconv.FormatUint(uint64(v), 10) }
func (v UInt128) Inspect() string { return v.Big().String() }
func (v Float32) Inspect() string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Float64) Inspect() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Char) Inspect() string    { return string(v) }
func (v String) Inspect() string  { return string(v) }

func (AbyssValue) Inspect() string    { return "abyss" }
func (uninitialized) Inspect() string { return "<uninitialized>" }

// IsUninitialized reports whether v is the uninitialized sentinel.
func IsUninitialized(v Value) bool {
	_, ok := v.(uninitialized)
	return ok
}

// Native converts v into a plain Go value for serialization. 128-bit
// integers become decimal strings and abyss becomes nil.
func Native(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Int8:
		return int64(v)
	case Int16:
		return int64(v)
	case Int32:
		return int64(v)
	case Int64:
		return int64(v)
	case UInt8:
		return uint64(v)
	case UInt16:
		return uint64(v)
	case UInt32:
		return uint64(v)
	case UInt64:
		return uint64(v)
	case Int128, UInt128:
		return v.Inspect()
	case Float32:
		return float64(v)
	case Float64:
		return float64(v)
	case Char:
		return string(v)
	case String:
		return string(v)
	default:
		return nil
	}
}

var bigOne = big.NewInt(1)
