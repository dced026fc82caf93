// Package runtime defines the values produced by evaluating Jane programs
// and the flat environment that binds names to them.
package runtime

import "fmt"

// Kind identifies the runtime value category. Kinds up to KindString are
// declared in widening order.
type Kind int

const (
	KindAbyss Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUInt128
	KindFloat32
	KindFloat64
	KindChar
	KindString

	// KindUninitialized marks a declared but unset binding.
	KindUninitialized
)

var kindNames = [...]string{
	KindAbyss:         "abyss",
	KindBool:          "bool",
	KindInt8:          "i8",
	KindInt16:         "i16",
	KindInt32:         "i32",
	KindInt64:         "i64",
	KindInt128:        "i128",
	KindUInt8:         "u8",
	KindUInt16:        "u16",
	KindUInt32:        "u32",
	KindUInt64:        "u64",
	KindUInt128:       "u128",
	KindFloat32:       "f32",
	KindFloat64:       "f64",
	KindChar:          "char",
	KindString:        "string",
	KindUninitialized: "uninitialized",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// IsSignedInteger reports whether k is one of the signed integer kinds.
func (k Kind) IsSignedInteger() bool {
	return k >= KindInt8 && k <= KindInt128
}

// IsUnsignedInteger reports whether k is one of the unsigned integer kinds.
func (k Kind) IsUnsignedInteger() bool {
	return k >= KindUInt8 && k <= KindUInt128
}

// IsInteger reports whether k is any integer kind.
func (k Kind) IsInteger() bool {
	return k.IsSignedInteger() || k.IsUnsignedInteger()
}

// IsFloat reports whether k is a floating point kind.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsSigned reports whether k carries a sign, floats included.
func (k Kind) IsSigned() bool {
	return k.IsSignedInteger() || k.IsFloat()
}

// IsNumeric reports whether k is an integer or float kind.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// Wider reports whether k sorts after other in the widening order. No
// operator consults it yet.
func (k Kind) Wider(other Kind) bool {
	return k > other
}
