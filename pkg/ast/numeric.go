package ast

// Coalescion is the numeric kind forced by a literal suffix such as the
// `f32` in `10f32`.
type Coalescion int

// Literal suffix kinds.
const (
	CoalesceNone Coalescion = iota
	CoalesceI8
	CoalesceI16
	CoalesceI32
	CoalesceI64
	CoalesceI128
	CoalesceU8
	CoalesceU16
	CoalesceU32
	CoalesceU64
	CoalesceU128
	CoalesceF32
	CoalesceF64
)

var coalescionNames = [...]string{
	CoalesceNone: "",
	CoalesceI8:   "i8",
	CoalesceI16:  "i16",
	CoalesceI32:  "i32",
	CoalesceI64:  "i64",
	CoalesceI128: "i128",
	CoalesceU8:   "u8",
	CoalesceU16:  "u16",
	CoalesceU32:  "u32",
	CoalesceU64:  "u64",
	CoalesceU128: "u128",
	CoalesceF32:  "f32",
	CoalesceF64:  "f64",
}

// suffixes maps every accepted spelling, aliases included, to its kind.
var suffixes = map[string]Coalescion{
	"i8":   CoalesceI8,
	"i16":  CoalesceI16,
	"i32":  CoalesceI32,
	"i64":  CoalesceI64,
	"i128": CoalesceI128,
	"u8":   CoalesceU8,
	"u16":  CoalesceU16,
	"u32":  CoalesceU32,
	"u64":  CoalesceU64,
	"u128": CoalesceU128,
	"f32":  CoalesceF32,
	"f64":  CoalesceF64,
	"L":    CoalesceI64,
	"UL":   CoalesceU64,
	"f":    CoalesceF32,
	"d":    CoalesceF64,
}

// String returns the canonical suffix spelling, "" for CoalesceNone.
func (c Coalescion) String() string {
	if c >= 0 && int(c) < len(coalescionNames) {
		return coalescionNames[c]
	}
	return "?"
}

// LookupCoalescion returns the kind named by a literal suffix.
func LookupCoalescion(suffix string) (Coalescion, bool) {
	c, ok := suffixes[suffix]
	return c, ok
}
