package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType is a PTP data type code, tagging the wire encoding of a value.
type DataType uint16

// PTP data type codes.
const (
	TypeUndefined DataType = 0x0000
	TypeInt8      DataType = 0x0001
	TypeUint8     DataType = 0x0002
	TypeInt16     DataType = 0x0003
	TypeUint16    DataType = 0x0004
	TypeInt32     DataType = 0x0005
	TypeUint32    DataType = 0x0006
	TypeInt64     DataType = 0x0007
	TypeUint64    DataType = 0x0008
	TypeInt128    DataType = 0x0009
	TypeUint128   DataType = 0x000A

	// Array types mirror the scalars with the 0x4000 bit set.
	TypeInt8Array    DataType = 0x4001
	TypeUint8Array   DataType = 0x4002
	TypeInt16Array   DataType = 0x4003
	TypeUint16Array  DataType = 0x4004
	TypeInt32Array   DataType = 0x4005
	TypeUint32Array  DataType = 0x4006
	TypeInt64Array   DataType = 0x4007
	TypeUint64Array  DataType = 0x4008
	TypeInt128Array  DataType = 0x4009
	TypeUint128Array DataType = 0x400A

	// TypeString is the UTF-16 string type.
	TypeString DataType = 0xFFFF
)

const arrayBit = 0x4000

// IsArray reports whether t is one of the array types.
func (t DataType) IsArray() bool {
	return t&arrayBit != 0 && t != TypeString
}

// Elem returns the scalar element type of an array type. For non-array
// types it returns t unchanged.
func (t DataType) Elem() DataType {
	if t.IsArray() {
		return t &^ arrayBit
	}
	return t
}

// String returns the data type name.
func (t DataType) String() string {
	switch t {
	case TypeUndefined:
		return "UNDEF"
	case TypeInt8:
		return "INT8"
	case TypeUint8:
		return "UINT8"
	case TypeInt16:
		return "INT16"
	case TypeUint16:
		return "UINT16"
	case TypeInt32:
		return "INT32"
	case TypeUint32:
		return "UINT32"
	case TypeInt64:
		return "INT64"
	case TypeUint64:
		return "UINT64"
	case TypeInt128:
		return "INT128"
	case TypeUint128:
		return "UINT128"
	case TypeString:
		return "STR"
	default:
		if t.IsArray() {
			return "A" + t.Elem().String()
		}
		return fmt.Sprintf("0x%04X", uint16(t))
	}
}

// Uint128 is a 128-bit integer as two 64-bit words. On the wire the low
// word is encoded first.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Value is a typed PTP value: a scalar, an array of scalars, a string,
// or the explicit Undefined. The Type field selects which payload field
// is meaningful: Int for signed scalars up to 64 bits, Uint for unsigned
// scalars up to 64 bits, I128 for either 128-bit width, Str for strings,
// and Array (elements carrying the scalar type) for array types.
type Value struct {
	Type  DataType
	Int   int64
	Uint  uint64
	I128  Uint128
	Str   string
	Array []Value
}

// Undefined is the explicit undefined value produced for unknown type
// codes.
var Undefined = Value{Type: TypeUndefined}

// Scalar constructors.

// Int8Value returns an INT8 value.
func Int8Value(v int8) Value { return Value{Type: TypeInt8, Int: int64(v)} }

// Uint8Value returns a UINT8 value.
func Uint8Value(v uint8) Value { return Value{Type: TypeUint8, Uint: uint64(v)} }

// Int16Value returns an INT16 value.
func Int16Value(v int16) Value { return Value{Type: TypeInt16, Int: int64(v)} }

// Uint16Value returns a UINT16 value.
func Uint16Value(v uint16) Value { return Value{Type: TypeUint16, Uint: uint64(v)} }

// Int32Value returns an INT32 value.
func Int32Value(v int32) Value { return Value{Type: TypeInt32, Int: int64(v)} }

// Uint32Value returns a UINT32 value.
func Uint32Value(v uint32) Value { return Value{Type: TypeUint32, Uint: uint64(v)} }

// Int64Value returns an INT64 value.
func Int64Value(v int64) Value { return Value{Type: TypeInt64, Int: v} }

// Uint64Value returns a UINT64 value.
func Uint64Value(v uint64) Value { return Value{Type: TypeUint64, Uint: v} }

// Int128Value returns an INT128 value from its two words.
func Int128Value(v Uint128) Value { return Value{Type: TypeInt128, I128: v} }

// Uint128Value returns a UINT128 value from its two words.
func Uint128Value(v Uint128) Value { return Value{Type: TypeUint128, I128: v} }

// StringValue returns a STR value.
func StringValue(s string) Value { return Value{Type: TypeString, Str: s} }

// ArrayValue returns an array value of the given scalar element type.
// Elements are normalized to carry elem as their type tag.
func ArrayValue(elem DataType, elems ...Value) Value {
	arr := make([]Value, len(elems))
	for i, e := range elems {
		e.Type = elem
		arr[i] = e
	}
	return Value{Type: elem | arrayBit, Array: arr}
}

// DecodeValue decodes one value of type t from r. Unknown type codes
// yield Undefined without consuming any bytes.
func DecodeValue(r *Reader, t DataType) (Value, error) {
	switch t {
	case TypeInt8:
		v, err := r.I8()
		return Value{Type: t, Int: int64(v)}, err
	case TypeUint8:
		v, err := r.U8()
		return Value{Type: t, Uint: uint64(v)}, err
	case TypeInt16:
		v, err := r.I16()
		return Value{Type: t, Int: int64(v)}, err
	case TypeUint16:
		v, err := r.U16()
		return Value{Type: t, Uint: uint64(v)}, err
	case TypeInt32:
		v, err := r.I32()
		return Value{Type: t, Int: int64(v)}, err
	case TypeUint32:
		v, err := r.U32()
		return Value{Type: t, Uint: uint64(v)}, err
	case TypeInt64:
		v, err := r.I64()
		return Value{Type: t, Int: v}, err
	case TypeUint64:
		v, err := r.U64()
		return Value{Type: t, Uint: v}, err
	case TypeInt128, TypeUint128:
		v, err := r.U128()
		return Value{Type: t, I128: v}, err
	case TypeString:
		s, err := r.Str()
		return Value{Type: t, Str: s}, err
	default:
		if t.IsArray() {
			return decodeArray(r, t)
		}
		return Undefined, nil
	}
}

func decodeArray(r *Reader, t DataType) (Value, error) {
	n, err := r.U32()
	if err != nil {
		return Value{}, err
	}
	elem := t.Elem()
	arr := make([]Value, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := DecodeValue(r, elem)
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, v)
	}
	return Value{Type: t, Array: arr}, nil
}

// Encode appends the wire encoding of v to w. Undefined encodes to
// nothing.
func (v Value) Encode(w *Writer) error {
	switch v.Type {
	case TypeUndefined:
		return nil
	case TypeInt8:
		w.I8(int8(v.Int))
	case TypeUint8:
		w.U8(uint8(v.Uint))
	case TypeInt16:
		w.I16(int16(v.Int))
	case TypeUint16:
		w.U16(uint16(v.Uint))
	case TypeInt32:
		w.I32(int32(v.Int))
	case TypeUint32:
		w.U32(uint32(v.Uint))
	case TypeInt64:
		w.I64(v.Int)
	case TypeUint64:
		w.U64(v.Uint)
	case TypeInt128, TypeUint128:
		w.U128(v.I128)
	case TypeString:
		return w.Str(v.Str)
	default:
		if v.Type.IsArray() {
			w.U32(uint32(len(v.Array)))
			elem := v.Type.Elem()
			for _, e := range v.Array {
				e.Type = elem
				if err := e.Encode(w); err != nil {
					return err
				}
			}
			return nil
		}
		return fmt.Errorf("%w: cannot encode data type %s", ErrMalformed, v.Type)
	}
	return nil
}

// EncodeBytes returns the wire encoding of v as a fresh buffer.
func (v Value) EncodeBytes() ([]byte, error) {
	var w Writer
	if err := v.Encode(&w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Equal reports whether two values have the same type and contents.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeUndefined:
		return true
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return v.Int == o.Int
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return v.Uint == o.Uint
	case TypeInt128, TypeUint128:
		return v.I128 == o.I128
	case TypeString:
		return v.Str == o.Str
	default:
		if !v.Type.IsArray() || len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	}
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Type {
	case TypeUndefined:
		return "UNDEF"
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return strconv.FormatInt(v.Int, 10)
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return strconv.FormatUint(v.Uint, 10)
	case TypeInt128, TypeUint128:
		return fmt.Sprintf("0x%016x%016x", v.I128.Hi, v.I128.Lo)
	case TypeString:
		return strconv.Quote(v.Str)
	default:
		if v.Type.IsArray() {
			parts := make([]string, len(v.Array))
			for i, e := range v.Array {
				parts[i] = e.String()
			}
			return "[" + strings.Join(parts, " ") + "]"
		}
		return fmt.Sprintf("<%s>", v.Type)
	}
}
