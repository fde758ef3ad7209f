package device

import (
	"fmt"
	"strings"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

// GetSet values in a property descriptor.
const (
	// AccessGet marks a read-only property.
	AccessGet uint8 = 0x00

	// AccessGetSet marks a writable property.
	AccessGetSet uint8 = 0x01
)

// FormFlag selects which form a property descriptor carries.
type FormFlag uint8

const (
	// FormNone means any value of the data type is legal.
	FormNone FormFlag = 0x00

	// FormRange constrains the value to min..max in step increments.
	FormRange FormFlag = 0x01

	// FormEnum constrains the value to an explicit list.
	FormEnum FormFlag = 0x02
)

// String returns the form flag name.
func (f FormFlag) String() string {
	switch f {
	case FormNone:
		return "NONE"
	case FormRange:
		return "RANGE"
	case FormEnum:
		return "ENUM"
	default:
		return "UNKNOWN"
	}
}

// Form describes the legal values of a property. Min, Max and Step are
// set for FormRange; Values is set for FormEnum.
type Form struct {
	Flag   FormFlag
	Min    wire.Value
	Max    wire.Value
	Step   wire.Value
	Values []wire.Value
}

// String formats the form for display.
func (f Form) String() string {
	switch f.Flag {
	case FormRange:
		return fmt.Sprintf("range %s..%s step %s", f.Min, f.Max, f.Step)
	case FormEnum:
		parts := make([]string, len(f.Values))
		for i, v := range f.Values {
			parts[i] = v.String()
		}
		return "enum {" + strings.Join(parts, " ") + "}"
	default:
		return "none"
	}
}

// PropInfo is the property descriptor returned by GetDevicePropDesc.
// FactoryDefault and Current are decoded with the record's own DataType,
// which makes the descriptor self-describing on the wire.
type PropInfo struct {
	PropertyCode wire.PropCode
	DataType     wire.DataType
	GetSet       uint8
	// IsEnable is a vendor field some cameras emit after GetSet.
	IsEnable       uint8
	FactoryDefault wire.Value
	Current        wire.Value
	Form           Form
}

// Writable reports whether the property accepts SetDevicePropValue.
func (p PropInfo) Writable() bool {
	return p.GetSet == AccessGetSet
}

// DecodePropInfo decodes a GetDevicePropDesc data payload.
func DecodePropInfo(payload []byte) (PropInfo, error) {
	r := wire.NewReader(payload)
	var info PropInfo
	code, err := r.U16()
	if err != nil {
		return PropInfo{}, err
	}
	info.PropertyCode = wire.PropCode(code)
	dt, err := r.U16()
	if err != nil {
		return PropInfo{}, err
	}
	info.DataType = wire.DataType(dt)
	if info.GetSet, err = r.U8(); err != nil {
		return PropInfo{}, err
	}
	if info.IsEnable, err = r.U8(); err != nil {
		return PropInfo{}, err
	}
	if info.FactoryDefault, err = wire.DecodeValue(r, info.DataType); err != nil {
		return PropInfo{}, err
	}
	if info.Current, err = wire.DecodeValue(r, info.DataType); err != nil {
		return PropInfo{}, err
	}
	if info.Form, err = decodeForm(r, info.DataType); err != nil {
		return PropInfo{}, err
	}
	if err = r.ExpectEnd(); err != nil {
		return PropInfo{}, err
	}
	return info, nil
}

// decodeForm reads the form flag and its payload. Unknown flags carry
// no payload and decode as FormNone, keeping the flag byte consumed.
func decodeForm(r *wire.Reader, dt wire.DataType) (Form, error) {
	flag, err := r.U8()
	if err != nil {
		return Form{}, err
	}
	switch FormFlag(flag) {
	case FormRange:
		f := Form{Flag: FormRange}
		if f.Min, err = wire.DecodeValue(r, dt); err != nil {
			return Form{}, err
		}
		if f.Max, err = wire.DecodeValue(r, dt); err != nil {
			return Form{}, err
		}
		if f.Step, err = wire.DecodeValue(r, dt); err != nil {
			return Form{}, err
		}
		return f, nil
	case FormEnum:
		// Enumeration counts are u16, unlike the u32 array counts.
		n, err := r.U16()
		if err != nil {
			return Form{}, err
		}
		f := Form{Flag: FormEnum, Values: make([]wire.Value, 0, n)}
		for i := 0; i < int(n); i++ {
			v, err := wire.DecodeValue(r, dt)
			if err != nil {
				return Form{}, err
			}
			f.Values = append(f.Values, v)
		}
		return f, nil
	default:
		return Form{Flag: FormNone}, nil
	}
}
