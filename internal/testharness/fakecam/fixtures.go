package fakecam

import (
	"github.com/ptplink/ptplink-go/pkg/device"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Canned identity served by the default handlers.
const (
	// StorageID is the camera's single storage.
	StorageID uint32 = 0x00010001

	// Manufacturer, Model, DeviceVersion and SerialNumber are the
	// DeviceInfo identity strings.
	Manufacturer  = "PTPLink"
	Model         = "FakeCam"
	DeviceVersion = "1.0.2"
	SerialNumber  = "FC000042"
)

// Canned object handles. The two images sit inside the DCIM folder.
const (
	FolderHandle uint32 = 1
	Image1Handle uint32 = 2
	Image2Handle uint32 = 3
)

// fixtureDate is the capture and modification timestamp on every canned
// object.
const fixtureDate = "20260820T143005"

// str appends a fixture string. Fixture strings are short constants, so
// the length error cannot happen.
func str(w *wire.Writer, s string) {
	_ = w.Str(s)
}

// DeviceInfoPayload returns the canned GetDeviceInfo data phase. The
// advertised operation list matches the default handler set.
func DeviceInfoPayload() []byte {
	ops := []uint16{
		uint16(wire.OpGetDeviceInfo),
		uint16(wire.OpOpenSession),
		uint16(wire.OpCloseSession),
		uint16(wire.OpGetStorageIDs),
		uint16(wire.OpGetStorageInfo),
		uint16(wire.OpGetNumObjects),
		uint16(wire.OpGetObjectHandles),
		uint16(wire.OpGetObjectInfo),
		uint16(wire.OpGetObject),
		uint16(wire.OpGetThumb),
		uint16(wire.OpDeleteObject),
		uint16(wire.OpSendObjectInfo),
		uint16(wire.OpSendObject),
		uint16(wire.OpPowerDown),
		uint16(wire.OpGetDevicePropDesc),
		uint16(wire.OpGetDevicePropValue),
		uint16(wire.OpSetDevicePropValue),
		uint16(wire.OpGetPartialObject),
	}
	events := []uint16{
		uint16(wire.EventObjectAdded),
		uint16(wire.EventDeviceInfoChanged),
		uint16(wire.EventStoreFull),
	}
	props := []uint16{
		uint16(wire.PropBatteryLevel),
		uint16(wire.PropWhiteBalance),
		uint16(wire.PropDateTime),
	}

	var w wire.Writer
	w.U16(100) // standard version 1.00
	w.U32(0)   // no vendor extension
	w.U16(0)
	str(&w, "")
	w.U16(0) // standard functional mode
	w.U16Slice(ops)
	w.U16Slice(events)
	w.U16Slice(props)
	w.U16Slice([]uint16{uint16(wire.FormatEXIFJPEG)})
	w.U16Slice([]uint16{uint16(wire.FormatAssociation), uint16(wire.FormatEXIFJPEG)})
	str(&w, Manufacturer)
	str(&w, Model)
	str(&w, DeviceVersion)
	str(&w, SerialNumber)
	return w.Bytes()
}

// StorageInfoPayload returns the canned GetStorageInfo data phase: a
// writable 64 GiB DCF card with half its space free.
func StorageInfoPayload() []byte {
	var w wire.Writer
	w.U16(device.StorageRemovableRAM)
	w.U16(device.FilesystemDCF)
	w.U16(device.AccessReadWrite)
	w.U64(64 << 30)
	w.U64(32 << 30)
	w.U32(10000)
	str(&w, "SD Card")
	str(&w, "FAKECAM")
	return w.Bytes()
}

// ObjectData returns the deterministic image bytes served for a handle.
// The payload carries JPEG start and end markers so format checks in
// tests see a plausible image.
func ObjectData(handle uint32) []byte {
	size := 3072 + int(handle)*64
	b := make([]byte, size)
	b[0], b[1] = 0xFF, 0xD8
	for i := 2; i < size-2; i++ {
		b[i] = byte(i + int(handle))
	}
	b[size-2], b[size-1] = 0xFF, 0xD9
	return b
}

// ThumbData returns the thumbnail bytes for a handle. The payload is
// exactly 500 bytes, so with the default 512-byte packet size the data
// container fills one packet and the transfer ends in a zero-length
// packet.
func ThumbData(handle uint32) []byte {
	const size = 500
	b := make([]byte, size)
	b[0], b[1] = 0xFF, 0xD8
	for i := 2; i < size-2; i++ {
		b[i] = byte(i ^ int(handle))
	}
	b[size-2], b[size-1] = 0xFF, 0xD9
	return b
}

// WhiteBalanceDescPayload returns the canned GetDevicePropDesc data
// phase for WhiteBalance: a writable UINT16 enum of {2, 4, 6} with
// automatic (2) as both factory default and current value.
func WhiteBalanceDescPayload() []byte {
	var w wire.Writer
	w.U16(uint16(wire.PropWhiteBalance))
	w.U16(uint16(wire.TypeUint16))
	w.U8(device.AccessGetSet)
	w.U8(1)  // enabled
	w.U16(2) // factory default
	w.U16(2) // current
	w.U8(uint8(device.FormEnum))
	w.U16(3) // enumeration count is u16
	w.U16(2)
	w.U16(4)
	w.U16(6)
	return w.Bytes()
}

// objectInfoPayload renders the GetObjectInfo record for one store
// entry.
func objectInfoPayload(o *object) []byte {
	var w wire.Writer
	w.U32(StorageID)
	w.U16(uint16(o.format))
	w.U16(device.ProtectionNone)
	w.U32(uint32(len(o.data)))
	if o.format == wire.FormatAssociation {
		w.U16(uint16(wire.FormatUndefined)) // no thumbnail
		w.U32(0)
		w.U32(0)
		w.U32(0)
		w.U32(0) // no image dimensions
		w.U32(0)
		w.U32(0)
	} else {
		w.U16(uint16(wire.FormatJFIF))
		w.U32(500) // thumb size, see ThumbData
		w.U32(160)
		w.U32(120)
		w.U32(6000) // image dimensions
		w.U32(4000)
		w.U32(24)
	}
	w.U32(o.parent)
	if o.format == wire.FormatAssociation {
		w.U16(device.AssociationGenericFolder)
	} else {
		w.U16(device.AssociationUndefined)
	}
	w.U32(0) // association desc
	w.U32(0) // sequence number
	str(&w, o.name)
	str(&w, fixtureDate)
	str(&w, fixtureDate)
	str(&w, "") // keywords
	return w.Bytes()
}

// batteryLevelValue is the raw BatteryLevel property value (UINT8).
func batteryLevelValue() []byte {
	var w wire.Writer
	w.U8(85)
	return w.Bytes()
}

// whiteBalanceValue is the raw WhiteBalance property value (UINT16).
func whiteBalanceValue() []byte {
	var w wire.Writer
	w.U16(2)
	return w.Bytes()
}

// dateTimeValue is the raw DateTime property value (string).
func dateTimeValue() []byte {
	var w wire.Writer
	str(&w, "20260825T090000")
	return w.Bytes()
}
