package device

import (
	"errors"
	"testing"

	"github.com/ptplink/ptplink-go/pkg/wire"
)

// deviceInfoPayload builds a valid GetDeviceInfo data payload.
func deviceInfoPayload(t *testing.T) []byte {
	t.Helper()
	var w wire.Writer
	w.U16(100) // standard version 1.00
	w.U32(0)   // no vendor extension
	w.U16(0)
	mustStr(t, &w, "")
	w.U16(0) // standard functional mode
	w.U16Slice([]uint16{
		uint16(wire.OpGetDeviceInfo),
		uint16(wire.OpOpenSession),
		uint16(wire.OpCloseSession),
		uint16(wire.OpGetObjectHandles),
		uint16(wire.OpGetObject),
	})
	w.U16Slice([]uint16{uint16(wire.EventObjectAdded), uint16(wire.EventCaptureComplete)})
	w.U16Slice([]uint16{uint16(wire.PropBatteryLevel), uint16(wire.PropExposureTime)})
	w.U16Slice([]uint16{uint16(wire.FormatEXIFJPEG)})
	w.U16Slice([]uint16{uint16(wire.FormatEXIFJPEG), uint16(wire.FormatTIFF)})
	mustStr(t, &w, "ACME Optical")
	mustStr(t, &w, "Model X100")
	mustStr(t, &w, "1.2.3")
	mustStr(t, &w, "SN-0001")
	return w.Bytes()
}

func mustStr(t *testing.T, w *wire.Writer, s string) {
	t.Helper()
	if err := w.Str(s); err != nil {
		t.Fatalf("Str(%q) failed: %v", s, err)
	}
}

func TestDecodeDeviceInfo(t *testing.T) {
	info, err := DecodeDeviceInfo(deviceInfoPayload(t))
	if err != nil {
		t.Fatalf("DecodeDeviceInfo failed: %v", err)
	}

	if info.StandardVersion != 100 {
		t.Errorf("StandardVersion = %d, want 100", info.StandardVersion)
	}
	if len(info.OperationsSupported) != 5 {
		t.Errorf("OperationsSupported length = %d, want 5", len(info.OperationsSupported))
	}
	if len(info.EventsSupported) != 2 {
		t.Errorf("EventsSupported length = %d, want 2", len(info.EventsSupported))
	}
	if len(info.ImageFormats) != 2 {
		t.Errorf("ImageFormats length = %d, want 2", len(info.ImageFormats))
	}
	if info.Manufacturer != "ACME Optical" {
		t.Errorf("Manufacturer = %q, want %q", info.Manufacturer, "ACME Optical")
	}
	if info.Model != "Model X100" {
		t.Errorf("Model = %q, want %q", info.Model, "Model X100")
	}
	if info.SerialNumber != "SN-0001" {
		t.Errorf("SerialNumber = %q, want %q", info.SerialNumber, "SN-0001")
	}

	if !info.SupportsOperation(wire.OpGetObject) {
		t.Error("SupportsOperation(OpGetObject) = false, want true")
	}
	if info.SupportsOperation(wire.OpDeleteObject) {
		t.Error("SupportsOperation(OpDeleteObject) = true, want false")
	}
	if !info.SupportsProperty(wire.PropBatteryLevel) {
		t.Error("SupportsProperty(PropBatteryLevel) = false, want true")
	}

	want := "ACME Optical Model X100 (1.2.3)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDecodeDeviceInfoTrailingByte(t *testing.T) {
	payload := append(deviceInfoPayload(t), 0x00)
	if _, err := DecodeDeviceInfo(payload); !errors.Is(err, wire.ErrMalformed) {
		t.Errorf("expected ErrMalformed for trailing byte, got %v", err)
	}
}

func TestDecodeDeviceInfoTruncated(t *testing.T) {
	payload := deviceInfoPayload(t)
	for _, cut := range []int{1, 8, len(payload) / 2, len(payload) - 1} {
		if _, err := DecodeDeviceInfo(payload[:cut]); !errors.Is(err, wire.ErrMalformed) {
			t.Errorf("cut at %d: expected ErrMalformed, got %v", cut, err)
		}
	}
}

func TestDecodeStorageInfo(t *testing.T) {
	var w wire.Writer
	w.U16(StorageRemovableRAM)
	w.U16(FilesystemDCF)
	w.U16(AccessReadWrite)
	w.U64(64 << 30) // 64 GiB card
	w.U64(32 << 30)
	w.U32(10000)
	mustStr(t, &w, "SD Card")
	mustStr(t, &w, "EOS_DIGITAL")

	info, err := DecodeStorageInfo(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeStorageInfo failed: %v", err)
	}

	if info.StorageType != StorageRemovableRAM {
		t.Errorf("StorageType = 0x%04X, want 0x%04X", info.StorageType, StorageRemovableRAM)
	}
	if info.FilesystemType != FilesystemDCF {
		t.Errorf("FilesystemType = 0x%04X, want 0x%04X", info.FilesystemType, FilesystemDCF)
	}
	if info.MaxCapacity != 64<<30 {
		t.Errorf("MaxCapacity = %d, want %d", info.MaxCapacity, uint64(64<<30))
	}
	if info.FreeSpaceBytes != 32<<30 {
		t.Errorf("FreeSpaceBytes = %d, want %d", info.FreeSpaceBytes, uint64(32<<30))
	}
	if info.FreeSpaceObjects != 10000 {
		t.Errorf("FreeSpaceObjects = %d, want 10000", info.FreeSpaceObjects)
	}
	if info.VolumeLabel != "EOS_DIGITAL" {
		t.Errorf("VolumeLabel = %q, want %q", info.VolumeLabel, "EOS_DIGITAL")
	}
	if !info.Writable() {
		t.Error("Writable() = false, want true")
	}
}

func TestStorageInfoReadOnly(t *testing.T) {
	var w wire.Writer
	w.U16(StorageFixedROM)
	w.U16(FilesystemGenericFlat)
	w.U16(AccessReadOnly)
	w.U64(1 << 20)
	w.U64(0)
	w.U32(0)
	mustStr(t, &w, "")
	mustStr(t, &w, "")

	info, err := DecodeStorageInfo(w.Bytes())
	if err != nil {
		t.Fatalf("DecodeStorageInfo failed: %v", err)
	}
	if info.Writable() {
		t.Error("Writable() = true, want false")
	}
}

func objectInfoPayload(t *testing.T, format wire.FormatCode, filename string) []byte {
	t.Helper()
	var w wire.Writer
	w.U32(0x00010001) // storage id
	w.U16(uint16(format))
	w.U16(ProtectionNone)
	w.U32(2_458_112) // compressed size
	w.U16(uint16(wire.FormatEXIFJPEG))
	w.U32(12_288) // thumb size, then thumb and image dimensions
	w.U32(160)
	w.U32(120)
	w.U32(8192)
	w.U32(5464)
	w.U32(14) // bit depth
	w.U32(0)  // parent = storage root
	w.U16(AssociationUndefined)
	w.U32(0)
	w.U32(42) // sequence number
	mustStr(t, &w, filename)
	mustStr(t, &w, "20260815T101530")
	mustStr(t, &w, "20260815T101530")
	mustStr(t, &w, "")
	return w.Bytes()
}

func TestDecodeObjectInfo(t *testing.T) {
	info, err := DecodeObjectInfo(objectInfoPayload(t, wire.FormatEXIFJPEG, "IMG_0042.JPG"))
	if err != nil {
		t.Fatalf("DecodeObjectInfo failed: %v", err)
	}

	if info.StorageID != 0x00010001 {
		t.Errorf("StorageID = 0x%08X, want 0x00010001", info.StorageID)
	}
	if info.ObjectFormat != wire.FormatEXIFJPEG {
		t.Errorf("ObjectFormat = %v, want EXIF/JPEG", info.ObjectFormat)
	}
	if info.ObjectCompressedSize != 2_458_112 {
		t.Errorf("ObjectCompressedSize = %d, want 2458112", info.ObjectCompressedSize)
	}
	if info.ImagePixWidth != 8192 || info.ImagePixHeight != 5464 {
		t.Errorf("image size = %dx%d, want 8192x5464", info.ImagePixWidth, info.ImagePixHeight)
	}
	if info.ParentObject != 0 {
		t.Errorf("ParentObject = %d, want 0", info.ParentObject)
	}
	if info.SequenceNumber != 42 {
		t.Errorf("SequenceNumber = %d, want 42", info.SequenceNumber)
	}
	if info.Filename != "IMG_0042.JPG" {
		t.Errorf("Filename = %q, want %q", info.Filename, "IMG_0042.JPG")
	}
	if info.CaptureDate != "20260815T101530" {
		t.Errorf("CaptureDate = %q, want %q", info.CaptureDate, "20260815T101530")
	}

	if !info.IsImage() {
		t.Error("IsImage() = false, want true")
	}
	if info.IsAssociation() {
		t.Error("IsAssociation() = true, want false")
	}
}

func TestObjectInfoAssociation(t *testing.T) {
	info, err := DecodeObjectInfo(objectInfoPayload(t, wire.FormatAssociation, "DCIM"))
	if err != nil {
		t.Fatalf("DecodeObjectInfo failed: %v", err)
	}
	if info.IsImage() {
		t.Error("IsImage() = true, want false")
	}
	if !info.IsAssociation() {
		t.Error("IsAssociation() = false, want true")
	}
}

func TestDecodeObjectInfoTruncated(t *testing.T) {
	payload := objectInfoPayload(t, wire.FormatEXIFJPEG, "IMG_0001.JPG")
	if _, err := DecodeObjectInfo(payload[:20]); !errors.Is(err, wire.ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}
