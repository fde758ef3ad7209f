// Package device decodes the structured records a camera returns in the
// data phase: DeviceInfo, StorageInfo, ObjectInfo and property
// descriptors. Records are fixed field sequences with no tags, so each
// decoder consumes its payload in order and fails with wire.ErrMalformed
// when bytes are missing or left over.
package device

import (
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Storage types reported in StorageInfo.
const (
	StorageUndefined    uint16 = 0x0000
	StorageFixedROM     uint16 = 0x0001
	StorageRemovableROM uint16 = 0x0002
	StorageFixedRAM     uint16 = 0x0003
	StorageRemovableRAM uint16 = 0x0004
)

// Filesystem types reported in StorageInfo.
const (
	FilesystemUndefined    uint16 = 0x0000
	FilesystemGenericFlat  uint16 = 0x0001
	FilesystemHierarchical uint16 = 0x0002
	FilesystemDCF          uint16 = 0x0003
)

// Access capabilities reported in StorageInfo.
const (
	AccessReadWrite          uint16 = 0x0000
	AccessReadOnly           uint16 = 0x0001
	AccessReadOnlyWithDelete uint16 = 0x0002
)

// Protection status values reported in ObjectInfo.
const (
	ProtectionNone     uint16 = 0x0000
	ProtectionReadOnly uint16 = 0x0001
)

// Association types reported in ObjectInfo for folder-like objects.
const (
	AssociationUndefined     uint16 = 0x0000
	AssociationGenericFolder uint16 = 0x0001
	AssociationAlbum         uint16 = 0x0002
	AssociationTimeSequence  uint16 = 0x0003
)

// DeviceInfo is the record returned by GetDeviceInfo. The capability
// lists describe what the camera will accept before a session is even
// open.
type DeviceInfo struct {
	StandardVersion        uint16
	VendorExtensionID      uint32
	VendorExtensionVersion uint16
	VendorExtensionDesc    string
	FunctionalMode         uint16
	OperationsSupported    []wire.OpCode
	EventsSupported        []wire.EventCode
	DevicePropsSupported   []wire.PropCode
	CaptureFormats         []wire.FormatCode
	ImageFormats           []wire.FormatCode
	Manufacturer           string
	Model                  string
	DeviceVersion          string
	SerialNumber           string
}

// SupportsOperation reports whether the camera lists op in its
// supported operations.
func (d DeviceInfo) SupportsOperation(op wire.OpCode) bool {
	for _, c := range d.OperationsSupported {
		if c == op {
			return true
		}
	}
	return false
}

// SupportsProperty reports whether the camera lists prop in its
// supported device properties.
func (d DeviceInfo) SupportsProperty(prop wire.PropCode) bool {
	for _, c := range d.DevicePropsSupported {
		if c == prop {
			return true
		}
	}
	return false
}

// String returns a short human-readable identity line.
func (d DeviceInfo) String() string {
	return d.Manufacturer + " " + d.Model + " (" + d.DeviceVersion + ")"
}

// DecodeDeviceInfo decodes a GetDeviceInfo data payload.
func DecodeDeviceInfo(payload []byte) (DeviceInfo, error) {
	r := wire.NewReader(payload)
	var info DeviceInfo
	var err error
	if info.StandardVersion, err = r.U16(); err != nil {
		return DeviceInfo{}, err
	}
	if info.VendorExtensionID, err = r.U32(); err != nil {
		return DeviceInfo{}, err
	}
	if info.VendorExtensionVersion, err = r.U16(); err != nil {
		return DeviceInfo{}, err
	}
	if info.VendorExtensionDesc, err = r.Str(); err != nil {
		return DeviceInfo{}, err
	}
	if info.FunctionalMode, err = r.U16(); err != nil {
		return DeviceInfo{}, err
	}
	if info.OperationsSupported, err = opCodes(r); err != nil {
		return DeviceInfo{}, err
	}
	if info.EventsSupported, err = eventCodes(r); err != nil {
		return DeviceInfo{}, err
	}
	if info.DevicePropsSupported, err = propCodes(r); err != nil {
		return DeviceInfo{}, err
	}
	if info.CaptureFormats, err = formatCodes(r); err != nil {
		return DeviceInfo{}, err
	}
	if info.ImageFormats, err = formatCodes(r); err != nil {
		return DeviceInfo{}, err
	}
	if info.Manufacturer, err = r.Str(); err != nil {
		return DeviceInfo{}, err
	}
	if info.Model, err = r.Str(); err != nil {
		return DeviceInfo{}, err
	}
	if info.DeviceVersion, err = r.Str(); err != nil {
		return DeviceInfo{}, err
	}
	if info.SerialNumber, err = r.Str(); err != nil {
		return DeviceInfo{}, err
	}
	if err = r.ExpectEnd(); err != nil {
		return DeviceInfo{}, err
	}
	return info, nil
}

// StorageInfo is the record returned by GetStorageInfo for one storage.
type StorageInfo struct {
	StorageType      uint16
	FilesystemType   uint16
	AccessCapability uint16
	// MaxCapacity and FreeSpaceBytes are byte counts.
	MaxCapacity        uint64
	FreeSpaceBytes     uint64
	FreeSpaceObjects   uint32
	StorageDescription string
	VolumeLabel        string
}

// Writable reports whether objects can be written to the storage.
func (s StorageInfo) Writable() bool {
	return s.AccessCapability == AccessReadWrite
}

// DecodeStorageInfo decodes a GetStorageInfo data payload.
func DecodeStorageInfo(payload []byte) (StorageInfo, error) {
	r := wire.NewReader(payload)
	var info StorageInfo
	var err error
	if info.StorageType, err = r.U16(); err != nil {
		return StorageInfo{}, err
	}
	if info.FilesystemType, err = r.U16(); err != nil {
		return StorageInfo{}, err
	}
	if info.AccessCapability, err = r.U16(); err != nil {
		return StorageInfo{}, err
	}
	if info.MaxCapacity, err = r.U64(); err != nil {
		return StorageInfo{}, err
	}
	if info.FreeSpaceBytes, err = r.U64(); err != nil {
		return StorageInfo{}, err
	}
	if info.FreeSpaceObjects, err = r.U32(); err != nil {
		return StorageInfo{}, err
	}
	if info.StorageDescription, err = r.Str(); err != nil {
		return StorageInfo{}, err
	}
	if info.VolumeLabel, err = r.Str(); err != nil {
		return StorageInfo{}, err
	}
	if err = r.ExpectEnd(); err != nil {
		return StorageInfo{}, err
	}
	return info, nil
}

// ObjectInfo is the record returned by GetObjectInfo for one object.
// Dates are the protocol's "YYYYMMDDThhmmss" strings, kept verbatim.
type ObjectInfo struct {
	StorageID            uint32
	ObjectFormat         wire.FormatCode
	ProtectionStatus     uint16
	ObjectCompressedSize uint32
	ThumbFormat          wire.FormatCode
	ThumbCompressedSize  uint32
	ThumbPixWidth        uint32
	ThumbPixHeight       uint32
	ImagePixWidth        uint32
	ImagePixHeight       uint32
	ImageBitDepth        uint32
	// ParentObject is 0 for objects at the storage root.
	ParentObject     uint32
	AssociationType  uint16
	AssociationDesc  uint32
	SequenceNumber   uint32
	Filename         string
	CaptureDate      string
	ModificationDate string
	Keywords         string
}

// IsImage reports whether the object format is in the image format
// block (0x38xx).
func (o ObjectInfo) IsImage() bool {
	return uint16(o.ObjectFormat)&0xFF00 == 0x3800
}

// IsAssociation reports whether the object is a folder-like container.
func (o ObjectInfo) IsAssociation() bool {
	return o.ObjectFormat == wire.FormatAssociation
}

// DecodeObjectInfo decodes a GetObjectInfo data payload.
func DecodeObjectInfo(payload []byte) (ObjectInfo, error) {
	r := wire.NewReader(payload)
	var info ObjectInfo
	var err error
	if info.StorageID, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	var format uint16
	if format, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	info.ObjectFormat = wire.FormatCode(format)
	if info.ProtectionStatus, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ObjectCompressedSize, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if format, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	info.ThumbFormat = wire.FormatCode(format)
	if info.ThumbCompressedSize, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ThumbPixWidth, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ThumbPixHeight, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ImagePixWidth, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ImagePixHeight, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ImageBitDepth, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ParentObject, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.AssociationType, err = r.U16(); err != nil {
		return ObjectInfo{}, err
	}
	if info.AssociationDesc, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.SequenceNumber, err = r.U32(); err != nil {
		return ObjectInfo{}, err
	}
	if info.Filename, err = r.Str(); err != nil {
		return ObjectInfo{}, err
	}
	if info.CaptureDate, err = r.Str(); err != nil {
		return ObjectInfo{}, err
	}
	if info.ModificationDate, err = r.Str(); err != nil {
		return ObjectInfo{}, err
	}
	if info.Keywords, err = r.Str(); err != nil {
		return ObjectInfo{}, err
	}
	if err = r.ExpectEnd(); err != nil {
		return ObjectInfo{}, err
	}
	return info, nil
}

// opCodes reads a u32-counted code list as operation codes.
func opCodes(r *wire.Reader) ([]wire.OpCode, error) {
	raw, err := r.U16Slice()
	if err != nil {
		return nil, err
	}
	out := make([]wire.OpCode, len(raw))
	for i, v := range raw {
		out[i] = wire.OpCode(v)
	}
	return out, nil
}

// eventCodes reads a u32-counted code list as event codes.
func eventCodes(r *wire.Reader) ([]wire.EventCode, error) {
	raw, err := r.U16Slice()
	if err != nil {
		return nil, err
	}
	out := make([]wire.EventCode, len(raw))
	for i, v := range raw {
		out[i] = wire.EventCode(v)
	}
	return out, nil
}

// propCodes reads a u32-counted code list as device property codes.
func propCodes(r *wire.Reader) ([]wire.PropCode, error) {
	raw, err := r.U16Slice()
	if err != nil {
		return nil, err
	}
	out := make([]wire.PropCode, len(raw))
	for i, v := range raw {
		out[i] = wire.PropCode(v)
	}
	return out, nil
}

// formatCodes reads a u32-counted code list as object format codes.
func formatCodes(r *wire.Reader) ([]wire.FormatCode, error) {
	raw, err := r.U16Slice()
	if err != nil {
		return nil, err
	}
	out := make([]wire.FormatCode, len(raw))
	for i, v := range raw {
		out[i] = wire.FormatCode(v)
	}
	return out, nil
}
