package fakecam

import (
	"sort"

	"github.com/ptplink/ptplink-go/pkg/device"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// wildcard is the protocol's 0xFFFFFFFF parameter value: all storages,
// all objects, the root parent or the whole remaining byte range,
// depending on the operation.
const wildcard = 0xFFFFFFFF

// installHandlers registers the default handler for every operation the
// canned DeviceInfo advertises.
func (f *Camera) installHandlers() {
	f.Handlers = map[wire.OpCode]Handler{
		wire.OpGetDeviceInfo:      f.handleGetDeviceInfo,
		wire.OpOpenSession:        f.handleOpenSession,
		wire.OpCloseSession:       f.handleCloseSession,
		wire.OpGetStorageIDs:      f.handleGetStorageIDs,
		wire.OpGetStorageInfo:     f.handleGetStorageInfo,
		wire.OpGetNumObjects:      f.handleGetNumObjects,
		wire.OpGetObjectHandles:   f.handleGetObjectHandles,
		wire.OpGetObjectInfo:      f.handleGetObjectInfo,
		wire.OpGetObject:          f.handleGetObject,
		wire.OpGetThumb:           f.handleGetThumb,
		wire.OpDeleteObject:       f.handleDeleteObject,
		wire.OpSendObjectInfo:     f.handleSendObjectInfo,
		wire.OpSendObject:         f.handleSendObject,
		wire.OpPowerDown:          f.handlePowerDown,
		wire.OpGetDevicePropDesc:  f.handleGetDevicePropDesc,
		wire.OpGetDevicePropValue: f.handleGetDevicePropValue,
		wire.OpSetDevicePropValue: f.handleSetDevicePropValue,
		wire.OpGetPartialObject:   f.handleGetPartialObject,
	}
}

func (f *Camera) handleGetDeviceInfo(Command) Reply {
	return Reply{Data: DeviceInfoPayload()}
}

func (f *Camera) handleOpenSession(cmd Command) Reply {
	if len(cmd.Params) < 1 || cmd.Params[0] == 0 {
		return Reply{Code: wire.RespInvalidParameter}
	}
	if f.sessionOpen {
		return Reply{Code: wire.RespSessionAlreadyOpen}
	}
	f.sessionOpen = true
	f.sessionID = cmd.Params[0]
	return Reply{}
}

func (f *Camera) handleCloseSession(Command) Reply {
	f.sessionOpen = false
	f.sessionID = 0
	return Reply{}
}

func (f *Camera) handleGetStorageIDs(Command) Reply {
	var w wire.Writer
	w.U32Slice([]uint32{StorageID})
	return Reply{Data: w.Bytes()}
}

func (f *Camera) handleGetStorageInfo(cmd Command) Reply {
	if len(cmd.Params) < 1 || cmd.Params[0] != StorageID {
		return Reply{Code: wire.RespInvalidStorageID}
	}
	return Reply{Data: StorageInfoPayload()}
}

func (f *Camera) handleGetNumObjects(cmd Command) Reply {
	handles, code := f.selectHandles(cmd.Params)
	if code != 0 {
		return Reply{Code: code}
	}
	return Reply{Params: []uint32{uint32(len(handles))}}
}

func (f *Camera) handleGetObjectHandles(cmd Command) Reply {
	handles, code := f.selectHandles(cmd.Params)
	if code != 0 {
		return Reply{Code: code}
	}
	var w wire.Writer
	w.U32Slice(handles)
	return Reply{Data: w.Bytes()}
}

// selectHandles applies the storage/format/parent command parameters to
// the object store. A parent of 0 selects everything on the storage; the
// wildcard selects objects at the root.
func (f *Camera) selectHandles(params []uint32) ([]uint32, wire.RespCode) {
	var storage, format, parent uint32
	if len(params) > 0 {
		storage = params[0]
	}
	if len(params) > 1 {
		format = params[1]
	}
	if len(params) > 2 {
		parent = params[2]
	}

	if storage != wildcard && storage != StorageID {
		return nil, wire.RespInvalidStorageID
	}

	handles := make([]uint32, 0, len(f.objects))
	for h, o := range f.objects {
		if format != 0 && uint32(o.format) != format {
			continue
		}
		switch parent {
		case 0:
			// all objects
		case wildcard:
			if o.parent != 0 {
				continue
			}
		default:
			if o.parent != parent {
				continue
			}
		}
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles, 0
}

func (f *Camera) handleGetObjectInfo(cmd Command) Reply {
	o, code := f.lookupObject(cmd.Params)
	if code != 0 {
		return Reply{Code: code}
	}
	return Reply{Data: objectInfoPayload(o)}
}

func (f *Camera) handleGetObject(cmd Command) Reply {
	o, code := f.lookupObject(cmd.Params)
	if code != 0 {
		return Reply{Code: code}
	}
	if o.data == nil {
		return Reply{Code: wire.RespInvalidObjectHandle}
	}
	return Reply{Data: o.data}
}

func (f *Camera) handleGetThumb(cmd Command) Reply {
	o, code := f.lookupObject(cmd.Params)
	if code != 0 {
		return Reply{Code: code}
	}
	if o.format == wire.FormatAssociation {
		return Reply{Code: wire.RespNoThumbnailPresent}
	}
	return Reply{Data: ThumbData(cmd.Params[0])}
}

func (f *Camera) handleGetPartialObject(cmd Command) Reply {
	if len(cmd.Params) < 3 {
		return Reply{Code: wire.RespInvalidParameter}
	}
	o, code := f.lookupObject(cmd.Params)
	if code != 0 {
		return Reply{Code: code}
	}

	offset, want := int(cmd.Params[1]), cmd.Params[2]
	if offset > len(o.data) {
		return Reply{Code: wire.RespInvalidParameter}
	}
	part := o.data[offset:]
	if want != wildcard && int(want) < len(part) {
		part = part[:want]
	}
	return Reply{Data: part, Params: []uint32{uint32(len(part))}}
}

func (f *Camera) handleDeleteObject(cmd Command) Reply {
	if len(cmd.Params) < 1 {
		return Reply{Code: wire.RespInvalidParameter}
	}
	handle := cmd.Params[0]
	if handle == wildcard {
		f.objects = map[uint32]*object{}
		return Reply{}
	}

	if _, ok := f.objects[handle]; !ok {
		return Reply{Code: wire.RespInvalidObjectHandle}
	}
	delete(f.objects, handle)
	// deleting a folder takes its children with it
	for h, o := range f.objects {
		if o.parent == handle {
			delete(f.objects, h)
		}
	}
	return Reply{}
}

func (f *Camera) handleSendObjectInfo(cmd Command) Reply {
	info, err := device.DecodeObjectInfo(cmd.Data)
	if err != nil {
		return Reply{Code: wire.RespInvalidParameter}
	}

	parent := uint32(0)
	if len(cmd.Params) > 1 && cmd.Params[1] != wildcard {
		parent = cmd.Params[1]
	}

	handle := f.nextHandle
	f.nextHandle++
	f.objects[handle] = &object{
		format: info.ObjectFormat,
		parent: parent,
		name:   info.Filename,
	}
	f.sendTarget = handle
	return Reply{Params: []uint32{StorageID, parent, handle}}
}

func (f *Camera) handleSendObject(cmd Command) Reply {
	if f.sendTarget == 0 {
		return Reply{Code: wire.RespNoValidObjectInfo}
	}
	o, ok := f.objects[f.sendTarget]
	if !ok {
		f.sendTarget = 0
		return Reply{Code: wire.RespNoValidObjectInfo}
	}
	o.data = cmd.Data
	f.sendTarget = 0
	return Reply{}
}

func (f *Camera) handlePowerDown(Command) Reply {
	f.sessionOpen = false
	f.sessionID = 0
	return Reply{}
}

func (f *Camera) handleGetDevicePropDesc(cmd Command) Reply {
	if len(cmd.Params) < 1 || wire.PropCode(cmd.Params[0]) != wire.PropWhiteBalance {
		return Reply{Code: wire.RespDevicePropNotSupported}
	}
	return Reply{Data: WhiteBalanceDescPayload()}
}

func (f *Camera) handleGetDevicePropValue(cmd Command) Reply {
	if len(cmd.Params) < 1 {
		return Reply{Code: wire.RespInvalidParameter}
	}
	raw, ok := f.props[wire.PropCode(cmd.Params[0])]
	if !ok {
		return Reply{Code: wire.RespDevicePropNotSupported}
	}
	return Reply{Data: raw}
}

func (f *Camera) handleSetDevicePropValue(cmd Command) Reply {
	if len(cmd.Params) < 1 {
		return Reply{Code: wire.RespInvalidParameter}
	}
	code := wire.PropCode(cmd.Params[0])
	if _, ok := f.props[code]; !ok {
		return Reply{Code: wire.RespDevicePropNotSupported}
	}
	f.props[code] = append([]byte(nil), cmd.Data...)
	return Reply{}
}

// lookupObject resolves the first command parameter as an object
// handle.
func (f *Camera) lookupObject(params []uint32) (*object, wire.RespCode) {
	if len(params) < 1 {
		return nil, wire.RespInvalidParameter
	}
	o, ok := f.objects[params[0]]
	if !ok {
		return nil, wire.RespInvalidObjectHandle
	}
	return o, 0
}

