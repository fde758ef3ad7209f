package camera

import (
	"context"
	"fmt"

	"github.com/ptplink/ptplink-go/pkg/device"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

const (
	// AllStorages selects every storage in object queries.
	AllStorages uint32 = 0xFFFFFFFF

	// RootParent selects objects at the storage root in object queries.
	RootParent uint32 = 0xFFFFFFFF
)

// GetDeviceInfo fetches the camera's capability record. It is the one
// query operation valid before a session is open.
func (c *Camera) GetDeviceInfo(ctx context.Context) (device.DeviceInfo, error) {
	res, err := c.Command(ctx, wire.OpGetDeviceInfo, nil, nil)
	if err != nil {
		return device.DeviceInfo{}, err
	}
	return device.DecodeDeviceInfo(res.Data)
}

// OpenSession opens the session most operations require. Session ID 0
// is reserved by the protocol.
func (c *Camera) OpenSession(ctx context.Context, id uint32) error {
	_, err := c.Command(ctx, wire.OpOpenSession, []uint32{id}, nil)
	return err
}

// CloseSession closes the open session.
func (c *Camera) CloseSession(ctx context.Context) error {
	_, err := c.Command(ctx, wire.OpCloseSession, nil, nil)
	return err
}

// GetStorageIDs lists the camera's storage IDs.
func (c *Camera) GetStorageIDs(ctx context.Context) ([]uint32, error) {
	res, err := c.Command(ctx, wire.OpGetStorageIDs, nil, nil)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(res.Data)
	ids, err := r.U32Slice()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetStorageInfo fetches the description of one storage.
func (c *Camera) GetStorageInfo(ctx context.Context, id uint32) (device.StorageInfo, error) {
	res, err := c.Command(ctx, wire.OpGetStorageInfo, []uint32{id}, nil)
	if err != nil {
		return device.StorageInfo{}, err
	}
	return device.DecodeStorageInfo(res.Data)
}

// GetNumObjects counts objects matching the storage/format/parent
// filters. AllStorages and RootParent widen the storage and parent
// filters; a format of 0 matches every format.
func (c *Camera) GetNumObjects(ctx context.Context, storage uint32, format wire.FormatCode, parent uint32) (uint32, error) {
	res, err := c.Command(ctx, wire.OpGetNumObjects, []uint32{storage, uint32(format), parent}, nil)
	if err != nil {
		return 0, err
	}
	if len(res.Params) < 1 {
		return 0, fmt.Errorf("%w: count parameter missing from response", wire.ErrMalformed)
	}
	return res.Params[0], nil
}

// GetObjectHandles lists object handles matching the
// storage/format/parent filters, under the same filter semantics as
// GetNumObjects.
func (c *Camera) GetObjectHandles(ctx context.Context, storage uint32, format wire.FormatCode, parent uint32) ([]uint32, error) {
	res, err := c.Command(ctx, wire.OpGetObjectHandles, []uint32{storage, uint32(format), parent}, nil)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(res.Data)
	handles, err := r.U32Slice()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(); err != nil {
		return nil, err
	}
	return handles, nil
}

// GetObjectInfo fetches the metadata record of one object.
func (c *Camera) GetObjectInfo(ctx context.Context, handle uint32) (device.ObjectInfo, error) {
	res, err := c.Command(ctx, wire.OpGetObjectInfo, []uint32{handle}, nil)
	if err != nil {
		return device.ObjectInfo{}, err
	}
	return device.DecodeObjectInfo(res.Data)
}

// GetObject pulls one object's full data.
func (c *Camera) GetObject(ctx context.Context, handle uint32) ([]byte, error) {
	res, err := c.Command(ctx, wire.OpGetObject, []uint32{handle}, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// GetThumb pulls one object's thumbnail.
func (c *Camera) GetThumb(ctx context.Context, handle uint32) ([]byte, error) {
	res, err := c.Command(ctx, wire.OpGetThumb, []uint32{handle}, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// GetPartialObject pulls up to max bytes of one object starting at
// offset. A max of 0xFFFFFFFF requests everything from offset on.
func (c *Camera) GetPartialObject(ctx context.Context, handle, offset, max uint32) ([]byte, error) {
	res, err := c.Command(ctx, wire.OpGetPartialObject, []uint32{handle, offset, max}, nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// DeleteObject deletes one object. Deleting an association deletes its
// children with it.
func (c *Camera) DeleteObject(ctx context.Context, handle uint32) error {
	_, err := c.Command(ctx, wire.OpDeleteObject, []uint32{handle}, nil)
	return err
}

// GetDevicePropDesc fetches a property's full descriptor, including its
// data type, access rule, defaults and form.
func (c *Camera) GetDevicePropDesc(ctx context.Context, code wire.PropCode) (device.PropInfo, error) {
	res, err := c.Command(ctx, wire.OpGetDevicePropDesc, []uint32{uint32(code)}, nil)
	if err != nil {
		return device.PropInfo{}, err
	}
	return device.DecodePropInfo(res.Data)
}

// GetDevicePropValue fetches a property's current value. The property's
// data type is not carried on the wire here; pass the type from the
// descriptor or from a known property table.
func (c *Camera) GetDevicePropValue(ctx context.Context, code wire.PropCode, dt wire.DataType) (wire.Value, error) {
	res, err := c.Command(ctx, wire.OpGetDevicePropValue, []uint32{uint32(code)}, nil)
	if err != nil {
		return wire.Undefined, err
	}
	r := wire.NewReader(res.Data)
	v, err := wire.DecodeValue(r, dt)
	if err != nil {
		return wire.Undefined, err
	}
	if err := r.ExpectEnd(); err != nil {
		return wire.Undefined, err
	}
	return v, nil
}

// SetDevicePropValue writes a property value through the outbound data
// phase.
func (c *Camera) SetDevicePropValue(ctx context.Context, code wire.PropCode, v wire.Value) error {
	b, err := v.EncodeBytes()
	if err != nil {
		return err
	}
	_, err = c.Command(ctx, wire.OpSetDevicePropValue, []uint32{uint32(code)}, b)
	return err
}

// PowerDown asks the camera to power off. The camera closes the session
// on its side; the caller should disconnect afterwards.
func (c *Camera) PowerDown(ctx context.Context) error {
	_, err := c.Command(ctx, wire.OpPowerDown, nil, nil)
	return err
}
