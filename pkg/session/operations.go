package session

import (
	"context"
	"fmt"

	"github.com/ptplink/ptplink-go/pkg/camera"
	"github.com/ptplink/ptplink-go/pkg/device"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// GetDeviceInfo queries the device descriptor. Unlike the other
// operations it is valid as soon as the transport is connected, the
// protocol allows it outside a session.
func (a *Adapter) GetDeviceInfo(ctx context.Context) (device.DeviceInfo, error) {
	a.mu.Lock()
	if a.state != StateConnected && a.state != StateSessionOpen {
		err := fmt.Errorf("%w: requires %s or %s, link is %s",
			ErrInvalidState, StateConnected, StateSessionOpen, a.state)
		a.mu.Unlock()
		return device.DeviceInfo{}, err
	}

	info, err := a.cam.GetDeviceInfo(ctx)
	return info, a.finish(err)
}

// Command runs a raw transaction. Operations without a typed wrapper,
// such as vendor extensions or the SendObjectInfo/SendObject pair, go
// through here.
func (a *Adapter) Command(ctx context.Context, code wire.OpCode, params []uint32, data []byte) (camera.Result, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return camera.Result{}, err
	}
	res, err := cam.Command(ctx, code, params, data)
	return res, a.finish(err)
}

// GetStorageIDs lists the attached storages.
func (a *Adapter) GetStorageIDs(ctx context.Context) ([]uint32, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return nil, err
	}
	ids, err := cam.GetStorageIDs(ctx)
	return ids, a.finish(err)
}

// GetStorageInfo queries one storage descriptor.
func (a *Adapter) GetStorageInfo(ctx context.Context, id uint32) (device.StorageInfo, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return device.StorageInfo{}, err
	}
	info, err := cam.GetStorageInfo(ctx, id)
	return info, a.finish(err)
}

// GetNumObjects counts objects matching the storage/format/parent
// selection.
func (a *Adapter) GetNumObjects(ctx context.Context, storage uint32, format wire.FormatCode, parent uint32) (uint32, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return 0, err
	}
	n, err := cam.GetNumObjects(ctx, storage, format, parent)
	return n, a.finish(err)
}

// GetObjectHandles lists object handles matching the selection.
func (a *Adapter) GetObjectHandles(ctx context.Context, storage uint32, format wire.FormatCode, parent uint32) ([]uint32, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return nil, err
	}
	handles, err := cam.GetObjectHandles(ctx, storage, format, parent)
	return handles, a.finish(err)
}

// GetObjectInfo queries one object descriptor.
func (a *Adapter) GetObjectInfo(ctx context.Context, handle uint32) (device.ObjectInfo, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return device.ObjectInfo{}, err
	}
	info, err := cam.GetObjectInfo(ctx, handle)
	return info, a.finish(err)
}

// GetObject fetches an object's bytes.
func (a *Adapter) GetObject(ctx context.Context, handle uint32) ([]byte, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return nil, err
	}
	data, err := cam.GetObject(ctx, handle)
	return data, a.finish(err)
}

// GetThumb fetches an object's thumbnail.
func (a *Adapter) GetThumb(ctx context.Context, handle uint32) ([]byte, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return nil, err
	}
	data, err := cam.GetThumb(ctx, handle)
	return data, a.finish(err)
}

// GetPartialObject fetches at most max bytes starting at offset.
func (a *Adapter) GetPartialObject(ctx context.Context, handle, offset, max uint32) ([]byte, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return nil, err
	}
	data, err := cam.GetPartialObject(ctx, handle, offset, max)
	return data, a.finish(err)
}

// DeleteObject removes an object.
func (a *Adapter) DeleteObject(ctx context.Context, handle uint32) error {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return err
	}
	return a.finish(cam.DeleteObject(ctx, handle))
}

// GetDevicePropDesc queries a property descriptor.
func (a *Adapter) GetDevicePropDesc(ctx context.Context, code wire.PropCode) (device.PropInfo, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return device.PropInfo{}, err
	}
	info, err := cam.GetDevicePropDesc(ctx, code)
	return info, a.finish(err)
}

// GetDevicePropValue reads a property value of a known type.
func (a *Adapter) GetDevicePropValue(ctx context.Context, code wire.PropCode, dt wire.DataType) (wire.Value, error) {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return wire.Undefined, err
	}
	v, err := cam.GetDevicePropValue(ctx, code, dt)
	return v, a.finish(err)
}

// SetDevicePropValue writes a property value.
func (a *Adapter) SetDevicePropValue(ctx context.Context, code wire.PropCode, v wire.Value) error {
	cam, err := a.begin(StateSessionOpen)
	if err != nil {
		return err
	}
	return a.finish(cam.SetDevicePropValue(ctx, code, v))
}

// PowerDown asks the camera to power off. The camera drops its session
// when it accepts, so the link returns to CONNECTED.
func (a *Adapter) PowerDown(ctx context.Context) error {
	a.mu.Lock()
	if a.state != StateSessionOpen {
		err := a.stateErr(StateSessionOpen)
		a.mu.Unlock()
		return err
	}

	if err := a.cam.PowerDown(ctx); err != nil {
		return a.finish(err)
	}

	from := a.shift(StateConnected)
	a.mu.Unlock()

	a.notify(from, StateConnected)
	return nil
}
