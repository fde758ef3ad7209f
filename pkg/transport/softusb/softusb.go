// Package softusb runs the bulk transport over an embedded USB host
// stack. It claims the still-image interface of the first attached
// device and speaks through its bulk endpoint pair.
package softusb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ardnew/softusb/host"
	"github.com/ardnew/softusb/pkg"

	"github.com/ptplink/ptplink-go/pkg/transport"
)

// Still-image interface class triple (PIMA 15740 over USB).
const (
	classStillImage    = 0x06
	subclassStillImage = 0x01
	protocolPTP        = 0x01
)

// Endpoint attribute transfer types.
const (
	transferTypeMask  = 0x03
	transferBulk      = 0x02
	transferInterrupt = 0x03
)

// directionIn is the IN direction bit of an endpoint address.
const directionIn = 0x80

// Transport drives PTP bulk traffic over one claimed still-image
// interface. It is handed exclusively to the transaction engine.
type Transport struct {
	dev    *host.Device
	info   transport.EndpointInfo
	closed atomic.Bool
}

var _ transport.Transport = (*Transport)(nil)

// Open waits for a device on h, selects its still-image interface,
// applies the device configuration and resolves the endpoint set.
// The caller owns h and its lifecycle; Open only claims the device.
func Open(ctx context.Context, h *host.Host) (*Transport, error) {
	dev, err := h.WaitDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: waiting for device: %v", transport.ErrNotFound, err)
	}
	return claim(ctx, dev)
}

func claim(ctx context.Context, dev *host.Device) (*Transport, error) {
	if !hasStillImageInterface(dev.Interfaces()) {
		return nil, fmt.Errorf("%w: no still-image interface (class %d/%d/%d)",
			transport.ErrNotFound, classStillImage, subclassStillImage, protocolPTP)
	}
	if err := dev.SetConfiguration(ctx, dev.Configuration().ConfigurationValue); err != nil {
		return nil, fmt.Errorf("%w: set configuration: %v", transport.ErrTransport, err)
	}
	info, err := resolveEndpoints(dev.Endpoints())
	if err != nil {
		return nil, err
	}
	return &Transport{dev: dev, info: info}, nil
}

// hasStillImageInterface reports whether descs contains the PTP class
// triple.
func hasStillImageInterface(descs []host.InterfaceDescriptor) bool {
	for _, d := range descs {
		if d.InterfaceClass == classStillImage &&
			d.InterfaceSubClass == subclassStillImage &&
			d.InterfaceProtocol == protocolPTP {
			return true
		}
	}
	return false
}

// resolveEndpoints picks the first bulk-in, bulk-out and interrupt-in
// endpoints from descs. Still-image cameras expose a single data
// interface, so the flat endpoint list is unambiguous.
func resolveEndpoints(descs []host.EndpointDescriptor) (transport.EndpointInfo, error) {
	var info transport.EndpointInfo
	var haveIn, haveOut bool
	for _, d := range descs {
		in := d.EndpointAddress&directionIn != 0
		switch d.Attributes & transferTypeMask {
		case transferBulk:
			if in && !haveIn {
				info.BulkIn = d.EndpointAddress
				info.MaxPacketSize = int(d.MaxPacketSize)
				haveIn = true
			}
			if !in && !haveOut {
				info.BulkOut = d.EndpointAddress
				haveOut = true
			}
		case transferInterrupt:
			if in && !info.HasInterrupt {
				info.InterruptIn = d.EndpointAddress
				info.HasInterrupt = true
			}
		}
	}
	if !haveIn || !haveOut {
		return transport.EndpointInfo{}, fmt.Errorf("%w: bulk endpoint pair not present", transport.ErrNotFound)
	}
	return info, nil
}

// Write sends p on the bulk-out endpoint.
func (t *Transport) Write(ctx context.Context, p []byte) (int, error) {
	if t.closed.Load() {
		return 0, transport.ErrClosed
	}
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	n, err := t.dev.BulkTransfer(ctx, t.info.BulkOut, p)
	return n, mapErr(err)
}

// Read receives one bulk-in transfer into p.
func (t *Transport) Read(ctx context.Context, p []byte) (int, error) {
	if t.closed.Load() {
		return 0, transport.ErrClosed
	}
	ctx, cancel := withDeadline(ctx)
	defer cancel()
	n, err := t.dev.BulkTransfer(ctx, t.info.BulkIn, p)
	return n, mapErr(err)
}

// Endpoints returns the resolved endpoint set.
func (t *Transport) Endpoints() transport.EndpointInfo {
	return t.info
}

// Close releases the device. Safe to call more than once.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return transport.ErrClosed
	}
	return t.dev.Close()
}

// withDeadline applies DefaultTimeout unless the context already
// carries a deadline.
func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, transport.DefaultTimeout)
}

// mapErr folds stack-level failures into the transport error taxonomy.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pkg.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", transport.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", transport.ErrTransport, err)
}
