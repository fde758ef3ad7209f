//go:build linux

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ardnew/softusb/host"
	"github.com/ardnew/softusb/host/hal/linux"

	"github.com/ptplink/ptplink-go/pkg/session"
	"github.com/ptplink/ptplink-go/pkg/transport"
	"github.com/ptplink/ptplink-go/pkg/transport/softusb"
)

// openUSB starts the embedded USB host stack over usbfs and returns an
// opener that claims the first attached still-image camera.
func openUSB(ctx context.Context) (session.Opener, func(), error) {
	h := host.New(linux.NewHostHAL())
	if err := h.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("starting USB host: %w", err)
	}

	opener := session.OpenerFunc(func(ctx context.Context) (transport.Transport, error) {
		return softusb.Open(ctx, h)
	})
	cleanup := func() {
		if err := h.Stop(); err != nil {
			log.Printf("Error stopping USB host: %v", err)
		}
	}
	return opener, cleanup, nil
}
