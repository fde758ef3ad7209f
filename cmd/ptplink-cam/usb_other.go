//go:build !linux

package main

import (
	"context"
	"errors"

	"github.com/ptplink/ptplink-go/pkg/session"
)

// openUSB reports that the embedded USB host stack needs usbfs, which
// only exists on Linux.
func openUSB(context.Context) (session.Opener, func(), error) {
	return nil, nil, errors.New("the usb backend requires Linux, use -replay elsewhere")
}
