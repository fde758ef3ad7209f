// Package interactive provides the interactive command-line interface
// for the camera tether.
package interactive

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ptplink/ptplink-go/pkg/device"
	"github.com/ptplink/ptplink-go/pkg/session"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Wildcard selectors for object handle queries.
const (
	// allStorages selects every attached storage.
	allStorages = 0xFFFFFFFF

	// rootParent selects objects at the storage root.
	rootParent = 0xFFFFFFFF
)

// dumpLimit caps the hex dump printed for partial reads.
const dumpLimit = 256

// CameraConfig provides configuration information to the interactive
// shell. This interface allows the interactive layer to access tether
// settings without depending on the main package's config structure.
type CameraConfig interface {
	// BackendName returns the configured transport backend.
	BackendName() string

	// CapturePath returns the capture file path, empty when capture is
	// disabled.
	CapturePath() string
}

// Camera handles interactive mode for ptplink-cam.
type Camera struct {
	adapter *session.Adapter
	config  CameraConfig
	rl      *readline.Instance
}

// New creates a new interactive camera handler.
func New(adapter *session.Adapter, cfg CameraConfig) (*Camera, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "camera> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Camera{
		adapter: adapter,
		config:  cfg,
		rl:      rl,
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the command
// prompt.
func (c *Camera) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline
// input.
func (c *Camera) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Camera) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if cmd == "quit" || cmd == "exit" || cmd == "q" {
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		if err := c.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

// RunOnce connects, opens a session, executes a single command line and
// releases the camera. It serves the -run flag.
func (c *Camera) RunOnce(ctx context.Context, line string) error {
	defer c.rl.Close()

	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return errors.New("empty command")
	}
	cmd := strings.ToLower(parts[0])

	if err := c.cmdOpen(ctx); err != nil {
		return err
	}
	defer func() { _ = c.adapter.Disconnect(ctx) }()

	switch cmd {
	case "open", "close", "quit", "exit", "q":
		return nil
	default:
		return c.dispatch(ctx, cmd, parts[1:])
	}
}

// dispatch routes one parsed command to its handler.
func (c *Camera) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help", "?":
		c.printHelp()
		return nil

	case "open", "o":
		return c.cmdOpen(ctx)

	case "close":
		return c.cmdClose(ctx)

	case "info", "i":
		return c.cmdInfo(ctx, args)

	case "status":
		c.cmdStatus()
		return nil

	case "storages", "st":
		return c.cmdStorages(ctx)

	case "storage":
		return c.cmdStorage(ctx, args)

	case "objects", "ls":
		return c.cmdObjects(ctx, args)

	case "objinfo", "oi":
		return c.cmdObjinfo(ctx, args)

	case "get", "g":
		return c.cmdGet(ctx, args)

	case "thumb", "t":
		return c.cmdThumb(ctx, args)

	case "partial":
		return c.cmdPartial(ctx, args)

	case "propdesc", "pd":
		return c.cmdPropdesc(ctx, args)

	case "propget", "pg":
		return c.cmdPropget(ctx, args)

	case "propset", "ps":
		return c.cmdPropset(ctx, args)

	case "delete", "rm":
		return c.cmdDelete(ctx, args)

	case "poweroff":
		return c.cmdPoweroff(ctx)

	default:
		fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		return nil
	}
}

func (c *Camera) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Camera Tether Commands:
  Session:
    open                 - Connect to the camera and open a session
    close                - Close the session and release the camera
    info [ops|events|props|formats] - Show device identity or list capabilities
    status               - Show link status

  Storage:
    storages             - List attached storages
    storage <id>         - Show one storage in detail

  Objects:
    objects [parent]     - List objects (all, children of a handle, or 'root')
    objinfo <handle>     - Show one object's descriptor
    get <handle> [file]  - Download an object
    thumb <handle> [file] - Download an object's thumbnail
    partial <handle> <offset> <len> - Read a byte range of an object
    delete <handle>      - Delete an object

  Properties:
    propdesc <code>      - Show a property descriptor (e.g. 0x5001)
    propget <code>       - Read a property value
    propset <code> <value> - Write a property value

  General:
    poweroff             - Ask the camera to power down
    help                 - Show this help
    quit                 - Exit

  Handles and codes accept decimal or 0x-prefixed hex.`)
}

// cmdOpen connects the transport if needed and opens a session.
func (c *Camera) cmdOpen(ctx context.Context) error {
	switch c.adapter.State() {
	case session.StateSessionOpen:
		fmt.Fprintln(c.rl.Stdout(), "Session already open")
		return nil
	case session.StateError:
		fmt.Fprintln(c.rl.Stdout(), "Link is in ERROR, 'close' releases it")
		return nil
	case session.StateDisconnected:
		fmt.Fprintln(c.rl.Stdout(), "Waiting for camera...")
		if err := c.adapter.Connect(ctx); err != nil {
			return err
		}
		info, err := c.adapter.GetDeviceInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.rl.Stdout(), "Connected to %s (link %s)\n", info, shortID(c.adapter.LinkID()))
	}

	if err := c.adapter.OpenSession(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.rl.Stdout(), "Session open")
	return nil
}

// cmdClose closes the session and releases the camera.
func (c *Camera) cmdClose(ctx context.Context) error {
	if c.adapter.State() == session.StateDisconnected {
		fmt.Fprintln(c.rl.Stdout(), "Not connected")
		return nil
	}

	if c.adapter.State() == session.StateSessionOpen {
		if err := c.adapter.CloseSession(ctx); err != nil {
			fmt.Fprintf(c.rl.Stdout(), "Close rejected: %v\n", err)
		}
	}

	if err := c.adapter.Disconnect(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.rl.Stdout(), "Camera released")
	return nil
}

// cmdInfo handles the info command. With no argument it prints the
// device identity; with ops/events/props/formats it lists the named
// capability block.
func (c *Camera) cmdInfo(ctx context.Context, args []string) error {
	// The descriptor query is legal on a bare transport, so connect on
	// demand without opening a session.
	if c.adapter.State() == session.StateDisconnected {
		fmt.Fprintln(c.rl.Stdout(), "Waiting for camera...")
		if err := c.adapter.Connect(ctx); err != nil {
			return err
		}
	}

	info, err := c.adapter.GetDeviceInfo(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return c.printCapabilities(info, args[0])
	}

	fmt.Fprintln(c.rl.Stdout(), "\nDevice Info")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Manufacturer:  %s\n", info.Manufacturer)
	fmt.Fprintf(c.rl.Stdout(), "  Model:         %s\n", info.Model)
	fmt.Fprintf(c.rl.Stdout(), "  Version:       %s\n", info.DeviceVersion)
	fmt.Fprintf(c.rl.Stdout(), "  Serial:        %s\n", info.SerialNumber)
	fmt.Fprintf(c.rl.Stdout(), "  Standard:      %d.%02d\n", info.StandardVersion/100, info.StandardVersion%100)
	if info.VendorExtensionDesc != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Extension:     %s\n", info.VendorExtensionDesc)
	}
	fmt.Fprintf(c.rl.Stdout(), "  Operations:    %d\n", len(info.OperationsSupported))
	fmt.Fprintf(c.rl.Stdout(), "  Events:        %d\n", len(info.EventsSupported))
	fmt.Fprintf(c.rl.Stdout(), "  Properties:    %d\n", len(info.DevicePropsSupported))
	fmt.Fprintf(c.rl.Stdout(), "  Image formats: %d\n", len(info.ImageFormats))
	fmt.Fprintln(c.rl.Stdout())
	return nil
}

// printCapabilities lists one capability block of the device descriptor.
func (c *Camera) printCapabilities(info device.DeviceInfo, block string) error {
	switch strings.ToLower(block) {
	case "ops", "operations":
		fmt.Fprintf(c.rl.Stdout(), "\nOperations (%d):\n", len(info.OperationsSupported))
		for _, op := range info.OperationsSupported {
			fmt.Fprintf(c.rl.Stdout(), "  %s\n", op)
		}
	case "events":
		fmt.Fprintf(c.rl.Stdout(), "\nEvents (%d):\n", len(info.EventsSupported))
		for _, ev := range info.EventsSupported {
			fmt.Fprintf(c.rl.Stdout(), "  %s\n", ev)
		}
	case "props", "properties":
		fmt.Fprintf(c.rl.Stdout(), "\nProperties (%d):\n", len(info.DevicePropsSupported))
		for _, p := range info.DevicePropsSupported {
			fmt.Fprintf(c.rl.Stdout(), "  %s\n", p)
		}
	case "formats":
		fmt.Fprintf(c.rl.Stdout(), "\nImage formats (%d):\n", len(info.ImageFormats))
		for _, f := range info.ImageFormats {
			fmt.Fprintf(c.rl.Stdout(), "  %s\n", f)
		}
		if len(info.CaptureFormats) > 0 {
			fmt.Fprintf(c.rl.Stdout(), "Capture formats (%d):\n", len(info.CaptureFormats))
			for _, f := range info.CaptureFormats {
				fmt.Fprintf(c.rl.Stdout(), "  %s\n", f)
			}
		}
	default:
		fmt.Fprintf(c.rl.Stdout(), "Unknown block: %s (use ops, events, props or formats)\n", block)
	}
	return nil
}

// cmdStatus shows the link status.
func (c *Camera) cmdStatus() {
	fmt.Fprintln(c.rl.Stdout(), "\nLink Status")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  State:    %s\n", c.adapter.State())
	if id := c.adapter.LinkID(); id != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Link ID:  %s\n", id)
	}
	fmt.Fprintf(c.rl.Stdout(), "  Backend:  %s\n", c.config.BackendName())
	if path := c.config.CapturePath(); path != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Capture:  %s\n", path)
	} else {
		fmt.Fprintln(c.rl.Stdout(), "  Capture:  off")
	}
	fmt.Fprintln(c.rl.Stdout())
}

// cmdStorages lists the attached storages.
func (c *Camera) cmdStorages(ctx context.Context) error {
	ids, err := c.adapter.GetStorageIDs(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No storages attached")
		return nil
	}

	fmt.Fprintf(c.rl.Stdout(), "\nStorages (%d):\n", len(ids))
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	for _, id := range ids {
		info, err := c.adapter.GetStorageInfo(ctx, id)
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "  0x%08X  %v\n", id, err)
			continue
		}
		label := info.VolumeLabel
		if label == "" {
			label = info.StorageDescription
		}
		access := "rw"
		if !info.Writable() {
			access = "ro"
		}
		fmt.Fprintf(c.rl.Stdout(), "  0x%08X  %-16s %s  %s free of %s\n",
			id, label, access, humanBytes(info.FreeSpaceBytes), humanBytes(info.MaxCapacity))
	}
	fmt.Fprintln(c.rl.Stdout())
	return nil
}

// cmdStorage shows one storage in detail.
func (c *Camera) cmdStorage(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: storage <id>")
		fmt.Fprintln(c.rl.Stdout(), "  Use 'storages' to list storage IDs")
		return nil
	}

	id, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid storage ID: %v\n", err)
		return nil
	}

	info, err := c.adapter.GetStorageInfo(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.rl.Stdout(), "\nStorage 0x%08X\n", id)
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	if info.StorageDescription != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Description:  %s\n", info.StorageDescription)
	}
	if info.VolumeLabel != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Label:        %s\n", info.VolumeLabel)
	}
	fmt.Fprintf(c.rl.Stdout(), "  Type:         %s, %s\n",
		storageTypeName(info.StorageType), filesystemName(info.FilesystemType))
	fmt.Fprintf(c.rl.Stdout(), "  Access:       %s\n", accessName(info.AccessCapability))
	fmt.Fprintf(c.rl.Stdout(), "  Capacity:     %s\n", humanBytes(info.MaxCapacity))
	free := humanBytes(info.FreeSpaceBytes)
	if info.FreeSpaceObjects != 0xFFFFFFFF {
		fmt.Fprintf(c.rl.Stdout(), "  Free:         %s (~%d objects)\n", free, info.FreeSpaceObjects)
	} else {
		fmt.Fprintf(c.rl.Stdout(), "  Free:         %s\n", free)
	}
	fmt.Fprintln(c.rl.Stdout())
	return nil
}

// cmdObjects lists object handles with a one-line summary per object.
func (c *Camera) cmdObjects(ctx context.Context, args []string) error {
	parent := uint32(0)
	if len(args) > 0 {
		if args[0] == "root" {
			parent = rootParent
		} else {
			p, err := parseID(args[0])
			if err != nil {
				fmt.Fprintf(c.rl.Stdout(), "Invalid parent handle: %v\n", err)
				return nil
			}
			parent = p
		}
	}

	handles, err := c.adapter.GetObjectHandles(ctx, allStorages, 0, parent)
	if err != nil {
		return err
	}
	if len(handles) == 0 {
		fmt.Fprintln(c.rl.Stdout(), "No objects")
		return nil
	}

	fmt.Fprintf(c.rl.Stdout(), "\nObjects (%d):\n", len(handles))
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	for _, h := range handles {
		info, err := c.adapter.GetObjectInfo(ctx, h)
		if err != nil {
			fmt.Fprintf(c.rl.Stdout(), "  0x%08X  %v\n", h, err)
			continue
		}
		name := info.Filename
		if info.IsAssociation() {
			name += "/"
		}
		fmt.Fprintf(c.rl.Stdout(), "  0x%08X  %-24s %10s  %s\n",
			h, name, humanBytes(uint64(info.ObjectCompressedSize)), info.ObjectFormat)
	}
	fmt.Fprintln(c.rl.Stdout())
	return nil
}

// cmdObjinfo shows one object's descriptor.
func (c *Camera) cmdObjinfo(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: objinfo <handle>")
		return nil
	}

	handle, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid handle: %v\n", err)
		return nil
	}

	info, err := c.adapter.GetObjectInfo(ctx, handle)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.rl.Stdout(), "\nObject 0x%08X\n", handle)
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Filename:     %s\n", info.Filename)
	fmt.Fprintf(c.rl.Stdout(), "  Format:       %s\n", info.ObjectFormat)
	fmt.Fprintf(c.rl.Stdout(), "  Size:         %s (%d bytes)\n",
		humanBytes(uint64(info.ObjectCompressedSize)), info.ObjectCompressedSize)
	fmt.Fprintf(c.rl.Stdout(), "  Storage:      0x%08X\n", info.StorageID)
	if info.ParentObject != 0 {
		fmt.Fprintf(c.rl.Stdout(), "  Parent:       0x%08X\n", info.ParentObject)
	}
	if info.IsAssociation() {
		fmt.Fprintf(c.rl.Stdout(), "  Association:  %s\n", associationName(info.AssociationType))
	}
	if info.ProtectionStatus == device.ProtectionReadOnly {
		fmt.Fprintln(c.rl.Stdout(), "  Protection:   read-only")
	}
	if info.IsImage() && info.ImagePixWidth > 0 {
		fmt.Fprintf(c.rl.Stdout(), "  Dimensions:   %dx%d\n", info.ImagePixWidth, info.ImagePixHeight)
	}
	if info.ThumbCompressedSize > 0 {
		fmt.Fprintf(c.rl.Stdout(), "  Thumbnail:    %s, %d bytes (%dx%d)\n",
			info.ThumbFormat, info.ThumbCompressedSize, info.ThumbPixWidth, info.ThumbPixHeight)
	}
	if info.CaptureDate != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Captured:     %s\n", info.CaptureDate)
	}
	if info.ModificationDate != "" {
		fmt.Fprintf(c.rl.Stdout(), "  Modified:     %s\n", info.ModificationDate)
	}
	fmt.Fprintln(c.rl.Stdout())
	return nil
}

// cmdGet downloads an object to a local file.
func (c *Camera) cmdGet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: get <handle> [file]")
		fmt.Fprintln(c.rl.Stdout(), "  Without a file argument the camera's filename is used")
		return nil
	}

	handle, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid handle: %v\n", err)
		return nil
	}

	name := ""
	if len(args) >= 2 {
		name = args[1]
	} else {
		info, err := c.adapter.GetObjectInfo(ctx, handle)
		if err != nil {
			return err
		}
		name = info.Filename
		if name == "" {
			name = fmt.Sprintf("object-%08x.bin", handle)
		}
	}

	data, err := c.adapter.GetObject(ctx, handle)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	fmt.Fprintf(c.rl.Stdout(), "Wrote %s (%d bytes)\n", name, len(data))
	return nil
}

// cmdThumb downloads an object's thumbnail.
func (c *Camera) cmdThumb(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: thumb <handle> [file]")
		return nil
	}

	handle, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid handle: %v\n", err)
		return nil
	}

	name := fmt.Sprintf("thumb-%08x.jpg", handle)
	if len(args) >= 2 {
		name = args[1]
	}

	data, err := c.adapter.GetThumb(ctx, handle)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	fmt.Fprintf(c.rl.Stdout(), "Wrote %s (%d bytes)\n", name, len(data))
	return nil
}

// cmdPartial reads a byte range of an object and hex-dumps the start.
func (c *Camera) cmdPartial(ctx context.Context, args []string) error {
	if len(args) < 3 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: partial <handle> <offset> <len>")
		return nil
	}

	handle, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid handle: %v\n", err)
		return nil
	}
	offset, err := parseID(args[1])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid offset: %v\n", err)
		return nil
	}
	length, err := parseID(args[2])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid length: %v\n", err)
		return nil
	}

	data, err := c.adapter.GetPartialObject(ctx, handle, offset, length)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.rl.Stdout(), "Read %d bytes at offset %d\n", len(data), offset)
	dump := data
	if len(dump) > dumpLimit {
		dump = dump[:dumpLimit]
	}
	fmt.Fprint(c.rl.Stdout(), hex.Dump(dump))
	if len(data) > dumpLimit {
		fmt.Fprintf(c.rl.Stdout(), "  ... %d more bytes\n", len(data)-dumpLimit)
	}
	return nil
}

// cmdPropdesc shows a property descriptor.
func (c *Camera) cmdPropdesc(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: propdesc <code>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: propdesc 0x5001")
		return nil
	}

	code, err := parsePropCode(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid property code: %v\n", err)
		return nil
	}

	info, err := c.adapter.GetDevicePropDesc(ctx, code)
	if err != nil {
		return err
	}

	access := "read-only"
	if info.Writable() {
		access = "read-write"
	}

	fmt.Fprintf(c.rl.Stdout(), "\nProperty %s\n", info.PropertyCode)
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(c.rl.Stdout(), "  Type:     %s\n", info.DataType)
	fmt.Fprintf(c.rl.Stdout(), "  Access:   %s\n", access)
	fmt.Fprintf(c.rl.Stdout(), "  Default:  %s\n", info.FactoryDefault)
	fmt.Fprintf(c.rl.Stdout(), "  Current:  %s\n", info.Current)
	fmt.Fprintf(c.rl.Stdout(), "  Form:     %s\n", info.Form)
	fmt.Fprintln(c.rl.Stdout())
	return nil
}

// cmdPropget reads a property value. The descriptor is queried first so
// the value decodes with the camera's own data type.
func (c *Camera) cmdPropget(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: propget <code>")
		return nil
	}

	code, err := parsePropCode(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid property code: %v\n", err)
		return nil
	}

	desc, err := c.adapter.GetDevicePropDesc(ctx, code)
	if err != nil {
		return err
	}
	v, err := c.adapter.GetDevicePropValue(ctx, code, desc.DataType)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.rl.Stdout(), "%s = %s\n", code, v)
	return nil
}

// cmdPropset writes a property value, parsed against the camera's
// declared data type.
func (c *Camera) cmdPropset(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: propset <code> <value>")
		fmt.Fprintln(c.rl.Stdout(), "  Example: propset 0x500D 500")
		return nil
	}

	code, err := parsePropCode(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid property code: %v\n", err)
		return nil
	}

	desc, err := c.adapter.GetDevicePropDesc(ctx, code)
	if err != nil {
		return err
	}
	if !desc.Writable() {
		fmt.Fprintf(c.rl.Stdout(), "Property %s is read-only\n", code)
		return nil
	}

	v, err := parseValue(desc.DataType, strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid value: %v\n", err)
		return nil
	}

	if err := c.adapter.SetDevicePropValue(ctx, code, v); err != nil {
		return err
	}
	fmt.Fprintln(c.rl.Stdout(), "OK")
	return nil
}

// cmdDelete removes an object.
func (c *Camera) cmdDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: delete <handle>")
		return nil
	}

	handle, err := parseID(args[0])
	if err != nil {
		fmt.Fprintf(c.rl.Stdout(), "Invalid handle: %v\n", err)
		return nil
	}

	if err := c.adapter.DeleteObject(ctx, handle); err != nil {
		return err
	}
	fmt.Fprintln(c.rl.Stdout(), "Object deleted")
	return nil
}

// cmdPoweroff asks the camera to power down.
func (c *Camera) cmdPoweroff(ctx context.Context) error {
	if err := c.adapter.PowerDown(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.rl.Stdout(), "Camera is powering down")
	return nil
}

// shortID truncates a link id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseID parses a 32-bit identifier, accepting decimal or 0x hex.
func parseID(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 32-bit number", s)
	}
	return uint32(v), nil
}

// parsePropCode parses a 16-bit property code, accepting decimal or 0x
// hex.
func parsePropCode(s string) (wire.PropCode, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 16-bit code", s)
	}
	return wire.PropCode(v), nil
}

// parseValue parses a command argument into a typed value.
func parseValue(dt wire.DataType, s string) (wire.Value, error) {
	switch dt {
	case wire.TypeInt8:
		v, err := strconv.ParseInt(s, 0, 8)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Int8Value(int8(v)), nil
	case wire.TypeUint8:
		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Uint8Value(uint8(v)), nil
	case wire.TypeInt16:
		v, err := strconv.ParseInt(s, 0, 16)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Int16Value(int16(v)), nil
	case wire.TypeUint16:
		v, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Uint16Value(uint16(v)), nil
	case wire.TypeInt32:
		v, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Int32Value(int32(v)), nil
	case wire.TypeUint32:
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Uint32Value(uint32(v)), nil
	case wire.TypeInt64:
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Int64Value(v), nil
	case wire.TypeUint64:
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return wire.Undefined, err
		}
		return wire.Uint64Value(v), nil
	case wire.TypeString:
		return wire.StringValue(strings.Trim(s, `"'`)), nil
	default:
		return wire.Undefined, fmt.Errorf("cannot parse %s values from the command line", dt)
	}
}

// humanBytes formats a byte count with a binary unit suffix.
func humanBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// storageTypeName returns a readable storage type.
func storageTypeName(t uint16) string {
	switch t {
	case device.StorageFixedROM:
		return "fixed ROM"
	case device.StorageRemovableROM:
		return "removable ROM"
	case device.StorageFixedRAM:
		return "fixed RAM"
	case device.StorageRemovableRAM:
		return "removable RAM"
	default:
		return "unknown"
	}
}

// filesystemName returns a readable filesystem type.
func filesystemName(t uint16) string {
	switch t {
	case device.FilesystemGenericFlat:
		return "flat"
	case device.FilesystemHierarchical:
		return "hierarchical"
	case device.FilesystemDCF:
		return "DCF"
	default:
		return "unknown"
	}
}

// accessName returns a readable access capability.
func accessName(a uint16) string {
	switch a {
	case device.AccessReadWrite:
		return "read-write"
	case device.AccessReadOnly:
		return "read-only"
	case device.AccessReadOnlyWithDelete:
		return "read-only, delete allowed"
	default:
		return "unknown"
	}
}

// associationName returns a readable association type.
func associationName(t uint16) string {
	switch t {
	case device.AssociationGenericFolder:
		return "folder"
	case device.AssociationAlbum:
		return "album"
	case device.AssociationTimeSequence:
		return "time sequence"
	default:
		return "unknown"
	}
}
