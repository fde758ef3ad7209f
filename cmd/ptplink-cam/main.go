// Command ptplink-cam tethers a PTP still-image camera over an embedded
// USB host stack or a recorded capture replay.
//
// The shell drives one camera link: connect, open a session, browse
// storages and objects, download images and thumbnails, inspect and set
// device properties. Every container on the wire can be recorded to a
// capture file for later replay or analysis with ptplink-log.
//
// Usage:
//
//	ptplink-cam [flags]
//
// Flags:
//
//	-backend string      Transport backend: usb, replay (default: usb, or replay when -replay is set)
//	-config string       Configuration file path (YAML, flags win)
//	-capture string      Write a protocol capture to this file
//	-replay string       Replay a recorded capture instead of real hardware
//	-link string         Link ID to replay when the capture holds several
//	-session-id uint     Protocol session ID (default 3)
//	-chunk-size int      Bulk write chunk size in bytes (default 1 MiB)
//	-read-buffer int     Bulk read buffer size in bytes (default 8 KiB)
//	-timeout duration    Per-transfer timeout (default 5s)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-announce            Advertise the tether over mDNS
//	-announce-port uint  Port published in the mDNS announcement (default 15740)
//	-run string          Execute one command and exit
//
// Examples:
//
//	# Tether the first attached still-image camera, recording a capture
//	ptplink-cam -capture session.plog
//
//	# Replay a recorded session without hardware
//	ptplink-cam -replay session.plog -log-level debug
//
//	# One-shot: list objects and exit
//	ptplink-cam -replay session.plog -run "objects"
//
// Interactive Commands:
//
//	open, close, info, status, storages, storage, objects, objinfo,
//	get, thumb, partial, propdesc, propget, propset, delete, poweroff,
//	help, quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ptplink/ptplink-go/cmd/ptplink-cam/interactive"
	"github.com/ptplink/ptplink-go/pkg/announce"
	"github.com/ptplink/ptplink-go/pkg/camera"
	plog "github.com/ptplink/ptplink-go/pkg/log"
	"github.com/ptplink/ptplink-go/pkg/session"
	"github.com/ptplink/ptplink-go/pkg/transport"
	"github.com/ptplink/ptplink-go/pkg/transport/replay"
	"github.com/ptplink/ptplink-go/pkg/version"
	"github.com/ptplink/ptplink-go/pkg/wire"
)

// Config holds the tether configuration.
type Config struct {
	Backend      string
	ConfigFile   string
	Capture      string
	Replay       string
	Link         string
	SessionID    uint
	ChunkSize    int
	ReadBuffer   int
	Timeout      time.Duration
	LogLevel     string
	Announce     bool
	AnnouncePort uint
	Run          string
}

// BackendName returns the configured transport backend.
func (c *Config) BackendName() string { return c.Backend }

// CapturePath returns the capture file path, empty when capture is
// disabled.
func (c *Config) CapturePath() string { return c.Capture }

var config Config

func init() {
	flag.StringVar(&config.Backend, "backend", "", "Transport backend: usb, replay (default: usb, or replay when -replay is set)")
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path (YAML, flags win)")
	flag.StringVar(&config.Capture, "capture", "", "Write a protocol capture to this file")
	flag.StringVar(&config.Replay, "replay", "", "Replay a recorded capture instead of real hardware")
	flag.StringVar(&config.Link, "link", "", "Link ID to replay when the capture holds several")
	flag.UintVar(&config.SessionID, "session-id", session.DefaultSessionID, "Protocol session ID (0 is reserved)")
	flag.IntVar(&config.ChunkSize, "chunk-size", camera.DefaultChunkSize, "Bulk write chunk size in bytes")
	flag.IntVar(&config.ReadBuffer, "read-buffer", camera.DefaultReadBufferSize, "Bulk read buffer size in bytes")
	flag.DurationVar(&config.Timeout, "timeout", transport.DefaultTimeout, "Per-transfer timeout")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&config.Announce, "announce", false, "Advertise the tether over mDNS")
	flag.UintVar(&config.AnnouncePort, "announce-port", announce.DefaultPort, "Port published in the mDNS announcement")
	flag.StringVar(&config.Run, "run", "", "Execute one command and exit (connects and releases around it)")
}

func main() {
	flag.Parse()

	if err := loadConfigFile(); err != nil {
		log.SetFlags(0)
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging
	setupLogging(config.LogLevel)

	log.Println("PTP Camera Tether")
	log.Println("=================")

	// Validate configuration
	if err := validateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Apply defaults
	applyDefaults()

	log.Printf("Backend: %s", config.Backend)
	if config.Backend == "replay" {
		log.Printf("Replay: %s", config.Replay)
	}
	if config.Capture != "" {
		log.Printf("Capture: %s", config.Capture)
	}
	log.Printf("Library: %s", version.UserAgent())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the transport backend
	opener, cleanup, err := buildOpener(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize %s backend: %v", config.Backend, err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Build the capture pipeline
	capture, closeCapture, err := buildCapture()
	if err != nil {
		log.Fatalf("Failed to open capture: %v", err)
	}
	defer closeCapture()

	var advertiser *announce.Advertiser
	if config.Announce {
		advertiser = announce.NewAdvertiser(announce.DefaultConfig())
		defer advertiser.Shutdown()
	}

	// The state change callback closes over the adapter variable; it
	// only fires from adapter methods, after New has returned.
	var adapter *session.Adapter
	sessConfig := session.Config{
		SessionID: uint32(config.SessionID),
		Engine: camera.Config{
			ChunkSize:      config.ChunkSize,
			ReadBufferSize: config.ReadBuffer,
			PhaseTimeout:   config.Timeout,
		},
		Capture: capture,
	}
	if advertiser != nil {
		sessConfig.OnStateChange = func(from, to session.State) {
			announceTransition(advertiser, adapter, from, to)
		}
	}
	adapter = session.New(opener, sessConfig)

	ic, err := interactive.New(adapter, &config)
	if err != nil {
		log.Fatalf("Failed to start interactive mode: %v", err)
	}

	// Route log output through readline so the prompt survives
	log.SetOutput(ic.Stdout())

	if config.Run != "" {
		runErr := ic.RunOnce(ctx, config.Run)
		if runErr != nil {
			log.Printf("Error: %v", runErr)
		}
		releaseLink(adapter)
		if runErr != nil {
			os.Exit(1)
		}
		log.Println("Goodbye!")
		return
	}

	go ic.Run(ctx, cancel)

	// Wait for a shutdown signal or the shell to exit
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
		cancel()
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	releaseLink(adapter)
	log.Println("Goodbye!")
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

func validateConfig() error {
	switch config.Backend {
	case "", "usb", "replay":
		// Valid; empty resolves in applyDefaults
	default:
		return fmt.Errorf("unknown backend: %s", config.Backend)
	}
	if config.Backend == "replay" && config.Replay == "" {
		return errors.New("replay backend requires -replay <capture>")
	}
	if config.Backend == "usb" && config.Replay != "" {
		return errors.New("-replay conflicts with the usb backend")
	}
	if config.SessionID == 0 {
		return errors.New("session ID 0 is reserved by the protocol")
	}
	if uint64(config.SessionID) > math.MaxUint32 {
		return fmt.Errorf("session ID must fit in 32 bits, got %d", config.SessionID)
	}
	if config.ChunkSize <= wire.HeaderSize {
		return fmt.Errorf("chunk size must exceed the %d-byte container header, got %d",
			wire.HeaderSize, config.ChunkSize)
	}
	if config.ReadBuffer <= 0 {
		return fmt.Errorf("read buffer size must be positive, got %d", config.ReadBuffer)
	}
	if config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	if config.AnnouncePort == 0 || config.AnnouncePort > math.MaxUint16 {
		return fmt.Errorf("announce port must be 1-65535, got %d", config.AnnouncePort)
	}
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", config.LogLevel)
	}
	return nil
}

func applyDefaults() {
	if config.Backend == "" {
		config.Backend = "usb"
		if config.Replay != "" {
			config.Backend = "replay"
		}
	}
}

// fileConfig is the YAML shape of -config files. Zero values mean "not
// set"; announce uses a pointer so an explicit false survives.
type fileConfig struct {
	Backend      string `yaml:"backend"`
	Capture      string `yaml:"capture"`
	Replay       string `yaml:"replay"`
	Link         string `yaml:"link"`
	SessionID    uint32 `yaml:"session-id"`
	ChunkSize    int    `yaml:"chunk-size"`
	ReadBuffer   int    `yaml:"read-buffer"`
	Timeout      string `yaml:"timeout"`
	LogLevel     string `yaml:"log-level"`
	Announce     *bool  `yaml:"announce"`
	AnnouncePort uint16 `yaml:"announce-port"`
}

// loadConfigFile merges the -config file, if any, under the flags that
// were set on the command line.
func loadConfigFile() error {
	if config.ConfigFile == "" {
		return nil
	}
	f, err := readFileConfig(config.ConfigFile)
	if err != nil {
		return err
	}
	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return mergeFileConfig(&config, f, set)
}

// readFileConfig parses a YAML tether configuration.
func readFileConfig(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fileConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// mergeFileConfig fills settings from the file for every flag not set
// on the command line.
func mergeFileConfig(c *Config, f fileConfig, set map[string]bool) error {
	if !set["backend"] && f.Backend != "" {
		c.Backend = f.Backend
	}
	if !set["capture"] && f.Capture != "" {
		c.Capture = f.Capture
	}
	if !set["replay"] && f.Replay != "" {
		c.Replay = f.Replay
	}
	if !set["link"] && f.Link != "" {
		c.Link = f.Link
	}
	if !set["session-id"] && f.SessionID != 0 {
		c.SessionID = uint(f.SessionID)
	}
	if !set["chunk-size"] && f.ChunkSize != 0 {
		c.ChunkSize = f.ChunkSize
	}
	if !set["read-buffer"] && f.ReadBuffer != 0 {
		c.ReadBuffer = f.ReadBuffer
	}
	if !set["timeout"] && f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		c.Timeout = d
	}
	if !set["log-level"] && f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if !set["announce"] && f.Announce != nil {
		c.Announce = *f.Announce
	}
	if !set["announce-port"] && f.AnnouncePort != 0 {
		c.AnnouncePort = uint(f.AnnouncePort)
	}
	return nil
}

// buildOpener constructs the transport opener for the configured
// backend. The returned cleanup releases backend resources.
func buildOpener(ctx context.Context) (session.Opener, func(), error) {
	switch config.Backend {
	case "replay":
		path, link := config.Replay, config.Link
		opener := session.OpenerFunc(func(context.Context) (transport.Transport, error) {
			return replay.Open(path, replay.Config{LinkID: link})
		})
		return opener, nil, nil
	case "usb":
		return openUSB(ctx)
	default:
		return nil, nil, fmt.Errorf("unknown backend: %s", config.Backend)
	}
}

// buildCapture assembles the capture pipeline: a file logger when
// -capture is set, plus a slog bridge to stderr at debug level.
func buildCapture() (plog.Logger, func(), error) {
	var loggers []plog.Logger
	var closers []func()

	if config.Capture != "" {
		fl, err := plog.NewFileLogger(config.Capture)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closers = append(closers, func() {
			if err := fl.Close(); err != nil {
				log.Printf("Error closing capture: %v", err)
			}
		})
	}
	if config.LogLevel == "debug" {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, plog.NewSlogAdapter(slog.New(handler)))
	}

	closer := func() {
		for _, c := range closers {
			c()
		}
	}
	switch len(loggers) {
	case 0:
		return nil, closer, nil
	case 1:
		return loggers[0], closer, nil
	default:
		return plog.NewMultiLogger(loggers...), closer, nil
	}
}

// announceTransition keeps the mDNS announcement in step with the link:
// the fresh link id is advertised on connect and withdrawn on
// disconnect.
func announceTransition(advertiser *announce.Advertiser, adapter *session.Adapter, from, to session.State) {
	switch {
	case from == session.StateDisconnected && to == session.StateConnected:
		info := announce.Info{
			LinkID: adapter.LinkID(),
			Port:   uint16(config.AnnouncePort),
		}
		if err := advertiser.Advertise(info); err != nil {
			log.Printf("Warning: mDNS announce failed: %v", err)
			return
		}
		log.Printf("Announcing %s on port %d", announce.InstanceName(info.LinkID), config.AnnouncePort)
	case to == session.StateDisconnected:
		advertiser.Shutdown()
	}
}

// releaseLink disconnects the adapter, closing any open session first.
func releaseLink(adapter *session.Adapter) {
	if adapter.State() == session.StateDisconnected {
		return
	}
	if err := adapter.Disconnect(context.Background()); err != nil {
		log.Printf("Error releasing camera: %v", err)
	}
}
