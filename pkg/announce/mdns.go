package announce

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// Advertiser announces a tether host over mDNS using zeroconf.
type Advertiser struct {
	config Config

	mu     sync.Mutex
	server *zeroconf.Server
	info   Info
}

// NewAdvertiser creates a new mDNS advertiser.
func NewAdvertiser(config Config) *Advertiser {
	return &Advertiser{config: config}
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *Advertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts announcing the tether service. A previous announcement
// from this advertiser is replaced.
func (a *Advertiser) Advertise(info Info) error {
	if err := info.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Stop existing if any
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	return a.register(info)
}

// register performs the zeroconf registration. Callers hold a.mu.
func (a *Advertiser) register(info Info) error {
	txtStrings := TXTRecordsToStrings(EncodeTXT(&info))

	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.instanceName(),
		ServiceType,
		Domain,
		port,
		txtStrings,
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register tether service: %w", err)
	}

	a.server = server
	a.info = info
	return nil
}

// Update refreshes a live announcement, typically once the camera model
// becomes known. A changed link id changes the instance name, which needs
// a fresh registration instead of a TXT update.
func (a *Advertiser) Update(info Info) error {
	if err := info.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAdvertising
	}

	if info.instanceName() != a.info.instanceName() {
		a.server.Shutdown()
		a.server = nil
		return a.register(info)
	}

	a.server.SetText(TXTRecordsToStrings(EncodeTXT(&info)))
	a.info = info
	return nil
}

// Advertising reports whether an announcement is currently live.
func (a *Advertiser) Advertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// Shutdown stops the announcement. Safe to call more than once.
func (a *Advertiser) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// Browser discovers tether hosts over mDNS.
type Browser struct {
	config Config
}

// NewBrowser creates a new mDNS browser.
func NewBrowser(config Config) *Browser {
	return &Browser{config: config}
}

// Browse searches for tether hosts until ctx is done. Services are
// aggregated by instance name; addresses seen on multiple interfaces are
// merged into a single entry, and entries whose addresses all disappear
// are dropped.
func (b *Browser) Browse(ctx context.Context) (<-chan *Service, error) {
	out := make(chan *Service)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	opts := b.browserOptions()

	go func() {
		defer close(out)

		services := make(map[string]*Service)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry)
				if svc == nil {
					continue
				}

				if existing, found := services[svc.InstanceName]; found {
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
					continue
				}

				services[svc.InstanceName] = svc
				select {
				case out <- svc:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				if existing, found := services[entry.Instance]; found {
					existing.Addresses = removeAddresses(existing.Addresses, entry)
					if len(existing.Addresses) == 0 {
						delete(services, entry.Instance)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// FindByLink searches for the tether host announcing the given link id.
func (b *Browser) FindByLink(ctx context.Context, linkID string) (*Service, error) {
	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case svc, ok := <-results:
			if !ok {
				return nil, ErrNotFound
			}
			if svc.LinkID == linkID {
				return svc, nil
			}
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// browserOptions returns zeroconf client options based on config.
func (b *Browser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToService converts a zeroconf entry to a Service. Entries whose TXT
// records do not decode are ignored.
func entryToService(entry *zeroconf.ServiceEntry) *Service {
	ann, err := DecodeTXT(StringsToTXTRecords(entry.Text))
	if err != nil {
		return nil
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Service{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         uint16(entry.Port),
		Addresses:    addrs,
		LinkID:       ann.LinkID,
		Library:      ann.Library,
		Model:        ann.Model,
	}
}

// mergeAddresses appends addresses not already present.
func mergeAddresses(existing, found []string) []string {
	for _, addr := range found {
		seen := false
		for _, have := range existing {
			if have == addr {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, addr)
		}
	}
	return existing
}

// removeAddresses drops the addresses carried by a removed mDNS entry.
func removeAddresses(addrs []string, entry *zeroconf.ServiceEntry) []string {
	gone := make(map[string]bool, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		gone[ip.String()] = true
	}
	for _, ip := range entry.AddrIPv6 {
		gone[ip.String()] = true
	}

	kept := addrs[:0]
	for _, addr := range addrs {
		if !gone[addr] {
			kept = append(kept, addr)
		}
	}
	return kept
}
