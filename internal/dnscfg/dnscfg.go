// Package dnscfg reads and rewrites the DNS servers of the active
// network adapter by shelling out to the platform tools (netsh on
// Windows, resolvectl on Linux) and scraping dotted quads out of their
// output. No structured parsing: the tools' text is the interface.
package dnscfg

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// ErrNoAdapter is returned when no connected adapter can be found.
var ErrNoAdapter = errors.New("no active network adapter found")

// Source tells where the adapter's DNS servers come from.
type Source string

const (
	SourceStatic Source = "static"
	SourceDHCP   Source = "dhcp"
	SourceNone   Source = "none"
)

// Status is the DNS configuration of one adapter.
type Status struct {
	Adapter string   `json:"adapter"`
	Source  Source   `json:"source"`
	Servers []string `json:"servers"`
}

// Manager drives the platform DNS tools
type Manager struct {
	runner Runner
	log    *zap.Logger
	goos   string
}

// NewManager creates a Manager using the real platform tools.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		runner: execRunner{},
		log:    log,
		goos:   runtime.GOOS,
	}
}

func (m *Manager) unsupported() error {
	return fmt.Errorf("dns configuration not supported on %s", m.goos)
}

// ActiveAdapter returns the name of the adapter carrying traffic:
// the first connected dedicated interface on Windows, the default
// route device on Linux.
func (m *Manager) ActiveAdapter(ctx context.Context) (string, error) {
	switch m.goos {
	case "windows":
		out, err := m.runner.Run(ctx, "netsh", "interface", "show", "interface")
		if err != nil {
			return "", fmt.Errorf("list interfaces: %w", err)
		}
		for _, line := range strings.Split(out, "\n") {
			fields := strings.Fields(line)
			if len(fields) >= 4 && fields[1] == "Connected" && fields[2] == "Dedicated" {
				// Adapter names may contain spaces.
				return strings.Join(fields[3:], " "), nil
			}
		}
		return "", ErrNoAdapter

	case "linux":
		out, err := m.runner.Run(ctx, "ip", "route", "show", "default")
		if err != nil {
			return "", fmt.Errorf("read default route: %w", err)
		}
		fields := strings.Fields(out)
		for i, f := range fields {
			if f == "dev" && i+1 < len(fields) {
				return fields[i+1], nil
			}
		}
		return "", ErrNoAdapter

	default:
		return "", m.unsupported()
	}
}

// Servers reports the adapter's current DNS configuration. On Windows
// the DHCP origin is detected from the netsh transcript; resolvectl
// does not name the origin, so Linux reports static whenever servers
// are present.
func (m *Manager) Servers(ctx context.Context, adapter string) (Status, error) {
	st := Status{Adapter: adapter, Source: SourceNone}

	var out string
	var err error
	switch m.goos {
	case "windows":
		out, err = m.runner.Run(ctx, "netsh", "interface", "ip", "show", "dns", "name="+adapter)
	case "linux":
		out, err = m.runner.Run(ctx, "resolvectl", "dns", adapter)
	default:
		return st, m.unsupported()
	}
	if err != nil {
		return st, fmt.Errorf("read dns servers: %w", err)
	}

	st.Servers = scrapeIPv4s(out)
	switch {
	case m.goos == "windows" && strings.Contains(strings.ToLower(out), "dhcp"):
		st.Source = SourceDHCP
	case len(st.Servers) > 0:
		st.Source = SourceStatic
	}
	return st, nil
}

// Set points the adapter at primary (and secondary, when given). An
// empty secondary means primary only.
func (m *Manager) Set(ctx context.Context, adapter, primary, secondary string) error {
	if !ValidIPv4(primary) {
		return fmt.Errorf("invalid primary dns address %q", primary)
	}
	if secondary != "" && !ValidIPv4(secondary) {
		return fmt.Errorf("invalid secondary dns address %q", secondary)
	}

	m.log.Debug("setting dns servers",
		zap.String("adapter", adapter),
		zap.String("primary", primary),
		zap.String("secondary", secondary))

	switch m.goos {
	case "windows":
		if _, err := m.runner.Run(ctx, "netsh", "interface", "ip", "set", "dns", "name="+adapter, "static", primary); err != nil {
			return fmt.Errorf("set primary dns: %w", err)
		}
		if secondary != "" {
			if _, err := m.runner.Run(ctx, "netsh", "interface", "ip", "add", "dns", "name="+adapter, secondary, "index=2"); err != nil {
				return fmt.Errorf("set secondary dns: %w", err)
			}
		}
		return nil

	case "linux":
		args := []string{"dns", adapter, primary}
		if secondary != "" {
			args = append(args, secondary)
		}
		if _, err := m.runner.Run(ctx, "resolvectl", args...); err != nil {
			return fmt.Errorf("set dns: %w", err)
		}
		return nil

	default:
		return m.unsupported()
	}
}

// Clear hands the adapter's DNS configuration back to DHCP/automatic.
func (m *Manager) Clear(ctx context.Context, adapter string) error {
	m.log.Debug("clearing dns servers", zap.String("adapter", adapter))

	switch m.goos {
	case "windows":
		if _, err := m.runner.Run(ctx, "netsh", "interface", "ip", "set", "dns", "name="+adapter, "source=dhcp"); err != nil {
			return fmt.Errorf("clear dns: %w", err)
		}
		return nil

	case "linux":
		if _, err := m.runner.Run(ctx, "resolvectl", "revert", adapter); err != nil {
			return fmt.Errorf("clear dns: %w", err)
		}
		return nil

	default:
		return m.unsupported()
	}
}
