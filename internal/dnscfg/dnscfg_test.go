package dnscfg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeRunner feeds canned transcripts keyed by the full command line.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

func testManager(goos string, fake *fakeRunner) *Manager {
	return &Manager{runner: fake, log: zap.NewNop(), goos: goos}
}

const netshInterfaces = `
Admin State    State          Type             Interface Name
-------------------------------------------------------------------------
Enabled        Disconnected   Dedicated        Wi-Fi
Enabled        Connected      Dedicated        Ethernet 2
`

func TestActiveAdapterWindows(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"netsh interface show interface": netshInterfaces,
	}}
	m := testManager("windows", fake)

	adapter, err := m.ActiveAdapter(context.Background())
	if err != nil {
		t.Fatalf("ActiveAdapter() error: %v", err)
	}
	if adapter != "Ethernet 2" {
		t.Errorf("ActiveAdapter() = %q, want %q", adapter, "Ethernet 2")
	}
}

func TestActiveAdapterWindowsNoneConnected(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"netsh interface show interface": `
Admin State    State          Type             Interface Name
-------------------------------------------------------------------------
Enabled        Disconnected   Dedicated        Wi-Fi
`,
	}}
	m := testManager("windows", fake)

	if _, err := m.ActiveAdapter(context.Background()); !errors.Is(err, ErrNoAdapter) {
		t.Errorf("ActiveAdapter() error = %v, want ErrNoAdapter", err)
	}
}

func TestActiveAdapterLinux(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"ip route show default": "default via 192.168.1.1 dev wlan0 proto dhcp metric 600\n",
	}}
	m := testManager("linux", fake)

	adapter, err := m.ActiveAdapter(context.Background())
	if err != nil {
		t.Fatalf("ActiveAdapter() error: %v", err)
	}
	if adapter != "wlan0" {
		t.Errorf("ActiveAdapter() = %q, want %q", adapter, "wlan0")
	}
}

func TestActiveAdapterLinuxNoDefaultRoute(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"ip route show default": "",
	}}
	m := testManager("linux", fake)

	if _, err := m.ActiveAdapter(context.Background()); !errors.Is(err, ErrNoAdapter) {
		t.Errorf("ActiveAdapter() error = %v, want ErrNoAdapter", err)
	}
}

func TestActiveAdapterUnsupportedPlatform(t *testing.T) {
	m := testManager("plan9", &fakeRunner{})

	_, err := m.ActiveAdapter(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("ActiveAdapter() error = %v, want unsupported platform", err)
	}
}

func TestServersWindows(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		source     Source
		servers    []string
	}{
		{
			name: "static pair",
			transcript: `Configuration for interface "Ethernet 2"
    Statically Configured DNS Servers:    1.1.1.1
                                          1.0.0.1
    Register with which suffix:           Primary only
`,
			source:  SourceStatic,
			servers: []string{"1.1.1.1", "1.0.0.1"},
		},
		{
			name: "dhcp assigned",
			transcript: `Configuration for interface "Ethernet 2"
    DNS servers configured through DHCP:  192.168.1.1
    Register with which suffix:           Primary only
`,
			source:  SourceDHCP,
			servers: []string{"192.168.1.1"},
		},
		{
			name: "none configured",
			transcript: `Configuration for interface "Ethernet 2"
    Statically Configured DNS Servers:    None
    Register with which suffix:           Primary only
`,
			source:  SourceNone,
			servers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRunner{outputs: map[string]string{
				"netsh interface ip show dns name=Ethernet 2": tt.transcript,
			}}
			m := testManager("windows", fake)

			st, err := m.Servers(context.Background(), "Ethernet 2")
			if err != nil {
				t.Fatalf("Servers() error: %v", err)
			}
			if st.Source != tt.source {
				t.Errorf("Source = %q, want %q", st.Source, tt.source)
			}
			if len(st.Servers) != len(tt.servers) {
				t.Fatalf("Servers = %v, want %v", st.Servers, tt.servers)
			}
			for i := range tt.servers {
				if st.Servers[i] != tt.servers[i] {
					t.Errorf("Servers[%d] = %q, want %q", i, st.Servers[i], tt.servers[i])
				}
			}
		})
	}
}

func TestServersLinux(t *testing.T) {
	fake := &fakeRunner{outputs: map[string]string{
		"resolvectl dns wlan0": "Link 3 (wlan0): 9.9.9.9 149.112.112.112\n",
	}}
	m := testManager("linux", fake)

	st, err := m.Servers(context.Background(), "wlan0")
	if err != nil {
		t.Fatalf("Servers() error: %v", err)
	}
	if st.Source != SourceStatic {
		t.Errorf("Source = %q, want %q", st.Source, SourceStatic)
	}
	if len(st.Servers) != 2 || st.Servers[0] != "9.9.9.9" {
		t.Errorf("Servers = %v, want [9.9.9.9 149.112.112.112]", st.Servers)
	}
}

func TestServersSurfaceToolFailure(t *testing.T) {
	boom := errors.New("netsh: exit status 1: The requested operation requires elevation (Run as administrator).")
	fake := &fakeRunner{errs: map[string]error{
		"netsh interface ip show dns name=Ethernet": boom,
	}}
	m := testManager("windows", fake)

	_, err := m.Servers(context.Background(), "Ethernet")
	if !errors.Is(err, boom) {
		t.Fatalf("Servers() error = %v, want wrapped tool failure", err)
	}
	if !strings.Contains(err.Error(), "elevation") {
		t.Errorf("error %q does not carry the tool's own message", err)
	}
}

func TestSetWindows(t *testing.T) {
	fake := &fakeRunner{}
	m := testManager("windows", fake)

	if err := m.Set(context.Background(), "Ethernet 2", "9.9.9.9", "149.112.112.112"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	want := []string{
		"netsh interface ip set dns name=Ethernet 2 static 9.9.9.9",
		"netsh interface ip add dns name=Ethernet 2 149.112.112.112 index=2",
	}
	if len(fake.calls) != len(want) {
		t.Fatalf("Set() ran %d commands, want %d: %v", len(fake.calls), len(want), fake.calls)
	}
	for i := range want {
		if fake.calls[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, fake.calls[i], want[i])
		}
	}
}

func TestSetPrimaryOnly(t *testing.T) {
	fake := &fakeRunner{}
	m := testManager("linux", fake)

	if err := m.Set(context.Background(), "wlan0", "1.1.1.1", ""); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0] != "resolvectl dns wlan0 1.1.1.1" {
		t.Errorf("Set() commands = %v, want single resolvectl call", fake.calls)
	}
}

func TestSetRejectsInvalidAddresses(t *testing.T) {
	fake := &fakeRunner{}
	m := testManager("windows", fake)

	if err := m.Set(context.Background(), "Ethernet", "256.1.1.1", ""); err == nil {
		t.Error("Set() accepted an out-of-range primary")
	}
	if err := m.Set(context.Background(), "Ethernet", "1.1.1.1", "abc"); err == nil {
		t.Error("Set() accepted a malformed secondary")
	}
	if len(fake.calls) != 0 {
		t.Errorf("Set() ran %v before validation", fake.calls)
	}
}

func TestClearCommands(t *testing.T) {
	fake := &fakeRunner{}
	m := testManager("windows", fake)
	if err := m.Clear(context.Background(), "Ethernet 2"); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0] != "netsh interface ip set dns name=Ethernet 2 source=dhcp" {
		t.Errorf("Clear() commands = %v", fake.calls)
	}

	fake = &fakeRunner{}
	m = testManager("linux", fake)
	if err := m.Clear(context.Background(), "wlan0"); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0] != "resolvectl revert wlan0" {
		t.Errorf("Clear() commands = %v", fake.calls)
	}
}
