package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"netpulse/internal/dnscfg"
)

var dnsCmd = &cobra.Command{
	Use:   "dns",
	Short: "Inspect and switch the system DNS configuration",
}

var dnsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active adapter and its DNS servers",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDNSStatus(); err != nil {
			fatal(err)
		}
	},
}

var dnsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in DNS presets",
	Run: func(cmd *cobra.Command, args []string) {
		runDNSList()
	},
}

var dnsSetCmd = &cobra.Command{
	Use:   "set <preset|primary> [secondary]",
	Short: "Point the active adapter at a preset or custom servers",
	Long: `Set applies a named preset (see "dns list") or a custom primary and
optional secondary IPv4 address to the active adapter. Changing system
DNS usually needs elevated privileges.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDNSSet(args); err != nil {
			fatal(err)
		}
	},
}

var dnsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Revert the active adapter to automatic (DHCP) DNS",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDNSClear(); err != nil {
			fatal(err)
		}
	},
}

var dnsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Measure query latency of the configured DNS servers",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDNSTest(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	dnsCmd.AddCommand(dnsStatusCmd, dnsListCmd, dnsSetCmd, dnsClearCmd, dnsTestCmd)
	rootCmd.AddCommand(dnsCmd)
}

// resolveAdapter prefers the configured adapter name over auto-detection.
func resolveAdapter(ctx context.Context, m *dnscfg.Manager, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return m.ActiveAdapter(ctx)
}

func runDNSStatus() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := dnscfg.NewManager(log)
	adapter, err := resolveAdapter(ctx, m, cfg.DNS.Adapter)
	if err != nil {
		return err
	}

	status, err := m.Servers(ctx, adapter)
	if err != nil {
		return err
	}

	fmt.Printf("Adapter: %s\n", status.Adapter)
	fmt.Printf("Source:  %s\n", status.Source)
	if len(status.Servers) == 0 {
		fmt.Println("Servers: none")
		return nil
	}
	for i, server := range status.Servers {
		if i == 0 {
			fmt.Printf("Servers: %s\n", server)
		} else {
			fmt.Printf("         %s\n", server)
		}
	}
	return nil
}

func runDNSList() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIMARY\tSECONDARY")
	for _, p := range dnscfg.Presets {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Primary, p.Secondary)
	}
	w.Flush()
}

func runDNSSet(args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	primary := args[0]
	secondary := ""
	if len(args) == 2 {
		secondary = args[1]
	} else if p, ok := dnscfg.LookupPreset(args[0]); ok {
		primary, secondary = p.Primary, p.Secondary
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := dnscfg.NewManager(log)
	adapter, err := resolveAdapter(ctx, m, cfg.DNS.Adapter)
	if err != nil {
		return err
	}

	if err := m.Set(ctx, adapter, primary, secondary); err != nil {
		return err
	}

	if secondary != "" {
		fmt.Printf("DNS on %s set to %s, %s\n", adapter, primary, secondary)
	} else {
		fmt.Printf("DNS on %s set to %s\n", adapter, primary)
	}
	return nil
}

func runDNSClear() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := dnscfg.NewManager(log)
	adapter, err := resolveAdapter(ctx, m, cfg.DNS.Adapter)
	if err != nil {
		return err
	}

	if err := m.Clear(ctx, adapter); err != nil {
		return err
	}

	fmt.Printf("DNS on %s reverted to automatic (DHCP)\n", adapter)
	return nil
}

func runDNSTest() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := dnscfg.NewManager(log)
	adapter, err := resolveAdapter(ctx, m, cfg.DNS.Adapter)
	if err != nil {
		return err
	}

	status, err := m.Servers(ctx, adapter)
	if err != nil {
		return err
	}
	if len(status.Servers) == 0 {
		return fmt.Errorf("no dns servers configured on %s", adapter)
	}

	for _, r := range dnscfg.ProbeServers(ctx, status.Servers, cfg.DNS.ProbeDomain, cfg.DNS.Timeout) {
		if r.Err != "" {
			fmt.Printf("%-18s unreachable: %s\n", r.Server, r.Err)
			continue
		}
		fmt.Printf("%-18s %.1f ms\n", r.Server, r.RTT)
	}
	return nil
}
