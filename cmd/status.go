package main

import (
	"fmt"
	"time"

	"autoap/pkg/debounce"
	"autoap/pkg/globals"
	"autoap/pkg/logger"
	"autoap/pkg/netmode"
	"autoap/pkg/provision"
	"autoap/pkg/wpa"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"
)

func init() {
	statusCmd.Flags().String("interface", globals.DefaultInterface, "wireless interface")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provisioning, mode flag and debounce state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		iface, _ := cmd.Flags().GetString("interface")
		log := logger.L()

		if info, err := host.Info(); err == nil {
			fmt.Printf("host:        %s (up %s)\n", info.Hostname,
				(time.Duration(info.Uptime) * time.Second).String())
		}

		installed := provision.DefaultLayout().Installed(iface, log)
		fmt.Printf("provisioned: %v\n", installed)
		if !installed {
			return nil
		}

		sup := wpa.NewCLI(log.WithName("wpa"))
		sw := netmode.NewSwitcher(netmode.Systemctl{}, sup, log.WithName("netmode"))
		fmt.Printf("mode:        %s\n", sw.Mode(iface))

		flags := debounce.New(sup, log.WithName("debounce")).Flags()
		if flags.Locked {
			fmt.Printf("debounce:    wait in progress since %s\n", flags.LockedAt.Format(time.RFC3339))
		} else {
			fmt.Printf("debounce:    idle\n")
		}
		if flags.Unlock {
			fmt.Printf("             pending cancel since %s\n", flags.UnlockAt.Format(time.RFC3339))
		}

		if st, err := sup.Status(iface); err == nil {
			fmt.Printf("supplicant:  state=%s mode=%s ssid=%q ip=%s\n",
				st.WpaState, st.Mode, st.SSID, st.IP)
		}

		if recent := logger.Recent(10); len(recent) > 0 {
			fmt.Println("recent log lines:")
			for _, line := range recent {
				fmt.Printf("  %s\n", line)
			}
		}
		return nil
	},
}
