package main

import (
	"fmt"
	"os"

	"autoap/pkg/config"
	"autoap/pkg/globals"
	"autoap/pkg/logger"
	"autoap/pkg/provision"
	"autoap/pkg/wpa"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:          "autoap",
	Short:        "WiFi fallback access point arbitration",
	Long:         "autoap keeps a single wireless interface switching between a configuration access point and a configured client network, driven by wpa_supplicant events.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		logger.Init(verbose || config.Get().Debug)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	configureCmd.Flags().String("interface", globals.DefaultInterface, "wireless interface")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(versionCmd)
}

var startCmd = &cobra.Command{
	Use:   "start <interface>",
	Short: "Run the long-lived monitor for an interface",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		iface := args[0]
		log := logger.L()
		if !provision.DefaultLayout().Installed(iface, log) {
			return fmt.Errorf("autoap is not provisioned for %s; run the installer first", iface)
		}
		return newMonitor(iface, log).Start()
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset [interface]",
	Short: "Remove debounce sentinels and restore client mode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		iface := globals.DefaultInterface
		if len(args) > 0 {
			iface = args[0]
		}
		return newMonitor(iface, logger.L()).Reset()
	},
}

var runCmd = &cobra.Command{
	Use:   "run <interface> <state> [mac]",
	Short: "Replay a single supplicant event by hand",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		iface := args[0]
		log := logger.L()
		if !provision.DefaultLayout().Installed(iface, log) {
			return fmt.Errorf("autoap is not provisioned for %s; run the installer first", iface)
		}
		argv := append([]string{os.Args[0]}, args...)
		return newMonitor(iface, log).ProcessEvent(argv)
	},
}

var configureCmd = &cobra.Command{
	Use:   "configure <ssid> [psk]",
	Short: "Write client credentials and trigger a supplicant reconfigure",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iface, _ := cmd.Flags().GetString("interface")
		log := logger.L()

		psk := ""
		if len(args) > 1 {
			psk = args[1]
		}

		layout := provision.DefaultLayout()
		if err := layout.UpdateNetwork(iface, args[0], psk); err != nil {
			return err
		}
		log.Info("credentials updated", "interface", iface, "ssid", args[0])

		return wpa.NewCLI(log.WithName("wpa")).Reconfigure(iface)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(globals.Version)
	},
}
