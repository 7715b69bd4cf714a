package main

import (
	"fmt"
	"os"
	"strings"

	"autoap/pkg/arbiter"
	"autoap/pkg/config"
	"autoap/pkg/debounce"
	"autoap/pkg/logger"
	"autoap/pkg/monitor"
	"autoap/pkg/netmode"
	"autoap/pkg/provision"
	"autoap/pkg/wpa"

	"github.com/go-logr/logr"
)

func main() {
	// wpa_cli invokes this executable as its action script with
	// argv = [self, <iface>, <STATE>, mac?]; that shape has to be
	// recognized before cobra gets a chance to reject it
	if args := os.Args; len(args) >= 3 && strings.HasPrefix(args[1], "wlan") {
		runActionScript(args)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runActionScript(args []string) {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(config.Get().Debug)
	log := logger.L()

	iface := args[1]
	if !provision.DefaultLayout().Installed(iface, log) {
		log.Info("not provisioned but invoked as an action script", "interface", iface)
		os.Exit(1)
	}

	log.Info("invoked as action script", "args", args[1:])

	if err := newMonitor(iface, log).ProcessEvent(args); err != nil {
		log.Error(err, "failed to process event")
		os.Exit(1)
	}
}

// newMonitor wires the full pipeline for one interface.
func newMonitor(iface string, log logr.Logger) *monitor.Monitor {
	sup := wpa.NewCLI(log.WithName("wpa"))
	sw := netmode.NewSwitcher(netmode.Systemctl{}, sup, log.WithName("netmode"))
	deb := debounce.New(sup, log.WithName("debounce"))
	arb := arbiter.New(config.Get(), sup, sw, deb, log.WithName("arbiter"))
	return monitor.New(iface, arb, deb, sw, log.WithName("monitor"))
}
