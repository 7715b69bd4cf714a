// Package monitor bridges wpa_cli to the event pipeline. One long-lived
// process runs Start and owns the wpa_cli child; every notification then
// re-invokes this executable as the action script, and that short-lived
// process enters through ProcessEvent.
package monitor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"autoap/pkg/arbiter"
	"autoap/pkg/debounce"
	"autoap/pkg/globals"
	"autoap/pkg/netmode"
	"autoap/pkg/wpa"

	"github.com/go-logr/logr"
)

type Monitor struct {
	SocketDir string
	// how often to poll for the supplicant control socket
	PollInterval time.Duration
	WpaCliBin    string

	iface string
	arb   *arbiter.Arbiter
	deb   *debounce.Coordinator
	sw    *netmode.Switcher
	log   logr.Logger
}

func New(iface string, arb *arbiter.Arbiter, deb *debounce.Coordinator, sw *netmode.Switcher, log logr.Logger) *Monitor {
	return &Monitor{
		SocketDir:    globals.WpaSocketDir,
		PollInterval: 500 * time.Millisecond,
		WpaCliBin:    "/sbin/wpa_cli",
		iface:        iface,
		arb:          arb,
		deb:          deb,
		sw:           sw,
		log:          log,
	}
}

// Start resets any stale state, waits for the supplicant's control socket
// to appear (unbounded: there is nothing useful to do before the
// supplicant is up), then runs wpa_cli with this executable registered as
// the action script and blocks until it exits.
func (m *Monitor) Start() error {
	if err := m.Reset(); err != nil {
		return err
	}

	sock := filepath.Join(m.SocketDir, m.iface)
	for !fileExists(sock) {
		m.log.Info("waiting for wpa_supplicant to come online", "interface", m.iface)
		time.Sleep(m.PollInterval)
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve own executable path: %w", err)
	}

	m.log.Info("starting wpa_cli monitor", "interface", m.iface, "action", self)

	cmd := exec.Command(m.WpaCliBin, "-i", m.iface, "-a", self)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wpa_cli exited: %w", err)
	}
	return nil
}

// ProcessEvent is the entry point for a single action-script invocation,
// argv included. The reset and start literals are administrative commands,
// not state changes; anything else must parse as an event for the
// monitored interface.
func (m *Monitor) ProcessEvent(args []string) error {
	if len(args) >= 2 {
		switch args[1] {
		case "reset":
			m.log.Info("reset command received", "interface", m.iface)
			return m.Reset()
		case "start":
			if len(args) < 3 {
				return fmt.Errorf("start command requires an interface name")
			}
			m.log.Info("start command received", "interface", args[2])
			return m.Start()
		}
	}

	ev, err := wpa.ParseEvent(args)
	if err != nil {
		return err
	}

	// wpa_cli registers the action script without filtering by
	// interface, so foreign events are expected noise
	if ev.Interface != m.iface {
		m.log.Info("event for another interface, ignoring",
			"got", ev.Interface, "monitoring", m.iface)
		return nil
	}

	m.log.Info("processing event", "event", ev.String())
	return m.arb.HandleEvent(ev)
}

// Reset returns the system to its known-good state: both debounce
// sentinels removed and the client descriptor back at its active path.
// Idempotent, no preconditions.
func (m *Monitor) Reset() error {
	m.log.Info("resetting state", "interface", m.iface)

	if err := m.deb.Clear(); err != nil {
		return err
	}

	backup := m.sw.BackupPath(m.iface)
	if fileExists(backup) {
		if err := os.Rename(backup, m.sw.ActivePath(m.iface)); err != nil {
			return fmt.Errorf("failed to restore client descriptor: %w", err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
