// Package netmode owns the on-disk mode flag: whether the interface's
// client network descriptor sits at its active path (client mode) or at
// its ~ backup path (AP mode), and the service restarts that make the
// running system agree with the flag.
package netmode

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autoap/pkg/globals"
	"autoap/pkg/wpa"

	"github.com/go-logr/logr"
)

// Mode is the current mode flag as encoded by the descriptor location.
type Mode int

const (
	// ModeUnprovisioned means neither descriptor location exists
	ModeUnprovisioned Mode = iota
	// ModeClient means the descriptor is at its active path
	ModeClient
	// ModeAP means the descriptor is at its backup path
	ModeAP
)

func (m Mode) String() string {
	switch m {
	case ModeClient:
		return "client"
	case ModeAP:
		return "access-point"
	}
	return "unprovisioned"
}

// Switcher moves the descriptor between its two legal locations and
// restarts the network service. The rename is atomic, so a crash leaves
// the mode flag whole; the restart is re-attempted on every call to cover
// a crash between the two steps.
type Switcher struct {
	NetworkDir string
	svc        ServiceManager
	sup        wpa.Supplicant
	log        logr.Logger

	// settle time after starting an inactive network service before
	// restarting it
	startDelay time.Duration
}

func NewSwitcher(svc ServiceManager, sup wpa.Supplicant, log logr.Logger) *Switcher {
	return &Switcher{
		NetworkDir: globals.NetworkDir,
		svc:        svc,
		sup:        sup,
		log:        log,
		startDelay: 500 * time.Millisecond,
	}
}

// ActivePath is the descriptor location in client mode.
func (s *Switcher) ActivePath(iface string) string {
	return filepath.Join(s.NetworkDir, "11-"+iface+".network")
}

// BackupPath is the descriptor location in AP mode.
func (s *Switcher) BackupPath(iface string) string {
	return s.ActivePath(iface) + "~"
}

// Mode reports the current mode flag for the interface.
func (s *Switcher) Mode(iface string) Mode {
	if fileExists(s.ActivePath(iface)) {
		return ModeClient
	}
	if fileExists(s.BackupPath(iface)) {
		return ModeAP
	}
	return ModeUnprovisioned
}

// ToAP parks the client descriptor at its backup path and bounces the
// network service so the AP descriptor takes over. The trailing supplicant
// reconfigure is best-effort: if it fails the service-level restart will
// retry on its own schedule.
func (s *Switcher) ToAP(iface string) error {
	if fileExists(s.ActivePath(iface)) {
		s.log.Info("configuring as access point", "interface", iface)
		if err := os.Rename(s.ActivePath(iface), s.BackupPath(iface)); err != nil {
			return fmt.Errorf("failed to park client descriptor: %w", err)
		}
	}

	if err := s.restartNetwork(); err != nil {
		return err
	}

	if err := s.sup.Reconfigure(iface); err != nil {
		s.log.Error(err, "supplicant reconfigure after AP switch failed", "interface", iface)
	}
	return nil
}

// ToClient restores the client descriptor to its active path and bounces
// the network service.
func (s *Switcher) ToClient(iface string) error {
	if fileExists(s.BackupPath(iface)) {
		s.log.Info("configuring as wireless client", "interface", iface)
		if err := os.Rename(s.BackupPath(iface), s.ActivePath(iface)); err != nil {
			return fmt.Errorf("failed to restore client descriptor: %w", err)
		}
	}

	return s.restartNetwork()
}

func (s *Switcher) restartNetwork() error {
	active, err := s.svc.IsActive(globals.NetworkService)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", globals.NetworkService, err)
	}
	if !active {
		s.log.Info("network service not active, starting it", "unit", globals.NetworkService)
		if err := s.svc.Start(globals.NetworkService); err != nil {
			return fmt.Errorf("failed to start %s: %w", globals.NetworkService, err)
		}
		time.Sleep(s.startDelay)
	}

	if err := s.svc.Restart(globals.NetworkService); err != nil {
		return fmt.Errorf("failed to restart %s: %w", globals.NetworkService, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
