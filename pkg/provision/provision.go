// Package provision knows which artifacts the installer lays down and
// owns the one shared with the web configurator: the wpa_supplicant
// credentials file. The installer itself is a separate program; this
// package only verifies and edits its output.
package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"autoap/pkg/globals"

	"github.com/go-logr/logr"
)

// Layout locates the provisioning artifacts. Fields default to the live
// system paths and are overridden in tests.
type Layout struct {
	ConfigPath    string
	UnitDir       string
	SupplicantDir string
	NetworkDir    string
}

func DefaultLayout() Layout {
	return Layout{
		ConfigPath:    globals.ConfigPath,
		UnitDir:       globals.SystemdUnitDir,
		SupplicantDir: globals.WpaSupplicantDir,
		NetworkDir:    globals.NetworkDir,
	}
}

// SupplicantConf is the per-interface credentials file.
func (l Layout) SupplicantConf(iface string) string {
	return filepath.Join(l.SupplicantDir, "wpa_supplicant-"+iface+".conf")
}

// Installed reports whether every artifact the installer provisions is in
// place for the interface. The client descriptor legitimately lives at
// either of its two locations, so both count.
func (l Layout) Installed(iface string, log logr.Logger) bool {
	required := []string{
		l.ConfigPath,
		filepath.Join(l.UnitDir, "wpa-autoap@"+iface+".service"),
		filepath.Join(l.UnitDir, "wpa-autoap-restore.service"),
		l.SupplicantConf(iface),
		filepath.Join(l.NetworkDir, "12-"+iface+"AP.network"),
	}

	for _, path := range required {
		if !fileExists(path) {
			log.V(1).Info("missing provisioning artifact", "path", path)
			return false
		}
	}

	active := filepath.Join(l.NetworkDir, "11-"+iface+".network")
	if !fileExists(active) && !fileExists(active+"~") {
		log.V(1).Info("client network descriptor missing from both locations", "path", active)
		return false
	}
	return true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func backupFile(path string) error {
	if !fileExists(path) {
		return nil
	}

	bak := path + ".bak"
	if fileExists(bak) {
		old := bak + ".old"
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
		if err := os.Rename(bak, old); err != nil {
			return fmt.Errorf("failed to rotate backup: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := os.WriteFile(bak, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}
