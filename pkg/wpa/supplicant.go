package wpa

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
)

// Status is the parsed output of `wpa_cli -i <iface> status`.
type Status struct {
	SSID     string
	WpaState string
	Mode     string
	IP       string
}

// Completed reports whether authentication has finished.
func (s Status) Completed() bool {
	return strings.Contains(s.WpaState, "COMPLETED")
}

// InApMode reports whether the supplicant is broadcasting rather than
// joined as a station. INTERFACE_DISABLED shows up transiently while the
// interface is being reconfigured for AP mode and counts as AP here.
func (s Status) InApMode() bool {
	return s.Mode == "AP" || s.WpaState == "INTERFACE_DISABLED"
}

// Supplicant is the slice of wpa_cli this daemon needs. Kept narrow so
// tests can substitute a fake without shelling out.
type Supplicant interface {
	// Status queries the supplicant's current association state.
	Status(iface string) (Status, error)
	// Reconfigure asks the supplicant to re-read its config and retry
	// its networks.
	Reconfigure(iface string) error
	// AllStations lists MAC addresses of stations attached to the AP.
	AllStations(iface string) ([]string, error)
}

// CLI talks to the supplicant through the wpa_cli binary.
type CLI struct {
	Bin string
	log logr.Logger
}

func NewCLI(log logr.Logger) *CLI {
	return &CLI{Bin: "/sbin/wpa_cli", log: log}
}

func (c *CLI) run(iface string, args ...string) (string, error) {
	cmdArgs := append([]string{"-i", iface}, args...)
	out, err := exec.Command(c.Bin, cmdArgs...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("wpa_cli %v failed: %w: %s", args, err,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("wpa_cli %v failed: %w", args, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *CLI) Status(iface string) (Status, error) {
	out, err := c.run(iface, "status")
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(out), nil
}

func (c *CLI) Reconfigure(iface string) error {
	out, err := c.run(iface, "reconfigure")
	if err != nil {
		return err
	}
	c.log.V(1).Info("wpa_cli reconfigure", "interface", iface, "output", out)
	return nil
}

func (c *CLI) AllStations(iface string) ([]string, error) {
	out, err := c.run(iface, "all_sta")
	if err != nil {
		return nil, err
	}
	return parseStations(out), nil
}

// ParseStatus extracts the fields this daemon cares about from the
// key=value stdout of the status command.
func ParseStatus(out string) Status {
	var st Status
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "ssid":
			st.SSID = value
		case "wpa_state":
			st.WpaState = value
		case "mode":
			st.Mode = value
		case "ip_address":
			st.IP = value
		}
	}
	return st
}

// all_sta prints one block per station: the MAC on its own line followed
// by key=value attribute lines.
func parseStations(out string) []string {
	var macs []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "=") {
			continue
		}
		macs = append(macs, line)
	}
	return macs
}
