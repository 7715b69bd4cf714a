package netmode

import (
	"fmt"
	"os/exec"
	"strings"
)

// ServiceManager is the slice of systemctl needed to bounce the network
// service. Interface-shaped so tests can substitute a fake.
type ServiceManager interface {
	Restart(unit string) error
	Start(unit string) error
	IsActive(unit string) (bool, error)
}

// Systemctl drives services through the systemctl binary.
type Systemctl struct{}

func (Systemctl) Restart(unit string) error {
	return systemctl("restart", unit)
}

func (Systemctl) Start(unit string) error {
	return systemctl("start", unit)
}

func (Systemctl) IsActive(unit string) (bool, error) {
	out, err := exec.Command("systemctl", "is-active", unit).Output()
	// is-active exits non-zero for inactive units; that is an answer,
	// not a failure
	return err == nil && strings.TrimSpace(string(out)) == "active", nil
}

func systemctl(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %v failed: %w: %s", args, err,
			strings.TrimSpace(string(out)))
	}
	return nil
}
