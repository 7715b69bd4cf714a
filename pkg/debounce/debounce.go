// Package debounce delays the retry of the client network while an AP
// session may be in progress. Successive supplicant notifications arrive
// in separate processes with no shared memory, so the wait/cancel protocol
// lives entirely in two sentinel files: `locked` marks a wait in progress,
// `unlock` is a single-shot cancellation signal consumed by the waiter.
package debounce

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autoap/pkg/globals"
	"autoap/pkg/wpa"

	"github.com/go-logr/logr"
)

// Coordinator runs at most one reconfigure-wait at a time, system-wide,
// keyed by the sentinel files under Dir.
type Coordinator struct {
	Dir string
	// one poll iteration; a second in production, shortened in tests
	Tick time.Duration

	sup wpa.Supplicant
	log logr.Logger
}

func New(sup wpa.Supplicant, log logr.Logger) *Coordinator {
	return &Coordinator{
		Dir:  globals.RunDir,
		Tick: time.Second,
		sup:  sup,
		log:  log,
	}
}

func (c *Coordinator) lockedPath() string {
	return filepath.Join(c.Dir, globals.LockedFile)
}

func (c *Coordinator) unlockPath() string {
	return filepath.Join(c.Dir, globals.UnlockFile)
}

// Wait blocks for up to seconds poll iterations, then asks the supplicant
// to reconfigure if no station is attached to the AP. If another wait is
// already in progress, that wait is signalled to stop and this one is
// dropped, not queued. Cancellation is checked once per tick: the sentinel
// check is advisory (no exclusive lock exists across processes), and the
// benign race between check and create only shifts the reconfigure attempt
// by at most one tick in either direction.
func (c *Coordinator) Wait(iface string, seconds int) error {
	if fileExists(c.lockedPath()) {
		c.log.Info("reconfigure wait already locked, unlocking it")
		if err := touch(c.unlockPath()); err != nil {
			return fmt.Errorf("failed to create unlock file: %w", err)
		}
		return nil
	}

	if err := touch(c.lockedPath()); err != nil {
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	os.Remove(c.unlockPath())

	c.log.Info("starting reconfigure wait", "interface", iface, "seconds", seconds)

	for i := 0; i < seconds; i++ {
		time.Sleep(c.Tick)

		if fileExists(c.unlockPath()) {
			c.log.Info("reconfigure wait cancelled", "interface", iface)
			os.Remove(c.unlockPath())
			os.Remove(c.lockedPath())
			return nil
		}
	}

	os.Remove(c.unlockPath())
	os.Remove(c.lockedPath())

	c.log.Info("reconfigure wait expired, checking stations", "interface", iface)

	stations, err := c.sup.AllStations(iface)
	if err != nil {
		c.log.Error(err, "failed to list AP stations", "interface", iface)
	}
	if len(stations) > 0 {
		c.log.Info("stations still attached, keeping AP mode", "interface", iface, "stations", len(stations))
		return nil
	}

	c.log.Info("no stations attached, reconfiguring supplicant", "interface", iface)
	if err := c.sup.Reconfigure(iface); err != nil {
		c.log.Error(err, "supplicant reconfigure failed", "interface", iface)
	}
	return nil
}

// Cancel signals any in-flight wait to stop by touching the unlock
// sentinel. Safe when no wait is running: Wait removes a stale unlock
// before polling.
func (c *Coordinator) Cancel() error {
	if err := touch(c.unlockPath()); err != nil {
		return fmt.Errorf("failed to create unlock file: %w", err)
	}
	return nil
}

// Clear removes both sentinel files if present.
func (c *Coordinator) Clear() error {
	for _, path := range []string{c.lockedPath(), c.unlockPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// Flags reports the sentinel state for debug logging and status output.
type Flags struct {
	Locked   bool
	LockedAt time.Time
	Unlock   bool
	UnlockAt time.Time
}

func (c *Coordinator) Flags() Flags {
	var f Flags
	if info, err := os.Stat(c.lockedPath()); err == nil {
		f.Locked = true
		f.LockedAt = info.ModTime()
	}
	if info, err := os.Stat(c.unlockPath()); err == nil {
		f.Unlock = true
		f.UnlockAt = info.ModTime()
	}
	return f
}

func touch(path string) error {
	return os.WriteFile(path, nil, 0644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
