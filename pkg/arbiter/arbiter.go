// Package arbiter decides, per supplicant notification, whether the
// interface should flip between AP and client mode. It keeps no state of
// its own between events: the mode flag on disk and the debounce sentinels
// are the only memory, because each notification may arrive in a fresh
// process.
package arbiter

import (
	"fmt"

	"autoap/pkg/config"
	"autoap/pkg/debounce"
	"autoap/pkg/netmode"
	"autoap/pkg/wpa"

	"github.com/go-logr/logr"
)

type Arbiter struct {
	cfg *config.Config
	sup wpa.Supplicant
	sw  *netmode.Switcher
	deb *debounce.Coordinator
	log logr.Logger

	// swappable in tests to simulate link-local-only addressing
	hasAddr func(iface string) (bool, error)
}

func New(cfg *config.Config, sup wpa.Supplicant, sw *netmode.Switcher, deb *debounce.Coordinator, log logr.Logger) *Arbiter {
	return &Arbiter{
		cfg:     cfg,
		sup:     sup,
		sw:      sw,
		deb:     deb,
		log:     log,
		hasAddr: netmode.HasRoutableAddr,
	}
}

// HandleEvent runs the transition for a single event. Debounce waits run
// on the calling goroutine: the action-script process stays alive until
// its wait finishes or a later event cancels it through the unlock
// sentinel, so no work depends on a detached goroutine surviving process
// exit.
func (a *Arbiter) HandleEvent(ev wpa.Event) error {
	a.logFlags()

	switch ev.State {
	case wpa.ApEnabled:
		a.log.Info("access point enabled", "interface", ev.Interface)
		if err := a.sw.ToAP(ev.Interface); err != nil {
			return fmt.Errorf("failed to switch to AP mode: %w", err)
		}
		return a.deb.Wait(ev.Interface, a.cfg.EnableWait)

	case wpa.ApDisabled:
		a.log.Info("access point disabled", "interface", ev.Interface)

	case wpa.Connected:
		// The same CONNECTED notification also fires while still
		// broadcasting in AP mode; switching on it blindly flips the
		// mode flag the wrong way.
		joined, err := a.verifiedClientJoin(ev.Interface)
		if err != nil {
			a.log.Error(err, "could not verify client connection, ignoring CONNECTED", "interface", ev.Interface)
			return nil
		}
		if !joined {
			a.log.Info("CONNECTED without a verified client join, ignoring", "interface", ev.Interface)
			return nil
		}
		a.log.Info("connected in station mode", "interface", ev.Interface)
		if err := a.sw.ToClient(ev.Interface); err != nil {
			return fmt.Errorf("failed to switch to client mode: %w", err)
		}

	case wpa.ApStaConnected:
		a.log.Info("station connected to access point", "interface", ev.Interface, "mac", ev.MAC)
		if err := a.deb.Cancel(); err != nil {
			a.log.Error(err, "failed to cancel reconfigure wait")
		}

	case wpa.ApStaDisconnected:
		a.log.Info("station disconnected from access point", "interface", ev.Interface, "mac", ev.MAC)
		return a.deb.Wait(ev.Interface, a.cfg.DisconnectWait)

	case wpa.Disconnected:
		a.log.Info("disconnected from network", "interface", ev.Interface)
		if a.sw.Mode(ev.Interface) == netmode.ModeClient {
			if err := a.sw.ToAP(ev.Interface); err != nil {
				return fmt.Errorf("failed to switch to AP mode: %w", err)
			}
		}
	}

	return nil
}

// verifiedClientJoin requires every indicator of a real station-mode join:
// a reported SSID, completed authentication, an address that is not
// link-local, and no AP-mode markers in status.
func (a *Arbiter) verifiedClientJoin(iface string) (bool, error) {
	st, err := a.sup.Status(iface)
	if err != nil {
		return false, err
	}

	if st.SSID == "" || !st.Completed() || st.InApMode() {
		a.log.V(1).Info("status does not indicate a client join",
			"interface", iface, "ssid", st.SSID, "wpa_state", st.WpaState, "mode", st.Mode)
		return false, nil
	}

	hasAddr, err := a.hasAddr(iface)
	if err != nil {
		return false, err
	}
	if !hasAddr {
		a.log.V(1).Info("no routable address bound", "interface", iface)
	}
	return hasAddr, nil
}

func (a *Arbiter) logFlags() {
	if !a.cfg.Debug {
		return
	}
	f := a.deb.Flags()
	a.log.V(1).Info("debounce flags",
		"locked", f.Locked, "lockedAt", f.LockedAt,
		"unlock", f.Unlock, "unlockAt", f.UnlockAt)
}
