package monitor

import (
	"os"
	"sync"
	"testing"
	"time"

	"autoap/pkg/arbiter"
	"autoap/pkg/config"
	"autoap/pkg/debounce"
	"autoap/pkg/netmode"
	"autoap/pkg/wpa"

	"github.com/go-logr/logr/testr"
)

type fakeService struct{}

func (fakeService) Restart(unit string) error          { return nil }
func (fakeService) Start(unit string) error            { return nil }
func (fakeService) IsActive(unit string) (bool, error) { return true, nil }

type fakeSupplicant struct {
	mu           sync.Mutex
	reconfigures int
}

func (f *fakeSupplicant) Status(iface string) (wpa.Status, error) { return wpa.Status{}, nil }

func (f *fakeSupplicant) Reconfigure(iface string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconfigures++
	return nil
}

func (f *fakeSupplicant) AllStations(iface string) ([]string, error) { return nil, nil }

func newTestMonitor(t *testing.T) (*Monitor, *netmode.Switcher, *debounce.Coordinator) {
	t.Helper()
	log := testr.New(t)
	sup := &fakeSupplicant{}

	sw := netmode.NewSwitcher(fakeService{}, sup, log)
	sw.NetworkDir = t.TempDir()

	deb := debounce.New(sup, log)
	deb.Dir = t.TempDir()
	deb.Tick = 5 * time.Millisecond

	cfg := &config.Config{EnableWait: 1, DisconnectWait: 1}
	arb := arbiter.New(cfg, sup, sw, deb, log)

	return New("wlan0", arb, deb, sw, log), sw, deb
}

func TestResetRestoresClientModeAndClearsSentinels(t *testing.T) {
	m, sw, deb := newTestMonitor(t)

	// AP mode with a wait supposedly in flight
	if err := os.WriteFile(sw.BackupPath("wlan0"), []byte("[Match]\nName=wlan0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"autoAP.locked", "autoAP.unlock"} {
		if err := os.WriteFile(deb.Dir+"/"+name, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if sw.Mode("wlan0") != netmode.ModeClient {
		t.Errorf("Mode = %v, want client after reset", sw.Mode("wlan0"))
	}
	if f := deb.Flags(); f.Locked || f.Unlock {
		t.Errorf("sentinels left after reset: %+v", f)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	m, sw, _ := newTestMonitor(t)

	// nothing provisioned, nothing locked
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset on clean state failed: %v", err)
	}

	// already in client mode
	if err := os.WriteFile(sw.ActivePath("wlan0"), []byte("[Match]\nName=wlan0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset in client mode failed: %v", err)
	}
	if sw.Mode("wlan0") != netmode.ModeClient {
		t.Errorf("Mode = %v, want client", sw.Mode("wlan0"))
	}
}

func TestProcessEventResetCommand(t *testing.T) {
	m, sw, _ := newTestMonitor(t)
	if err := os.WriteFile(sw.BackupPath("wlan0"), []byte("[Match]\nName=wlan0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.ProcessEvent([]string{"autoap", "reset"}); err != nil {
		t.Fatalf("ProcessEvent(reset) failed: %v", err)
	}
	if sw.Mode("wlan0") != netmode.ModeClient {
		t.Errorf("Mode = %v, want client", sw.Mode("wlan0"))
	}
}

func TestProcessEventIgnoresForeignInterface(t *testing.T) {
	m, sw, _ := newTestMonitor(t)
	if err := os.WriteFile(sw.ActivePath("wlan0"), []byte("[Match]\nName=wlan0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// mismatches are dropped, not errored: the callback registration is
	// not filtered by interface upstream
	if err := m.ProcessEvent([]string{"autoap", "wlan1", "DISCONNECTED"}); err != nil {
		t.Fatalf("foreign-interface event errored: %v", err)
	}
	if sw.Mode("wlan0") != netmode.ModeClient {
		t.Errorf("foreign-interface event changed mode to %v", sw.Mode("wlan0"))
	}
}

func TestProcessEventRejectsMalformed(t *testing.T) {
	m, _, _ := newTestMonitor(t)

	if err := m.ProcessEvent([]string{"autoap", "wlan0", "NOT-A-STATE"}); err == nil {
		t.Error("unknown state token should error")
	}
	if err := m.ProcessEvent([]string{"autoap", "wlan0"}); err == nil {
		t.Error("missing state token should error")
	}
	if err := m.ProcessEvent([]string{"autoap", "start"}); err == nil {
		t.Error("start without interface should error")
	}
}

func TestProcessEventDispatchesToArbiter(t *testing.T) {
	m, sw, _ := newTestMonitor(t)
	if err := os.WriteFile(sw.ActivePath("wlan0"), []byte("[Match]\nName=wlan0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := m.ProcessEvent([]string{"autoap", "wlan0", "DISCONNECTED"}); err != nil {
		t.Fatalf("ProcessEvent failed: %v", err)
	}
	if sw.Mode("wlan0") != netmode.ModeAP {
		t.Errorf("Mode = %v, want AP after client disconnect", sw.Mode("wlan0"))
	}
}
