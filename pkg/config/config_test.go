package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autoAP.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.EnableWait != 300 || cfg.DisconnectWait != 20 || cfg.Debug {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadParsesInstalledFormat(t *testing.T) {
	cfg, err := load(writeConf(t, `#
# enablewait
#  In AP mode, number of seconds to wait before retrying regular WiFi connection
#
enablewait=120
disconnectwait=15
debug=0
`))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.EnableWait != 120 {
		t.Errorf("EnableWait = %d", cfg.EnableWait)
	}
	if cfg.DisconnectWait != 15 {
		t.Errorf("DisconnectWait = %d", cfg.DisconnectWait)
	}
	// 0 means debug on in the installed file format
	if !cfg.Debug {
		t.Error("Debug = false for debug=0")
	}
}

func TestLoadDebugOff(t *testing.T) {
	cfg, err := load(writeConf(t, "enablewait=300\ndisconnectwait=20\ndebug=1\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Debug {
		t.Error("Debug = true for debug=1")
	}
}

func TestLoadRejectsBadWaitValues(t *testing.T) {
	if _, err := load(writeConf(t, "enablewait=sometimes\n")); err == nil {
		t.Error("non-numeric enablewait should fail")
	}
	if _, err := load(writeConf(t, "enablewait=-5\n")); err == nil {
		t.Error("negative enablewait should fail")
	}
}
