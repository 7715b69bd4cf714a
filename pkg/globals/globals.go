package globals

// Version is set at build time via -ldflags
var Version = "dev"

// Interface assumed when a command does not name one
var DefaultInterface = "wlan0"

// Runtime directory holding the debounce sentinel files
var RunDir = "/var/run"

// Debounce sentinel file names (created under RunDir)
const (
	LockedFile = "autoAP.locked"
	UnlockFile = "autoAP.unlock"
)

// wpa_supplicant per-interface control sockets
var WpaSocketDir = "/var/run/wpa_supplicant"

// systemd-networkd network descriptors; the per-interface client
// descriptor moves between 11-<iface>.network and its ~ backup
var NetworkDir = "/etc/systemd/network"

// Config
var ConfigPath = "/usr/local/bin/autoAP.conf"

// wpa_supplicant credentials, updated by the configure flow
var WpaSupplicantDir = "/etc/wpa_supplicant"

// Recent log lines, kept for the status command
var LogsPath = "/var/run/autoAP.logs.json"

// Network service restarted on every mode switch
const NetworkService = "systemd-networkd"

// Provisioning artifacts checked before acting as an action script
var SystemdUnitDir = "/etc/systemd/system"
