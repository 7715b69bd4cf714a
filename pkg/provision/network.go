package provision

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	networkBlockRe = regexp.MustCompile(`(?s)network=\{[^}]*\}\n?`)
	ssidRe         = regexp.MustCompile(`ssid=['"]?([^'"\s}]+)['"]?`)
)

// UpdateNetwork rewrites the network block for ssid in the interface's
// credentials file, or appends one if no block matches. The web
// configurator funnels through this same primitive, so both writers keep
// the file in the one shape the supplicant accepts. The previous file is
// kept as a .bak alongside.
func (l Layout) UpdateNetwork(iface, ssid, psk string) error {
	path := l.SupplicantConf(iface)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read supplicant config: %w", err)
	}
	content := string(data)

	// quotes would terminate the quoted fields in the generated block
	ssid = strings.ReplaceAll(ssid, `"`, "")
	psk = strings.ReplaceAll(psk, `"`, "")

	block := networkBlock(ssid, psk)

	replaced := false
	updated := networkBlockRe.ReplaceAllStringFunc(content, func(match string) string {
		if !replaced && blockMatchesSSID(match, ssid) {
			replaced = true
			return block
		}
		return match
	})

	if !replaced {
		if !strings.HasSuffix(updated, "\n") {
			updated += "\n"
		}
		updated += "\n" + block
	}

	if err := backupFile(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(updated), 0600); err != nil {
		return fmt.Errorf("failed to write supplicant config: %w", err)
	}
	return nil
}

func blockMatchesSSID(block, ssid string) bool {
	m := ssidRe.FindStringSubmatch(block)
	return len(m) == 2 && m[1] == ssid
}

func networkBlock(ssid, psk string) string {
	if psk == "" {
		return fmt.Sprintf("network={\n    ssid=\"%s\"\n    key_mgmt=NONE\n}\n", ssid)
	}
	return fmt.Sprintf("network={\n    ssid=\"%s\"\n    psk=\"%s\"\n    key_mgmt=WPA-PSK\n}\n", ssid, psk)
}
