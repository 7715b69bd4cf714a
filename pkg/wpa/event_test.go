package wpa

import "testing"

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]string{"autoap", "wlan0", "AP-STA-CONNECTED", "aa:bb:cc:dd:ee:ff"})
	if err != nil {
		t.Fatalf("ParseEvent failed: %v", err)
	}
	if ev.Interface != "wlan0" || ev.State != ApStaConnected || ev.MAC != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("unexpected event: %+v", ev)
	}

	ev, err = ParseEvent([]string{"autoap", "wlan0", "DISCONNECTED"})
	if err != nil {
		t.Fatalf("ParseEvent without mac failed: %v", err)
	}
	if ev.MAC != "" {
		t.Errorf("expected empty MAC, got %q", ev.MAC)
	}
}

func TestParseEventRejectsMalformed(t *testing.T) {
	cases := [][]string{
		{"autoap"},
		{"autoap", "wlan0"},
		{"autoap", "wlan0", "CONNECTED-ISH"},
		{"autoap", "wlan0", "connected"}, // matching is case-sensitive
	}
	for _, args := range cases {
		if _, err := ParseEvent(args); err == nil {
			t.Errorf("ParseEvent(%v) succeeded, want error", args)
		}
	}
}

func TestParseStateExactMatch(t *testing.T) {
	for _, token := range []string{
		"AP-ENABLED", "AP-DISABLED", "CONNECTED",
		"AP-STA-CONNECTED", "AP-STA-DISCONNECTED", "DISCONNECTED",
	} {
		st, err := ParseState(token)
		if err != nil {
			t.Errorf("ParseState(%q) failed: %v", token, err)
		}
		if string(st) != token {
			t.Errorf("ParseState(%q) = %q", token, st)
		}
	}

	if _, err := ParseState("AP-ENABLED "); err == nil {
		t.Error("trailing whitespace should not match")
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Interface: "wlan0", State: ApStaConnected, MAC: "aa:bb:cc:dd:ee:ff"}
	if got := ev.String(); got != "wlan0 AP-STA-CONNECTED aa:bb:cc:dd:ee:ff" {
		t.Errorf("String() = %q", got)
	}

	ev = Event{Interface: "wlan0", State: Connected}
	if got := ev.String(); got != "wlan0 CONNECTED" {
		t.Errorf("String() = %q", got)
	}
}
