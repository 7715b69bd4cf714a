// Package wpa models wpa_supplicant state notifications and the narrow
// slice of wpa_cli used to query and command the supplicant.
package wpa

import (
	"fmt"
	"strings"
)

// State is a WiFi state change reported by wpa_supplicant.
type State string

const (
	// Access Point has been enabled
	ApEnabled State = "AP-ENABLED"
	// Access Point has been disabled
	ApDisabled State = "AP-DISABLED"
	// Connected to a WiFi network (station mode)
	Connected State = "CONNECTED"
	// A station connected to our Access Point
	ApStaConnected State = "AP-STA-CONNECTED"
	// A station disconnected from our Access Point
	ApStaDisconnected State = "AP-STA-DISCONNECTED"
	// Disconnected from WiFi network
	Disconnected State = "DISCONNECTED"
)

// ParseState matches a wire token against the known states. Matching is
// exact and case-sensitive: an unknown token is an error, never coerced to
// some default, because acting on a misread state is worse than dropping
// the event.
func ParseState(s string) (State, error) {
	switch State(s) {
	case ApEnabled, ApDisabled, Connected, ApStaConnected, ApStaDisconnected, Disconnected:
		return State(s), nil
	}
	return "", fmt.Errorf("unrecognized WiFi state: %q", s)
}

// Event is a single wpa_supplicant notification.
type Event struct {
	// The network interface this event occurred on
	Interface string
	// The type of state change
	State State
	// MAC address of the station, present on AP-STA-* events
	MAC string
}

// ParseEvent builds an Event from an action-script invocation,
// argv = [binary, interface, state, mac?].
func ParseEvent(args []string) (Event, error) {
	if len(args) < 3 {
		return Event{}, fmt.Errorf("insufficient arguments, expected <interface> <state> [mac], got %v", args[1:])
	}

	state, err := ParseState(args[2])
	if err != nil {
		return Event{}, err
	}

	ev := Event{Interface: args[1], State: state}
	if len(args) > 3 {
		ev.MAC = args[3]
	}
	return ev, nil
}

func (e Event) String() string {
	parts := []string{e.Interface, string(e.State)}
	if e.MAC != "" {
		parts = append(parts, e.MAC)
	}
	return strings.Join(parts, " ")
}
