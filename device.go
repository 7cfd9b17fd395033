package main

import "strconv"

// DeviceState is the enabled state of an input device as reported to the user.
type DeviceState string

const (
	StateOn  DeviceState = "ON"
	StateOff DeviceState = "OFF"
)

// stateFor maps a "Device Enabled" property value to a DeviceState.
func stateFor(value int) DeviceState {
	if value == 0 {
		return StateOff
	}
	return StateOn
}

// Device is one entry from the device listing.
type Device struct {
	Name string
	ID   int
}

func (d Device) String() string {
	return d.Name + " (id=" + strconv.Itoa(d.ID) + ")"
}
