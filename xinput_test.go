package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleList = `⎡ Virtual core pointer                    	id=2	[master pointer  (3)]
⎜   ↳ Virtual core XTEST pointer              	id=4	[slave  pointer  (2)]
⎜   ↳ SynPS/2 Synaptics TouchPad              	id=11	[slave  pointer  (2)]
⎜   ↳ Logitech USB Optical Mouse              	id=12	[slave  pointer  (2)]
⎜   ↳ Razer Razer DeathAdder Mouse            	id=14	[slave  pointer  (2)]
⎣ Virtual core keyboard                   	id=3	[master keyboard (2)]
    ↳ Virtual core XTEST keyboard             	id=5	[slave  keyboard (3)]
    ↳ Power Button                            	id=6	[slave  keyboard (3)]
    ↳ AT Translated Set 2 keyboard            	id=13	[slave  keyboard (3)]
`

const sampleProps = `Device 'SynPS/2 Synaptics TouchPad':
	Device Enabled (143):	%s
	Coordinate Transformation Matrix (145):	1.000000, 0.000000, 0.000000, 0.000000, 1.000000, 0.000000, 0.000000, 0.000000, 1.000000
	libinput Tapping Enabled (296):	1
`

func props(value string) string {
	return strings.Replace(sampleProps, "%s", value, 1)
}

// fakeRunner answers Output calls from a table keyed by the joined arguments
// and records every Run call.
type fakeRunner struct {
	outputs   map[string]string
	outputErr error
	runErr    error
	outCalls  []string
	runCalls  [][]string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.outCalls = append(f.outCalls, name+" "+key)
	if f.outputErr != nil {
		return nil, f.outputErr
	}
	return []byte(f.outputs[key]), nil
}

func (f *fakeRunner) Run(_ context.Context, _, _ io.Writer, name string, args ...string) error {
	f.runCalls = append(f.runCalls, append([]string{name}, args...))
	return f.runErr
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestMatchDevices(t *testing.T) {
	tests := []struct {
		name     string
		listing  string
		fragment string
		want     []Device
	}{
		{
			name:     "single touchpad",
			listing:  sampleList,
			fragment: "touchpad",
			want:     []Device{{Name: "SynPS/2 Synaptics TouchPad", ID: 11}},
		},
		{
			name:     "case insensitive",
			listing:  sampleList,
			fragment: "SYNAPTICS",
			want:     []Device{{Name: "SynPS/2 Synaptics TouchPad", ID: 11}},
		},
		{
			name:     "fragment inside token",
			listing:  sampleList,
			fragment: "athAdd",
			want:     []Device{{Name: "Razer Razer DeathAdder Mouse", ID: 14}},
		},
		{
			name:     "fragment spanning tokens",
			listing:  sampleList,
			fragment: "power butt",
			want:     []Device{{Name: "Power Button", ID: 6}},
		},
		{
			name:     "two mice",
			listing:  sampleList,
			fragment: "mouse",
			want: []Device{
				{Name: "Logitech USB Optical Mouse", ID: 12},
				{Name: "Razer Razer DeathAdder Mouse", ID: 14},
			},
		},
		{
			name:     "single spaced listing",
			listing:  "⎣ Some Touchpad id=13 [slave pointer (2)]\n",
			fragment: "touchpad",
			want:     []Device{{Name: "Some Touchpad", ID: 13}},
		},
		{
			name:     "fields after id are not part of the name",
			listing:  sampleList,
			fragment: "slave",
			want:     nil,
		},
		{
			name:     "no match",
			listing:  sampleList,
			fragment: "trackpoint",
			want:     nil,
		},
		{
			name:     "line without id",
			listing:  "Some Touchpad\n",
			fragment: "touchpad",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchDevices(tt.listing, tt.fragment, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchDevices_EmptyFragmentMatchesEverything(t *testing.T) {
	got, err := matchDevices(sampleList, "", false)
	require.NoError(t, err)
	require.Len(t, got, 9)
	assert.Equal(t, Device{Name: "Virtual core pointer", ID: 2}, got[0])
	assert.Equal(t, Device{Name: "AT Translated Set 2 keyboard", ID: 13}, got[8])
}

func TestMatchDevices_Metacharacters(t *testing.T) {
	got, err := matchDevices(sampleList, "Synaptics.Touch", false)
	require.NoError(t, err)
	assert.Empty(t, got, "escaped dot must only match a literal dot")

	got, err = matchDevices(sampleList, "Synaptics.Touch", true)
	require.NoError(t, err)
	assert.Equal(t, []Device{{Name: "SynPS/2 Synaptics TouchPad", ID: 11}}, got)

	got, err = matchDevices(sampleList, "SynPS/2", false)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMatchDevices_LongLine(t *testing.T) {
	listing := strings.Repeat("x", 70000) + "\n⎣ Some Touchpad id=13 [x]\n"
	got, err := matchDevices(listing, "touchpad", false)
	require.NoError(t, err)
	assert.Equal(t, []Device{{Name: "Some Touchpad", ID: 13}}, got)
}

func TestMatchDevices_InvalidRawPattern(t *testing.T) {
	_, err := matchDevices(sampleList, "(", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid device pattern")

	_, err = matchDevices(sampleList, "(", false)
	require.NoError(t, err)
}

func TestParseEnabled(t *testing.T) {
	tests := []struct {
		value       string
		wantEnabled bool
	}{
		{"0", false},
		{"1", true},
		{"2", true},
		{"00", false},
		{"10", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			enabled, found := parseEnabled(props(tt.value))
			assert.True(t, found)
			assert.Equal(t, tt.wantEnabled, enabled)
		})
	}
}

func TestParseEnabled_Missing(t *testing.T) {
	enabled, found := parseEnabled("Device 'X':\n\tCoordinate Transformation Matrix (145):\t1.0\n")
	assert.False(t, found)
	assert.False(t, enabled)

	_, found = parseEnabled("\tDevice Enabled (143):\tyes\n")
	assert.False(t, found)
}

func TestXInput_DeviceEnabled(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"list-props 11": props("1")}}
	x := &xinput{bin: "xinput", run: r, logger: testLogger()}

	enabled, err := x.deviceEnabled(context.Background(), 11)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, []string{"xinput list-props 11"}, r.outCalls)

	// No output at all reads as disabled.
	enabled, err = x.deviceEnabled(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestXInput_LaunchFailure(t *testing.T) {
	r := &fakeRunner{outputErr: errors.New("executable file not found in $PATH")}
	x := &xinput{bin: "xinput", run: r, logger: testLogger()}

	_, err := x.listDevices(context.Background(), "pad", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xinput list")
}

func TestXInput_SetDeviceEnabled(t *testing.T) {
	r := &fakeRunner{}
	x := &xinput{bin: "/usr/bin/xinput", run: r, logger: testLogger()}

	var out bytes.Buffer
	require.NoError(t, x.setDeviceEnabled(context.Background(), &out, &out, 11, 0))
	assert.Equal(t, [][]string{{"/usr/bin/xinput", "set-prop", "11", "Device Enabled", "0"}}, r.runCalls)
	assert.Equal(t, `/usr/bin/xinput set-prop 11 "Device Enabled" 0`, x.setCommand(11, 0))

	r.runErr = errors.New("exit status 1")
	err := x.setDeviceEnabled(context.Background(), &out, &out, 11, 1)
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, "xinput command failed!", err.Error())
}
