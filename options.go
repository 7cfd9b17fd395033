package main

import "fmt"

// Mode selects what the program does with the matched device.
type Mode int

const (
	ModeToggle Mode = iota
	ModeSet
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeToggle:
		return "toggle"
	case ModeSet:
		return "set"
	case ModeList:
		return "list"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Flags are the raw command-line values before they are merged with Settings.
// Pointer fields are nil unless the flag was given explicitly.
type Flags struct {
	Verbose    *bool
	List       bool
	Set        *int
	Notify     *bool
	RawPattern *bool
	XInput     string
}

func flagOr(flag *bool, setting bool) bool {
	if flag != nil {
		return *flag
	}
	return setting
}

// Config is the resolved, read-only configuration for one invocation.
type Config struct {
	Verbose bool
	Mode    Mode
	// Enable is the requested state in ModeSet.
	Enable     bool
	Name       string
	Notify     bool
	RawPattern bool
	XInput     string
}

// ParseConfig merges command-line flags, positional arguments and file
// settings into a Config. Flags win over settings.
func ParseConfig(f Flags, args []string, s Settings) (Config, error) {
	if len(args) > 1 {
		return Config{}, fmt.Errorf("%w: expected at most one DeviceString, got %d", ErrUsage, len(args))
	}

	cfg := Config{
		Verbose:    flagOr(f.Verbose, s.Verbose),
		Mode:       ModeToggle,
		Enable:     true,
		Notify:     flagOr(f.Notify, s.Notify),
		RawPattern: flagOr(f.RawPattern, s.RawPattern),
		XInput:     f.XInput,
	}
	if cfg.XInput == "" {
		cfg.XInput = s.XInput
	}
	if cfg.XInput == "" {
		cfg.XInput = defaultXInput
	}

	if f.Set != nil {
		cfg.Mode = ModeSet
		cfg.Enable = *f.Set != 0
	}
	// Listing never changes state, so it wins over -s.
	if f.List {
		cfg.Mode = ModeList
	}

	switch {
	case len(args) == 1:
		cfg.Name = s.resolveAlias(args[0])
	case cfg.Mode == ModeList:
		cfg.Name = ""
	default:
		return Config{}, fmt.Errorf("%w: missing DeviceString", ErrUsage)
	}
	return cfg, nil
}
