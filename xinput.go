package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const enabledProp = "Device Enabled"

// Runner executes external commands.
type Runner interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command with the given output streams attached.
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// xinput wraps the xinput binary.
type xinput struct {
	bin    string
	run    Runner
	logger *log.Logger
}

// output runs an xinput subcommand. A non-zero exit still yields whatever
// was written to stdout; only a failure to start is an error.
func (x *xinput) output(ctx context.Context, args ...string) (string, error) {
	x.logger.Debug("exec", "cmd", x.bin, "args", args)
	out, err := x.run.Output(ctx, x.bin, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("%s %s: %w", x.bin, args[0], err)
		}
		x.logger.Warn("command exited non-zero", "cmd", x.bin, "args", args, "err", err)
	}
	return string(out), nil
}

// listDevices returns the devices whose names contain fragment.
func (x *xinput) listDevices(ctx context.Context, fragment string, raw bool) ([]Device, error) {
	out, err := x.output(ctx, "list")
	if err != nil {
		return nil, err
	}
	return matchDevices(out, fragment, raw)
}

// deviceEnabled reports whether the device's "Device Enabled" property is
// nonzero. A missing property line reads as disabled.
func (x *xinput) deviceEnabled(ctx context.Context, id int) (bool, error) {
	out, err := x.output(ctx, "list-props", strconv.Itoa(id))
	if err != nil {
		return false, err
	}
	enabled, found := parseEnabled(out)
	if !found {
		x.logger.Warn("no property in output, assuming disabled", "prop", enabledProp, "id", id)
	}
	return enabled, nil
}

// setCommand renders the property-set invocation the way a shell user would type it.
func (x *xinput) setCommand(id, value int) string {
	return fmt.Sprintf("%s set-prop %d %q %d", x.bin, id, enabledProp, value)
}

func (x *xinput) setDeviceEnabled(ctx context.Context, stdout, stderr io.Writer, id, value int) error {
	args := []string{"set-prop", strconv.Itoa(id), enabledProp, strconv.Itoa(value)}
	x.logger.Debug("exec", "cmd", x.bin, "args", args)
	if err := x.run.Run(ctx, stdout, stderr, x.bin, args...); err != nil {
		x.logger.Warn("set-prop failed", "id", id, "err", err)
		return ErrCommandFailed
	}
	return nil
}

// devicePattern builds the listing pattern for fragment. The first group is
// the device name without tree decoration, the second its id.
func devicePattern(fragment string, raw bool) (*regexp.Regexp, error) {
	if !raw {
		fragment = regexp.QuoteMeta(fragment)
	}
	re, err := regexp.Compile(`(?i)^[\s\W]*((?:\S+\s)*?\S*` + fragment + `\S*(?:\s\S+)*)\s+id=(\d+)`)
	if err != nil {
		return nil, fmt.Errorf("invalid device pattern %q: %w", fragment, err)
	}
	return re, nil
}

// matchDevices scans an `xinput list` listing line by line. Lines have no length limit.
func matchDevices(listing, fragment string, raw bool) ([]Device, error) {
	re, err := devicePattern(fragment, raw)
	if err != nil {
		return nil, err
	}

	var devices []Device
	for _, line := range strings.Split(listing, "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("device id %q: %w", m[2], err)
		}
		devices = append(devices, Device{Name: m[1], ID: id})
	}
	return devices, nil
}

var enabledRe = regexp.MustCompile(`(?m)` + enabledProp + `[^:]*:\s*(\d+)$`)

// parseEnabled extracts the "Device Enabled" value from `xinput list-props`
// output. Any nonzero value counts as enabled.
func parseEnabled(props string) (enabled, found bool) {
	m := enabledRe.FindStringSubmatch(props)
	if m == nil {
		return false, false
	}
	return strings.Trim(m[1], "0") != "", true
}
