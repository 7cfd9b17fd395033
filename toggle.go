package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// app carries out one invocation against a resolved Config.
type app struct {
	cfg         Config
	tool        *xinput
	newNotifier func() (Notifier, error)
	stdout      io.Writer
	stderr      io.Writer
	logger      *log.Logger
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format+"\n", args...)
}

func (a *app) verbosef(format string, args ...any) {
	if a.cfg.Verbose {
		a.printf(format, args...)
	}
}

func (a *app) run(ctx context.Context) error {
	devices, err := a.tool.listDevices(ctx, a.cfg.Name, a.cfg.RawPattern)
	if err != nil {
		return err
	}
	a.logger.Debug("matched devices", "fragment", a.cfg.Name, "count", len(devices))

	if len(devices) == 0 {
		return fmt.Errorf("%w for string %s!", ErrNoMatch, a.cfg.Name)
	}
	if a.cfg.Mode == ModeList {
		a.printf("Device list:\n%s", deviceList(devices))
		return nil
	}
	if len(devices) > 1 {
		return fmt.Errorf("%w.  Possible matches are:\n%s", ErrAmbiguous, deviceList(devices))
	}

	dev := devices[0]
	value, err := a.resolveValue(ctx, dev)
	if err != nil {
		return err
	}
	return a.apply(ctx, dev, value)
}

// resolveValue returns the "Device Enabled" value to write: the inverse of
// the current state when toggling, the requested one when setting.
func (a *app) resolveValue(ctx context.Context, dev Device) (int, error) {
	if a.cfg.Mode == ModeToggle {
		a.verbosef("Toggling %s", dev.Name)
		enabled, err := a.tool.deviceEnabled(ctx, dev.ID)
		if err != nil {
			return 0, err
		}
		if enabled {
			return 0, nil
		}
		return 1, nil
	}

	if a.cfg.Enable {
		a.verbosef("Enabling %s", dev.Name)
		return 1, nil
	}
	a.verbosef("Disabling %s", dev.Name)
	return 0, nil
}

func (a *app) apply(ctx context.Context, dev Device, value int) error {
	a.verbosef("> %s", a.tool.setCommand(dev.ID, value))
	if err := a.tool.setDeviceEnabled(ctx, a.stdout, a.stderr, dev.ID, value); err != nil {
		return err
	}

	summary := fmt.Sprintf("Device %s is now %s", dev, stateFor(value))
	a.verbosef("(Success)")
	a.verbosef("%s", summary)

	if a.cfg.Notify {
		a.notify(ctx, summary)
	}
	return nil
}

// notify is best effort; the device state has already changed.
func (a *app) notify(ctx context.Context, body string) {
	n, err := a.newNotifier()
	if err != nil {
		a.logger.Warn("desktop notification unavailable", "err", err)
		return
	}
	defer n.Close()
	if err := n.Notify(ctx, appName, body); err != nil {
		a.logger.Warn("desktop notification failed", "err", err)
	}
}

func deviceList(devices []Device) string {
	lines := make([]string, len(devices))
	for i, d := range devices {
		lines[i] = "\t" + d.Name
	}
	return strings.Join(lines, "\n")
}
