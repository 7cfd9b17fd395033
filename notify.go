package main

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyBusName = "org.freedesktop.Notifications"
	notifyPath    = "/org/freedesktop/Notifications"
	notifyMethod  = "org.freedesktop.Notifications.Notify"

	notifyIcon    = "input-touchpad"
	notifyTimeout = int32(3000) // ms
)

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, summary, body string) error
	Close() error
}

// desktopNotifier talks to the notification daemon on the session bus.
type desktopNotifier struct {
	conn *dbus.Conn
}

func newDesktopNotifier() (Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &desktopNotifier{conn: conn}, nil
}

func (n *desktopNotifier) Close() error {
	return n.conn.Close()
}

func (n *desktopNotifier) Notify(ctx context.Context, summary, body string) error {
	obj := n.conn.Object(notifyBusName, notifyPath)
	var id uint32
	err := obj.CallWithContext(ctx, notifyMethod, 0,
		appName,
		uint32(0), // replaces_id
		notifyIcon,
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		notifyTimeout,
	).Store(&id)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
