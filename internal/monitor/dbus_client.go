package monitor

import (
	"github.com/godbus/dbus/v5"
)

// DBusClient is the slice of a bus connection the monitor needs.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/amplayer/internal/monitor DBusClient
type DBusClient interface {
	Close() error
	AddMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)

	// ListNames returns every name currently on the bus.
	ListNames() ([]string, error)
	// GetNameOwner resolves a well-known name to its unique owner.
	GetNameOwner(name string) (string, error)
	// GetProperty reads prop from the object at path owned by dest.
	GetProperty(dest, path, prop string) (dbus.Variant, error)
}

var _ DBusClient = sessionBus{}

// sessionBus adapts a godbus connection. Close, AddMatchSignal and Signal
// come from the embedded *dbus.Conn.
type sessionBus struct {
	*dbus.Conn
}

func dialSessionBus() (DBusClient, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return sessionBus{conn}, nil
}

func (b sessionBus) ListNames() ([]string, error) {
	var names []string
	err := b.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

func (b sessionBus) GetNameOwner(name string) (string, error) {
	var owner string
	err := b.BusObject().Call("org.freedesktop.DBus.GetNameOwner", 0, name).Store(&owner)
	return owner, err
}

func (b sessionBus) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	return b.Object(dest, dbus.ObjectPath(path)).GetProperty(prop)
}
