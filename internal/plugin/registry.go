package plugin

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/edgard/platformbridge/internal/channel"
)

// Registry is a host's plugin table. Each plugin gets its own Registrar,
// all sharing the registry's messenger.
type Registry struct {
	messenger channel.BinaryMessenger
	entries   map[string]*registrar
}

// NewRegistry creates a registry on top of messenger.
func NewRegistry(messenger channel.BinaryMessenger) *Registry {
	return &Registry{
		messenger: messenger,
		entries:   make(map[string]*registrar),
	}
}

// Registrar returns a new registrar for the plugin identified by key.
// Panics if key was already handed out, as a plugin may only be
// registered once per host.
func (r *Registry) Registrar(key string) Registrar {
	if _, exists := r.entries[key]; exists {
		panic(fmt.Sprintf("plugin %q is already registered", key))
	}
	reg := &registrar{key: key, messenger: r.messenger}
	r.entries[key] = reg
	return reg
}

// Has reports whether a plugin with key was registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.entries[key]
	return ok
}

// Keys returns all registered plugin keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Channels returns the channel names bound by the plugin with key, sorted.
func (r *Registry) Channels(key string) []string {
	reg, ok := r.entries[key]
	if !ok {
		return nil
	}
	names := append([]string(nil), reg.channels...)
	sort.Strings(names)
	return names
}

// RegisterAll registers every plugin under its key. It is the host's
// explicit startup entry point; plugins never register themselves.
func RegisterAll(r *Registry, plugins map[string]Plugin) {
	keys := make([]string, 0, len(plugins))
	for k := range plugins {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		plugins[key].Register(r.Registrar(key))
		slog.Debug("plugin registered", "plugin", key, "channels", r.Channels(key))
	}
}

type registrar struct {
	key       string
	messenger channel.BinaryMessenger
	channels  []string
}

func (r *registrar) Messenger() channel.BinaryMessenger {
	return r.messenger
}

func (r *registrar) AddMethodCallDelegate(h channel.MethodCallHandler, ch *channel.MethodChannel) {
	ch.SetMethodCallHandler(channel.Chain(h,
		channel.Recovery,
		channel.Logging(ch.Name()),
	))
	r.channels = append(r.channels, ch.Name())
}
