// Package calendar is the platform side of the vertical scrolling calendar
// plugin. It answers every call on its channel with the platform version
// string, e.g. "iOS 17.0".
package calendar

import (
	"github.com/edgard/platformbridge/internal/channel"
	"github.com/edgard/platformbridge/internal/osinfo"
	"github.com/edgard/platformbridge/internal/plugin"
)

// ChannelName is the method channel name shared with the host side.
const ChannelName = "vertical_scrolling_calendar"

// PlatformVersion formats "<Family> <Version>" from p.
func PlatformVersion(p osinfo.Provider) string {
	return p.Family() + " " + p.Version()
}

// Plugin answers platform version calls. It holds no per-call state.
type Plugin struct {
	provider osinfo.Provider
}

// New creates a plugin that reads the OS version from provider.
func New(provider osinfo.Provider) *Plugin {
	if provider == nil {
		provider = osinfo.System()
	}
	return &Plugin{provider: provider}
}

// Register binds the plugin to ChannelName on the registrar's messenger.
func (p *Plugin) Register(r plugin.Registrar) {
	ch := channel.NewMethodChannel(ChannelName, r.Messenger(), channel.JSONMethodCodec{})
	r.AddMethodCallDelegate(p, ch)
}

// HandleMethodCall replies with the platform version. The method name and
// arguments are not inspected.
func (p *Plugin) HandleMethodCall(_ *channel.MethodCall, result channel.Result) {
	result.Success(PlatformVersion(p.provider))
}

// Register creates a plugin backed by the running OS and registers it.
// Host startup code calls this once per registrar.
func Register(r plugin.Registrar) {
	New(osinfo.System()).Register(r)
}
