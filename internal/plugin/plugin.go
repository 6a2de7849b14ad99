// Package plugin defines the contract between a host and its platform
// plugins.
package plugin

import "github.com/edgard/platformbridge/internal/channel"

// Registrar is the capability a host hands to a plugin at load time.
type Registrar interface {
	// Messenger returns the messenger the plugin's channels should use.
	Messenger() channel.BinaryMessenger

	// AddMethodCallDelegate makes h the sole handler of ch.
	AddMethodCallDelegate(h channel.MethodCallHandler, ch *channel.MethodChannel)
}

// Plugin is implemented by platform plugins.
type Plugin interface {
	// Register binds the plugin's channels using r. Called once per host.
	Register(r Registrar)
}
