// PlatformBridge hosts the vertical scrolling calendar platform plugin.
//
// The plugin answers calls on the "vertical_scrolling_calendar" method
// channel with the platform version string (e.g., "iOS 17.0").
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/edgard/platformbridge/internal/calendar"
	"github.com/edgard/platformbridge/internal/channel"
	"github.com/edgard/platformbridge/internal/config"
	"github.com/edgard/platformbridge/internal/host"
	"github.com/edgard/platformbridge/internal/logging"
	"github.com/edgard/platformbridge/internal/osinfo"
	"github.com/edgard/platformbridge/internal/plugin"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Method used by the call command when none is given.
const defaultMethod = "getPlatformVersion"

const usage = `PlatformBridge - vertical scrolling calendar platform plugin host

Usage:
  platformbridge [command]

Commands:
  serve                 Serve channel frames on stdin/stdout (default)
  call [method] [args]  Invoke the plugin in-process and print the result
  info                  Show platform and channel information
  version               Show version information
  help                  Show this help message

Environment Variables:
  PLATFORMBRIDGE_LOG_LEVEL    Log level: debug, info, warn, error (default: info)
  PLATFORMBRIDGE_LOG_FORMAT   Log format: auto, text, json (default: auto)
  PLATFORMBRIDGE_OS_FAMILY    Override the reported platform family (needs OS_VERSION)
  PLATFORMBRIDGE_OS_VERSION   Override the reported OS version (needs OS_FAMILY)
`

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if len(os.Args) < 2 {
		cmdServe(cfg)
		return
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(cfg)
	case "call":
		cmdCall(cfg, os.Args[2:])
	case "info":
		cmdInfo(cfg)
	case "version", "-v", "--version":
		fmt.Printf("platformbridge %s (commit: %s, built: %s)\n", version, commit, date)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		fmt.Print(usage)
		os.Exit(1)
	}
}

// startHost builds the messenger and registers every plugin on it.
func startHost(cfg *config.Config) (*channel.Messenger, *plugin.Registry) {
	messenger := channel.NewMessenger()
	registry := plugin.NewRegistry(messenger)
	plugin.RegisterAll(registry, map[string]plugin.Plugin{
		calendar.ChannelName: calendar.New(cfg.OSProvider()),
	})
	return messenger, registry
}

func cmdServe(cfg *config.Config) {
	messenger, registry := startHost(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("platformbridge serving on stdio", "plugins", registry.Keys())

	err := host.Serve(ctx, os.Stdin, os.Stdout, messenger)
	switch {
	case err == nil:
		slog.Info("input closed, stopping")
	case errors.Is(err, context.Canceled):
		slog.Info("received signal, stopping")
	default:
		fmt.Fprintf(os.Stderr, "Serve error: %v\n", err)
		os.Exit(1)
	}
}

func cmdCall(cfg *config.Config, args []string) {
	method := defaultMethod
	if len(args) > 0 {
		method = args[0]
	}

	var callArgs any
	if len(args) > 1 {
		raw := json.RawMessage(args[1])
		if !json.Valid(raw) {
			fmt.Fprintf(os.Stderr, "Arguments must be valid JSON: %s\n", args[1])
			os.Exit(1)
		}
		callArgs = raw
	}

	messenger, _ := startHost(cfg)
	ch := channel.NewMethodChannel(calendar.ChannelName, messenger, channel.JSONMethodCodec{})

	raw, err := ch.InvokeMethod(context.Background(), method, callArgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Call failed: %v\n", err)
		os.Exit(1)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(s)
}

func cmdInfo(cfg *config.Config) {
	p := cfg.OSProvider()

	fmt.Printf("Platform: %s\n", calendar.PlatformVersion(p))
	fmt.Printf("Family: %s\n", p.Family())
	fmt.Printf("Version: %s\n", p.Version())
	fmt.Printf("Architecture: %s\n", osinfo.Architecture())
	fmt.Printf("Channel: %s\n", calendar.ChannelName)
	if _, ok := p.(osinfo.Static); ok {
		fmt.Println("Source: environment override")
	} else {
		fmt.Println("Source: operating system")
	}
}
