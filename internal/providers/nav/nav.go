// Package nav implements the navigation effect provider by opening a maps
// search URL with the host OS opener.
package nav

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// runner lets tests stub the OS opener.
type runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

type Opener struct {
	runner runner
	logger *slog.Logger
}

func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{runner: execRunner{}, logger: logger}
}

// DestinationURL builds the maps search URL for a destination name.
func DestinationURL(location string) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(location)
}

// StartNavigation implements dispatch.NavigationProvider. It hands the maps
// URL to the platform opener; a destination the maps site cannot resolve is
// still a successful hand-off, mirroring how a mobile intent launch works.
func (o *Opener) StartNavigation(ctx context.Context, location string) (bool, error) {
	if location == "" {
		return false, nil
	}

	target := DestinationURL(location)
	name, args := openerCommand(target)

	if err := o.runner.Run(ctx, name, args...); err != nil {
		o.logger.Error("nav.open.failed", "location", location, "opener", name, "error", err)
		return false, fmt.Errorf("open maps: %w", err)
	}

	o.logger.Info("nav.open.ok", "location", location, "url", target)
	return true, nil
}

func openerCommand(target string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
