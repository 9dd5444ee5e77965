// Package desktop talks to the user's desktop: opening URLs and picking icons.
package desktop

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_launcher.go -package=mocks bookmarks-search/internal/desktop Launcher

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"bookmarks-search/internal/contextutil"
)

// Launcher opens a URI with the desktop's default handler.
type Launcher interface {
	Open(ctx context.Context, uri string) error
}

// CommandLauncher opens URIs by running an external command such as xdg-open.
type CommandLauncher struct {
	command string
	start   func(name string, args ...string) error
}

// NewCommandLauncher creates a launcher running command with the URI as its only argument.
func NewCommandLauncher(command string) *CommandLauncher {
	return &CommandLauncher{command: command, start: startDetached}
}

// Open starts the command and returns without waiting for it to exit.
func (l *CommandLauncher) Open(ctx context.Context, uri string) error {
	if err := l.start(l.command, uri); err != nil {
		return fmt.Errorf("failed to open %s with %s: %w", uri, l.command, err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "opened bookmark", "url", uri, "command", l.command)
	return nil
}

// startDetached starts the process and reaps it in the background.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// browser pairs an executable with the themed icon shown for its results.
type browser struct {
	executable string
	icon       string
}

var browsers = []browser{
	{executable: "google-chrome", icon: "google-chrome"},
	{executable: "google-chrome-stable", icon: "google-chrome"},
	{executable: "chromium", icon: "chromium"},
	{executable: "chromium-browser", icon: "chromium"},
}

// fallbackIcon is used when no known browser is installed.
const fallbackIcon = "chromium"

// BrowserIcons picks the icon name of the installed browser, preferring Google Chrome.
// The lookup runs once.
type BrowserIcons struct {
	lookPath func(file string) (string, error)
	once     sync.Once
	icon     string
}

// NewBrowserIcons creates a BrowserIcons that searches $PATH.
func NewBrowserIcons() *BrowserIcons {
	return &BrowserIcons{lookPath: exec.LookPath}
}

// IconName returns the themed icon name for bookmark results.
func (b *BrowserIcons) IconName() string {
	b.once.Do(func() {
		b.icon = fallbackIcon
		for _, br := range browsers {
			if _, err := b.lookPath(br.executable); err == nil {
				b.icon = br.icon
				return
			}
		}
	})
	return b.icon
}
