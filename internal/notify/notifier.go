// Package notify surfaces non-fatal errors to the user.
package notify

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_notifier.go -package=mocks bookmarks-search/internal/notify Notifier

import (
	"context"
	"os/exec"
	"slices"
	"sync"
	"time"

	"bookmarks-search/internal/contextutil"
)

// Notifier reports an error to the user without blocking or failing the caller.
type Notifier interface {
	NotifyError(ctx context.Context, message, detail string)
}

// Notification is a reported error.
type Notification struct {
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// LogNotifier logs notifications and remembers the most recent ones.
type LogNotifier struct {
	mu     sync.Mutex
	recent []Notification
	limit  int
	now    func() time.Time
}

// NewLogNotifier creates a LogNotifier keeping at most limit notifications.
func NewLogNotifier(limit int) *LogNotifier {
	if limit <= 0 {
		limit = 20
	}
	return &LogNotifier{limit: limit, now: time.Now}
}

// NotifyError logs the error and records it.
func (n *LogNotifier) NotifyError(ctx context.Context, message, detail string) {
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, message, "detail", detail)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append(n.recent, Notification{Message: message, Detail: detail, At: n.now()})
	if len(n.recent) > n.limit {
		n.recent = slices.Delete(n.recent, 0, len(n.recent)-n.limit)
	}
}

// Recent returns recorded notifications, oldest first.
func (n *LogNotifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.recent)
}

// DesktopNotifier shows notifications through notify-send.
type DesktopNotifier struct {
	appName string
	run     func(ctx context.Context, name string, args ...string) error
}

// NewDesktopNotifier creates a DesktopNotifier labelled with appName.
func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{appName: appName, run: runCommand}
}

// NotifyError shows the message as a desktop notification. Failures are logged only.
func (n *DesktopNotifier) NotifyError(ctx context.Context, message, detail string) {
	args := []string{"--app-name", n.appName, "--urgency", "normal", message}
	if detail != "" {
		args = append(args, detail)
	}
	if err := n.run(ctx, "notify-send", args...); err != nil {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "desktop notification failed", "error", err)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

// NotifyError forwards to every notifier in order.
func (m Multi) NotifyError(ctx context.Context, message, detail string) {
	for _, n := range m {
		n.NotifyError(ctx, message, detail)
	}
}
