package notify

import (
	"context"
	"os/exec"
	"time"
)

// Desktop shows a transient notification on the user's desktop.
type Desktop interface {
	Notify(ctx context.Context, title, body string) error
}

// NotifySend shells out to notify-send when it is on PATH.
type NotifySend struct {
	path string
}

// NewNotifySend returns nil when notify-send is not installed.
func NewNotifySend() *NotifySend {
	p, err := exec.LookPath("notify-send")
	if err != nil {
		return nil
	}
	return &NotifySend{path: p}
}

func (n *NotifySend) Notify(ctx context.Context, title, body string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, n.path, "--app-name=upskill", title, body).Run()
}
