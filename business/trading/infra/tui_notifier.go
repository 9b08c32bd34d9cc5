package infra

import (
	"github.com/fd1az/trade-console/pkg/ui"
)

// TUINotifier surfaces decision outcomes as popups in the TUI.
type TUINotifier struct{}

// NewTUINotifier creates a TUINotifier.
func NewTUINotifier() *TUINotifier {
	return &TUINotifier{}
}

// Approved shows a success popup.
func (n *TUINotifier) Approved(msg string) {
	ui.Send(ui.NotificationMsg{Level: ui.NoticeSuccess, Message: msg})
}

// Rejected shows an informational popup.
func (n *TUINotifier) Rejected(msg string) {
	ui.Send(ui.NotificationMsg{Level: ui.NoticeInfo, Message: msg})
}

// Failed shows an error popup.
func (n *TUINotifier) Failed(msg string) {
	ui.Send(ui.NotificationMsg{Level: ui.NoticeError, Message: msg})
}
