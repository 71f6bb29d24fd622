package notify

import "github.com/ncruces/zenity"

// Desktop mirrors n as an operating-system notification.
func Desktop(n Notification) error {
	icon := zenity.InfoIcon
	if n.Severity == Error {
		icon = zenity.ErrorIcon
	}
	return zenity.Notify(n.Message, zenity.Title("NeuroForge"), icon)
}
