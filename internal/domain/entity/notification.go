package entity

// NotificationKind categorizes user-facing notifications.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
	NotifyWarning
	NotifyInfo
)

// String implements fmt.Stringer.
func (k NotificationKind) String() string {
	switch k {
	case NotifySuccess:
		return "success"
	case NotifyError:
		return "error"
	case NotifyWarning:
		return "warning"
	case NotifyInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification is one dismissible, auto-expiring user-facing message.
// The network-switch guard is deliberately not represented here: it is the one
// failure surface that must stay visible until resolved.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Message     string           `json:"message"`
	Dismissible bool             `json:"dismissible"`
}
