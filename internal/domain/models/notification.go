package models

// NotificationLevel classifies user-facing notices.
type NotificationLevel string

const (
	NoticeSuccess NotificationLevel = "success"
	NoticeError   NotificationLevel = "error"
)

// Notification is the transient user-facing notice that accompanies every
// export, import and destructive action. It travels inline in API responses
// and, when a webhook is configured, is also pushed to it.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
}

// Success builds a success notice.
func Success(title, message string) Notification {
	return Notification{Level: NoticeSuccess, Title: title, Message: message}
}

// Failure builds an error notice.
func Failure(title, message string) Notification {
	return Notification{Level: NoticeError, Title: title, Message: message}
}
