package models

// Preferences holds reminder settings. Not part of the backup set.
type Preferences struct {
	Sounds           bool   `json:"sounds"`
	Notifications    bool   `json:"notifications"`
	NotificationTime string `json:"notificationTime"` // HH:MM
}
