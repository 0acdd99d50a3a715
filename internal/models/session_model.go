package models

import "time"

// Session is the serialized login state of the Instagram client. A later
// run restores it to skip the credential login; a session whose username
// differs from the configured account is ignored.
type Session struct {
	Username      string    `json:"username"`
	UserID        int64     `json:"user_id"`
	AndroidID     string    `json:"android_id"`
	PhoneID       string    `json:"phone_id"`
	GUID          string    `json:"guid"`
	AdvertisingID string    `json:"advertising_id"`
	UserAgent     string    `json:"user_agent"`
	Authorization string    `json:"authorization"`
	SavedAt       time.Time `json:"saved_at"`
}
