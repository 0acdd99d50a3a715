package instagram

import (
	"time"

	"github.com/SynchronoMedia/english-skills-101/internal/models"
)

// ExportSession snapshots everything a later run needs to resume this
// login without touching the credentials again.
func (c *Client) ExportSession() *models.Session {
	return &models.Session{
		Username:      c.username,
		UserID:        c.userID,
		AndroidID:     c.device.AndroidID,
		PhoneID:       c.device.PhoneID,
		GUID:          c.device.GUID,
		AdvertisingID: c.device.AdvertisingID,
		UserAgent:     c.userAgent,
		Authorization: c.authorization,
		SavedAt:       time.Now().UTC(),
	}
}

// RestoreSession adopts a previously exported session, device identity
// included, so the API sees the same handset it issued the token to.
func (c *Client) RestoreSession(s *models.Session) {
	if s == nil {
		return
	}
	c.userID = s.UserID
	c.authorization = s.Authorization
	if s.AndroidID != "" {
		c.device.AndroidID = s.AndroidID
	}
	if s.PhoneID != "" {
		c.device.PhoneID = s.PhoneID
	}
	if s.GUID != "" {
		c.device.GUID = s.GUID
	}
	if s.AdvertisingID != "" {
		c.device.AdvertisingID = s.AdvertisingID
	}
	if s.UserAgent != "" {
		c.userAgent = s.UserAgent
	}
}
