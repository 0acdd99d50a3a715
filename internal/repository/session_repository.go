package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/SynchronoMedia/english-skills-101/internal/models"
)

type SessionRepository interface {
	Load(path string) (*models.Session, error)
	Save(path string, session *models.Session) error
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

// Load reads a persisted session. A missing file surfaces as
// os.ErrNotExist so callers can tell "first run" from a broken file.
func (r *sessionRepository) Load(path string) (*models.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error parsing session %s: %w", path, err)
	}
	return &session, nil
}

// Save writes the session, replacing any previous one. The file carries an
// API token, hence the owner-only mode.
func (r *sessionRepository) Save(path string, session *models.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("error writing session %s: %w", path, err)
	}
	return nil
}
