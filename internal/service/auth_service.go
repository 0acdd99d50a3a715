package service

import (
	"context"
	"errors"
	"log/slog"
	"os"

	config "github.com/SynchronoMedia/english-skills-101/configs"
	"github.com/SynchronoMedia/english-skills-101/internal/instagram"
	"github.com/SynchronoMedia/english-skills-101/internal/repository"
)

type AuthService interface {
	Obtain(ctx context.Context) (*instagram.Client, error)
}

type authService struct {
	cfg  config.Config
	sr   repository.SessionRepository
	opts []instagram.Option
}

func NewAuthService(cfg config.Config, sr repository.SessionRepository, opts ...instagram.Option) AuthService {
	return &authService{
		cfg:  cfg,
		sr:   sr,
		opts: opts,
	}
}

// Obtain returns an authenticated client, resuming the saved session when
// one exists and still works. Every session problem is swallowed here and
// answered with a fresh credential login; only the login itself is fatal.
func (s *authService) Obtain(ctx context.Context) (*instagram.Client, error) {
	client := instagram.New(s.cfg.InstagramUsername, s.cfg.InstagramPassword, s.opts...)

	session, err := s.sr.Load(s.cfg.SessionFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("no saved session, logging in with credentials")
	case err != nil:
		slog.Warn("ignoring unreadable session file", "error", err)
	case session.Username != s.cfg.InstagramUsername:
		slog.Warn("ignoring session saved for a different account",
			"session_username", session.Username)
	default:
		client.RestoreSession(session)
		if err := client.Relogin(ctx); err == nil {
			slog.Info("resumed saved session", "username", client.Username())
			return client, nil
		} else {
			slog.Warn("saved session rejected, falling back to credential login", "error", err)
		}
	}

	if err := client.Login(ctx); err != nil {
		return nil, err
	}
	slog.Info("logged in with credentials", "username", client.Username())

	// The login succeeded; a persist failure only costs the next run a
	// fresh login.
	if err := s.sr.Save(s.cfg.SessionFilePath, client.ExportSession()); err != nil {
		slog.Warn("could not persist session", "path", s.cfg.SessionFilePath, "error", err)
	}
	return client, nil
}
