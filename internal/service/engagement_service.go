package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/SynchronoMedia/english-skills-101/internal/instagram"
)

const (
	samplePostCount  = 10 // recent posts considered on the target account
	sampleLikerCount = 10 // likers harvested from the chosen post
	engageLikeCount  = 4  // posts liked per qualifying candidate
)

type EngagementService interface {
	SampleLikers(ctx context.Context, client *instagram.Client, targets []string) []string
	Engage(ctx context.Context, client *instagram.Client, usernames []string)
}

type engagementService struct {
	intn func(n int) int
}

func NewEngagementService() EngagementService {
	return &engagementService{intn: rand.Intn}
}

// SampleLikers picks one random target account, one random post among its
// recent ones, and returns up to 10 of that post's likers in API order.
// The sampler never fails the run: every error is logged and answered
// with an empty list, which skips the engagement pass.
func (s *engagementService) SampleLikers(ctx context.Context, client *instagram.Client, targets []string) []string {
	if len(targets) == 0 {
		slog.Info("no target accounts configured")
		return nil
	}
	target := targets[s.intn(len(targets))]

	userID, err := client.UserIDFromUsername(ctx, target)
	if err != nil {
		slog.Info("could not resolve target account", "username", target, "error", err)
		return nil
	}

	medias, err := client.UserMedias(ctx, userID, samplePostCount)
	if err != nil {
		slog.Info("could not fetch target posts", "username", target, "error", err)
		return nil
	}
	if len(medias) == 0 {
		slog.Info("target account has no posts", "username", target)
		return nil
	}

	media := medias[s.intn(len(medias))]
	likers, err := client.MediaLikers(ctx, media.ID)
	if err != nil {
		slog.Info("could not fetch likers", "media_id", media.ID, "error", err)
		return nil
	}

	usernames := make([]string, 0, sampleLikerCount)
	for _, liker := range likers {
		usernames = append(usernames, liker.Username)
		if len(usernames) == sampleLikerCount {
			break
		}
	}
	slog.Info("sampled likers", "target", target, "media_id", media.ID, "count", len(usernames))
	return usernames
}

// Engage likes up to 4 recent posts of each candidate, skipping private
// and low-activity accounts. One candidate's failure never stops the
// others.
func (s *engagementService) Engage(ctx context.Context, client *instagram.Client, usernames []string) {
	for _, username := range usernames {
		if err := s.engageUser(ctx, client, username); err != nil {
			slog.Info(err.Error())
		}
	}
}

func (s *engagementService) engageUser(ctx context.Context, client *instagram.Client, username string) error {
	info, err := client.UserInfoByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("error fetching candidate %s: %w", username, err)
	}
	if info.IsPrivate {
		slog.Info("skipping private account", "username", username)
		return nil
	}
	if info.MediaCount <= engageLikeCount {
		slog.Info("skipping low-activity account",
			"username", username, "media_count", info.MediaCount)
		return nil
	}

	medias, err := client.UserMedias(ctx, info.Pk, engageLikeCount)
	if err != nil {
		return fmt.Errorf("error fetching posts of %s: %w", username, err)
	}
	for _, media := range medias {
		// Liking an already-liked post is a server-side no-op.
		if err := client.MediaLike(ctx, media.ID); err != nil {
			return fmt.Errorf("error liking %s of %s: %w", media.ID, username, err)
		}
		slog.Info("liked post", "username", username, "media_id", media.ID)
	}
	return nil
}
