package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/SynchronoMedia/english-skills-101/internal/instagram"
)

type PublishService interface {
	PublishVideoAndStory(ctx context.Context, client *instagram.Client, path, caption string) error
}

type publishService struct{}

func NewPublishService() PublishService {
	return &publishService{}
}

// PublishVideoAndStory uploads the file as a feed post with the caption,
// then again as a captionless story. The uploads are sequential and
// independent; a story failure after a successful post leaves the post up.
func (s *publishService) PublishVideoAndStory(ctx context.Context, client *instagram.Client, path, caption string) error {
	if err := validateVideo(path); err != nil {
		return err
	}

	post, err := client.UploadVideo(ctx, path, caption)
	if err != nil {
		return err
	}
	slog.Info("published feed post", "media_id", post.ID, "code", post.Code)

	story, err := client.UploadStoryVideo(ctx, path)
	if err != nil {
		return err
	}
	slog.Info("published story", "media_id", story.ID)
	return nil
}

// validateVideo sniffs the file content so a wrong schedule entry fails
// before any bytes go to the API.
func validateVideo(path string) error {
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return &instagram.UploadError{
			Stage: "validate",
			Err:   fmt.Errorf("error reading %s: %w", path, err),
		}
	}
	if kind == types.Unknown || kind.MIME.Type != "video" {
		return &instagram.UploadError{
			Stage: "validate",
			Err:   fmt.Errorf("%s is not a video (detected %q)", path, kind.MIME.Value),
		}
	}
	return nil
}
