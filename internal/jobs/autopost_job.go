package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/SynchronoMedia/english-skills-101/configs"
	"github.com/SynchronoMedia/english-skills-101/internal/models"
	"github.com/SynchronoMedia/english-skills-101/internal/service"
	"github.com/SynchronoMedia/english-skills-101/pkg/utils"
)

// AutopostJob is one full run: authenticate, post the scheduled video,
// clean up, then the engagement pass.
type AutopostJob struct {
	cfg        config.Config
	auth       service.AuthService
	schedule   service.ScheduleService
	drive      service.DriveService
	publisher  service.PublishService
	engagement service.EngagementService
}

func NewAutopostJob(
	cfg config.Config,
	auth service.AuthService,
	schedule service.ScheduleService,
	drive service.DriveService,
	publisher service.PublishService,
	engagement service.EngagementService) *AutopostJob {
	return &AutopostJob{
		cfg:        cfg,
		auth:       auth,
		schedule:   schedule,
		drive:      drive,
		publisher:  publisher,
		engagement: engagement,
	}
}

func (j *AutopostJob) Run(ctx context.Context) error {
	client, err := j.auth.Obtain(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	entry, err := j.schedule.ClosestEntry(j.cfg.ScheduleCSVPath)
	if errors.Is(err, models.ErrEmptySchedule) {
		slog.Info("schedule is empty, nothing to post")
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("selected schedule entry",
		"file", entry.FileName, "scheduled_for", entry.Timestamp)

	localPath, err := j.drive.Fetch(ctx, j.cfg.DriveFolderName, entry.FileName)
	if err != nil {
		return err
	}

	// A publish failure leaves the downloaded files behind for inspection.
	if err := j.publisher.PublishVideoAndStory(ctx, client, localPath, entry.Caption); err != nil {
		return err
	}
	j.cleanup(localPath)

	likers := j.engagement.SampleLikers(ctx, client, j.cfg.TargetAccounts)
	if len(likers) == 0 {
		slog.Info("no likers sampled, skipping engagement pass")
		return nil
	}

	// The engagement pass runs on a freshly built client.
	client, err = j.auth.Obtain(ctx)
	if err != nil {
		return fmt.Errorf("re-authentication failed: %w", err)
	}
	j.engagement.Engage(ctx, client, likers)
	return nil
}

// cleanup removes the downloaded asset and its cover sidecar, if any.
func (j *AutopostJob) cleanup(path string) {
	for _, p := range []string{path, path + ".jpg"} {
		if err := utils.RemoveIfExists(p); err != nil {
			slog.Warn("could not remove local file", "path", p, "error", err)
		}
	}
}
