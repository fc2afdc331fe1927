package scheduler

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mkrtchyyan/AI-social-media-agent/internal/config"
)

// Service runs the periodic retention sweep over generated artifacts so that
// timestamped images and saved posts do not accumulate without bound.
type Service struct {
	config *config.Config
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled retention sweep
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.CleanupSchedule {
	case "hourly":
		cronExpression = "0 0 * * * *"
	default:
		// Daily at 3 AM UTC
		cronExpression = "0 0 3 * * *"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting retention sweep")
		s.RunSweep()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s retention sweep (keep %d days)",
		s.config.CleanupSchedule, s.config.RetentionDays)
	return nil
}

// RunSweep deletes generated artifacts older than the retention window
func (s *Service) RunSweep() {
	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	removed := 0
	for _, dir := range []string{s.config.ImageOutputDir, s.config.OutputDir} {
		removed += sweepDir(dir, cutoff)
	}

	logrus.Infof("Retention sweep removed %d artifacts", removed)
}

func sweepDir(dir string, cutoff time.Time) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logrus.Debugf("Retention sweep skipping %s: %v", dir, err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logrus.Warnf("Retention sweep could not remove %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
