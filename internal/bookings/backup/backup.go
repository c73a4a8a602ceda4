package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"salonbook/internal/bookings/repository"
	"salonbook/pkg/config"
	"salonbook/pkg/logger"

	"github.com/robfig/cron/v3"
)

const (
	filePrefix = "bookings_"
	fileSuffix = ".json"
	timeLayout = "20060102_150405"
)

// Service copies the booking snapshot into a backup directory on a cron
// schedule and prunes copies older than the retention period.
type Service struct {
	source        repository.Snapshotter
	dir           string
	schedule      string
	retentionDays int
	log           *logger.Logger
	cron          *cron.Cron
	now           func() time.Time
}

func NewService(source repository.Snapshotter, cfg *config.Config) *Service {
	log := cfg.Log.With("component", "backup")
	return &Service{
		source:        source,
		dir:           cfg.BackupDir,
		schedule:      cfg.BackupSchedule,
		retentionDays: cfg.BackupRetentionDays,
		log:           log,
		cron:          cron.New(cron.WithLogger(cronLogger{log}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{log}))),
		now:           time.Now,
	}
}

func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.PerformBackup(); err != nil {
			s.log.Error("Scheduled backup failed", "error", err)
			return
		}
		s.CleanupOldBackups()
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Info("Backup scheduler started", "schedule", s.schedule, "dir", s.dir)
	return nil
}

// Stop waits for a running backup to finish or ctx to expire.
func (s *Service) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Backup scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PerformBackup writes the current snapshot and returns the backup path.
func (s *Service) PerformBackup() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := s.source.Snapshot()
	if err != nil {
		return "", fmt.Errorf("failed to snapshot bookings: %w", err)
	}

	name := filePrefix + s.now().UTC().Format(timeLayout) + fileSuffix
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	s.log.Info("Backup completed successfully", "path", path, "bytes", len(data))
	return path, nil
}

// CleanupOldBackups removes backups whose timestamp is past the retention
// period and returns how many were deleted. Files not written by this
// service are left alone.
func (s *Service) CleanupOldBackups() int {
	if s.retentionDays <= 0 {
		return 0
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("Failed to read backup directory for cleanup", "error", err)
		return 0
	}

	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		taken, ok := parseBackupTime(entry.Name())
		if !ok || !taken.Before(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.log.Warn("Failed to delete old backup", "file", entry.Name(), "error", err)
			continue
		}
		s.log.Info("Deleted old backup", "file", entry.Name())
		removed++
	}
	return removed
}

func parseBackupTime(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	t, err := time.Parse(timeLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// cronLogger routes cron's own messages through the service logger.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
