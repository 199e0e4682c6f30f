package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tay1orr/notebook-loan-api/internal/dto"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	appErrors "github.com/tay1orr/notebook-loan-api/pkg/errors"
	"github.com/tay1orr/notebook-loan-api/pkg/export"
	"github.com/tay1orr/notebook-loan-api/pkg/jobs"
	"github.com/tay1orr/notebook-loan-api/pkg/storage"
)

type backupStore interface {
	Insert(ctx context.Context, record *models.BackupRecord) error
	SetStatus(ctx context.Context, id string, status models.BackupStatus, entryCount int) error
	List(ctx context.Context, limit int) ([]models.BackupRecord, error)
	Latest(ctx context.Context) (*models.BackupRecord, error)
	TrimHistory(ctx context.Context, keep int) error
}

// BackupServiceConfig tunes snapshot throttling and retention.
type BackupServiceConfig struct {
	MinInterval   time.Duration
	HistoryLimit  int
	WorkerRetries int
}

// BackupService snapshots the loaded school calendar to CSV files and keeps
// a bounded run history. Triggers are rate-limited: two imports racing for a
// backup slot resolve to one run per MinInterval window.
type BackupService struct {
	repo         backupStore
	snapshot     calendarSnapshotter
	files        *storage.LocalStorage
	signer       *storage.SignedURLSigner
	exporter     *export.CSVExporter
	queue        *jobs.Queue
	minInterval  time.Duration
	historyLimit int
	logger       *zap.Logger
}

// NewBackupService constructs the service and its worker queue.
func NewBackupService(repo backupStore, snapshot calendarSnapshotter, files *storage.LocalStorage, signer *storage.SignedURLSigner, cfg BackupServiceConfig, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 10 * time.Minute
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}

	s := &BackupService{
		repo:         repo,
		snapshot:     snapshot,
		files:        files,
		signer:       signer,
		exporter:     export.NewCSVExporter(),
		minInterval:  cfg.MinInterval,
		historyLimit: cfg.HistoryLimit,
		logger:       logger,
	}
	s.queue = jobs.NewQueue("calendar_backup", s.run, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the backup worker.
func (s *BackupService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the backup worker.
func (s *BackupService) Stop() {
	s.queue.Stop()
}

// Trigger enqueues a calendar snapshot, enforcing the minimum interval
// between runs.
func (s *BackupService) Trigger(ctx context.Context, actor *models.JWTClaims) (*models.BackupRecord, error) {
	latest, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check backup history")
	}
	if latest != nil && time.Since(latest.CreatedAt) < s.minInterval {
		return nil, appErrors.Clone(appErrors.ErrRateLimited,
			fmt.Sprintf("last backup ran %s ago, minimum interval is %s", time.Since(latest.CreatedAt).Round(time.Second), s.minInterval))
	}

	record := &models.BackupRecord{
		ID:          uuid.NewString(),
		Filename:    fmt.Sprintf("calendar-%s.csv", time.Now().UTC().Format("20060102-150405")),
		Status:      models.BackupStatusPending,
		TriggeredBy: actorID(actor),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record backup")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: record.ID, Type: "calendar_backup", Payload: record.Filename}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue backup")
	}
	return record, nil
}

// List returns the backup history with signed download tokens for completed
// snapshots.
func (s *BackupService) List(ctx context.Context) ([]dto.BackupItem, error) {
	records, err := s.repo.List(ctx, s.historyLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list backups")
	}

	items := make([]dto.BackupItem, 0, len(records))
	for _, record := range records {
		item := dto.BackupItem{BackupRecord: record}
		if record.Status == models.BackupStatusCompleted && s.signer != nil {
			if token, _, err := s.signer.Generate(record.ID, record.Filename); err == nil {
				item.DownloadToken = token
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Resolve validates a download token and returns the absolute file path.
func (s *BackupService) Resolve(token string) (string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}
	return s.files.Path(relPath), nil
}

func (s *BackupService) run(ctx context.Context, job jobs.Job) error {
	filename, _ := job.Payload.(string)
	entries := s.snapshot.Entries()

	content, err := s.exporter.Render(calendarDataset(entries))
	if err != nil {
		s.markFailed(ctx, job.ID)
		return fmt.Errorf("render backup %s: %w", job.ID, err)
	}
	if _, err := s.files.Save(filename, content); err != nil {
		s.markFailed(ctx, job.ID)
		return fmt.Errorf("save backup %s: %w", job.ID, err)
	}

	if err := s.repo.SetStatus(ctx, job.ID, models.BackupStatusCompleted, len(entries)); err != nil {
		return fmt.Errorf("finalise backup %s: %w", job.ID, err)
	}
	if err := s.repo.TrimHistory(ctx, s.historyLimit); err != nil {
		s.logger.Warn("failed to trim backup history", zap.Error(err))
	}

	s.logger.Info("calendar backup completed",
		zap.String("backup_id", job.ID),
		zap.String("filename", filename),
		zap.Int("entries", len(entries)))
	return nil
}

func (s *BackupService) markFailed(ctx context.Context, id string) {
	if err := s.repo.SetStatus(ctx, id, models.BackupStatusFailed, 0); err != nil {
		s.logger.Warn("failed to mark backup failed", zap.String("backup_id", id), zap.Error(err))
	}
}

func actorID(claims *models.JWTClaims) string {
	if claims == nil {
		return "import-key"
	}
	return claims.UserID
}
