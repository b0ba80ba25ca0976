package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hy4ri/daycal/internal/task"
)

// taskRecord is the tasks table row.
type taskRecord struct {
	ID            string   `gorm:"primaryKey;size:36"`
	Owner         string   `gorm:"index;not null"`
	Title         string   `gorm:"not null"`
	Description   string
	Date          string   `gorm:"index"`
	StartTime     string
	EndTime       string
	AllDay        bool
	ReminderTimes []string `gorm:"serializer:json"`
	Unplanned     bool
	Completed     bool
	Priority      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (taskRecord) TableName() string {
	return "tasks"
}

func (r taskRecord) toTask() task.Task {
	return task.Task{
		ID:        r.ID,
		Owner:     r.Owner,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Fields: task.Fields{
			Title:         r.Title,
			Description:   r.Description,
			Date:          r.Date,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			AllDay:        r.AllDay,
			ReminderTimes: r.ReminderTimes,
			Priority:      r.Priority,
			Completed:     r.Completed,
			Unplanned:     r.Date == "",
		},
	}
}

func (r *taskRecord) apply(f task.Fields) {
	r.Title = f.Title
	r.Description = f.Description
	r.Date = f.Date
	r.StartTime = f.StartTime
	r.EndTime = f.EndTime
	r.AllDay = f.AllDay
	r.ReminderTimes = f.ReminderTimes
	r.Unplanned = f.Unplanned
	r.Completed = f.Completed
	r.Priority = f.Priority
}

// SQLite is a store backed by a local SQLite database. Records are scoped
// to a single owner.
type SQLite struct {
	mu    sync.Mutex
	db    *gorm.DB
	owner string
	hub   *Hub
	log   *zap.SugaredLogger
}

// NewSQLite opens (or creates) the database at path and runs migrations.
func NewSQLite(path, owner string, log *zap.SugaredLogger) (*SQLite, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if owner == "" {
		return nil, fmt.Errorf("sqlite store requires an owner")
	}
	if err := ensureDirForSQLite(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(gormWriter{log}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&taskRecord{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLite{
		db:    db,
		owner: owner,
		hub:   NewHub(),
		log:   log,
	}

	tasks, err := s.list(context.Background())
	if err != nil {
		return nil, err
	}
	s.hub.Publish(tasks)

	log.Infow("sqlite store opened", "path", path, "owner", owner, "tasks", len(tasks))
	return s, nil
}

// Create implements Store.
func (s *SQLite) Create(ctx context.Context, fields task.Fields) (task.Task, error) {
	fields, err := prepare(fields)
	if err != nil {
		return task.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := taskRecord{ID: uuid.New().String(), Owner: s.owner}
	rec.apply(fields)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.publish(ctx)
	return rec.toTask(), nil
}

// Update implements Store.
func (s *SQLite) Update(ctx context.Context, id string, fields task.Fields) (task.Task, error) {
	fields, err := prepare(fields)
	if err != nil {
		return task.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rec taskRecord
	err = s.db.WithContext(ctx).Where("id = ? AND owner = ?", id, s.owner).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return task.Task{}, fmt.Errorf("failed to update task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to load task %s: %w", id, err)
	}

	rec.apply(fields)
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return task.Task{}, fmt.Errorf("failed to update task %s: %w", id, err)
	}

	s.publish(ctx)
	return rec.toTask(), nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.db.WithContext(ctx).Where("id = ? AND owner = ?", id, s.owner).Delete(&taskRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to delete task %s: %w", id, ErrNotFound)
	}

	s.publish(ctx)
	return nil
}

// Subscribe implements Store.
func (s *SQLite) Subscribe(ctx context.Context, fn func(Snapshot)) (*Subscription, error) {
	return s.hub.Subscribe(ctx, fn)
}

// Close implements Store.
func (s *SQLite) Close() error {
	s.hub.Close()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLite) list(ctx context.Context) ([]task.Task, error) {
	var records []taskRecord
	if err := s.db.WithContext(ctx).
		Where("owner = ?", s.owner).
		Order("created_at, id").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// publish re-reads the owner's tasks and pushes a snapshot. Called with s.mu held.
func (s *SQLite) publish(ctx context.Context) {
	tasks, err := s.list(context.WithoutCancel(ctx))
	if err != nil {
		s.log.Errorw("failed to refresh snapshot", "error", err)
		return
	}
	s.hub.Publish(tasks)
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create database directory %q: %w", dir, err)
	}
	return nil
}

// gormWriter routes gorm's slow-query and error lines into zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warnf(format, args...)
}
