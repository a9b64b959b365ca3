package utils

import (
	"context"
	"fmt"

	"aicareer/curriculum"
	"aicareer/logger"
	"aicareer/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// AuditReport lists the curriculum problems found by one audit run.
type AuditReport struct {
	Stacks         int
	Unreadable     []string
	Empty          []string
	OrphanProgress int64
}

// AuditCurriculum checks every stack for details that fail to decode or
// hold no tasks, and counts progress rows whose stack no longer exists.
func AuditCurriculum(ctx context.Context, db *gorm.DB) (AuditReport, error) {
	var rows []models.Stack
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return AuditReport{}, fmt.Errorf("load stacks: %w", err)
	}

	report := AuditReport{Stacks: len(rows)}
	for _, row := range rows {
		details, err := curriculum.DecodeDetails(row.Details)
		if err != nil {
			report.Unreadable = append(report.Unreadable, row.ID)
			continue
		}
		if curriculum.TotalTasks(details) == 0 {
			report.Empty = append(report.Empty, row.ID)
		}
	}

	err := db.WithContext(ctx).
		Model(&models.UserProgress{}).
		Where("stack_id NOT IN (?)", db.Model(&models.Stack{}).Select("id")).
		Count(&report.OrphanProgress).Error
	if err != nil {
		return report, fmt.Errorf("count orphan progress: %w", err)
	}
	return report, nil
}

// InitializeCurriculumScheduler runs AuditCurriculum on schedule. An empty schedule
// disables the job and returns nil.
func InitializeCurriculumScheduler(db *gorm.DB, schedule string, log *logger.Logger) (*cron.Cron, error) {
	if schedule == "" {
		log.Info("Curriculum scheduler disabled")
		return nil, nil
	}
	log = log.With("component", "curriculum-scheduler")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Info("Running curriculum audit...")
		report, err := AuditCurriculum(context.Background(), db)
		if err != nil {
			log.Error("Curriculum audit failed", "error", err)
			return
		}
		if len(report.Unreadable) > 0 || len(report.Empty) > 0 || report.OrphanProgress > 0 {
			log.Warn("Curriculum audit found problems",
				"stacks", report.Stacks,
				"unreadable", report.Unreadable,
				"empty", report.Empty,
				"orphan_progress", report.OrphanProgress,
			)
			return
		}
		log.Info("Curriculum audit clean", "stacks", report.Stacks)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule curriculum audit %q: %w", schedule, err)
	}

	c.Start()
	log.Info("Curriculum scheduler started", "schedule", schedule)
	return c, nil
}
