// Package progress owns the completion ledger, learner points and the
// per-course profile summary built on top of them.
package progress

import (
	"context"
	"fmt"

	"aicareer/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Key identifies one task completion.
type Key struct {
	UserID    uint
	StackID   string
	ModuleID  string
	Day       int
	TaskIndex int
}

// Entry is a completion as returned to the client.
type Entry struct {
	ModuleID  string `json:"moduleId"`
	Day       int    `json:"day"`
	TaskIndex int    `json:"taskIndex"`
}

type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// RecordCompletion inserts the completion unless it already exists. inserted
// reports whether a new row was written.
func (l *Ledger) RecordCompletion(ctx context.Context, k Key) (bool, error) {
	return recordCompletion(l.db.WithContext(ctx), k)
}

// CreditTask awards points and records the completion in one transaction.
// Nothing is written when the user does not exist.
func (l *Ledger) CreditTask(ctx context.Context, k Key, points int) (inserted bool, err error) {
	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := awardPoints(tx, k.UserID, points); err != nil {
			return err
		}
		inserted, err = recordCompletion(tx, k)
		return err
	})
	return inserted, err
}

func recordCompletion(db *gorm.DB, k Key) (bool, error) {
	row := models.UserProgress{
		UserID:    k.UserID,
		StackID:   k.StackID,
		ModuleID:  k.ModuleID,
		Day:       k.Day,
		TaskIndex: k.TaskIndex,
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("record completion: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetProgress lists the completions of a user within one stack.
func (l *Ledger) GetProgress(ctx context.Context, userID uint, stackID string) ([]Entry, error) {
	entries := []Entry{}
	err := l.db.WithContext(ctx).
		Model(&models.UserProgress{}).
		Select("module_id, day, task_index").
		Where("user_id = ? AND stack_id = ?", userID, stackID).
		Order("id").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return entries, nil
}

// CountCompleted returns completed task counts keyed by stack id.
func (l *Ledger) CountCompleted(ctx context.Context, userID uint) (map[string]int, error) {
	var rows []struct {
		StackID string
		Total   int
	}
	err := l.db.WithContext(ctx).
		Model(&models.UserProgress{}).
		Select("stack_id, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("stack_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.StackID] = r.Total
	}
	return counts, nil
}

// AwardPoints adds amount to the user's balance in a single statement.
func (l *Ledger) AwardPoints(ctx context.Context, userID uint, amount int) error {
	return awardPoints(l.db.WithContext(ctx), userID, amount)
}

func awardPoints(db *gorm.DB, userID uint, amount int) error {
	res := db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("award points: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteForUsers drops every completion of the given users.
func (l *Ledger) DeleteForUsers(ctx context.Context, tx *gorm.DB, userIDs []uint) error {
	return tx.WithContext(ctx).Where("user_id IN ?", userIDs).Delete(&models.UserProgress{}).Error
}
