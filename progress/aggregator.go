package progress

import (
	"context"
	"errors"
	"fmt"

	"aicareer/curriculum"
	"aicareer/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// CourseSummary is one entry of the pending or completed course lists.
type CourseSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TotalTasks     int    `json:"totalTasks"`
	CompletedTasks int    `json:"completedTasks"`
}

type Profile struct {
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Points           int             `json:"points"`
	PendingCourses   []CourseSummary `json:"pending_courses"`
	CompletedCourses []CourseSummary `json:"completed_courses"`
}

// StackLister is the part of the curriculum store the aggregator reads.
type StackLister interface {
	ListStacks(ctx context.Context) ([]curriculum.Stack, error)
}

type Aggregator struct {
	db     *gorm.DB
	ledger *Ledger
	stacks StackLister
}

func NewAggregator(db *gorm.DB, ledger *Ledger, stacks StackLister) *Aggregator {
	return &Aggregator{db: db, ledger: ledger, stacks: stacks}
}

// BuildProfile classifies every stack for the user. A course is completed
// when all of its tasks are done, pending when some are, and omitted
// otherwise. Counts above the current total (left behind by a curriculum
// edit) are omitted as well.
func (a *Aggregator) BuildProfile(ctx context.Context, userID uint) (Profile, error) {
	var user models.User
	err := a.db.WithContext(ctx).Select("id, name, email, points").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, ErrUserNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load user %d: %w", userID, err)
	}

	stacks, err := a.stacks.ListStacks(ctx)
	if err != nil {
		return Profile{}, err
	}
	counts, err := a.ledger.CountCompleted(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{
		Name:             user.Name,
		Email:            user.Email,
		Points:           user.Points,
		PendingCourses:   []CourseSummary{},
		CompletedCourses: []CourseSummary{},
	}
	for _, st := range stacks {
		total := curriculum.TotalTasks(st.Details)
		done := counts[st.ID]
		summary := CourseSummary{ID: st.ID, Name: st.Name, TotalTasks: total, CompletedTasks: done}
		switch {
		case total > 0 && done == total:
			profile.CompletedCourses = append(profile.CompletedCourses, summary)
		case done > 0 && done < total:
			profile.PendingCourses = append(profile.PendingCourses, summary)
		}
	}
	return profile, nil
}

// LeaderboardEntry is one ranked learner.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Leaderboard ranks active users by points, ties broken by earliest signup.
func (a *Aggregator) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	var users []models.User
	err := a.db.WithContext(ctx).
		Select("id, name, points").
		Where("status = ?", models.StatusActive).
		Order("points DESC").Order("id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	out := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		out = append(out, LeaderboardEntry{Rank: i + 1, UserID: u.ID, Name: u.Name, Points: u.Points})
	}
	return out, nil
}
