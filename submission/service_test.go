package submission

import (
	"context"
	"errors"
	"testing"

	"aicareer/config"
	"aicareer/curriculum"
	"aicareer/database"
	"aicareer/grading"
	"aicareer/logger"
	"aicareer/models"
	"aicareer/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReviewer struct {
	verdict grading.Verdict
	calls   int
	lastDoc string
}

func (f *fakeReviewer) Review(_ context.Context, _ string, taskDescription string) grading.Verdict {
	f.calls++
	f.lastDoc = taskDescription
	return f.verdict
}

type failingRecorder struct{}

func (failingRecorder) CreditTask(context.Context, progress.Key, int) (bool, error) {
	return false, errors.New("database is locked")
}

type env struct {
	db       *gorm.DB
	store    *curriculum.Store
	ledger   *progress.Ledger
	reviewer *fakeReviewer
	svc      *Service
	user     models.User
}

func newEnv(t *testing.T, verdict grading.Verdict) env {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver:       "sqlite",
		DBName:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}, logger.Nop())
	require.NoError(t, err)

	store := curriculum.NewStore(db, logger.Nop())
	require.NoError(t, store.Create(context.Background(), curriculum.Stack{
		ID:   "html",
		Name: "HTML",
		Details: models.StackDetails{Modules: []models.Module{{
			ID: "html-beginner",
			Curriculum: []models.CurriculumDay{
				{Day: 1, Tasks: []models.Task{{Title: "Hello World", Description: "Create a page", Points: 5}}},
				{Day: 2, Tasks: []models.Task{{Title: "Resume", Description: "Use headings"}}},
			},
		}}},
	}))

	user := models.User{Name: "alice", Email: "alice@example.com", Password: "x", Status: models.StatusActive}
	require.NoError(t, db.Create(&user).Error)

	ledger := progress.NewLedger(db)
	reviewer := &fakeReviewer{verdict: verdict}
	return env{
		db:       db,
		store:    store,
		ledger:   ledger,
		reviewer: reviewer,
		svc:      NewService(store, ledger, reviewer, logger.Nop()),
		user:     user,
	}
}

func (e env) points(t *testing.T) int {
	t.Helper()
	var u models.User
	require.NoError(t, e.db.First(&u, e.user.ID).Error)
	return u.Points
}

func TestSubmitApprovedRecordsAndAwards(t *testing.T) {
	e := newEnv(t, grading.Verdict{Status: grading.StatusApproved, Feedback: "Great"})
	ctx := context.Background()
	req := Request{UserID: e.user.ID, StackID: "html", ModuleID: "html-beginner", Day: 1, TaskIndex: 0, CodeContent: "<html></html>"}

	res, err := e.svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, grading.StatusApproved, res.Status)
	assert.Equal(t, "Great", res.Feedback)
	assert.Equal(t, 5, res.Points)
	assert.False(t, res.AlreadyCompleted)
	assert.Equal(t, "Hello World\nCreate a page", e.reviewer.lastDoc)

	// Resubmitting keeps a single ledger row but awards points again.
	res, err = e.svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)

	entries, err := e.ledger.GetProgress(ctx, e.user.ID, "html")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 10, e.points(t))
}

func TestSubmitDefaultPoints(t *testing.T) {
	e := newEnv(t, grading.Verdict{Status: grading.StatusApproved, Feedback: "ok"})
	res, err := e.svc.Submit(context.Background(), Request{UserID: e.user.ID, StackID: "html", ModuleID: "html-beginner", Day: 2, TaskIndex: 0, CodeContent: "<h1>Me</h1>"})
	require.NoError(t, err)
	assert.Equal(t, curriculum.DefaultTaskPoints, res.Points)
	assert.Equal(t, curriculum.DefaultTaskPoints, e.points(t))
}

func TestSubmitRejectedWritesNothing(t *testing.T) {
	e := newEnv(t, grading.Verdict{Status: grading.StatusRejected, Feedback: grading.UnavailableMessage})
	ctx := context.Background()

	res, err := e.svc.Submit(ctx, Request{UserID: e.user.ID, StackID: "html", ModuleID: "html-beginner", Day: 1, TaskIndex: 0, CodeContent: "x"})
	require.NoError(t, err)
	assert.Equal(t, grading.StatusRejected, res.Status)
	assert.Equal(t, grading.UnavailableMessage, res.Feedback)

	entries, err := e.ledger.GetProgress(ctx, e.user.ID, "html")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, e.points(t))
}

func TestSubmitUnknownStackOrTask(t *testing.T) {
	e := newEnv(t, grading.Verdict{Status: grading.StatusApproved})
	ctx := context.Background()

	for _, req := range []Request{
		{UserID: e.user.ID, StackID: "missing", ModuleID: "html-beginner", Day: 1, CodeContent: "x"},
		{UserID: e.user.ID, StackID: "html", ModuleID: "nope", Day: 1, CodeContent: "x"},
		{UserID: e.user.ID, StackID: "html", ModuleID: "html-beginner", Day: 9, CodeContent: "x"},
		{UserID: e.user.ID, StackID: "html", ModuleID: "html-beginner", Day: 1, TaskIndex: 3, CodeContent: "x"},
	} {
		_, err := e.svc.Submit(ctx, req)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Zero(t, e.reviewer.calls)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	e := newEnv(t, grading.Verdict{Status: grading.StatusApproved, Feedback: "ok"})
	svc := NewService(e.store, failingRecorder{}, e.reviewer, logger.Nop())

	res, err := svc.Submit(context.Background(), Request{UserID: e.user.ID, StackID: "html", ModuleID: "html-beginner", Day: 1, CodeContent: "x"})
	require.NoError(t, err)
	assert.Equal(t, grading.StatusRejected, res.Status)
	assert.Equal(t, SaveFailedMessage, res.Feedback)
}

func TestSubmitUnknownUserWritesNothing(t *testing.T) {
	e := newEnv(t, grading.Verdict{Status: grading.StatusApproved, Feedback: "ok"})
	ctx := context.Background()

	res, err := e.svc.Submit(ctx, Request{UserID: 9999, StackID: "html", ModuleID: "html-beginner", Day: 1, CodeContent: "x"})
	require.NoError(t, err)
	assert.Equal(t, grading.StatusRejected, res.Status)
	assert.Equal(t, SaveFailedMessage, res.Feedback)

	var rows int64
	require.NoError(t, e.db.Model(&models.UserProgress{}).Where("user_id = ?", 9999).Count(&rows).Error)
	assert.Zero(t, rows)
}
