package curriculum

import (
	"context"
	"testing"
	"time"

	"aicareer/config"
	"aicareer/database"
	"aicareer/logger"
	"aicareer/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBDriver:       "sqlite",
		DBName:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}, logger.Nop())
	require.NoError(t, err)
	return NewStore(db, logger.Nop()), db
}

func sampleDetails() models.StackDetails {
	return models.StackDetails{
		Image: "https://placehold.co/600x400",
		Modules: []models.Module{{
			ID:    "go-basics",
			Title: "Go (Days 1-2)",
			Curriculum: []models.CurriculumDay{
				{Day: 1, Tasks: []models.Task{{Title: "Hello", Description: "Print hello", Points: 5}}},
				{Day: 2, Tasks: []models.Task{{Title: "Loop", Description: "Sum 1..10"}, {Title: "Slice", Description: "Reverse a slice"}}},
			},
		}},
	}
}

func TestCreateAndGetStack(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.Create(ctx, Stack{ID: "go", Name: "Go", Description: "Learn Go", Details: sampleDetails()})
	require.NoError(t, err)

	got, err := store.GetStack(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Name)
	assert.Equal(t, 3, TotalTasks(got.Details))

	_, err = store.GetStack(ctx, "missing")
	assert.ErrorIs(t, err, ErrStackNotFound)
}

func TestCreateRequiresIDAndName(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Create(ctx, Stack{Name: "No id"}), ErrMissingField)
	assert.ErrorIs(t, store.Create(ctx, Stack{ID: "no-name"}), ErrMissingField)

	require.NoError(t, store.Create(ctx, Stack{ID: "go", Name: "Go"}))
	assert.ErrorIs(t, store.Create(ctx, Stack{ID: "go", Name: "Go again"}), ErrStackExists)
}

func TestMalformedDetailsDegradeToEmpty(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Stack{ID: "broken", Name: "Broken", Details: datatypes.JSON(`{"modules": [`)}).Error)
	require.NoError(t, db.Create(&models.Stack{ID: "ok", Name: "Ok", Details: datatypes.JSON(`{"modules":[{"id":"m","curriculum":[{"day":1}]}]}`)}).Error)

	stacks, err := store.ListStacks(ctx)
	require.NoError(t, err)
	require.Len(t, stacks, 2)
	for _, st := range stacks {
		assert.Equal(t, 0, TotalTasks(st.Details), st.ID)
		if st.ID == "broken" {
			assert.Empty(t, st.Details.Modules)
		}
	}
}

func TestCreateDocumentKeepsDetailsVerbatim(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	raw := `{"image":"x.png","theme":"dark","modules":[{"id":"m","curriculum":[{"day":"1","tasks":[]}]}]}`

	require.NoError(t, store.CreateDocument(ctx, Document{ID: "odd", Name: "Odd", Details: datatypes.JSON(raw)}))

	var row models.Stack
	require.NoError(t, db.Where("id = ?", "odd").First(&row).Error)
	assert.Equal(t, raw, string(row.Details))

	got, err := store.GetStack(ctx, "odd")
	require.NoError(t, err)
	assert.Empty(t, got.Details.Modules)

	require.NoError(t, store.UpdateDocument(ctx, "odd", Document{Name: "Odd", Details: datatypes.JSON("null")}))
	require.NoError(t, db.Where("id = ?", "odd").First(&row).Error)
	assert.JSONEq(t, `{"modules":[]}`, string(row.Details))

	assert.ErrorIs(t, store.CreateDocument(ctx, Document{ID: "odd", Name: "Again"}), ErrStackExists)
	assert.ErrorIs(t, store.UpdateDocument(ctx, "missing", Document{Name: "x"}), ErrStackNotFound)
}

func TestUpdateStack(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, Stack{ID: "go", Name: "Go", Details: sampleDetails()}))

	err := store.Update(ctx, "go", Stack{Name: "Go 2", Description: "updated"})
	require.NoError(t, err)

	got, err := store.GetStack(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "Go 2", got.Name)
	assert.Equal(t, 0, TotalTasks(got.Details))

	assert.ErrorIs(t, store.Update(ctx, "missing", Stack{Name: "x"}), ErrStackNotFound)
	assert.ErrorIs(t, store.Update(ctx, "go", Stack{}), ErrMissingField)
}

func TestDeleteStackCascadesProgress(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, Stack{ID: "go", Name: "Go", Details: sampleDetails()}))
	require.NoError(t, store.Create(ctx, Stack{ID: "rust", Name: "Rust"}))
	require.NoError(t, db.Create(&models.UserProgress{UserID: 1, StackID: "go", ModuleID: "go-basics", Day: 1}).Error)
	require.NoError(t, db.Create(&models.UserProgress{UserID: 1, StackID: "rust", ModuleID: "r", Day: 1}).Error)

	require.NoError(t, store.Delete(ctx, "go"))

	var remaining []models.UserProgress
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "rust", remaining[0].StackID)

	assert.ErrorIs(t, store.Delete(ctx, "go"), ErrStackNotFound)
}

func TestDuplicateStack(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, Stack{ID: "html", Name: "HTML", Description: "Phase 1", Details: sampleDetails()}))
	store.now = func() time.Time { return time.UnixMilli(1700000000123) }

	cp, err := store.Duplicate(ctx, "html")
	require.NoError(t, err)
	assert.Equal(t, "html-copy-1700000000123", cp.ID)
	assert.Equal(t, "HTML (Copy)", cp.Name)

	var src, dup models.Stack
	require.NoError(t, db.Where("id = ?", "html").First(&src).Error)
	require.NoError(t, db.Where("id = ?", cp.ID).First(&dup).Error)
	assert.Equal(t, string(src.Details), string(dup.Details))
	assert.Equal(t, src.Description, dup.Description)

	_, err = store.Duplicate(ctx, "missing")
	assert.ErrorIs(t, err, ErrStackNotFound)
}

func TestFindTask(t *testing.T) {
	d := sampleDetails()

	task, err := FindTask(d, "go-basics", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Slice", task.Title)
	assert.Equal(t, DefaultTaskPoints, TaskPoints(task))

	task, err = FindTask(d, "go-basics", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, TaskPoints(task))

	for _, tc := range []struct {
		module string
		day    int
		index  int
	}{
		{"missing", 1, 0},
		{"go-basics", 9, 0},
		{"go-basics", 1, 1},
		{"go-basics", 1, -1},
	} {
		_, err := FindTask(d, tc.module, tc.day, tc.index)
		assert.ErrorIs(t, err, ErrTaskNotFound, "%s/%d/%d", tc.module, tc.day, tc.index)
	}
}
