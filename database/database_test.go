package database

import (
	"encoding/json"
	"testing"

	"aicareer/config"
	"aicareer/logger"
	"aicareer/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		DBDriver:       "sqlite",
		DBName:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		SaltRound:      bcrypt.MinCost,
	}
}

func TestSeedStacksInsertsCurriculumOnce(t *testing.T) {
	db, err := Connect(testConfig(), logger.Nop())
	require.NoError(t, err)

	n, err := SeedStacks(db, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = SeedStacks(db, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var html models.Stack
	require.NoError(t, db.Where("id = ?", "html").First(&html).Error)
	assert.Equal(t, "HTML", html.Name)

	var details models.StackDetails
	require.NoError(t, json.Unmarshal(html.Details, &details))
	require.Len(t, details.Modules, 1)
	assert.Equal(t, "html-beginner", details.Modules[0].ID)
	assert.Len(t, details.Modules[0].Curriculum, 7)
	assert.Equal(t, 5, details.Modules[0].Curriculum[0].Tasks[0].Points)
}

func TestEnsureAdmin(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "s3cret-pass"

	db, err := Connect(cfg, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, EnsureAdmin(db, cfg, logger.Nop()))
	require.NoError(t, EnsureAdmin(db, cfg, logger.Nop()))

	var admins []models.User
	require.NoError(t, db.Where("email = ?", cfg.AdminEmail).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.StatusActive, admins[0].Status)
	assert.Equal(t, models.RoleAdmin, admins[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte(cfg.AdminPassword)))
}

func TestEnsureAdminDoesNotPromoteLearner(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmail = "admin@example.com"
	cfg.AdminPassword = "s3cret-pass"

	db, err := Connect(cfg, logger.Nop())
	require.NoError(t, err)
	learner := models.User{Name: "squatter", Email: cfg.AdminEmail, Password: "x", Status: models.StatusActive}
	require.NoError(t, db.Create(&learner).Error)

	require.NoError(t, EnsureAdmin(db, cfg, logger.Nop()))

	var got models.User
	require.NoError(t, db.First(&got, learner.ID).Error)
	assert.Equal(t, models.RoleLearner, got.Role)
}

func TestEnsureAdminSkipsWithoutPassword(t *testing.T) {
	cfg := testConfig()
	cfg.AdminEmail = "admin@example.com"

	db, err := Connect(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, EnsureAdmin(db, cfg, logger.Nop()))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMysqlDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db.example.com", DBPort: "4000", DBUser: "root", DBPassword: "pw", DBName: "ai_career_guide_db", DBTLS: true}
	dsn := mysqlDSN(cfg)
	assert.Contains(t, dsn, "root:pw@tcp(db.example.com:4000)/ai_career_guide_db")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "tls=true")
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := dialectorFor(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
