package database

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"aicareer/config"
	"aicareer/logger"
	"aicareer/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:embed seed/stacks.json
var seedStacks []byte

type seedStack struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Details     json.RawMessage `json:"details"`
}

// SeedStacks inserts the built-in five course curriculum when the stacks
// table is empty. It returns the number of rows written.
func SeedStacks(db *gorm.DB, log *logger.Logger) (int, error) {
	var count int64
	if err := db.Model(&models.Stack{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count stacks: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	var stacks []seedStack
	if err := json.Unmarshal(seedStacks, &stacks); err != nil {
		return 0, fmt.Errorf("decode seed stacks: %w", err)
	}

	rows := make([]models.Stack, 0, len(stacks))
	for _, s := range stacks {
		rows = append(rows, models.Stack{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Details:     datatypes.JSON(s.Details),
		})
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed stacks: %w", err)
	}
	log.Info("Seeded initial stacks data", "count", len(rows))
	return len(rows), nil
}

// EnsureAdmin creates the administrator account from ADMIN_EMAIL and
// ADMIN_PASSWORD when it does not exist yet. It is the only place that
// assigns RoleAdmin; an existing learner account with that email is left as is.
func EnsureAdmin(db *gorm.DB, cfg *config.Config, log *logger.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("Admin bootstrap skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		if existing.Role != models.RoleAdmin {
			log.Warn("Admin email belongs to a learner account, not promoting", "user_id", existing.ID)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.SaltRound)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: string(hashed),
		Status:   models.StatusActive,
		Plan:     "Admin",
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("Admin account created", "email", cfg.AdminEmail)
	return nil
}
