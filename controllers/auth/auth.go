package authController

import (
	"context"
	"errors"
	"strings"
	"time"

	"aicareer/config"
	"aicareer/logger"
	"aicareer/middleware"
	"aicareer/models"
	"aicareer/utils"
	authValidator "aicareer/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Controller struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer utils.Mailer
	log    *logger.Logger
}

func NewController(db *gorm.DB, cfg *config.Config, mailer utils.Mailer, log *logger.Logger) *Controller {
	return &Controller{db: db, cfg: cfg, mailer: mailer, log: log.With("component", "auth")}
}

func (ac *Controller) Signup(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*authValidator.SignupRequest)
	email := strings.TrimSpace(reqData.Email)

	// The admin address is reserved for the bootstrapped account
	if ac.cfg.AdminEmail != "" && strings.EqualFold(email, ac.cfg.AdminEmail) {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.KindConflict, "This email is already registered.")
	}

	// Check if email already exists
	var count int64
	if err := ac.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		ac.log.Error("Error checking email", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Server error.")
	}
	if count > 0 {
		return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.KindConflict, "This email is already registered.")
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ac.cfg.SaltRound)
	if err != nil {
		ac.log.Error("Error hashing password", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Server error during registration.")
	}

	newUser := models.User{
		Name:     strings.TrimSpace(reqData.Name),
		Email:    email,
		Password: string(hashedPassword),
		Status:   models.StatusActive,
		Role:     models.RoleLearner,
	}
	if err := ac.db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, middleware.KindConflict, "This email is already registered.")
		}
		ac.log.Error("Error saving user to database", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Server error during registration.")
	}

	go func(user models.User) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := ac.mailer.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
			ac.log.Warn("Welcome email failed", "user_id", user.ID, "error", err)
		}
	}(newUser)

	return middleware.MessageResponse(c, fiber.StatusCreated, "You have registered successfully!")
}

func (ac *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*authValidator.LoginRequest)

	var user models.User
	err := ac.db.Where("email = ?", strings.TrimSpace(reqData.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.KindNotFound, "User not found.")
	}
	if err != nil {
		ac.log.Error("Error loading user", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Server error during login.")
	}

	if user.Status != models.StatusActive {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, middleware.KindForbidden, "Your account is "+user.Status+". Please contact support.")
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, middleware.KindUnauthorized, "Incorrect password.")
	}

	loginAt := time.Now()
	if err := ac.db.Model(&user).UpdateColumn("last_login", loginAt).Error; err != nil {
		ac.log.Error("Error updating last login", "user_id", user.ID, "error", err)
	}

	// Log login activity
	loginRecord := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: loginAt,
	}
	if err := ac.db.Create(&loginRecord).Error; err != nil {
		ac.log.Error("Error saving login history", "user_id", user.ID, "error", err)
	}

	isAdmin := user.Role == models.RoleAdmin
	token, err := middleware.GenerateJWT(ac.cfg.JWTKey, ac.cfg.JWTTTL, user.ID, user.Name, user.Email, isAdmin)
	if err != nil {
		ac.log.Error("Error generating token", "error", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.KindInternal, "Server error during login.")
	}

	message := "Login successful!"
	if isAdmin {
		message = "Admin login successful!"
	}
	return c.JSON(fiber.Map{
		"message":  message,
		"userId":   user.ID,
		"userName": user.Name,
		"isAdmin":  isAdmin,
		"token":    token,
	})
}
