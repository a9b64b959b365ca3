// Package curriculum reads and administers stacks and their nested
// module/day/task documents.
package curriculum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aicareer/logger"
	"aicareer/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrStackNotFound = errors.New("stack not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrStackExists   = errors.New("stack already exists")
	ErrMissingField  = errors.New("missing required field")
)

// Stack is a stack row with its details decoded.
type Stack struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Details     models.StackDetails `json:"details"`
}

// Store is the curriculum store backed by the stacks table.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewStore(db *gorm.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log.With("component", "curriculum"), now: time.Now}
}

func (s *Store) GetStack(ctx context.Context, id string) (Stack, error) {
	var row models.Stack
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Stack{}, ErrStackNotFound
	}
	if err != nil {
		return Stack{}, fmt.Errorf("get stack %q: %w", id, err)
	}
	return s.decode(row), nil
}

// ListStacks returns every stack in store order.
func (s *Store) ListStacks(ctx context.Context) ([]Stack, error) {
	var rows []models.Stack
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list stacks: %w", err)
	}
	out := make([]Stack, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.decode(row))
	}
	return out, nil
}

// Document is a stack as submitted by an admin. Details is stored as sent;
// its nested structure is only interpreted when read back.
type Document struct {
	ID          string
	Name        string
	Description string
	Details     datatypes.JSON
}

// Create inserts a new stack. Only id and name are required.
func (s *Store) Create(ctx context.Context, st Stack) error {
	raw, err := encodeDetails(st.Details)
	if err != nil {
		return err
	}
	return s.CreateDocument(ctx, Document{ID: st.ID, Name: st.Name, Description: st.Description, Details: raw})
}

// CreateDocument inserts a new stack keeping the details bytes verbatim.
func (s *Store) CreateDocument(ctx context.Context, doc Document) error {
	if strings.TrimSpace(doc.ID) == "" || strings.TrimSpace(doc.Name) == "" {
		return ErrMissingField
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Stack{}).Where("id = ?", doc.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("check stack %q: %w", doc.ID, err)
	}
	if count > 0 {
		return ErrStackExists
	}
	row := models.Stack{ID: doc.ID, Name: doc.Name, Description: doc.Description, Details: rawOrEmpty(doc.Details)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create stack %q: %w", doc.ID, err)
	}
	return nil
}

// Update replaces name, description and details of an existing stack.
func (s *Store) Update(ctx context.Context, id string, st Stack) error {
	raw, err := encodeDetails(st.Details)
	if err != nil {
		return err
	}
	return s.UpdateDocument(ctx, id, Document{Name: st.Name, Description: st.Description, Details: raw})
}

// UpdateDocument is Update with the details bytes kept verbatim.
func (s *Store) UpdateDocument(ctx context.Context, id string, doc Document) error {
	if strings.TrimSpace(doc.Name) == "" {
		return ErrMissingField
	}
	res := s.db.WithContext(ctx).Model(&models.Stack{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        doc.Name,
		"description": doc.Description,
		"details":     rawOrEmpty(doc.Details),
	})
	if res.Error != nil {
		return fmt.Errorf("update stack %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStackNotFound
	}
	return nil
}

// Delete removes a stack together with the progress recorded against it.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Stack{})
		if res.Error != nil {
			return fmt.Errorf("delete stack %q: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrStackNotFound
		}
		if err := tx.Where("stack_id = ?", id).Delete(&models.UserProgress{}).Error; err != nil {
			return fmt.Errorf("delete progress of stack %q: %w", id, err)
		}
		return nil
	})
}

// Duplicate copies a stack under a fresh id "<id>-copy-<unix millis>". The
// details payload is copied byte for byte.
func (s *Store) Duplicate(ctx context.Context, id string) (models.Stack, error) {
	var src models.Stack
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&src).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Stack{}, ErrStackNotFound
	}
	if err != nil {
		return models.Stack{}, fmt.Errorf("get stack %q: %w", id, err)
	}
	cp := models.Stack{
		ID:          fmt.Sprintf("%s-copy-%d", src.ID, s.now().UnixMilli()),
		Name:        src.Name + " (Copy)",
		Description: src.Description,
		Details:     append(datatypes.JSON(nil), src.Details...),
	}
	if err := s.db.WithContext(ctx).Create(&cp).Error; err != nil {
		return models.Stack{}, fmt.Errorf("duplicate stack %q: %w", id, err)
	}
	return cp, nil
}

// Count returns the number of stacks.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Stack{}).Count(&n).Error
	return n, err
}

func (s *Store) decode(row models.Stack) Stack {
	details, err := DecodeDetails(row.Details)
	if err != nil {
		s.log.Error("Error parsing stack details", "stack_id", row.ID, "error", err)
	}
	return Stack{ID: row.ID, Name: row.Name, Description: row.Description, Details: details}
}

// DecodeDetails parses a details document. On failure it returns an empty
// document (no modules) together with the error.
func DecodeDetails(raw []byte) (models.StackDetails, error) {
	details := models.StackDetails{Modules: []models.Module{}}
	if len(raw) == 0 {
		return details, nil
	}
	var parsed models.StackDetails
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return details, err
	}
	if parsed.Modules == nil {
		parsed.Modules = []models.Module{}
	}
	return parsed, nil
}

func encodeDetails(d models.StackDetails) (datatypes.JSON, error) {
	if d.Modules == nil {
		d.Modules = []models.Module{}
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode details: %w", err)
	}
	return datatypes.JSON(raw), nil
}

var emptyDetails = datatypes.JSON(`{"modules":[]}`)

func rawOrEmpty(raw datatypes.JSON) datatypes.JSON {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyDetails
	}
	return datatypes.JSON(trimmed)
}
