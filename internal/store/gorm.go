package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lojf/regform/internal/apperrors"
	"github.com/lojf/regform/internal/models"
	"github.com/lojf/regform/internal/services"
)

var (
	_ services.Store = (*GormStore)(nil)
	_ services.Store = (*MemoryStore)(nil)
)

// GormStore keeps student records in the SQLite database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CountWithPrefix counts stored records whose id starts with prefix.
func (s *GormStore) CountWithPrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count %q: %v", apperrors.ErrStoreUnavailable, prefix, err)
	}
	return n, nil
}

// Insert persists one record. A duplicate id or a missing column value is
// reported as ErrConstraintViolation.
func (s *GormStore) Insert(ctx context.Context, rec models.StudentRecord) error {
	row := rec.ToRow()
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: insert %s: %v", apperrors.ErrConstraintViolation, rec.ID, err)
		}
		return fmt.Errorf("%w: insert %s: %v", apperrors.ErrStoreUnavailable, rec.ID, err)
	}
	return nil
}

// List returns every stored row, newest first.
func (s *GormStore) List(ctx context.Context) ([]models.Student, error) {
	var out []models.Student
	if err := s.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list: %v", apperrors.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Get loads one row by id.
func (s *GormStore) Get(ctx context.Context, id string) (models.Student, error) {
	var st models.Student
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&st).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return st, apperrors.ErrStudentNotFound
	case err != nil:
		return st, fmt.Errorf("%w: get %s: %v", apperrors.ErrStoreUnavailable, id, err)
	}
	return st, nil
}

func isConstraintErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	le := strings.ToLower(err.Error())
	return strings.Contains(le, "constraint failed") || strings.Contains(le, "unique")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
