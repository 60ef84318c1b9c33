package repository

import (
	"context"
	"errors"
	"fmt"

	"comunidad/internal/models"
	"comunidad/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MedicationRepository defines persistence operations for medication reminders.
type MedicationRepository interface {
	Create(ctx context.Context, medication *models.Medication) error
	GetByID(ctx context.Context, id uint) (*models.Medication, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Medication, error)
	Delete(ctx context.Context, id uint) error
	ToggleSuppliedDate(ctx context.Context, id uint, date string) (models.SuppliedDates, bool, error)
}

type medicationRepository struct {
	db *gorm.DB
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(db *gorm.DB) MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *models.Medication) error {
	return writeError(r.db.WithContext(ctx).Create(medication).Error, "Medication")
}

func (r *medicationRepository) GetByID(ctx context.Context, id uint) (*models.Medication, error) {
	var medication models.Medication
	if err := r.db.WithContext(ctx).First(&medication, id).Error; err != nil {
		return nil, readError(err, "Medication", id)
	}
	return &medication, nil
}

func (r *medicationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Medication, error) {
	var medications []*models.Medication
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&medications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return medications, nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Medication{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Medication", id)
	}
	return nil
}

// ToggleSuppliedDate flips date in the medication's supplied dates and writes
// back only that column, leaving updated_at untouched. On PostgreSQL the row
// is locked for the duration of the read-modify-write so concurrent toggles
// serialize.
func (r *medicationRepository) ToggleSuppliedDate(ctx context.Context, id uint, date string) (models.SuppliedDates, bool, error) {
	var (
		next  models.SuppliedDates
		added bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Select("id", "supplied_dates")
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var medication models.Medication
		done := observability.TrackQuery("select", "medications")
		err := query.First(&medication, id).Error
		done()
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Medication", id)
			}
			return fmt.Errorf("load supplied dates: %w", err)
		}

		next, added, err = medication.SuppliedDates.Toggle(date)
		if err != nil {
			return models.NewValidationError(err.Error())
		}

		done = observability.TrackQuery("update", "medications")
		defer done()
		if err := tx.Model(&models.Medication{}).Where("id = ?", id).UpdateColumn("supplied_dates", next).Error; err != nil {
			return fmt.Errorf("write supplied dates: %w", err)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, false, err
		}
		return nil, false, models.NewInternalError(err)
	}
	return next, added, nil
}
