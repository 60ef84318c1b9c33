package service

import (
	"context"
	"strings"

	"comunidad/internal/models"
	"comunidad/internal/observability"
	"comunidad/internal/repository"
	"comunidad/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type MedicationService struct {
	medicationRepo repository.MedicationRepository
}

type CreateMedicationInput struct {
	UserID    uint   `json:"userId" validate:"required"`
	Name      string `json:"name" validate:"required,max=120"`
	Dose      string `json:"dose" validate:"max=120"`
	Monday    bool   `json:"monday"`
	Tuesday   bool   `json:"tuesday"`
	Wednesday bool   `json:"wednesday"`
	Thursday  bool   `json:"thursday"`
	Friday    bool   `json:"friday"`
	Saturday  bool   `json:"saturday"`
	Sunday    bool   `json:"sunday"`
	StartDate string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Time      string `json:"time" validate:"omitempty,datetime=15:04"`
}

type ToggleSuppliedDateInput struct {
	MedicationID uint
	Date         string
}

// SuppliedDateToggle is the outcome of a supplied-date toggle.
type SuppliedDateToggle struct {
	SuppliedDates models.SuppliedDates
	Added         bool
}

func NewMedicationService(medicationRepo repository.MedicationRepository) *MedicationService {
	return &MedicationService{medicationRepo: medicationRepo}
}

func (s *MedicationService) CreateMedication(ctx context.Context, in CreateMedicationInput) (*models.Medication, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.StartDate != "" && in.EndDate != "" && in.EndDate < in.StartDate {
		return nil, models.NewValidationError("endDate must not be before startDate")
	}

	medication := &models.Medication{
		UserID:        in.UserID,
		Name:          in.Name,
		Dose:          in.Dose,
		Monday:        in.Monday,
		Tuesday:       in.Tuesday,
		Wednesday:     in.Wednesday,
		Thursday:      in.Thursday,
		Friday:        in.Friday,
		Saturday:      in.Saturday,
		Sunday:        in.Sunday,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Time:          in.Time,
		SuppliedDates: models.SuppliedDates{},
	}
	if err := s.medicationRepo.Create(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *MedicationService) GetMedication(ctx context.Context, id uint) (*models.Medication, error) {
	if id == 0 {
		return nil, models.NewValidationError("medicationId is required")
	}
	return s.medicationRepo.GetByID(ctx, id)
}

func (s *MedicationService) ListByUser(ctx context.Context, userID uint) ([]*models.Medication, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	return s.medicationRepo.ListByUser(ctx, userID)
}

func (s *MedicationService) DeleteMedication(ctx context.Context, id uint) error {
	if id == 0 {
		return models.NewValidationError("medicationId is required")
	}
	return s.medicationRepo.Delete(ctx, id)
}

// ToggleSuppliedDate adds the date to the medication's supplied dates, or
// removes it when already present.
func (s *MedicationService) ToggleSuppliedDate(ctx context.Context, in ToggleSuppliedDateInput) (*SuppliedDateToggle, error) {
	if in.MedicationID == 0 {
		return nil, models.NewValidationError("idMedicina is required")
	}
	date := strings.TrimSpace(in.Date)
	if err := models.ValidateSuppliedDate(date); err != nil {
		return nil, models.NewValidationError("fechaHoy: " + err.Error())
	}

	span, ctx := observability.NewSpan(ctx, "MedicationService.ToggleSuppliedDate",
		attribute.Int64("medication.id", int64(in.MedicationID)),
		attribute.String("medication.date", date),
	)
	defer span.End()

	dates, added, err := s.medicationRepo.ToggleSuppliedDate(ctx, in.MedicationID, date)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			observability.SupplyDateToggles.WithLabelValues(observability.ResultNotFound).Inc()
		} else {
			observability.SupplyDateToggles.WithLabelValues(observability.ResultError).Inc()
			span.SetError(err)
		}
		return nil, err
	}

	result := observability.ResultRemoved
	if added {
		result = observability.ResultAdded
	}
	observability.SupplyDateToggles.WithLabelValues(result).Inc()
	return &SuppliedDateToggle{SuppliedDates: dates, Added: added}, nil
}
