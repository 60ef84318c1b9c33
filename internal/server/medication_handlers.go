package server

import (
	"comunidad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateMedication handles POST /medicina
func (s *Server) CreateMedication(c *fiber.Ctx) error {
	var req struct {
		service.CreateMedicationInput
		UserID flexID `json:"userId"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	in := req.CreateMedicationInput
	in.UserID = req.UserID.value()

	medication, err := s.medicationService.CreateMedication(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(medication)
}

// GetUserMedications handles GET /medicina/usuario/:userId
func (s *Server) GetUserMedications(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	medications, err := s.medicationService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(medications)
}

// GetMedication handles GET /medicina/:medicationId
func (s *Server) GetMedication(c *fiber.Ctx) error {
	medicationID, err := s.parseID(c, "medicationId")
	if err != nil {
		return nil
	}

	medication, err := s.medicationService.GetMedication(c.UserContext(), medicationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(medication)
}

// DeleteMedication handles DELETE /medicina/:medicationId
func (s *Server) DeleteMedication(c *fiber.Ctx) error {
	medicationID, err := s.parseID(c, "medicationId")
	if err != nil {
		return nil
	}

	if err := s.medicationService.DeleteMedication(c.UserContext(), medicationID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "deleted",
	})
}

// ToggleSupplyDate handles POST /medicina/agregarEliminarFechaSuministro
// @Summary Toggle a supply date
// @Description Marks the medication as supplied on fechaHoy, or clears the mark when already set
// @Tags medications
// @Accept json
// @Produce json
// @Param request body object{idMedicina=int,fechaHoy=string} true "Supply date"
// @Success 200 {object} object{message=string,suppliedDates=[]string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /medicina/agregarEliminarFechaSuministro [post]
func (s *Server) ToggleSupplyDate(c *fiber.Ctx) error {
	var req struct {
		MedicationID flexID `json:"idMedicina"`
		Date         string `json:"fechaHoy"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	toggle, err := s.medicationService.ToggleSuppliedDate(c.UserContext(), service.ToggleSuppliedDateInput{
		MedicationID: req.MedicationID.value(),
		Date:         req.Date,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":       "updated",
		"suppliedDates": toggle.SuppliedDates,
	})
}
