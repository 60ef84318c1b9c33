package server

import (
	"comunidad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /tareas
func (s *Server) CreateTask(c *fiber.Ctx) error {
	var req struct {
		UserID      flexID `json:"userId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Time        string `json:"time"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	task, err := s.taskService.CreateTask(c.UserContext(), service.CreateTaskInput{
		UserID:      req.UserID.value(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetUpcomingTasks handles GET /tareas/:userId
func (s *Server) GetUpcomingTasks(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	tasks, err := s.taskService.ListUpcoming(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// DeleteTask handles DELETE /tareas/:taskId
func (s *Server) DeleteTask(c *fiber.Ctx) error {
	taskID, err := s.parseID(c, "taskId")
	if err != nil {
		return nil
	}

	if err := s.taskService.DeleteTask(c.UserContext(), taskID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "deleted",
	})
}
