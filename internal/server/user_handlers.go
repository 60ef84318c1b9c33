package server

import (
	"comunidad/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /usuarios
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /usuarios [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// Register handles POST /register
// @Summary Register a user
// @Description Create an account; the password is stored as a bcrypt hash
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{user=string,email=string,password=string} true "Registration"
// @Success 201 {object} object{success=bool,message=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		User     string `json:"user"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.User,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "registered",
		"user":    user,
	})
}

// Login handles POST /login
// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{user=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,message=string,user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.Login(c.UserContext(), service.LoginInput{
		Username: req.User,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "logged in",
		"user":    user,
	})
}
