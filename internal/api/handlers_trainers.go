package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/closurelabs/traininglog/internal/auth"
	"github.com/closurelabs/traininglog/internal/db"
	"github.com/closurelabs/traininglog/internal/models"
)

func (s *Server) listTrainers(c echo.Context) error {
	trainers, err := db.ListTrainers(c.Request().Context(), s.db)
	if err != nil {
		s.log.Warn("list trainers failed: " + err.Error())
		trainers = nil
	}
	return c.JSON(http.StatusOK, emptyAsList(trainers))
}

type createTrainerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// createTrainer provisions an account with a generated password,
// returned exactly once in the response for the admin to hand over.
func (s *Server) createTrainer(c echo.Context) error {
	var req createTrainerRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if existing, err := db.GetUserByEmail(ctx, s.db, req.Email); err != nil {
		return Wrap(KindInternal, "lookup user", err)
	} else if existing != nil {
		return Errf(KindConflict, "a user with this email already exists")
	}

	password, err := auth.RandomPassword()
	if err != nil {
		return Wrap(KindInternal, "generate password", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return Wrap(KindInternal, "hash password", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.Trainer,
	}
	if err := db.CreateUser(ctx, s.db, &user); err != nil {
		return Wrap(KindInternal, "create trainer", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": user, "password": password})
}
