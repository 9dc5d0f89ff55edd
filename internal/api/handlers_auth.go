package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/closurelabs/traininglog/internal/auth"
	"github.com/closurelabs/traininglog/internal/db"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := db.GetUserByEmail(ctx, s.db, req.Email)
	if err != nil {
		return Wrap(KindInternal, "lookup user", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return Errf(KindUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return Wrap(KindInternal, "issue token", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

type resetRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

// resetRequest always answers 204: whether the address exists is not
// leaked. Token delivery is the mail system's job; here it is only
// issued and logged.
func (s *Server) resetRequest(c echo.Context) error {
	var req resetRequestBody
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := db.GetUserByEmail(ctx, s.db, req.Email)
	if err != nil {
		return Wrap(KindInternal, "lookup user", err)
	}
	if user != nil {
		token, err := s.tokens.IssueResetToken(user)
		if err != nil {
			return Wrap(KindInternal, "issue reset token", err)
		}
		s.log.Info("password reset requested",
			zap.String("email", user.Email),
			zap.String("token", token),
		)
	}
	return c.NoContent(http.StatusNoContent)
}

type resetBody struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (s *Server) resetPassword(c echo.Context) error {
	var req resetBody
	if err := c.Bind(&req); err != nil {
		return Errf(KindValidation, "malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := s.tokens.ParseResetToken(req.Token)
	if err != nil {
		return Errf(KindUnauthorized, "invalid or expired reset token")
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Wrap(KindInternal, "hash password", err)
	}
	if err := db.UpdatePassword(c.Request().Context(), s.db, claims.UID, hash); err != nil {
		return Wrap(KindInternal, "update password", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) me(c echo.Context) error {
	user, err := db.GetUserByUID(c.Request().Context(), s.db, claimsOf(c).UID)
	if err != nil {
		return Wrap(KindInternal, "lookup user", err)
	}
	if user == nil {
		return Errf(KindNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}
