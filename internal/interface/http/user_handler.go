package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/coursehub-user-service/internal/application"
	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	"github.com/oksasatya/coursehub-user-service/internal/interface/middleware"
	"github.com/oksasatya/coursehub-user-service/pkg/helpers"
	"github.com/oksasatya/coursehub-user-service/pkg/response"
	"github.com/oksasatya/coursehub-user-service/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger logrus.FieldLogger
}

func NewUserHandler(svc *userapp.Service, logger logrus.FieldLogger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"nonblank,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type updateProfileRequest struct {
	Name string `json:"name" binding:"nonblank,max=100"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd,nefield=CurrentPassword"`
}

// userView is the public shape of a user. It never carries the password hash
// or reset token.
type userView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Role         entity.Role         `json:"role"`
	Capabilities []entity.Capability `json:"capabilities"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func toUserView(u entity.AuthenticatedUser) userView {
	return userView{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Capabilities: u.Role.Capabilities(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type loginResponse struct {
	response.Envelope
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type userResponse struct {
	response.Envelope
	User userView `json:"user"`
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Warn("validation error during registration")
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err))
		return
	}
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, `"role" must be one of [student, instructor]`, nil)
		return
	}

	_, err = h.Svc.Register(c.Request.Context(), userapp.RegisterCommand{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "User registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err))
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), normalizeEmail(req.Email), req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		Envelope:  response.Success(c, http.StatusOK, "Login successful"),
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
	})
}

// Profile re-reads the caller's record so the response reflects the store,
// not the token claims.
func (h *UserHandler) Profile(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	u, err := h.Svc.Profile(c.Request.Context(), caller.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{
		Envelope: response.Success(c, http.StatusOK, ""),
		User:     toUserView(u),
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), caller.ID, strings.TrimSpace(req.Name))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse{
		Envelope: response.Success(c, http.StatusOK, "Profile updated"),
		User:     toUserView(u),
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err))
		return
	}
	err := h.Svc.ChangePassword(c.Request.Context(), caller.ID, userapp.ChangePasswordCommand{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Password updated")
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err))
		return
	}
	err := h.Svc.RequestReset(c.Request.Context(), userapp.ResetCommand{
		Email:     normalizeEmail(req.Email),
		IP:        c.GetString("real_ip"),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Password reset link sent to email")
}

// fail maps service errors to status codes. Unmapped errors are logged and
// answered with a generic 500.
func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userapp.ErrDuplicateEmail):
		response.Fail(c, http.StatusBadRequest, "Email already in use", nil)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Fail(c, http.StatusBadRequest, "Invalid email or password", nil)
	case errors.Is(err, userapp.ErrEmailNotFound):
		response.Fail(c, http.StatusBadRequest, "Email not found", nil)
	case errors.Is(err, userapp.ErrIncorrectPassword):
		response.Fail(c, http.StatusBadRequest, "Current password is incorrect", nil)
	case errors.Is(err, entity.ErrInvalidRole):
		response.Fail(c, http.StatusBadRequest, `"role" must be one of [student, instructor]`, nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "User not found", nil)
	default:
		_ = c.Error(err)
		helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		response.Fail(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
