package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qrfolio-backend/internal/shared/server/middleware"
	"qrfolio-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches signup and login.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/signup", h.signup)
	rg.POST("/login", h.login)
}

// RegisterMeRoutes attaches the current-user route.
func (h *Handler) RegisterMeRoutes(rg gin.IRoutes) {
	rg.GET("/me", h.me)
}

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}

	user, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "user_exists", "user already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign up", err.Error())
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"message": "signup successful",
		"user":    user,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}

	token, user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", ErrInvalidCredentials.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", err.Error())
		}
		return
	}

	respond.OK(c, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", err.Error())
		return
	}
	respond.OK(c, user)
}
