package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/models"
	"auction-service/internal/repositories"
	"auction-service/internal/telemetry"
)

// UserHandler manages account endpoints.
type UserHandler struct {
	userRepo repositories.UserRepository
	audit    *telemetry.AuditEmitter
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(userRepo repositories.UserRepository, audit *telemetry.AuditEmitter) *UserHandler {
	return &UserHandler{userRepo: userRepo, audit: audit}
}

// ListUsers returns every account.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByEmail returns one account document.
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	email := c.Param("email")
	user, err := h.userRepo.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser stores a new account; an existing email returns the stored
// document unchanged.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil || user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	stored, created, err := h.userRepo.Create(c.Request.Context(), user)
	if err != nil {
		logrus.WithError(err).Error("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	if created {
		h.audit.Emit(c.Request.Context(), "info", "user created: "+stored.Email, requestIDFromContext(c), userEmailFromContext(c))
	}
	c.JSON(http.StatusCreated, stored)
}

// UpdateUserRole changes an account's role.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Role is required!"})
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), id, req.Role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found or role not changed!"})
			return
		}
		logrus.WithError(err).Error("failed to update role")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}

	h.audit.Emit(c.Request.Context(), "warn", "user role changed to "+req.Role, requestIDFromContext(c), userEmailFromContext(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated successfully!"})
}

// DeleteUser removes an account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found!"})
			return
		}
		logrus.WithError(err).Error("failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}

	h.audit.Emit(c.Request.Context(), "warn", "user deleted", requestIDFromContext(c), userEmailFromContext(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully!"})
}
