package handlers

import (
	"net/http"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes staff account management to admins.
type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// requireAdmin gates an endpoint on the admin role of the caller.
func (h *UserHandler) requireAdmin(c *gin.Context) bool {
	userID := c.GetUint("userID")
	if err := h.userService.ValidateUserRole(userID, string(models.RoleAdmin)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
		return false
	}
	return true
}

func (h *UserHandler) List(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	users, err := h.userService.GetAllUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and password are required"})
		return
	}

	role := req.Role
	if role == "" {
		role = string(models.RoleStaff)
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        role,
		IsActive:    true,
	}
	if err := h.userService.CreateUser(user, req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
