package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/dto"
	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	resp, err := ac.authService.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusCreated, "User registered successfully", resp)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SendSuccessResponse(c, http.StatusOK, "Login successful", resp)
}
