package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oriain86/Trading-Platform-Application/internal/services"
	"github.com/oriain86/Trading-Platform-Application/pkg/utils"
)

type UserController struct {
	userService services.UserService
}

func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := currentUser(c, uc.userService)
	if !ok {
		return
	}
	utils.SendSuccessResponse(c, http.StatusOK, "", user)
}
