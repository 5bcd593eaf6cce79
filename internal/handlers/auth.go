// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/catalogadmin/backend/internal/errs"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/services"
	"github.com/catalogadmin/backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, errs.Wrap(errs.KindValidation, i18n.KeyValidationInvalid, err).WithArgs("input"))
		return
	}

	admin, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthRegisterSuccess),
		"admin":   admin,
	})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, errs.Wrap(errs.KindValidation, i18n.KeyValidationInvalid, err).WithArgs("input"))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"token":      resp.Token,
		"token_type": resp.TokenType,
		"expires_in": resp.ExpiresIn,
	})
}

// GET /api/auth/getCurrentAdmin
func (h *AuthHandler) GetCurrentAdmin(c *gin.Context) {
	adminID, _ := utils.GetAdminIDFromContext(c)

	admin, err := h.authService.GetCurrent(c.Request.Context(), adminID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, admin)
}
