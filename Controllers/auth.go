package Controllers

import (
	"errors"
	"net/http"

	"IranElaj/Services"
	"IranElaj/Utils/Token"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	WhatsApp string `json:"whatsapp" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type userSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	WhatsApp string `json:"whatsapp"`
}

func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name, WhatsApp, and password are required"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), Services.RegisterInput{
		FullName: input.FullName,
		WhatsApp: input.WhatsApp,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    userSummary{ID: user.ID, FullName: user.FullName, WhatsApp: user.WhatsApp},
	})
}

type SendOTPInput struct {
	WhatsApp string `json:"whatsapp" binding:"required"`
}

func (h *Handler) SendOTP(c *gin.Context) {
	var input SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "WhatsApp number is required"})
		return
	}

	result, err := h.auth.RequestOTP(c.Request.Context(), input.WhatsApp)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output := gin.H{
		"success": true,
		"message": "OTP sent successfully",
	}
	// The link text carries the code, so it is as secret as the code itself.
	if h.cfg.OTPExposedInResponse {
		output["otp"] = result.Code
		output["whatsappLink"] = result.WhatsAppLink
	}
	c.JSON(http.StatusOK, output)
}

type LoginInput struct {
	WhatsApp string `json:"whatsapp" binding:"required"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "WhatsApp number is required"})
		return
	}

	session, err := h.auth.Authenticate(c.Request.Context(), Services.Credentials{
		WhatsApp: input.WhatsApp,
		Password: input.Password,
		OTP:      input.OTP,
	})
	if err != nil {
		// Unknown numbers look the same as wrong credentials.
		if errors.Is(err, Services.ErrUserNotFound) {
			err = Services.ErrInvalidCredentials
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"user":      session.User,
	})
}

func (h *Handler) CurrentUser(c *gin.Context) {
	userID, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": user})
}
