package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dermacare/internal/services"
)

type RegisterHandler struct {
	registration *services.RegistrationService
}

func NewRegisterHandler(registration *services.RegistrationService) *RegisterHandler {
	return &RegisterHandler{registration: registration}
}

// @Summary      Send registration OTP
// @Description  Issues a 6-digit verification code and emails it to the address
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string}  true  "Email to verify"
// @Success      200      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /auth/register/send-otp [post]
func (h *RegisterHandler) SendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.RequestCode(req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		case errors.Is(err, services.ErrResendThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "OTP resend limit reached"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// @Summary      Verify registration OTP
// @Description  Confirms the emailed code; the account is created by the follow-up register call
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string,otp=string}  true  "Email and code"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /auth/register/verify-otp [post]
func (h *RegisterHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.ConfirmCode(req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired"})
		case errors.Is(err, services.ErrCodeInvalid), errors.Is(err, services.ErrCodeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// @Summary      Finalize registration
// @Description  Creates the account for a verified email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string,password=string,full_name=string}  true  "Registration data"
// @Success      201      {object}  map[string]interface{}
// @Failure      403      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /auth/register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone"`
		Age      int    `json:"age"`
		Gender   string `json:"gender"`
		SkinType string `json:"skin_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.registration.Finalize(services.FinalizeRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Age:      req.Age,
		Gender:   req.Gender,
		SkinType: req.SkinType,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified"})
		case errors.Is(err, services.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    user,
	})
}
