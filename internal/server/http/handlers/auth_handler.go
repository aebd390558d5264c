package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenmandi/storefront/internal/adapter/sms"
	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/server/http/dto"
	"github.com/greenmandi/storefront/internal/server/http/middleware"
)

// AuthHandler processes phone verification and profile endpoints.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// RequestOTP handles POST /api/auth/otp/request.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.RequestCode(c.Request.Context(), req.Phone)
	if err != nil {
		var rateLimited sms.TooManyRequestsError
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPhone):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrResendCooldown):
			c.Status(http.StatusTooManyRequests)
		case errors.As(err, &rateLimited):
			c.Status(http.StatusTooManyRequests)
		case errors.Is(err, sms.ErrDeliveryRejected):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// VerifyOTP handles POST /api/auth/otp/verify.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.VerifyCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPhone):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInvalidCode), errors.Is(err, domainErrors.ErrCodeExpired):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrTooManyAttempts):
			c.Status(http.StatusTooManyRequests)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := dto.AuthResponse{Outcome: string(result.Outcome)}
	if result.Token != "" {
		middleware.SetAuthCookie(c, result.Token)
		response.Token = result.Token
		response.User = toUserResponse(result.User)
	}
	c.JSON(http.StatusOK, response)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user, token, err := h.facade.CompleteRegistration(c.Request.Context(), req.Phone, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPhone):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotVerified):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Outcome: "new",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// Profile handles GET /api/user/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Deactivate handles DELETE /api/user/profile.
func (h *AuthHandler) Deactivate(c *gin.Context) {
	if err := h.facade.Deactivate(c.Request.Context(), CurrentUserID(c)); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func toUserResponse(user *model.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:    user.ID,
		Phone: user.Phone,
		Name:  user.Name,
		Email: user.Email,
	}
}
