// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/auth"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// AuthController serves the unauthenticated /auth routes.
type AuthController struct {
	register       *auth.RegisterUserUseCase
	login          *auth.LoginUserUseCase
	refresh        *auth.RefreshTokenUseCase
	logout         *auth.LogoutUserUseCase
	forgotPassword *auth.ForgotPasswordUseCase
	resetPassword  *auth.ResetPasswordUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	register *auth.RegisterUserUseCase,
	login *auth.LoginUserUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
	forgotPassword *auth.ForgotPasswordUseCase,
	resetPassword *auth.ResetPasswordUseCase,
) *AuthController {
	return &AuthController{
		register:       register,
		login:          login,
		refresh:        refresh,
		logout:         logout,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
	}
}

// Register handles POST /auth/register. New accounts start with the default
// categories and a fresh token pair.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingFields)) {
		return
	}

	out, err := c.register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		writeCoded(ctx, err, http.StatusInternalServerError, authStatuses)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         dto.ToUserResponse(out.User),
	})
}

// Login handles POST /auth/login. The identifier is a username or an email.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingFields)) {
		return
	}

	out, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		writeCoded(ctx, err, http.StatusInternalServerError, authStatuses)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         dto.ToUserResponse(out.User),
	})
}

// RefreshToken handles POST /auth/refresh.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingToken)) {
		return
	}

	out, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		writeCoded(ctx, err, http.StatusInternalServerError, authStatuses)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	})
}

// Logout handles POST /auth/logout. It always succeeds so a client can drop
// its session even with a stale or missing token.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	_ = ctx.ShouldBindJSON(&req)

	// a failed revoke is logged by the use case; the client is signed out either way
	_ = c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken})

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

// ForgotPassword handles POST /auth/forgot-password. The answer is the same
// whether or not the address belongs to an account.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeInvalidEmail)) {
		return
	}

	if err := c.forgotPassword.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{Email: req.Email}); err != nil {
		writeCoded(ctx, err, http.StatusInternalServerError, authStatuses)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: auth.ForgotPasswordReply})
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingFields)) {
		return
	}

	err := c.resetPassword.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeCoded(ctx, err, http.StatusInternalServerError, authStatuses)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset. Please sign in again."})
}
