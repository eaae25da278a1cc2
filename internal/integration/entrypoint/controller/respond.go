package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// bindJSON decodes the request body into req. A malformed body answers 400
// with code and returns false.
func bindJSON(ctx *gin.Context, req any, code string) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  code,
		})
		return false
	}
	return true
}

// authStatuses maps auth codes to statuses on the public /auth routes.
var authStatuses = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeEmailExists:        http.StatusConflict,
	domainerror.ErrCodeUsernameExists:     http.StatusConflict,
	domainerror.ErrCodeWeakPassword:       http.StatusBadRequest,
	domainerror.ErrCodeInvalidEmail:       http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:      http.StatusBadRequest,
	domainerror.ErrCodeInvalidResetToken:  http.StatusBadRequest,
	domainerror.ErrCodeExpiredResetToken:  http.StatusBadRequest,
	domainerror.ErrCodeInvalidCredentials: http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:       http.StatusUnauthorized,
	domainerror.ErrCodeInvalidToken:       http.StatusUnauthorized,
	domainerror.ErrCodeExpiredToken:       http.StatusUnauthorized,
	domainerror.ErrCodeMissingToken:       http.StatusUnauthorized,
	domainerror.ErrCodeRateLimited:        http.StatusTooManyRequests,
}

// accountStatuses maps auth codes to statuses on the authenticated /users/me
// routes, where the caller is known and a missing user is a 404.
var accountStatuses = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	domainerror.ErrCodeWrongPassword:       http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:        http.StatusNotFound,
	domainerror.ErrCodeInvalidConfirmation: http.StatusBadRequest,
	domainerror.ErrCodeWeakPassword:        http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:       http.StatusBadRequest,
}

type codedError[C ~string] interface {
	error
	Detail() domainerror.Coded[C]
}

// writeCoded renders the domain error of code type C in err's chain, using
// statuses and falling back to fallback for unlisted codes. Any other error
// is logged and answered as a 500.
func writeCoded[C ~string](ctx *gin.Context, err error, fallback int, statuses map[C]int) {
	var coded codedError[C]
	if !errors.As(err, &coded) {
		slog.ErrorContext(ctx.Request.Context(), "Request failed",
			"method", ctx.Request.Method,
			"route", ctx.FullPath(),
			"error", err,
		)
		internalError(ctx)
		return
	}

	detail := coded.Detail()
	status, ok := statuses[detail.Code]
	if !ok {
		status = fallback
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: detail.Message,
		Code:  string(detail.Code),
	})
}
