package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/setting"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// SettingController handles balance threshold and category limit endpoints.
type SettingController struct {
	getUseCase    *setting.GetSettingsUseCase
	upsertUseCase *setting.UpsertSettingsUseCase
	updateUseCase *setting.UpdateSettingUseCase
	deleteUseCase *setting.DeleteSettingUseCase
}

// NewSettingController creates a new setting controller instance.
func NewSettingController(
	getUseCase *setting.GetSettingsUseCase,
	upsertUseCase *setting.UpsertSettingsUseCase,
	updateUseCase *setting.UpdateSettingUseCase,
	deleteUseCase *setting.DeleteSettingUseCase,
) *SettingController {
	return &SettingController{
		getUseCase:    getUseCase,
		upsertUseCase: upsertUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Get handles GET /settings?bank_name= requests.
func (c *SettingController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	view, err := c.getUseCase.Execute(ctx.Request.Context(), setting.GetSettingsInput{
		UserID:   userID,
		BankName: ctx.Query("bank_name"),
	})
	if err != nil {
		c.handleSettingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBankBalanceResponse(view))
}

// Upsert handles POST /settings requests.
func (c *SettingController) Upsert(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpsertSettingsRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingSettingFields)) {
		return
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), setting.UpsertSettingsInput{
		UserID:        userID,
		BankName:      req.BankName,
		MinBalance:    req.MinBalance,
		ActualBalance: req.ActualBalance,
		Category:      req.Category,
		Limit:         req.Limit,
	})
	if err != nil {
		c.handleSettingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingListResponse(output.Settings))
}

// Update handles PUT /settings/:id requests.
func (c *SettingController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "setting")
	if !ok {
		return
	}

	var req dto.UpdateSettingRequest
	if !bindJSON(ctx, &req, "") {
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), setting.UpdateSettingInput{
		ID:            id,
		UserID:        userID,
		MinBalance:    req.MinBalance,
		ActualBalance: req.ActualBalance,
		Limit:         req.Limit,
	})
	if err != nil {
		c.handleSettingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingResponse(updated))
}

// Delete handles DELETE /settings/:id requests.
func (c *SettingController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "setting")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), setting.DeleteSettingInput{ID: id, UserID: userID}); err != nil {
		c.handleSettingError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *SettingController) handleSettingError(ctx *gin.Context, err error) {
	writeCoded(ctx, err, http.StatusBadRequest, map[domainerror.SettingErrorCode]int{
		domainerror.ErrCodeSettingNotFound: http.StatusNotFound,
	})
}
