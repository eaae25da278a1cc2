package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/bankalias"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// BankAliasController handles sender alias endpoints.
type BankAliasController struct {
	addUseCase    *bankalias.AddAliasUseCase
	listUseCase   *bankalias.ListAliasesUseCase
	deleteUseCase *bankalias.DeleteAliasUseCase
}

// NewBankAliasController creates a new bank alias controller instance.
func NewBankAliasController(
	addUseCase *bankalias.AddAliasUseCase,
	listUseCase *bankalias.ListAliasesUseCase,
	deleteUseCase *bankalias.DeleteAliasUseCase,
) *BankAliasController {
	return &BankAliasController{
		addUseCase:    addUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /aliases requests.
func (c *BankAliasController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	aliases, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAliasListResponse(aliases))
}

// Create handles POST /aliases requests.
func (c *BankAliasController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAliasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "alias and bank_name are required",
			Code:  string(domainerror.ErrCodeMissingAliasFields),
		})
		return
	}

	alias, err := c.addUseCase.Execute(ctx.Request.Context(), bankalias.AddAliasInput{
		UserID:   userID,
		Alias:    req.Alias,
		BankName: req.BankName,
	})
	if err != nil {
		c.handleAliasError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAliasResponse(alias))
}

// Delete handles DELETE /aliases/:alias requests.
func (c *BankAliasController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), bankalias.DeleteAliasInput{
		UserID: userID,
		Alias:  ctx.Param("alias"),
	})
	if err != nil {
		c.handleAliasError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *BankAliasController) handleAliasError(ctx *gin.Context, err error) {
	writeCoded(ctx, err, http.StatusBadRequest, map[domainerror.BankAliasErrorCode]int{
		domainerror.ErrCodeAliasNotFound: http.StatusNotFound,
		domainerror.ErrCodeAliasExists:   http.StatusConflict,
	})
}
