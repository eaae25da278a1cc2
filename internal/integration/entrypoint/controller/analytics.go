package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/analytics"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles period summary endpoints.
type AnalyticsController struct {
	generateUseCase *analytics.GenerateAnalyticsUseCase
	listUseCase     *analytics.ListAnalyticsUseCase
	deleteUseCase   *analytics.DeleteAnalyticsUseCase
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	generateUseCase *analytics.GenerateAnalyticsUseCase,
	listUseCase *analytics.ListAnalyticsUseCase,
	deleteUseCase *analytics.DeleteAnalyticsUseCase,
) *AnalyticsController {
	return &AnalyticsController{
		generateUseCase: generateUseCase,
		listUseCase:     listUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// Generate handles POST /analytics/generate?bank_name= requests.
func (c *AnalyticsController) Generate(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), analytics.GenerateAnalyticsInput{
		UserID:   userID,
		BankName: ctx.Query("bank_name"),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GenerateAnalyticsResponse{
		Generated: dto.ToAnalyticsSummaryResponses(output.Generated),
		History:   dto.ToAnalyticsSummaryResponses(output.History),
	})
}

// List handles GET /analytics requests.
func (c *AnalyticsController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	history, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.AnalyticsListResponse{
		Summaries: dto.ToAnalyticsSummaryResponses(history),
	})
}

// Delete handles DELETE /analytics/:id requests.
func (c *AnalyticsController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "analytics")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), analytics.DeleteAnalyticsInput{ID: id, UserID: userID}); err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *AnalyticsController) handleAnalyticsError(ctx *gin.Context, err error) {
	writeCoded(ctx, err, http.StatusBadRequest, map[domainerror.AnalyticsErrorCode]int{
		domainerror.ErrCodeSummaryNotFound: http.StatusNotFound,
	})
}
