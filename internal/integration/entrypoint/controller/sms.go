package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/sms"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// SMSController handles forwarded bank message ingestion.
type SMSController struct {
	parseUseCase *sms.ParseSMSUseCase
}

// NewSMSController creates a new SMS controller instance.
func NewSMSController(parseUseCase *sms.ParseSMSUseCase) *SMSController {
	return &SMSController{parseUseCase: parseUseCase}
}

// Parse handles POST /sms/parse requests.
// Every ingestion outcome is a 200 except a newly saved transaction, which is a 201.
func (c *SMSController) Parse(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ParseSMSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "message is required",
			Code:  string(domainerror.ErrCodeMissingSMSFields),
		})
		return
	}

	output, err := c.parseUseCase.Execute(ctx.Request.Context(), sms.ParseSMSInput{
		UserID:  userID,
		Sender:  req.Sender,
		Message: req.Message,
	})
	if err != nil {
		writeCoded[domainerror.SMSErrorCode](ctx, err, http.StatusBadRequest, nil)
		return
	}

	status := http.StatusOK
	if output.Outcome == sms.OutcomeSaved {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToParseSMSResponse(output))
}
