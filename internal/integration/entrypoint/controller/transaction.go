package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/usecase/transaction"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
// Query parameters: name, txn_type, min_amount, max_amount, bank_name, start_date, end_date.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	filter, err := parseTransactionFilter(ctx)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		UserID: userID,
		Filter: filter,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	txn, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{ID: id, UserID: userID})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindJSON(ctx, &req, string(domainerror.ErrCodeMissingTransactionFields)) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	txn, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        date,
		Name:        req.Name,
		Amount:      req.Amount,
		Direction:   entity.Direction(req.Type),
		Description: req.Description,
		Origin:      entity.Origin(req.Source),
		Category:    req.Category,
		BankName:    req.BankName,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if !bindJSON(ctx, &req, "") {
		return
	}

	input := transaction.UpdateTransactionInput{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		BankName:    req.BankName,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			c.handleTransactionError(ctx, err)
			return
		}
		input.Date = &date
	}
	if req.Type != nil {
		direction := entity.Direction(*req.Type)
		input.Direction = &direction
	}
	if req.Source != nil {
		origin := entity.Origin(*req.Source)
		input.Origin = &origin
	}

	txn, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{ID: id, UserID: userID}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must use the YYYY-MM-DD format",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return date, nil
}

func parseTransactionFilter(ctx *gin.Context) (entity.TransactionFilter, error) {
	filter := entity.TransactionFilter{
		Name:     ctx.Query("name"),
		BankName: ctx.Query("bank_name"),
	}

	if v := ctx.Query("txn_type"); v != "" {
		direction := entity.Direction(v)
		filter.Direction = &direction
	}

	for param, dst := range map[string]**decimal.Decimal{
		"min_amount": &filter.MinAmount,
		"max_amount": &filter.MaxAmount,
	} {
		v := ctx.Query(param)
		if v == "" {
			continue
		}
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return filter, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionFilter,
				param+" must be a number",
				err,
			)
		}
		*dst = &amount
	}

	for param, dst := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		v := ctx.Query(param)
		if v == "" {
			continue
		}
		date, err := time.Parse(dto.DateLayout, v)
		if err != nil {
			return filter, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionFilter,
				param+" must use the YYYY-MM-DD format",
				err,
			)
		}
		*dst = &date
	}

	return filter, nil
}

func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	writeCoded(ctx, err, http.StatusBadRequest, map[domainerror.TransactionErrorCode]int{
		domainerror.ErrCodeTransactionNotFound: http.StatusNotFound,
	})
}
