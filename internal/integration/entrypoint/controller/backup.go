package controller

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/backup"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// maxImportSize caps the accepted backup payload.
const maxImportSize = 10 << 20

// BackupController handles ledger export and import.
type BackupController struct {
	exportUseCase *backup.ExportTransactionsUseCase
	importUseCase *backup.ImportTransactionsUseCase
}

// NewBackupController creates a new backup controller instance.
func NewBackupController(
	exportUseCase *backup.ExportTransactionsUseCase,
	importUseCase *backup.ImportTransactionsUseCase,
) *BackupController {
	return &BackupController{
		exportUseCase: exportUseCase,
		importUseCase: importUseCase,
	}
}

// Export handles GET /backup/export?format=csv|json|xlsx requests.
func (c *BackupController) Export(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	format := backup.Format(strings.ToLower(ctx.DefaultQuery("format", string(backup.FormatCSV))))
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), backup.ExportTransactionsInput{
		UserID: userID,
		Format: format,
	})
	if err != nil {
		c.handleBackupError(ctx, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", time.Now().UTC().Format("20060102"), format)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, output.ContentType, output.Data)
}

// Import handles POST /backup/import requests.
// The payload is either a multipart "file" field or the raw request body.
// The format comes from ?format=, then the file extension, then the content type.
func (c *BackupController) Import(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	data, filename, err := readImportPayload(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read backup payload",
			Code:  string(domainerror.ErrCodeEmptyBackup),
		})
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), backup.ImportTransactionsInput{
		UserID: userID,
		Format: detectFormat(ctx, filename),
		Data:   data,
	})
	if err != nil {
		c.handleBackupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ImportResponse{
		Imported: output.Imported,
		Skipped:  output.Skipped,
	})
}

func readImportPayload(ctx *gin.Context) ([]byte, string, error) {
	if file, header, err := ctx.Request.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
		return data, header.Filename, err
	}
	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportSize))
	return data, "", err
}

func detectFormat(ctx *gin.Context, filename string) backup.Format {
	if f := ctx.Query("format"); f != "" {
		return backup.Format(strings.ToLower(f))
	}
	switch name := strings.ToLower(filename); {
	case strings.HasSuffix(name, ".json"):
		return backup.FormatJSON
	case strings.HasSuffix(name, ".xlsx"):
		return backup.FormatXLSX
	case name != "":
		return backup.FormatCSV
	}
	switch ct := ctx.ContentType(); {
	case strings.Contains(ct, "json"):
		return backup.FormatJSON
	case strings.Contains(ct, "spreadsheetml"):
		return backup.FormatXLSX
	}
	return backup.FormatCSV
}

func (c *BackupController) handleBackupError(ctx *gin.Context, err error) {
	writeCoded[domainerror.BackupErrorCode](ctx, err, http.StatusBadRequest, nil)
}
