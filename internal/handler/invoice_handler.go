package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoicescan/internal/domain"
	"invoicescan/internal/service"
	"invoicescan/internal/tsvexport"
)

// InvoiceFormField is the multipart field carrying the invoice image.
const InvoiceFormField = "invoiceImage"

// NoteHeader carries note_from_backend for csv and xlsx responses.
const NoteHeader = "X-Backend-Note"

// InvoiceHandler handles invoice processing endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	log            *zap.SugaredLogger
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, log *zap.SugaredLogger) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, log: log}
}

// Process handles POST /api/process-invoice
// @Summary Extract an invoice table from an image
// @Description Upload an invoice image and get its line items back as TSV. Without an API key the response is simulated data with a note.
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param invoiceImage formData file true "Invoice image (PNG, JPEG, GIF or WEBP)"
// @Param format query string false "Response format" Enums(json, csv, xlsx) default(json)
// @Success 200 {object} domain.ExtractionResult "Extracted TSV"
// @Failure 400 {object} ErrorResponse "Missing file, empty filename, unsupported format or rejected upstream request"
// @Failure 401 {object} ErrorResponse "Upstream authentication failed"
// @Failure 429 {object} ErrorResponse "Upstream rate limit"
// @Failure 500 {object} ErrorResponse "Upstream or unexpected error"
// @Router /process-invoice [post]
func (h *InvoiceHandler) Process(c *gin.Context) {
	input, err := readUpload(c)
	if err != nil {
		h.log.Warnw("invoiceHandler.Process: rejected upload", "error", err)
		HandleError(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", domain.FormatJSON))
	if !supportedFormat(format) {
		h.log.Warnw("invoiceHandler.Process: rejected export format", "format", format)
		HandleError(c, domain.ErrUnsupportedFormat)
		return
	}

	result, err := h.invoiceService.Process(c.Request.Context(), *input)
	if err != nil {
		HandleError(c, err)
		return
	}

	switch format {
	case domain.FormatCSV:
		h.respondFile(c, result, input.FileName, "csv", tsvexport.ContentTypeCSV, tsvexport.WriteCSV)
	case domain.FormatXLSX:
		h.respondFile(c, result, input.FileName, "xlsx", tsvexport.ContentTypeXLSX, tsvexport.WriteXLSX)
	default:
		c.JSON(http.StatusOK, result)
	}
}

func (h *InvoiceHandler) respondFile(
	c *gin.Context,
	result *domain.ExtractionResult,
	uploadName, ext, contentType string,
	write func(io.Writer, [][]string) error,
) {
	var buf bytes.Buffer
	if err := write(&buf, tsvexport.Rows(result.InvoiceTSV)); err != nil {
		h.log.Errorw("invoiceHandler.Process: export failed", "format", ext, "error", err)
		HandleError(c, fmt.Errorf("exporting %s: %w", ext, err))
		return
	}
	if result.NoteFromBackend != "" {
		c.Header(NoteHeader, result.NoteFromBackend)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, tsvexport.BuildFilename(uploadName, ext)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// readUpload streams the multipart body and returns the first file part in the
// invoiceImage field. Only a part whose Content-Disposition carries a filename
// parameter is a file; a plain text field with the same name is skipped. An empty
// filename is what browsers submit for an empty file input.
func readUpload(c *gin.Context) (*service.ProcessInput, error) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		return nil, domain.ErrNoInvoiceImage
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoInvoiceImage
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading multipart body: %v", domain.ErrNoInvoiceImage, err)
		}

		filename, isFile := partFilename(part)
		if part.FormName() != InvoiceFormField || !isFile {
			_ = part.Close()
			continue
		}
		if filename == "" {
			return nil, domain.ErrNoSelectedFile
		}

		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		return &service.ProcessInput{FileBytes: data, FileName: filename}, nil
	}
}

// partFilename reports the part's filename and whether the filename parameter is
// present at all. multipart.Part.FileName cannot tell filename="" from no parameter.
func partFilename(part *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	if _, ok := params["filename"]; !ok {
		return "", false
	}
	return part.FileName(), true
}

func supportedFormat(format string) bool {
	switch format {
	case domain.FormatJSON, domain.FormatCSV, domain.FormatXLSX:
		return true
	}
	return false
}
