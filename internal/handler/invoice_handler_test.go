package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"invoicescan/internal/domain"
	"invoicescan/internal/handler"
	"invoicescan/internal/parser"
	"invoicescan/internal/service"
	"invoicescan/internal/tsvexport"
	"invoicescan/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newInvoiceHandler(svc service.InvoiceService) *handler.InvoiceHandler {
	return handler.NewInvoiceHandler(svc, zap.NewNop().Sugar())
}

// multipartBody builds a form with one file part under field.
func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// emptyFilenameBody mimics a browser submitting an empty file input.
func emptyFilenameBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="invoiceImage"; filename=""`)
	h.Set("Content-Type", "application/octet-stream")
	_, err := writer.CreatePart(h)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func serve(h *handler.InvoiceHandler, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == nil {
		req, _ = http.NewRequest(http.MethodPost, target, http.NoBody)
	} else {
		req, _ = http.NewRequest(http.MethodPost, target, body)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.Request = req
	h.Process(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInvoiceHandler_Process_Success(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	content := []byte{0x89, 'P', 'N', 'G'}
	mockSvc.On("Process", mock.Anything, service.ProcessInput{FileBytes: content, FileName: "inv.png"}).
		Return(&domain.ExtractionResult{InvoiceTSV: "A\tB\n1\t2"}, nil)

	body, ct := multipartBody(t, handler.InvoiceFormField, "inv.png", content)
	w := serve(h, "/api/process-invoice", body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "A\tB\n1\t2", resp["invoice_tsv"])
	_, hasNote := resp["note_from_backend"]
	assert.False(t, hasNote)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Process_MissingField(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	body, ct := multipartBody(t, "someOtherField", "inv.png", []byte("img"))
	w := serve(h, "/api/process-invoice", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "No invoice image provided"}, decodeBody(t, w))
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Process_NoBody(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	w := serve(h, "/api/process-invoice", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No invoice image provided", decodeBody(t, w)["error"])
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Process_NotMultipart(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	w := serve(h, "/api/process-invoice", bytes.NewBufferString(`{"invoiceImage":"x"}`), "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No invoice image provided", decodeBody(t, w)["error"])
}

func TestInvoiceHandler_Process_EmptyFilename(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	body, ct := emptyFilenameBody(t)
	w := serve(h, "/api/process-invoice", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "No selected file"}, decodeBody(t, w))
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Process_TextFieldIsNotAFile(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField(handler.InvoiceFormField, "not a file"))
	require.NoError(t, writer.Close())

	w := serve(h, "/api/process-invoice", body, writer.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "No invoice image provided"}, decodeBody(t, w))
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Process_SkipsTextFieldBeforeFile(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	content := []byte("jpeg bytes")
	mockSvc.On("Process", mock.Anything, service.ProcessInput{FileBytes: content, FileName: "scan.jpg"}).
		Return(&domain.ExtractionResult{InvoiceTSV: "A\tB"}, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField(handler.InvoiceFormField, "not a file"))
	part, err := writer.CreateFormFile(handler.InvoiceFormField, "scan.jpg")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := serve(h, "/api/process-invoice", body, writer.FormDataContentType())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A\tB", decodeBody(t, w)["invoice_tsv"])
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Process_TruncatedBody(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	body := bytes.NewBufferString("--xyz\r\nContent-Disposition: form-data; name=\"other\"\r\n\r\nvalue")
	w := serve(h, "/api/process-invoice", body, "multipart/form-data; boundary=xyz")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No invoice image provided", decodeBody(t, w)["error"])
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Process_UpstreamErrorStatuses(t *testing.T) {
	tests := []struct {
		kind       parser.ErrorKind
		wantStatus int
	}{
		{parser.KindAuthentication, http.StatusUnauthorized},
		{parser.KindRateLimit, http.StatusTooManyRequests},
		{parser.KindInvalidRequest, http.StatusBadRequest},
		{parser.KindConnection, http.StatusInternalServerError},
		{parser.KindService, http.StatusInternalServerError},
		{parser.KindUnexpected, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			mockSvc := new(mocks.MockInvoiceService)
			h := newInvoiceHandler(mockSvc)

			upErr := parser.NewUpstreamError(tt.kind, 0, errors.New("details from upstream"))
			mockSvc.On("Process", mock.Anything, mock.Anything).Return(nil, upErr)

			body, ct := multipartBody(t, handler.InvoiceFormField, "inv.jpg", []byte("img"))
			w := serve(h, "/api/process-invoice", body, ct)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, map[string]interface{}{"error": upErr.Message()}, decodeBody(t, w))
		})
	}
}

func TestInvoiceHandler_Process_CSVExport(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	mockSvc.On("Process", mock.Anything, mock.Anything).
		Return(&domain.ExtractionResult{InvoiceTSV: "A\tB\n1\t2", NoteFromBackend: domain.SimulatedDataNote}, nil)

	body, ct := multipartBody(t, handler.InvoiceFormField, "inv.png", []byte("img"))
	w := serve(h, "/api/process-invoice?format=CSV", body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tsvexport.ContentTypeCSV, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="inv_`)
	assert.Equal(t, domain.SimulatedDataNote, w.Header().Get(handler.NoteHeader))

	out := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(out, tsvexport.BOM))
	records, err := csv.NewReader(bytes.NewReader(out[len(tsvexport.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, records)
}

func TestInvoiceHandler_Process_XLSXExport(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	mockSvc.On("Process", mock.Anything, mock.Anything).
		Return(&domain.ExtractionResult{InvoiceTSV: "A\tB\n1\t2"}, nil)

	body, ct := multipartBody(t, handler.InvoiceFormField, "inv.png", []byte("img"))
	w := serve(h, "/api/process-invoice?format=xlsx", body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tsvexport.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get(handler.NoteHeader))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(tsvexport.SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, rows)
}

func TestInvoiceHandler_Process_UnsupportedFormat(t *testing.T) {
	mockSvc := new(mocks.MockInvoiceService)
	h := newInvoiceHandler(mockSvc)

	body, ct := multipartBody(t, handler.InvoiceFormField, "inv.png", []byte("img"))
	w := serve(h, "/api/process-invoice?format=pdf", body, ct)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unsupported export format; allowed: json, csv, xlsx", decodeBody(t, w)["error"])
	mockSvc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Process_SimulatedEndToEnd(t *testing.T) {
	nop := zap.NewNop().Sugar()
	svc := service.NewInvoiceService(parser.NewSimulatedParser(nop), nop)
	h := newInvoiceHandler(svc)

	body, ct := multipartBody(t, handler.InvoiceFormField, "inv.png", []byte("arbitrary bytes"))
	w := serve(h, "/api/process-invoice", body, ct)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{
		"invoice_tsv":       parser.SimulatedTSV,
		"note_from_backend": "OpenAI API key not configured. Displaying simulated TSV data.",
	}, decodeBody(t, w))
}
