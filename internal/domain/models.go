package domain

// Note attached to results produced without calling the upstream service.
const SimulatedDataNote = "OpenAI API key not configured. Displaying simulated TSV data."

// Export formats accepted by the process-invoice endpoint.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExtractionResult is the payload returned for a processed invoice. InvoiceTSV is
// the upstream text with surrounding whitespace removed; it is not parsed or validated.
type ExtractionResult struct {
	InvoiceTSV      string `json:"invoice_tsv"`
	NoteFromBackend string `json:"note_from_backend,omitempty"`
}

// InvoiceColumns is the column order the extraction prompt asks for.
var InvoiceColumns = []string{
	"TOTAL BUYING PRICE",
	"CALC TOTAL",
	"BUYING PRICE",
	"PRODUCT CODE",
	"CATEGORY",
	"BRAND",
	"PRODUCT NAME",
	"QUANTITY",
	"OUM",
	"INVOICE DATE",
	"DELIVERY DATE",
	"PAYMENT DUE",
	"SUPPLIER",
	"SOURCE",
	"NOTES",
	"Alcohol contents",
	"Wine Year",
	"Wine Region & Country",
	"ML",
}
