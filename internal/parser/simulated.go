package parser

import (
	"context"

	"go.uber.org/zap"

	"invoicescan/internal/domain"
	"invoicescan/internal/port"
)

// SimulatedTSV is returned instead of calling the upstream service when no API key is configured.
const SimulatedTSV = "TOTAL BUYING PRICE\tCALC TOTAL\tBUYING PRICE\tPRODUCT CODE\tCATEGORY\tBRAND\tPRODUCT NAME\tQUANTITY\tOUM\tINVOICE DATE\tDELIVERY DATE\tPAYMENT DUE\tSUPPLIER\tSOURCE\tNOTES\tAlcohol contents\tWine Year\tWine Region & Country\tML\n" +
	"SIM_NK_10.50\t\tSIM_NK_9.25\tSIM_NK_P1\tSIM_NK_CAT1\tSIM_NK_BRAND1\tSIM_NK_Prod1\tSIM_NK_1\tSIM_NK_gr\tSIM_NK_20231101\tSIM_NK_20231102\tSIM_NK_20231130\tSIM_NK_Supp1\tSIM_NK_INV000\tSIM_NK_Note1\t\t\t\t\n" +
	"SIM_NK_100.00\t\tSIM_NK_90.00\tSIM_NK_A1\tSIM_NK_WINE\tSIM_NK_BRAND_A1\tSIM_NK_AlcName1\tSIM_NK_1\tSIM_NK_BT\tSIM_NK_20231101\tSIM_NK_20231102\tSIM_NK_20231130\tSIM_NK_Supp1\tSIM_NK_INV000\tSIM_NK_NoteAlc1\tSIM_NK_12.5\tSIM_NK_2022\tSIM_NK_Region\tSIM_NK_700ml"

// Extractor modes.
const (
	ModeLive      = "live"
	ModeSimulated = "simulated"
)

// SimulatedParser implements port.InvoiceExtractor without network access.
type SimulatedParser struct {
	log *zap.SugaredLogger
}

var _ port.InvoiceExtractor = (*SimulatedParser)(nil)

// NewSimulatedParser creates the fixture extractor used when no credential is configured.
func NewSimulatedParser(log *zap.SugaredLogger) *SimulatedParser {
	return &SimulatedParser{log: log}
}

func (p *SimulatedParser) Extract(_ context.Context, input port.ExtractInput) (*domain.ExtractionResult, error) {
	p.log.Infow("parser.SimulatedParser: OpenAI API key not configured, returning simulated data",
		"filename", input.FileName, "bytes", len(input.FileBytes))
	result := Normalize(SimulatedTSV)
	result.NoteFromBackend = domain.SimulatedDataNote
	return result, nil
}

func (p *SimulatedParser) Mode() string {
	return ModeSimulated
}
