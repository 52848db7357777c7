package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"invoicescan/internal/config"
	"invoicescan/internal/domain"
	"invoicescan/internal/parser"
	"invoicescan/internal/port"
)

// ProviderName is the registry key for this provider.
const ProviderName = "openai"

// Parser implements port.InvoiceExtractor using the OpenAI Chat Completions API.
type Parser struct {
	client        *goopenai.Client
	model         string
	maxTokens     int
	mimeDetection string
	log           *zap.SugaredLogger
}

var _ port.InvoiceExtractor = (*Parser)(nil)

// NewParser creates an OpenAI-backed extractor. cfg.BaseURL overrides the API endpoint.
func NewParser(cfg *config.ParserConfig, log *zap.SugaredLogger) *Parser {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout()}

	model := cfg.DefaultModel
	if model == "" {
		model = goopenai.GPT4o
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	return &Parser{
		client:        goopenai.NewClientWithConfig(clientCfg),
		model:         model,
		maxTokens:     maxTokens,
		mimeDetection: cfg.MIMEDetection,
		log:           log,
	}
}

// Factory adapts NewParser to parser.ProviderFactory.
func Factory(cfg *config.ParserConfig, log *zap.SugaredLogger) (port.InvoiceExtractor, error) {
	return NewParser(cfg, log), nil
}

func (p *Parser) Mode() string {
	return parser.ModeLive
}

func (p *Parser) Extract(ctx context.Context, input port.ExtractInput) (*domain.ExtractionResult, error) {
	mimeType := parser.DetectMIMEType(input.FileBytes, input.FileName, p.mimeDetection)
	p.log.Infow("openai.Parser.Extract: attempting live API call",
		"filename", input.FileName, "mime", mimeType, "model", p.model)

	resp, err := p.client.CreateChatCompletion(ctx, buildRequest(p.model, p.maxTokens, input.FileBytes, mimeType))
	if err != nil {
		upErr := classifyError(err)
		p.log.Warnw("openai.Parser.Extract: API call failed",
			"kind", upErr.Kind, "status", upErr.StatusCode, "error", err)
		return nil, upErr
	}

	if len(resp.Choices) == 0 {
		p.log.Warnw("openai.Parser.Extract: empty response", "id", resp.ID)
		return nil, parser.NewUpstreamError(parser.KindUnexpected, 0, errors.New("empty response from API: no choices"))
	}

	p.log.Infow("openai.Parser.Extract: received response",
		"finish_reason", resp.Choices[0].FinishReason,
		"completion_tokens", resp.Usage.CompletionTokens)
	return parser.Normalize(resp.Choices[0].Message.Content), nil
}

// buildRequest assembles a single user message: the prompt followed by the image as a data URI.
func buildRequest(model string, maxTokens int, image []byte, mimeType string) goopenai.ChatCompletionRequest {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	return goopenai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{
						Type: goopenai.ChatMessagePartTypeText,
						Text: parser.InvoicePrompt,
					},
					{
						Type:     goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{URL: dataURI},
					},
				},
			},
		},
	}
}

// classifyError maps a go-openai client error to an upstream error kind.
func classifyError(err error) *parser.UpstreamError {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return parser.NewUpstreamError(parser.KindForStatus(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode, err)
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return parser.NewUpstreamError(parser.KindForStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode, err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return parser.NewUpstreamError(parser.KindConnection, 0, err)
	}

	return parser.NewUpstreamError(parser.KindUnexpected, 0, err)
}
