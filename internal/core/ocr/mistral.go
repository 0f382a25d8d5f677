package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

const (
	DefaultMistralBaseURL = "https://api.mistral.ai"
	DefaultMistralModel   = "mistral-ocr-latest"
)

type MistralConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	RetryCount int // 0 means 2 retries, negative disables them
}

// MistralClient sends letters to the Mistral OCR endpoint, which returns
// one markdown document per page.
type MistralClient struct {
	client *resty.Client
	model  string
	logger *slog.Logger
}

type mistralDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type mistralOCRRequest struct {
	Model              string          `json:"model"`
	Document           mistralDocument `json:"document"`
	IncludeImageBase64 bool            `json:"include_image_base64"`
}

type mistralPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

type mistralOCRResponse struct {
	Pages     []mistralPage `json:"pages"`
	Model     string        `json:"model"`
	UsageInfo struct {
		PagesProcessed int `json:"pages_processed"`
	} `json:"usage_info"`
}

type mistralError struct {
	Message any    `json:"message"`
	Detail  any    `json:"detail"`
	Type    string `json:"type"`
}

func (e *mistralError) String() string {
	for _, v := range []any{e.Message, e.Detail} {
		if v != nil {
			return fmt.Sprint(v)
		}
	}
	return e.Type
}

func NewMistralClient(cfg MistralConfig, logger *slog.Logger) *MistralClient {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMistralBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultMistralModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	} else if cfg.RetryCount == 0 {
		cfg.RetryCount = 2
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second)
	client.AddRetryCondition(retryCondition)
	return &MistralClient{client: client, model: cfg.Model, logger: logger}
}

// retryCondition retries network errors, throttling and server errors.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// Extract uploads the file inline as a data URL. Text files never leave the host.
func (c *MistralClient) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	format := constants.MapExtToFormat(ext)
	switch format {
	case constants.TEXT:
		return readTextFile(path)
	case constants.PDF, constants.IMAGE:
	default:
		return ExtractionResult{}, fmt.Errorf("%w: extension %q", ErrUnsupported, ext)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{SourceType: format}, fmt.Errorf("read file: %w", err)
	}
	dataURL := "data:" + mediaType(ext) + ";base64," + base64.StdEncoding.EncodeToString(b)
	doc := mistralDocument{Type: "document_url", DocumentURL: dataURL}
	if format == constants.IMAGE {
		doc = mistralDocument{Type: "image_url", ImageURL: dataURL}
	}

	var (
		out    mistralOCRResponse
		apiErr mistralError
	)
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(mistralOCRRequest{Model: c.model, Document: doc}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/ocr")
	if err != nil {
		c.logger.Error("mistral ocr request failed", "path", path, "err", err)
		return ExtractionResult{SourceType: format}, fmt.Errorf("mistral ocr: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("mistral ocr rejected", "path", path, "status", resp.StatusCode(), "error", apiErr.String())
		return ExtractionResult{SourceType: format}, fmt.Errorf("mistral ocr: status %d: %s", resp.StatusCode(), apiErr.String())
	}

	res := ExtractionResult{
		Text:       Normalize(joinPages(out.Pages)),
		Pages:      len(out.Pages),
		SourceType: format,
		Method:     MethodMistral,
		Model:      out.Model,
		Duration:   time.Since(start),
	}
	if res.Model == "" {
		res.Model = c.model
	}
	if res.Text == "" {
		return res, ErrNoText
	}
	res.Confidence = heuristicConfidence(res.Text)
	c.logger.Debug("mistral ocr done", "path", path, "pages", res.Pages, "model", res.Model, "duration_ms", res.Duration.Milliseconds())
	return res, nil
}

func joinPages(pages []mistralPage) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if md := strings.TrimSpace(p.Markdown); md != "" {
			parts = append(parts, md)
		}
	}
	return strings.Join(parts, "\n\n")
}

func mediaType(ext string) string {
	ct := constants.ContentTypeForExt(ext)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}
