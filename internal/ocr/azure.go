package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// AzureDetector calls the Azure Computer Vision printed-text OCR endpoint.
type AzureDetector struct {
	client *computervision.BaseClient
	logger *slog.Logger
}

func NewAzureDetector(endpoint, apiKey string, logger *slog.Logger) *AzureDetector {
	if logger == nil {
		logger = slog.Default()
	}
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &AzureDetector{client: &client, logger: logger}
}

func (d *AzureDetector) DetectText(ctx context.Context, png []byte) (string, error) {
	reader := io.NopCloser(bytes.NewReader(png))
	result, err := d.client.RecognizePrintedTextInStream(
		ctx,
		true,
		reader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return "", fmt.Errorf("azure ocr: %w", err)
	}
	return Normalize(flattenOCRResult(result)), nil
}

// flattenOCRResult rebuilds line-oriented text from the region/line/word tree
// the service returns.
func flattenOCRResult(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}
	var b strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			var words []string
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if len(words) > 0 {
				b.WriteString(strings.Join(words, " "))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
