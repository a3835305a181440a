package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// VisionService reads text out of images and scanned documents with a
// multimodal model. It covers the sources FileExtractService cannot: photos,
// screenshots, and PDFs without a text layer.
type VisionService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewVisionService(apiKey string) (*VisionService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	model := client.GenerativeModel("gemini-3-flash-preview")
	model.SetTemperature(0.1)
	model.SetTopP(0.9)

	return &VisionService{client: client, model: model}, nil
}

func (s *VisionService) Close() {
	s.client.Close()
}

// ExtractText runs OCR-style extraction over raw file bytes.
func (s *VisionService) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	prompt := "Extract all readable text from this document. " +
		"Preserve the original structure and wording. Respond with ONLY the extracted text."

	resp, err := s.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: mimeType, Data: data},
	)
	if err != nil {
		return "", &ModelInvocationError{Message: err.Error()}
	}

	text := strings.TrimSpace(visionResponseText(resp))
	if text == "" {
		return "", &ModelInvocationError{Message: "empty vision response"}
	}

	return CleanExtractedText(text), nil
}

func visionResponseText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
