package handlers

import (
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	msgResumeMissing = "Resume missing"
	msgDataMissing   = "Data missing (Resume or JD)"
)

type AnalyzeHandler struct {
	storageService services.StorageService
	extractor      services.TextExtractor
	analyzer       services.AnalyzerService
	maxFileSize    int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	extractor services.TextExtractor,
	analyzer services.AnalyzerService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService: storageService,
		extractor:      extractor,
		analyzer:       analyzer,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze.
//
// Business failures are reported as {"error": ...} with status 200; every
// scratch file saved during the request is removed before returning.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var saved []string
	defer func() {
		for _, filename := range saved {
			if err := h.storageService.DeleteFile(filename); err != nil {
				log.Printf("⚠️  Failed to delete %s: %v", filename, err)
				continue
			}
			log.Printf("🗑️  Deleted: %s", filename)
		}
	}()

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return respondError(c, msgResumeMissing)
	}

	resumeText, err := h.saveAndExtract(resumeFile, "resume", &saved)
	if err != nil {
		return respondError(c, err.Error())
	}

	jdText := c.FormValue("jd_text")

	// Only a PDF or DOCX JD file replaces pasted text; any other upload is
	// still saved so cleanup covers it.
	if jdFile, err := c.FormFile("jd_file"); err == nil && jdFile.Filename != "" {
		fileText, err := h.saveAndExtract(jdFile, "jd", &saved)
		if err != nil {
			return respondError(c, err.Error())
		}
		if services.KindOf(jdFile.Filename) != services.KindUnknown {
			jdText = fileText
		}
	}

	resumeText = services.CleanText(resumeText)
	jdText = services.CleanText(jdText)
	if resumeText == "" || jdText == "" {
		return respondError(c, msgDataMissing)
	}

	result, err := h.analyzer.AnalyzeMatch(c.UserContext(), resumeText, jdText)
	if err != nil {
		return respondError(c, err.Error())
	}

	return c.JSON(result)
}

// saveAndExtract stores the upload and returns its text. Extraction failures
// are logged and become empty text; only size and I/O problems are errors.
func (h *AnalyzeHandler) saveAndExtract(file *multipart.FileHeader, fileType string, saved *[]string) (string, error) {
	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return "", fmt.Errorf("%s file too large. Max size: %d bytes", fileType, h.maxFileSize)
	}

	filename, filePath, err := h.storageService.SaveFile(file, fileType)
	if err != nil {
		return "", fmt.Errorf("failed to save %s file: %w", fileType, err)
	}
	*saved = append(*saved, filename)

	text, err := h.extractor.ExtractText(filePath)
	if err != nil {
		log.Printf("⚠️  Failed to extract text from %s (%s): %v", file.Filename, fileType, err)
		return "", nil
	}

	return text, nil
}

func respondError(c *fiber.Ctx, message string) error {
	return c.JSON(models.ErrorResponse{Error: message})
}
