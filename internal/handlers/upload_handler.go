package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

const formField = "files"

type UploadHandler struct {
	pipeline       *services.Pipeline
	storageService services.StorageService
	extractor      *services.TextExtractor
	log            *zap.Logger
}

func NewUploadHandler(
	pipeline *services.Pipeline,
	storageService services.StorageService,
	extractor *services.TextExtractor,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		pipeline:       pipeline,
		storageService: storageService,
		extractor:      extractor,
		log:            logger.OrNop(log),
	}
}

// HandleUploadJDs stores each uploaded JD and extracts its criteria.
func (h *UploadHandler) HandleUploadJDs(c *fiber.Ctx) error {
	files, err := formFiles(c)
	if err != nil {
		return err
	}

	var (
		uploaded []models.UploadResponse
		failed   []models.UploadError
		criteria []models.CriteriaResponse
	)
	for _, file := range files {
		resp, content, err := h.saveAndExtract(file, models.KindJD)
		if err != nil {
			failed = append(failed, models.UploadError{Filename: file.Filename, Error: err.Error()})
			continue
		}

		list, err := h.pipeline.IngestJD(c.UserContext(), resp.OriginalName, content)
		if err != nil {
			failed = append(failed, models.UploadError{Filename: file.Filename, Error: err.Error()})
			continue
		}

		uploaded = append(uploaded, resp)
		criteria = append(criteria, models.CriteriaResponse{JD: resp.OriginalName, Criteria: list})
	}

	return c.Status(uploadStatus(uploaded)).JSON(fiber.Map{
		"uploaded": uploaded,
		"errors":   failed,
		"criteria": criteria,
	})
}

// HandleUploadResumes stores each uploaded resume, rescores the batch against
// every JD and exports the result.
func (h *UploadHandler) HandleUploadResumes(c *fiber.Ctx) error {
	files, err := formFiles(c)
	if err != nil {
		return err
	}

	var (
		uploaded []models.UploadResponse
		failed   []models.UploadError
		names    []string
	)
	for _, file := range files {
		resp, content, err := h.saveAndExtract(file, models.KindResume)
		if err == nil {
			err = h.pipeline.IngestResume(c.UserContext(), resp.OriginalName, content)
		}
		if err != nil {
			failed = append(failed, models.UploadError{Filename: file.Filename, Error: err.Error()})
			continue
		}

		uploaded = append(uploaded, resp)
		names = append(names, resp.OriginalName)
	}

	if len(names) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"uploaded": uploaded,
			"errors":   failed,
		})
	}

	outcome, err := h.pipeline.ProcessResumeUpload(c.UserContext(), names)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uploaded": uploaded,
		"errors":   failed,
		"results":  itemResponses(outcome.Items),
		"export": models.ExportResponse{
			Path:  outcome.ReportPath,
			Error: errString(outcome.ReportErr),
		},
	})
}

func (h *UploadHandler) saveAndExtract(file *multipart.FileHeader, kind models.DocKind) (models.UploadResponse, string, error) {
	path, err := h.storageService.SaveFile(file, kind)
	if err != nil {
		return models.UploadResponse{}, "", err
	}

	content, err := h.extractor.Extract(path)
	if err != nil {
		if derr := h.storageService.DeleteFile(path); derr != nil {
			h.log.Warn("failed to remove upload", zap.String("path", path), zap.Error(derr))
		}
		return models.UploadResponse{}, "", fmt.Errorf("extract %s: %w", file.Filename, err)
	}

	return models.UploadResponse{
		Filename:     filepath.Base(path),
		OriginalName: filepath.Base(file.Filename),
		FileType:     string(kind),
		Characters:   len(content),
	}, content, nil
}

func formFiles(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File[formField]
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "no files uploaded, use the 'files' field")
	}

	return files, nil
}

func uploadStatus(uploaded []models.UploadResponse) int {
	if len(uploaded) == 0 {
		return fiber.StatusBadRequest
	}
	return fiber.StatusCreated
}

func itemResponses(items []services.ItemResult) []models.ItemResponse {
	out := make([]models.ItemResponse, 0, len(items))
	for _, item := range items {
		resp := models.ItemResponse{Resume: item.Resume, JD: item.JD, Error: errString(item.Err)}
		if item.Result != nil {
			resp.CandidateName = item.Result.CandidateName
			resp.Scores = item.Result.Scores
			resp.Total = item.Result.Total
		}
		out = append(out, resp)
	}
	return out
}
