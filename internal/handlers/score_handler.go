package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
	"alfredoptarigan/resume-ranker/internal/services"
)

type ScoreHandler struct {
	pipeline *services.Pipeline
}

func NewScoreHandler(pipeline *services.Pipeline) *ScoreHandler {
	return &ScoreHandler{pipeline: pipeline}
}

func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.ResumeID == "" || req.JDID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "resume_id and jd_id are required")
	}

	result, err := h.pipeline.ScorePair(c.UserContext(), req.ResumeID, req.JDID)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(models.ItemResponse{
		Resume:        result.Resume,
		JD:            result.JD,
		CandidateName: result.CandidateName,
		Scores:        result.Scores,
		Total:         result.Total,
	})
}

func (h *ScoreHandler) HandleListScores(c *fiber.Ctx) error {
	records, err := h.pipeline.Scores(c.UserContext(), repositories.ScoreFilter{
		ResumeName: c.Query("resume_id"),
		JDName:     c.Query("jd_id"),
	})
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"scores": records})
}

func (h *ScoreHandler) HandleCriteria(c *fiber.Ctx) error {
	jd := c.Params("jd")
	criteria, err := h.pipeline.Criteria(c.UserContext(), jd, c.QueryBool("refresh"))
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(models.CriteriaResponse{JD: jd, Criteria: criteria})
}

func (h *ScoreHandler) HandleRank(c *fiber.Ctx) error {
	table, err := h.pipeline.Rank(c.UserContext(), c.Query("jd_id"))
	if err != nil {
		return toFiberError(err)
	}

	rows := make([][]any, 0, len(table.Rows))
	for i := range table.Rows {
		rows = append(rows, table.Values(i))
	}

	return c.JSON(models.RankResponse{Columns: table.Columns(), Rows: rows})
}

func (h *ScoreHandler) HandleExport(c *fiber.Ctx) error {
	var req models.ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	path, err := h.pipeline.Export(c.UserContext(), services.ExportFilter{
		JDs:        req.JDIDs,
		Resumes:    req.ResumeIDs,
		OutputPath: req.OutputPath,
	})
	if err != nil {
		return toFiberError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.ExportResponse{Path: path})
}
