package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"trading-report/internal/dto"
)

const defaultListLimit = 20

func (h *HttpAPIHandler) SetupReports(base *echo.Group) {
	v1 := base.Group("/v1/reports")
	{
		v1.POST("", h.generateReport)
		v1.GET("", h.listReports)
		v1.GET("/:id", h.getReport)
	}
}

func (h *HttpAPIHandler) generateReport(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.GenerateReportRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	param := dto.GenerateReportParam{
		SkipAI:    req.SkipAI,
		UserNotes: req.UserNotes,
	}
	if req.Start != "" {
		param.Start, _ = time.Parse(time.RFC3339, req.Start)
	}
	if req.End != "" {
		param.End, _ = time.Parse(time.RFC3339, req.End)
	}
	if (req.Start == "") != (req.End == "") {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("start and end must be provided together"))
	}

	result, err := h.service.ReportService.Generate(ctx, param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("report generated", result))
}

func (h *HttpAPIHandler) listReports(c echo.Context) error {
	ctx := c.Request().Context()

	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be a positive integer"))
		}
		limit = parsed
	}

	reports, err := h.service.ReportService.ListArchived(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", reports))
}

func (h *HttpAPIHandler) getReport(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid report id"))
	}

	report, err := h.service.ReportService.GetArchived(ctx, uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound,
			dto.NewBaseResponse(http.StatusNotFound, "report not found", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("success", report))
}
