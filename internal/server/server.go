// Package server exposes the pipeline over HTTP. It is a thin adapter:
// result status maps to the response code (ok 200, unprocessed 400,
// error 500) and the body is always the serialized PipelineResult.
package server

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"medreport/internal"
	"medreport/internal/ocr"
	"medreport/internal/pipeline"
)

type Handler struct {
	proc *pipeline.Processor
	ocr  *ocr.Client
}

func NewHandler(proc *pipeline.Processor, ocrClient *ocr.Client) *Handler {
	return &Handler{proc: proc, ocr: ocrClient}
}

func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", h.Health)
	e.POST("/process-report/text", h.ProcessText)
	e.POST("/process-report/image", h.ProcessImage)
	return e
}

type textRequest struct {
	Text string `json:"text"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ProcessText(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return respond(c, h.proc.NormalizeAndSummarize(req.Text))
}

func (h *Handler) ProcessImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart field 'file' is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot open uploaded file")
	}
	defer src.Close()
	image, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}

	result, err := h.ocr.Recognize(c.Request().Context(), image)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return respond(c, h.proc.Process("", &result))
}

func respond(c echo.Context, result internal.PipelineResult) error {
	code := http.StatusOK
	switch result.Status {
	case internal.ResultUnprocessed:
		code = http.StatusBadRequest
	case internal.ResultError:
		code = http.StatusInternalServerError
	}
	return c.JSON(code, result)
}
