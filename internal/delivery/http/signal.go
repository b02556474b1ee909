package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"fks-execution/internal/dto"
	"fks-execution/pkg/logger"

	"github.com/labstack/echo/v4"
)

var (
	errEmptyBody    = errors.New("empty request body")
	errTrailingData = errors.New("trailing data after request body")
)

func (h *HttpAPIHandler) SetupSignal(base *echo.Group) {
	signalGroup := base.Group("/signal")
	signalGroup.GET("", h.GetSignal)
	signalGroup.POST("", h.PostSignal)
}

func (h *HttpAPIHandler) GetSignal(c echo.Context) error {
	signal := h.service.SignalService.BuildSignal(c.Request().Context(), nil)
	return c.JSON(http.StatusOK, signal)
}

func (h *HttpAPIHandler) PostSignal(c echo.Context) error {
	ctx := c.Request().Context()

	if !isJSONContentType(c.Request().Header.Get(echo.HeaderContentType)) {
		return h.invalidBody(c, http.StatusUnsupportedMediaType, echo.ErrUnsupportedMediaType)
	}

	req := new(dto.SignalRequest)
	if err := decodeSignalRequest(c.Request().Body, req); err != nil {
		return h.invalidBody(c, http.StatusBadRequest, err)
	}

	signal := h.service.SignalService.BuildSignal(ctx, req.Input())
	return c.JSON(http.StatusOK, signal)
}

func (h *HttpAPIHandler) invalidBody(c echo.Context, code int, err error) error {
	h.log.WarnContext(c.Request().Context(), "Invalid signal request body", logger.ErrorField(err), logger.IntField("status", code))
	return c.JSON(code, dto.NewBaseResponse(code, "invalid request body", nil))
}

// decodeSignalRequest requires exactly one JSON value, optionally surrounded by whitespace.
func decodeSignalRequest(body io.Reader, req *dto.SignalRequest) error {
	if body == nil {
		return errEmptyBody
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(req); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// isJSONContentType accepts application/json and application/*+json.
func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == echo.MIMEApplicationJSON ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}
