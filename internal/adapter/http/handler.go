package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/app/status"
	"survivalcore/internal/domain/climate"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type EventDispatcher interface {
	Dispatch(ctx context.Context, ev ports.Event) error
}

type Handler struct {
	StatusUC     status.UseCase
	Events       EventDispatcher
	KPI          kpiSnapshotProvider
	Journal      JournalFunc
	AllowOrigins []string
}

// JournalFunc lists the recent effects a host has shown to agents.
type JournalFunc func() any

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigins))

	api := s.Group("/api")
	api.GET("/agents/:id", h.agentStatus)
	api.GET("/climate", h.climateInfo)
	api.POST("/climate/season", h.setSeason)
	api.GET("/devices", h.devices)
	api.POST("/devices/interact", h.interact)

	s.GET("/ops/kpi", h.kpi)
	s.GET("/ops/journal", h.journal)
}

type interactRequest struct {
	AgentID   string          `json:"agent_id"`
	Dimension world.Dimension `json:"dimension"`
	Pos       world.BlockPos  `json:"pos"`
	Block     string          `json:"block"`
	Held      world.Item      `json:"held"`
}

func (h Handler) agentStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{AgentID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) climateInfo(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.StatusUC.ClimateInfo(c))
}

func (h Handler) setSeason(c context.Context, ctx *app.RequestContext) {
	var body status.SeasonRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.StatusUC.SetSeason(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) devices(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.StatusUC.ListDevices(c))
}

func (h Handler) interact(c context.Context, ctx *app.RequestContext) {
	if h.Events == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "event dispatcher not configured")
		return
	}
	var body interactRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if strings.TrimSpace(body.AgentID) == "" || body.Block == "" {
		writeError(ctx, status.ErrInvalidRequest)
		return
	}
	if body.Dimension == "" {
		body.Dimension = world.DimensionOverworld
	}
	err := h.Events.Dispatch(c, ports.BlockInteracted{
		AgentID:   body.AgentID,
		Dimension: body.Dimension,
		Pos:       body.Pos,
		Block:     world.Block{Type: body.Block},
		Held:      body.Held,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, h.StatusUC.ListDevices(c))
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) journal(_ context.Context, ctx *app.RequestContext) {
	if h.Journal == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "host journal not available")
		return
	}
	ctx.JSON(consts.StatusOK, h.Journal())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, climate.ErrInvalidSeason):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_season", err.Error())
	case errors.Is(err, device.ErrUnknownDevice):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_device", err.Error())
	case errors.Is(err, device.ErrNotReady):
		writeErrorBody(ctx, consts.StatusConflict, "device_not_ready", err.Error())
	case errors.Is(err, device.ErrFull):
		writeErrorBody(ctx, consts.StatusConflict, "device_full", err.Error())
	case errors.Is(err, device.ErrEmpty):
		writeErrorBody(ctx, consts.StatusConflict, "device_empty", err.Error())
	case errors.Is(err, device.ErrInsufficientWater):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_water", err.Error())
	case errors.Is(err, device.ErrFilterPresent), errors.Is(err, device.ErrFilterUnsupported):
		writeErrorBody(ctx, consts.StatusConflict, "filter_rejected", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
