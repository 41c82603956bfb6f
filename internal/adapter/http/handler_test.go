package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"survivalcore/internal/adapter/metrics/inmemory"
	"survivalcore/internal/adapter/repo/memory"
	"survivalcore/internal/adapter/world/mock"
	"survivalcore/internal/app/engine"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/app/status"
	"survivalcore/internal/domain/climate"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
)

func newTestHandler(t *testing.T) (Handler, *engine.Engine, *mock.World) {
	t.Helper()
	w := mock.New()
	rec := inmemory.NewRecorder()
	e, err := engine.New(engine.Options{
		Host:        w,
		Persistence: memory.NewStore(),
		Metrics:     rec,
		Tuning:      survival.DefaultTuning(),
		Settings:    engine.DefaultSettings(),
		Rand:        mock.NewScripted(),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return Handler{
		StatusUC: status.UseCase{Agents: e.Store, Climate: e.Climate, Devices: e.Devices, Seasons: e},
		Events:   e,
		KPI:      rec,
	}, e, w
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	code, _ := body["error"]["code"].(string)
	return code
}

func TestAgentStatus_OK(t *testing.T) {
	h, e, _ := newTestHandler(t)
	e.Store.Ensure("agent-1")
	ctx := &app.RequestContext{}
	ctx.Params = param.Params{{Key: "id", Value: "agent-1"}}

	h.agentStatus(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["band"], "Normal"; got != want {
		t.Fatalf("band mismatch: got=%v want=%v", got, want)
	}
}

func TestAgentStatus_UnknownAgent(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := &app.RequestContext{}
	ctx.Params = param.Params{{Key: "id", Value: "ghost"}}

	h.agentStatus(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "not_found"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestClimate_ReportsSeason(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := &app.RequestContext{}

	h.climateInfo(context.Background(), ctx)

	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["season"], "Spring"; got != want {
		t.Fatalf("season mismatch: got=%v want=%v", got, want)
	}
}

func TestSetSeason(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "ok", body: `{"season":3}`, wantCode: consts.StatusOK},
		{name: "negative", body: `{"season":-1}`, wantCode: consts.StatusBadRequest, wantErr: "invalid_season"},
		{name: "missing", body: `{}`, wantCode: consts.StatusBadRequest, wantErr: "bad_request"},
		{name: "malformed", body: `{"season":`, wantCode: consts.StatusBadRequest, wantErr: "invalid_json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, e, _ := newTestHandler(t)
			ctx := &app.RequestContext{}
			ctx.Request.SetBody([]byte(tc.body))

			h.setSeason(context.Background(), ctx)

			if got := ctx.Response.StatusCode(); got != tc.wantCode {
				t.Fatalf("status mismatch: got=%d want=%d", got, tc.wantCode)
			}
			if tc.wantErr != "" {
				if got := errorCode(t, ctx); got != tc.wantErr {
					t.Fatalf("error code mismatch: got=%q want=%q", got, tc.wantErr)
				}
				return
			}
			if e.Climate.Season() != climate.Winter {
				t.Fatalf("season got=%v want=Winter", e.Climate.Season())
			}
		})
	}
}

func TestInteract_PolicyViolationIsConflict(t *testing.T) {
	h, _, w := newTestHandler(t)
	w.PutAgent(ports.Agent{ID: "agent-1"})
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"agent_id":"agent-1","pos":{"x":1,"y":64,"z":1},"block":"openrealism:ceramic_purifier_block","held":{"type":"minecraft:glass_bottle","amount":1}}`))

	h.interact(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "device_empty"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
	if !w.HasMessage("agent-1", "Purifier is empty.") {
		t.Fatalf("expected agent-facing message, got=%v", w.Messages)
	}
}

func TestInteract_PourListsDevice(t *testing.T) {
	h, _, w := newTestHandler(t)
	w.PutAgent(ports.Agent{ID: "agent-1"})
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"agent_id":"agent-1","pos":{"x":1,"y":64,"z":1},"block":"openrealism:ceramic_purifier_block","held":{"type":"minecraft:water_bucket","amount":1}}`))

	h.interact(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var body status.DevicesResponse
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Devices) != 1 || body.Devices[0].WaterLevel != 3 || body.Devices[0].Phase != device.PhaseDirty {
		t.Fatalf("devices got=%+v", body.Devices)
	}
}

func TestInteract_RequiresAgentAndBlock(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"agent_id":" "}`))

	h.interact(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_ReportsSubsystemRuns(t *testing.T) {
	h, e, _ := newTestHandler(t)
	e.StepTo(context.Background(), 5)
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)

	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["run_total"], float64(1); got != want {
		t.Fatalf("run_total mismatch: got=%v want=%v", got, want)
	}
}

func TestJournal(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	h.journal(context.Background(), ctx)
	if got := errorCode(t, ctx); got != "not_configured" {
		t.Fatalf("code got=%s want=not_configured", got)
	}

	h.Journal = func() any { return []map[string]string{{"kind": "title", "text": "Winter Has Arrived"}} }
	ctx = &app.RequestContext{}
	h.journal(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status got=%d want=%d", got, consts.StatusOK)
	}
	var body []map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body) != 1 || body[0]["text"] != "Winter Has Arrived" {
		t.Fatalf("body got=%v", body)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{fmt.Errorf("wrap: %w", device.ErrNotReady), consts.StatusConflict, "device_not_ready"},
		{device.ErrFull, consts.StatusConflict, "device_full"},
		{device.ErrInsufficientWater, consts.StatusConflict, "insufficient_water"},
		{device.ErrFilterPresent, consts.StatusConflict, "filter_rejected"},
		{device.ErrUnknownDevice, consts.StatusNotFound, "unknown_device"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.wantCode {
			t.Fatalf("%v: status got=%d want=%d", tc.err, got, tc.wantCode)
		}
		if got := errorCode(t, ctx); got != tc.wantErr {
			t.Fatalf("%v: code got=%q want=%q", tc.err, got, tc.wantErr)
		}
	}
}
