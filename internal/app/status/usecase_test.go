package status

import (
	"context"
	"errors"
	"testing"

	"survivalcore/internal/app/climate"
	"survivalcore/internal/app/ports"
	domainclimate "survivalcore/internal/domain/climate"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

func TestUseCase_AgentReadout(t *testing.T) {
	st := survival.DefaultState()
	st.BodyTemp = 33
	st.Wetness = 0.5
	uc := UseCase{
		Agents:  statusAgents{"agent-1": st},
		Climate: statusClimate{info: climate.Info{Day: 3, Season: domainclimate.Spring}},
	}
	resp, err := uc.Execute(context.Background(), Request{AgentID: "agent-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Band != "HYPOTHERMIA" || !resp.Alerting {
		t.Fatalf("band got=%q alerting=%v", resp.Band, resp.Alerting)
	}
	if resp.Readout != "Body Temp: 33.0°C | Wetness: 50%" {
		t.Fatalf("readout got=%q", resp.Readout)
	}
	if resp.Climate.Day != 3 {
		t.Fatalf("climate day got=%d want=3", resp.Climate.Day)
	}
}

func TestUseCase_RejectsEmptyAgentID(t *testing.T) {
	uc := UseCase{}
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_UnknownAgent(t *testing.T) {
	uc := UseCase{Agents: statusAgents{}, Climate: statusClimate{}}
	if _, err := uc.Execute(context.Background(), Request{AgentID: "ghost"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUseCase_ListDevices(t *testing.T) {
	p := device.New(device.KindPurifier, world.DimensionOverworld, world.BlockPos{X: 1, Y: 2, Z: 3})
	p.WaterLevel, p.IsDirty = 3, true
	uc := UseCase{Devices: statusDevices{states: []device.State{p, {Kind: "kiln"}}}}

	resp := uc.ListDevices(context.Background())
	if len(resp.Devices) != 1 {
		t.Fatalf("devices got=%d want=1", len(resp.Devices))
	}
	d := resp.Devices[0]
	if d.Key != "1,2,3,minecraft:overworld" || d.Phase != device.PhaseDirty {
		t.Fatalf("view got key=%q phase=%q", d.Key, d.Phase)
	}
	if len(d.Status) != 4 || d.Status[3] != "Filter: None installed" {
		t.Fatalf("status lines got=%v", d.Status)
	}
}

func TestUseCase_SetSeason(t *testing.T) {
	setter := &statusSeasons{}
	uc := UseCase{Seasons: setter, Climate: statusClimate{}}
	if _, err := uc.SetSeason(context.Background(), SeasonRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("missing season got=%v", err)
	}
	id := 2
	resp, err := uc.SetSeason(context.Background(), SeasonRequest{Season: &id})
	if err != nil {
		t.Fatalf("set season: %v", err)
	}
	if setter.got != 2 || resp.Changed.To != domainclimate.Autumn {
		t.Fatalf("setter got=%d changed=%+v", setter.got, resp.Changed)
	}

	setter.err = domainclimate.ErrInvalidSeason
	bad := -4
	if _, err := uc.SetSeason(context.Background(), SeasonRequest{Season: &bad}); !errors.Is(err, domainclimate.ErrInvalidSeason) {
		t.Fatalf("expected ErrInvalidSeason, got %v", err)
	}
}

type statusAgents map[string]survival.State

func (a statusAgents) Has(id string) bool {
	_, ok := a[id]
	return ok
}

func (a statusAgents) Get(id string) survival.State {
	if st, ok := a[id]; ok {
		return st
	}
	return survival.DefaultState()
}

type statusClimate struct {
	info climate.Info
}

func (c statusClimate) Info() climate.Info { return c.info }

type statusDevices struct {
	states []device.State
}

func (d statusDevices) List() []device.State { return d.states }

func (d statusDevices) Spec(kind device.Kind) (device.Spec, bool) {
	switch kind {
	case device.KindPurifier:
		return device.PurifierSpec(), true
	case device.KindDistiller:
		return device.DistillerSpec(), true
	}
	return device.Spec{}, false
}

type statusSeasons struct {
	got int
	err error
}

func (s *statusSeasons) SetSeason(_ context.Context, id int) (climate.SeasonChanged, error) {
	s.got = id
	if s.err != nil {
		return climate.SeasonChanged{}, s.err
	}
	return climate.SeasonChanged{To: domainclimate.Season(id)}, nil
}
