package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"survivalcore/internal/app/climate"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/app/subsystems"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"
)

var ErrInvalidRequest = errors.New("invalid status request")

type AgentSource interface {
	Has(agentID string) bool
	Get(agentID string) survival.State
}

type ClimateSource interface {
	Info() climate.Info
}

type DeviceSource interface {
	List() []device.State
	Spec(kind device.Kind) (device.Spec, bool)
}

type SeasonSetter interface {
	SetSeason(ctx context.Context, id int) (climate.SeasonChanged, error)
}

type UseCase struct {
	Agents  AgentSource
	Climate ClimateSource
	Devices DeviceSource
	Seasons SeasonSetter
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.AgentID) == "" {
		return Response{}, ErrInvalidRequest
	}
	if !u.Agents.Has(req.AgentID) {
		return Response{}, fmt.Errorf("agent %s: %w", req.AgentID, ports.ErrNotFound)
	}
	st := u.Agents.Get(req.AgentID)
	band := survival.BandFor(st.BodyTemp)
	return Response{
		AgentID:  req.AgentID,
		State:    st,
		Band:     band.String(),
		Alerting: band.Alerting(),
		Readout:  subsystems.Readout(st),
		Climate:  u.Climate.Info(),
	}, nil
}

func (u UseCase) ClimateInfo(context.Context) climate.Info {
	return u.Climate.Info()
}

func (u UseCase) ListDevices(context.Context) DevicesResponse {
	states := u.Devices.List()
	out := DevicesResponse{Devices: make([]DeviceView, 0, len(states))}
	for _, s := range states {
		spec, ok := u.Devices.Spec(s.Kind)
		if !ok {
			continue
		}
		out.Devices = append(out.Devices, DeviceView{
			State:  s,
			Key:    s.Key(),
			Phase:  s.Phase(spec),
			Status: s.StatusLines(spec),
		})
	}
	return out
}

func (u UseCase) SetSeason(ctx context.Context, req SeasonRequest) (SeasonResponse, error) {
	if req.Season == nil {
		return SeasonResponse{}, ErrInvalidRequest
	}
	changed, err := u.Seasons.SetSeason(ctx, *req.Season)
	if err != nil {
		return SeasonResponse{}, err
	}
	return SeasonResponse{Changed: changed, Climate: u.Climate.Info()}, nil
}
