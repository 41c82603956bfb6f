package status

import (
	"survivalcore/internal/app/climate"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"
)

type Request struct {
	AgentID string
}

type Response struct {
	AgentID  string         `json:"agent_id"`
	State    survival.State `json:"state"`
	Band     string         `json:"band"`
	Alerting bool           `json:"alerting"`
	Readout  string         `json:"readout"`
	Climate  climate.Info   `json:"climate"`
}

type DeviceView struct {
	device.State
	Key    string       `json:"key"`
	Phase  device.Phase `json:"phase"`
	Status []string     `json:"status"`
}

type DevicesResponse struct {
	Devices []DeviceView `json:"devices"`
}

type SeasonRequest struct {
	Season *int `json:"season"`
}

type SeasonResponse struct {
	Changed climate.SeasonChanged `json:"changed"`
	Climate climate.Info          `json:"climate"`
}
