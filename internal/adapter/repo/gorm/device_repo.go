package gormrepo

import (
	"context"
	"fmt"
	"time"

	"survivalcore/internal/adapter/repo/gorm/model"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepo struct {
	db *gorm.DB
}

func NewDeviceRepo(db *gorm.DB) DeviceRepo {
	return DeviceRepo{db: db}
}

func (r DeviceRepo) SaveDevice(ctx context.Context, s device.State) error {
	m := toDeviceModel(s)
	err := dbFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"kind", "dimension", "x", "y", "z", "water_level", "is_dirty",
			"has_filter", "filter_uses_left", "progress_ticks", "updated_at",
		}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("save device %s: %w", m.DeviceKey, err)
	}
	return nil
}

func (r DeviceRepo) DeleteDevice(ctx context.Context, key string) error {
	if err := dbFrom(ctx, r.db).Where("device_key = ?", key).Delete(&model.SurvivalDevice{}).Error; err != nil {
		return fmt.Errorf("delete device %s: %w", key, err)
	}
	return nil
}

func (r DeviceRepo) ListDevices(ctx context.Context) ([]device.State, error) {
	var rows []model.SurvivalDevice
	if err := dbFrom(ctx, r.db).Order("device_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	out := make([]device.State, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromDeviceModel(m))
	}
	return out, nil
}

func toDeviceModel(s device.State) model.SurvivalDevice {
	return model.SurvivalDevice{
		DeviceKey:      s.Key(),
		Kind:           string(s.Kind),
		Dimension:      string(s.Dimension),
		X:              int32(s.Position.X),
		Y:              int32(s.Position.Y),
		Z:              int32(s.Position.Z),
		WaterLevel:     int32(s.WaterLevel),
		IsDirty:        s.IsDirty,
		HasFilter:      s.HasFilter,
		FilterUsesLeft: int32(s.FilterUsesLeft),
		ProgressTicks:  int32(s.ProgressTicks),
		UpdatedAt:      time.Now(),
	}
}

func fromDeviceModel(m model.SurvivalDevice) device.State {
	return device.State{
		Kind:           device.Kind(m.Kind),
		Dimension:      world.Dimension(m.Dimension),
		Position:       world.BlockPos{X: int(m.X), Y: int(m.Y), Z: int(m.Z)},
		WaterLevel:     int(m.WaterLevel),
		IsDirty:        m.IsDirty,
		HasFilter:      m.HasFilter,
		FilterUsesLeft: int(m.FilterUsesLeft),
		ProgressTicks:  int(m.ProgressTicks),
	}
}
