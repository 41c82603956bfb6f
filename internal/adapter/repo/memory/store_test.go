package memory

import (
	"context"
	"testing"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/world"
)

var _ ports.Persistence = (*Store)(nil)

func TestStore_Scalars(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	if _, ok, _ := s.GetScalar(ctx, "p-1", ports.ScalarThirst); ok {
		t.Fatalf("expected missing scalar")
	}
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		return s.SetScalar(ctx, "p-1", ports.ScalarThirst, 12.5)
	})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.GetScalar(ctx, "p-1", ports.ScalarThirst)
	if err != nil || !ok || v != 12.5 {
		t.Fatalf("get got=(%v,%v,%v) want=(12.5,true,nil)", v, ok, err)
	}
	if _, ok, _ := s.GetScalar(ctx, ports.ScopeWorld, ports.ScalarThirst); ok {
		t.Fatalf("scopes must not collide")
	}
}

func TestStore_Devices(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := device.New(device.KindPurifier, world.DimensionOverworld, world.BlockPos{X: 2})
	b := device.New(device.KindDistiller, world.DimensionOverworld, world.BlockPos{X: 1})
	_ = s.SaveDevice(ctx, a)
	_ = s.SaveDevice(ctx, b)
	a.WaterLevel = 3
	_ = s.SaveDevice(ctx, a)

	got, _ := s.ListDevices(ctx)
	if len(got) != 2 || got[0].Key() != b.Key() || got[1].WaterLevel != 3 {
		t.Fatalf("list got=%+v", got)
	}
	_ = s.DeleteDevice(ctx, a.Key())
	got, _ = s.ListDevices(ctx)
	if len(got) != 1 {
		t.Fatalf("after delete got=%+v", got)
	}
}
