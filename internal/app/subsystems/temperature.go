package subsystems

import (
	"context"
	"fmt"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

const steamCue = "minecraft:basic_smoke_particle"

type Temperature struct {
	Deps
}

func (Temperature) Name() string { return "temperature" }

func (t Temperature) Run(ctx context.Context, tick uint64) error {
	agents, err := t.living(ctx)
	if err != nil {
		return err
	}
	raining := t.weather(ctx).Precipitating()
	for _, a := range agents {
		if err := t.regulate(ctx, a, raining, tick); err != nil {
			return err
		}
	}
	return nil
}

func (t Temperature) regulate(ctx context.Context, a ports.Agent, raining bool, tick uint64) error {
	sample := t.Env.Get(ctx, a, tick)
	in := survival.WetnessInput{
		InWater:    a.InWater,
		Raining:    raining && a.Dimension == world.DimensionOverworld,
		SkyExposed: sample.SkyExposed,
		NearHeat:   sample.NearHeat,
	}
	before := t.Store.Wetness(a.ID)
	wetness := t.Store.UpdateWetness(a.ID, in)
	if survival.SteamCue(before, in) {
		t.Host.Cue(ctx, a.Dimension, a.Position, steamCue)
	}

	envTemp := sample.EnvTemp
	if a.Dimension == world.DimensionOverworld {
		envTemp += t.Climate.Modifier()
	}
	ins := survival.ClothingInsulation(t.equipment(ctx, a.ID))
	target := survival.TargetBodyTemp(envTemp, ins, wetness)
	body := t.Store.RegulateBodyTemp(a.ID, target, t.Tuning.RegulationRate)

	band := survival.BandFor(body)
	policy := survival.PolicyFor(band)
	if err := t.Effects.Damage(ctx, a.ID, policy.Damage, policy.Cause); err != nil {
		return err
	}
	if err := t.Effects.Apply(ctx, a.ID, policy.Effects...); err != nil {
		return err
	}
	if err := t.Effects.OnEnter(ctx, a.ID, "temperature-danger", policy.Damage > 0, "Your body temperature is dangerous: "+policy.Label); err != nil {
		return err
	}
	if band.Alerting() {
		return t.Effects.ActionBar(ctx, a.ID, BandReadout(band, body), tick, t.Tuning.TitleEvery)
	}
	return nil
}

func BandReadout(band survival.TempBand, body float64) string {
	return fmt.Sprintf("%s (%.1f°C)", band, body)
}

// Readout is the body temperature line shown on request.
func Readout(st survival.State) string {
	return fmt.Sprintf("Body Temp: %.1f°C | Wetness: %.0f%%", st.BodyTemp, st.Wetness*100)
}
