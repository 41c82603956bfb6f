package subsystems

import (
	"context"

	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

// Nutrition reacts to meals only; it has no periodic work.
type Nutrition struct {
	Deps
}

func (n Nutrition) Eat(ctx context.Context, agentID string, item world.Item) (survival.DietVerdict, bool, error) {
	if !survival.IsFood(item.Type) {
		return survival.DietFresh, false, nil
	}
	v := survival.Verdict(n.Store.RecordFood(agentID, survival.FoodKind(item.Type)))
	if err := n.Effects.Message(ctx, agentID, v.Message()); err != nil {
		return v, true, err
	}
	return v, true, n.Effects.Apply(ctx, agentID, v.Effects()...)
}
