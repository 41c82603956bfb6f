package device

import "survivalcore/internal/domain/world"

type Kind string

const (
	KindPurifier  Kind = "purifier"
	KindDistiller Kind = "distiller"
)

const (
	ItemWaterBucket      = "minecraft:water_bucket"
	ItemBucket           = "minecraft:bucket"
	ItemGlassBottle      = "minecraft:glass_bottle"
	ItemDirtyWaterBottle = "openrealism:dirty_water_bottle"
	ItemCharcoalFilter   = "openrealism:charcoal_filter"
	ItemCanteenEmpty     = "openrealism:canteen_empty"
	ItemPurifiedBottle   = "openrealism:purified_water_bottle"
	ItemCanteenClean     = "openrealism:canteen_clean"
	ItemDistilledBottle  = "openrealism:distilled_water_bottle"
	ItemCanteenDistilled = "openrealism:canteen_distilled"
)

const (
	BottleUnits             = 1
	BucketUnits             = 3
	CanteenUnits            = 3
	DefaultProcessTicks     = 600
	DefaultFilterDurability = 8
)

// Spec is the fixed configuration of one device kind.
type Spec struct {
	Kind             Kind
	Block            string
	Name             string
	Capacity         int
	ProcessTicks     int
	Period           uint64
	RequiresFilter   bool
	FilterDurability int
	HeatBelow        bool
	WorkingLabel     string
	BottleOutput     string
	CanteenOutput    string
	Cue              string
}

func PurifierSpec() Spec {
	return Spec{
		Kind:             KindPurifier,
		Block:            world.BlockPurifier,
		Name:             "Purifier",
		Capacity:         3,
		ProcessTicks:     DefaultProcessTicks,
		Period:           20,
		RequiresFilter:   true,
		FilterDurability: DefaultFilterDurability,
		WorkingLabel:     "Purifying...",
		BottleOutput:     ItemPurifiedBottle,
		CanteenOutput:    ItemCanteenClean,
		Cue:              "minecraft:water_drip_particle",
	}
}

func DistillerSpec() Spec {
	return Spec{
		Kind:          KindDistiller,
		Block:         world.BlockDistiller,
		Name:          "Distiller",
		Capacity:      3,
		ProcessTicks:  DefaultProcessTicks,
		Period:        40,
		HeatBelow:     true,
		WorkingLabel:  "Distilling...",
		BottleOutput:  ItemDistilledBottle,
		CanteenOutput: ItemCanteenDistilled,
		Cue:           "minecraft:campfire_smoke_particle",
	}
}

// HeatSatisfied applies the kind's heat predicate. Purifiers run cold;
// distillers need a burning block directly underneath.
func (s Spec) HeatSatisfied(below world.Block) bool {
	if !s.HeatBelow {
		return true
	}
	return below.IsBurning()
}

// Input describes how a held item changes a device.
type Input struct {
	Units    int
	Returned string
}

// WaterInput reports the units an item pours in and what the agent gets back.
func WaterInput(itemType string) (Input, bool) {
	switch itemType {
	case ItemWaterBucket:
		return Input{Units: BucketUnits, Returned: ItemBucket}, true
	case ItemDirtyWaterBottle:
		return Input{Units: BottleUnits, Returned: ItemGlassBottle}, true
	}
	return Input{}, false
}

// ContainerNeed reports how many units an empty container takes.
func ContainerNeed(itemType string) (int, bool) {
	switch itemType {
	case ItemGlassBottle:
		return BottleUnits, true
	case ItemCanteenEmpty:
		return CanteenUnits, true
	}
	return 0, false
}

func (s Spec) Output(container string) string {
	if container == ItemCanteenEmpty {
		return s.CanteenOutput
	}
	return s.BottleOutput
}
