package world

import "strings"

const (
	BlockAir          = "minecraft:air"
	BlockWater        = "minecraft:water"
	BlockIce          = "minecraft:ice"
	BlockPackedIce    = "minecraft:packed_ice"
	BlockBlueIce      = "minecraft:blue_ice"
	BlockPowderSnow   = "minecraft:powder_snow"
	BlockSnow         = "minecraft:snow"
	BlockCampfire     = "minecraft:campfire"
	BlockSoulCampfire = "minecraft:soul_campfire"
	BlockFire         = "minecraft:fire"
	BlockLava         = "minecraft:lava"
	BlockMagma        = "minecraft:magma_block"
	BlockLitFurnace   = "minecraft:lit_furnace"
	BlockGrass        = "minecraft:grass_block"
	BlockSand         = "minecraft:sand"
	BlockStone        = "minecraft:stone"
	BlockJungleLeaves = "minecraft:jungle_leaves"

	BlockPurifier  = "openrealism:ceramic_purifier_block"
	BlockDistiller = "openrealism:copper_distiller_block"
)

// Block is the material at one position as reported by the host.
type Block struct {
	Type         string `json:"type"`
	Extinguished bool   `json:"extinguished,omitempty"`
}

func (b Block) IsAir() bool {
	return b.Type == "" || b.Type == BlockAir
}

// Opaque reports whether the block stops a vertical sky probe.
func (b Block) Opaque() bool {
	return !b.IsAir() && b.Type != BlockWater
}

// IsHeatSource covers the ambient heat set used for proximity checks.
func (b Block) IsHeatSource() bool {
	switch b.Type {
	case BlockCampfire:
		return !b.Extinguished
	case BlockFire, BlockLava, BlockMagma, BlockLitFurnace:
		return true
	}
	return false
}

// IsBurning covers what a distiller accepts directly underneath it.
func (b Block) IsBurning() bool {
	switch b.Type {
	case BlockCampfire, BlockSoulCampfire:
		return !b.Extinguished
	case BlockFire, BlockMagma, BlockLava:
		return true
	}
	return false
}

func (b Block) IsColdSource() bool {
	switch b.Type {
	case BlockIce, BlockPackedIce, BlockBlueIce, BlockPowderSnow:
		return true
	}
	return false
}

type Weather string

const (
	WeatherClear   Weather = "clear"
	WeatherRain    Weather = "rain"
	WeatherThunder Weather = "thunder"
)

func (w Weather) Precipitating() bool {
	return w == WeatherRain || w == WeatherThunder
}

type Slot string

const (
	SlotHead     Slot = "head"
	SlotChest    Slot = "chest"
	SlotLegs     Slot = "legs"
	SlotFeet     Slot = "feet"
	SlotMainhand Slot = "mainhand"
)

var ArmorSlots = []Slot{SlotHead, SlotChest, SlotLegs, SlotFeet}

type Item struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

func (i Item) Is(typeID string) bool {
	return i.Type == typeID
}

func (i Item) Contains(fragment string) bool {
	return strings.Contains(i.Type, fragment)
}
