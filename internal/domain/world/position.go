package world

import (
	"fmt"
	"math"
)

type Dimension string

const (
	DimensionOverworld Dimension = "minecraft:overworld"
	DimensionNether    Dimension = "minecraft:nether"
	DimensionEnd       Dimension = "minecraft:the_end"
)

// Vec3 is a continuous world location (agent position, velocity, view direction).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Block() BlockPos {
	return BlockPos{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y)), Z: int(math.Floor(v.Z))}
}

func (v Vec3) HorizontalSpeed() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

type BlockPos struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Key is the stable string identity used for position-keyed tables.
func (p BlockPos) Key() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

func (p BlockPos) Below() BlockPos {
	return BlockPos{X: p.X, Y: p.Y - 1, Z: p.Z}
}

func (p BlockPos) Above() BlockPos {
	return BlockPos{X: p.X, Y: p.Y + 1, Z: p.Z}
}

func (p BlockPos) Offset(dx, dy, dz int) BlockPos {
	return BlockPos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}
