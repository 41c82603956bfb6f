package runtime

import (
	"math"

	"survivalcore/internal/domain/world"

	opensimplex "github.com/ojrac/opensimplex-go"
)

const (
	blockNetherrack = "minecraft:netherrack"
	blockEndStone   = "minecraft:end_stone"
	blockDirt       = "minecraft:dirt"

	seaLevel     = 62
	netherFloor  = 40
	endIslandTop = 50
)

// Terrain derives every untouched block from three noise layers, so any
// column can be generated on demand without storing chunks.
type Terrain struct {
	elev opensimplex.Noise
	temp opensimplex.Noise
	rain opensimplex.Noise
	seed int64
}

func NewTerrain(seed int64) *Terrain {
	return &Terrain{
		elev: opensimplex.NewNormalized(seed),
		temp: opensimplex.NewNormalized(seed + 1),
		rain: opensimplex.NewNormalized(seed + 2),
		seed: seed,
	}
}

// Column describes one overworld x/z column.
type Column struct {
	Height  int
	Surface string
	Feature string
}

func (t *Terrain) Column(x, z int) Column {
	fx, fz := float64(x), float64(z)
	elev := octaveNoise(t.elev, fx, fz, 4, 0.01, 0.5)
	temp := octaveNoise(t.temp, fx, fz, 3, 0.004, 0.5)
	rain := octaveNoise(t.rain, fx, fz, 3, 0.006, 0.5)

	height := 48 + int(elev*80)
	col := Column{Height: height}
	switch {
	case height < seaLevel:
		col.Surface = world.BlockSand
	case height >= world.MountainAltitude:
		col.Surface = world.BlockStone
		if temp < 0.45 {
			col.Surface = world.BlockSnow
		}
	case temp < 0.3:
		col.Surface = world.BlockSnow
	case temp > 0.65 && rain < 0.4:
		col.Surface = world.BlockSand
	case temp > 0.6 && rain > 0.6:
		col.Surface = world.BlockJungleLeaves
	default:
		col.Surface = world.BlockGrass
	}

	h := columnHash(x, z, t.seed)
	switch {
	case height < seaLevel:
	case col.Surface == world.BlockSnow && h%23 == 0:
		col.Feature = world.BlockPackedIce
	case col.Surface == world.BlockSand && h%61 == 0:
		col.Feature = world.BlockMagma
	case h%97 == 0:
		col.Feature = world.BlockCampfire
	}
	return col
}

// Block is the generated block at pos, ignoring any edits.
func (t *Terrain) Block(dim world.Dimension, pos world.BlockPos) world.Block {
	switch dim {
	case world.DimensionNether:
		if pos.Y <= netherFloor {
			if columnHash(pos.X, pos.Z, t.seed)%13 == 0 && pos.Y == netherFloor {
				return world.Block{Type: world.BlockLava}
			}
			return world.Block{Type: blockNetherrack}
		}
		return world.Block{Type: world.BlockAir}
	case world.DimensionEnd:
		if pos.Y <= endIslandTop {
			return world.Block{Type: blockEndStone}
		}
		return world.Block{Type: world.BlockAir}
	}

	col := t.Column(pos.X, pos.Z)
	switch {
	case pos.Y < col.Height:
		if col.Height-pos.Y <= 3 && col.Surface == world.BlockGrass {
			return world.Block{Type: blockDirt}
		}
		return world.Block{Type: world.BlockStone}
	case pos.Y == col.Height:
		return world.Block{Type: col.Surface}
	case pos.Y == col.Height+1 && col.Feature != "":
		return world.Block{Type: col.Feature}
	case pos.Y <= seaLevel:
		return world.Block{Type: world.BlockWater}
	}
	return world.Block{Type: world.BlockAir}
}

// SurfaceY is the first standable y above the column.
func (t *Terrain) SurfaceY(dim world.Dimension, x, z int) int {
	switch dim {
	case world.DimensionNether:
		return netherFloor + 1
	case world.DimensionEnd:
		return endIslandTop + 1
	}
	col := t.Column(x, z)
	if col.Height < seaLevel {
		return seaLevel + 1
	}
	return col.Height + 1
}

// octaveNoise layers several frequencies of the same noise source.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

func columnHash(x, z int, seed int64) int {
	v := x*73856093 ^ z*19349663 ^ int(seed)
	if v < 0 {
		v = -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return int(math.Max(float64(lo), math.Min(float64(hi), float64(v))))
}
