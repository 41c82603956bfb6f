package world

type Biome int

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeSnow
	BiomeJungle
	BiomeOcean
	BiomeMountain
)

func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeDesert:
		return "desert"
	case BiomeSnow:
		return "snow"
	case BiomeJungle:
		return "jungle"
	case BiomeOcean:
		return "ocean"
	case BiomeMountain:
		return "mountain"
	default:
		return "unknown"
	}
}

func (b Biome) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Hot biomes add to thirst drain.
func (b Biome) Hot() bool {
	return b == BiomeDesert || b == BiomeJungle
}

// BaseTemperature is the daytime ambient temperature in Celsius.
func (b Biome) BaseTemperature() float64 {
	switch b {
	case BiomeDesert:
		return 40
	case BiomeSnow:
		return -5
	case BiomeJungle:
		return 30
	case BiomeOcean:
		return 15
	case BiomeMountain:
		return 5
	default:
		return 20
	}
}

// MountainAltitude is the ground height at which terrain reads as mountain.
const MountainAltitude = 100

// ClassifySurface maps the first solid block under an agent to a biome class.
func ClassifySurface(surface Block, groundY int) Biome {
	switch surface.Type {
	case BlockSand:
		return BiomeDesert
	case BlockSnow, BlockIce, BlockPackedIce, BlockBlueIce, BlockPowderSnow:
		return BiomeSnow
	case BlockJungleLeaves:
		return BiomeJungle
	case BlockWater:
		return BiomeOcean
	}
	if groundY >= MountainAltitude {
		return BiomeMountain
	}
	return BiomePlains
}
