package terrain

import (
	"voxelgame/internal/core/chunk"
	"voxelgame/internal/core/density"
)

// BlockProvider and DensityProvider let the pipeline dispatch generation
// without caring which schema a given chunk coordinate belongs to.
type BlockProvider interface {
	GenerateChunk(c *chunk.Chunk)
}

type DensityProvider interface {
	GenerateChunk(c *density.Chunk)
}

var (
	_ BlockProvider   = (*Generator)(nil)
	_ DensityProvider = (*DensityGenerator)(nil)
)

// Material ids for density-chunk samples. These are a smaller, independent
// space from block.Material since density terrain doesn't carry a block
// palette to key off of.
const (
	densityMaterialStone = uint8(1)
	densityMaterialDirt  = uint8(2)
	densityMaterialSand  = uint8(3)
)

// DensityGenerator fills density chunks (marching-cubes terrain) from the
// same noise sources as Generator, so a world can mix cubic block chunks
// and density chunks side by side and have their surfaces agree.
type DensityGenerator struct {
	g *Generator
}

// NewDensityGenerator builds a density generator sharing a Generator's
// noise fields, so a density chunk and a block chunk built from the same
// seed produce matching surfaces.
func NewDensityGenerator(seed int64) *DensityGenerator {
	return &DensityGenerator{g: NewGenerator(seed)}
}

// GenerateChunk fills every density sample in c from the terrain height
// field, writing a signed distance to the surface into uint8 density space
// centered on density.IsoLevel (spec §3), with caves carved by pushing
// density back outside wherever the 3D cave noise clears the threshold.
func (dg *DensityGenerator) GenerateChunk(c *density.Chunk) {
	g := dg.g
	startX := int(c.Coord.X) * density.Size
	startY := int(c.Coord.Y) * density.Size
	startZ := int(c.Coord.Z) * density.Size

	const samplesPerAxis = density.Size + 1

	for sz := 0; sz < samplesPerAxis; sz++ {
		wz := startZ + sz
		for sx := 0; sx < samplesPerAxis; sx++ {
			wx := startX + sx
			biome := g.getBiome(wx, wz)
			surfaceHeight := g.getTerrainHeight(wx, wz, biome)

			for sy := 0; sy < samplesPerAxis; sy++ {
				wy := startY + sy

				dist := float64(wy - surfaceHeight)
				cave := g.caveFBM.Sample3D(g.caveNoise, float64(wx), float64(wy), float64(wz))
				if cave > float64(g.Config.CaveFrequency) && wy > 5 && wy < surfaceHeight {
					dist = 4
				}

				c.SetSample(sx, sy, sz, distanceToDensity(dist), materialAt(wy, surfaceHeight))
			}
		}
	}
}

// distanceToDensity maps a signed world-space distance from the surface
// (negative = underground) into the uint8 density range, with one unit of
// world distance worth 16 density steps so a few blocks of depth reach full
// solidity. Density counts solid upward from IsoLevel (spec §3: ">threshold
// counts as solid"), so a negative (underground) distance has to scale up,
// not down.
func distanceToDensity(dist float64) uint8 {
	scaled := -dist*16.0 + float64(density.IsoLevel)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func materialAt(wy, surfaceHeight int) uint8 {
	if wy >= surfaceHeight-1 {
		return densityMaterialDirt
	}
	return densityMaterialStone
}
