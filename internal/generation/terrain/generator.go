// Package terrain provides procedural terrain generation over cubic,
// Store-backed chunks.
package terrain

import (
	"voxelgame/internal/core/block"
	"voxelgame/internal/core/chunk"
	"voxelgame/internal/core/noise"
	vmath "voxelgame/pkg/math"
)

// World generation constants.
const (
	SeaLevel          = 12
	TerrainBaseHeight = 20
	TerrainAmplitude  = 30
)

// Biome represents a terrain biome with its properties.
type Biome struct {
	Name       string
	Surface    block.Type
	Subsurface block.Type
	HeightMod  float64
	HasWater   bool
	WaterType  block.Type
	HasTrees   bool
	TreeChance float64
	TreeType   string
	HasFlowers bool
	HasCactus  bool
}

// Predefined biomes.
var (
	BiomePlains = Biome{
		Name: "plains", Surface: block.Grass, Subsurface: block.Dirt,
		HeightMod: 0.5, HasWater: true, HasTrees: true, TreeChance: 0.01,
		TreeType: "oak", HasFlowers: true,
	}
	BiomeDesert = Biome{
		Name: "desert", Surface: block.Sand, Subsurface: block.Sand,
		HeightMod: 0.3, HasWater: true, HasCactus: true,
	}
	BiomeSnow = Biome{
		Name: "snow", Surface: block.Snow, Subsurface: block.Dirt,
		HeightMod: 0.7, HasWater: true, WaterType: block.Ice, HasTrees: true,
		TreeChance: 0.02, TreeType: "spruce",
	}
	BiomeForest = Biome{
		Name: "forest", Surface: block.Grass, Subsurface: block.Dirt,
		HeightMod: 0.6, HasWater: true, HasTrees: true, TreeChance: 0.08,
		TreeType: "oak", HasFlowers: true,
	}
	BiomeMountains = Biome{
		Name: "mountains", Surface: block.Stone, Subsurface: block.Stone,
		HeightMod: 1.5, HasWater: true, HasTrees: true, TreeChance: 0.005,
		TreeType: "spruce",
	}
)

// Generator generates procedural terrain into block chunks.
type Generator struct {
	seed int64
	rng  *vmath.SeededRNG

	Config GeneratorConfig

	heightNoise uint32 // seed for the ValueNoise2D-based height field
	biomeNoise  *noise.SimplexNoise
	caveNoise   *noise.SimplexNoise
	detailNoise *noise.SimplexNoise

	biomeFBM  *noise.FBM
	caveFBM   *noise.FBM
	heightFBM *noise.FBM // ridged mountain detail only
}

// GeneratorConfig holds terrain generation settings.
type GeneratorConfig struct {
	SeaLevel         int
	TerrainAmplitude float32
	TreeDensity      float32
	CaveFrequency    float32
}

// DefaultConfig returns default generation config.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		SeaLevel:         12,
		TerrainAmplitude: 30.0,
		TreeDensity:      0.05,
		CaveFrequency:    0.6,
	}
}

// NewGenerator creates a new terrain generator with the given seed.
func NewGenerator(seed int64) *Generator {
	g := &Generator{
		seed:        seed,
		rng:         vmath.NewSeededRNG(seed),
		Config:      DefaultConfig(),
		heightNoise: uint32(seed),
		biomeNoise:  noise.NewSimplexNoise(seed + 1000),
		caveNoise:   noise.NewSimplexNoise(seed + 2000),
		detailNoise: noise.NewSimplexNoise(seed + 3000),
	}

	g.biomeFBM = noise.NewFBM(noise.FBMConfig{
		Octaves: 4, Lacunarity: 2.0, Persistence: 0.5, Scale: 0.002,
	})
	g.caveFBM = noise.NewFBM(noise.FBMConfig{
		Octaves: 3, Lacunarity: 2.0, Persistence: 0.5, Scale: 0.05,
	})
	g.heightFBM = noise.NewFBM(noise.FBMConfig{
		Octaves: 6, Lacunarity: 2.0, Persistence: 0.5, Scale: 0.005,
	})

	return g
}

// GenerateChunk fills a chunk with terrain. Chunks are cubic, so a single
// chunk only ever covers one vertical Size-tall slab of a world column; the
// height field itself is column-global and doesn't depend on the chunk's Y.
func (g *Generator) GenerateChunk(c *chunk.Chunk) {
	startX := int(c.Coord.X) * chunk.Size
	startY := int(c.Coord.Y) * chunk.Size
	startZ := int(c.Coord.Z) * chunk.Size

	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			wx := startX + lx
			wz := startZ + lz
			g.generateColumn(c, lx, lz, wx, wz, startY)
		}
	}

	g.generateStructures(c, startX, startY, startZ)
	g.generateDecorations(c, startX, startY, startZ)
	g.generateWaterfalls(c, startX, startY, startZ)
	g.generateDungeons(c, startX, startY, startZ)
	g.generateCampfires(c, startX, startY, startZ)

	c.Generated = true
}

// generateColumn fills the portion of a world column that falls inside this
// chunk's vertical slab [startY, startY+Size).
func (g *Generator) generateColumn(c *chunk.Chunk, lx, lz, wx, wz, startY int) {
	biome := g.getBiome(wx, wz)
	baseHeight := g.getTerrainHeight(wx, wz, biome)

	for ly := 0; ly < chunk.Size; ly++ {
		wy := startY + ly
		var t block.Type = block.Air

		switch {
		case wy == 0:
			t = block.Bedrock
		case wy < baseHeight-4:
			t = g.getUndergroundBlock(wx, wy, wz, biome)
		case wy < baseHeight:
			t = biome.Subsurface
		case wy == baseHeight:
			t = g.getSurfaceBlock(baseHeight, biome)
		case wy < g.Config.SeaLevel && biome.HasWater:
			t = block.Water
		}

		if t != block.Air {
			c.Set(lx, ly, lz, t)
		}
	}
}

// getBiome determines the biome at a world position.
func (g *Generator) getBiome(wx, wz int) Biome {
	temperature := g.biomeFBM.Sample2D(g.biomeNoise, float64(wx), float64(wz))
	humidity := g.biomeFBM.Sample2D(g.biomeNoise, float64(wx)+5000, float64(wz)+5000)

	if temperature > 0.3 {
		if humidity < -0.2 {
			return BiomeDesert
		}
		return BiomePlains
	} else if temperature < -0.3 {
		return BiomeSnow
	}
	if humidity > 0.2 {
		return BiomeForest
	}
	return BiomeMountains
}

// getTerrainHeight calculates terrain height at a position using the
// three-octave value-noise fractal (weights 0.6/0.25/0.15) as the primary
// height field, with ridged Simplex FBM layered on for mountain ruggedness.
func (g *Generator) getTerrainHeight(wx, wz int, biome Biome) int {
	height := float64(TerrainBaseHeight)

	fbmValue := noise.FractalValueNoise2D(float64(wx)*0.01, float64(wz)*0.01, g.heightNoise)

	temperature := g.biomeFBM.Sample2D(g.biomeNoise, float64(wx), float64(wz))

	heightMod := 0.5
	if temperature < -0.3 {
		factor := (temperature + 0.3) * -5.0
		heightMod = 0.5 + factor*1.0
	} else if temperature > 0.3 {
		factor := (temperature - 0.3) * 5.0
		heightMod = 0.5 - factor*0.2
	}

	height += fbmValue * float64(g.Config.TerrainAmplitude) * heightMod

	detail := noise.ValueNoise2D(float64(wx)*0.1, float64(wz)*0.1, g.heightNoise+7) * 2
	height += detail

	if biome.Name == "mountains" {
		ridged := g.heightFBM.Ridged2D(g.caveNoise, float64(wx)*2, float64(wz)*2)
		height += ridged * 20
	} else if temperature < -0.2 && temperature > -0.4 {
		ridged := g.heightFBM.Ridged2D(g.caveNoise, float64(wx)*2, float64(wz)*2)
		blend := absDouble((temperature + 0.2) / -0.2)
		if blend > 1.0 {
			blend = 1.0
		}
		height += ridged * 10 * blend
	}

	result := int(height)
	if result < 1 {
		result = 1
	}
	return result
}

func absDouble(n float64) float64 {
	if n < 0 {
		return -n
	}
	return n
}

// getUndergroundBlock determines block type underground, including caves
// and ores. Unlike a column-chunk model there's no local height ceiling on
// either; the chunk's own vertical slab already bounds them.
func (g *Generator) getUndergroundBlock(wx, wy, wz int, biome Biome) block.Type {
	caveValue := g.caveFBM.Sample3D(g.caveNoise, float64(wx), float64(wy), float64(wz))
	if caveValue > float64(g.Config.CaveFrequency) && wy > 5 {
		if wy < 10 && caveValue > float64(g.Config.CaveFrequency)+0.05 {
			return block.Lava
		}
		return block.Air
	}

	oreChance := g.detailNoise.Noise3D(float64(wx)*0.2, float64(wy)*0.2, float64(wz)*0.2)

	switch {
	case wy < 15 && oreChance > 0.85:
		return block.DiamondOre
	case wy < 30 && oreChance > 0.8:
		return block.GoldOre
	case wy < 45 && oreChance > 0.75:
		return block.IronOre
	case oreChance > 0.7:
		return block.CoalOre
	}

	return block.Stone
}

// getSurfaceBlock determines the surface block.
func (g *Generator) getSurfaceBlock(height int, biome Biome) block.Type {
	if height <= g.Config.SeaLevel+2 && biome.Name != "desert" {
		return block.Sand
	}
	return biome.Surface
}

// withinChunk reports whether world-Y wy falls inside this chunk's
// vertical slab, converting to a local Y.
func withinChunk(wy, startY int) (int, bool) {
	ly := wy - startY
	return ly, ly >= 0 && ly < chunk.Size
}

// generateStructures generates trees and cacti. Only the portion of a
// structure that lands inside this chunk's vertical slab is written;
// decoration passes are confined to the slab containing the surface, so a
// structure never spills into a sibling chunk above or below.
func (g *Generator) generateStructures(c *chunk.Chunk, startX, startY, startZ int) {
	chunkRng := vmath.NewSeededRNG(g.seed + int64(c.Coord.X)*1000 + int64(c.Coord.Z) + int64(c.Coord.Y)*97)

	for lx := 2; lx < chunk.Size-2; lx++ {
		for lz := 2; lz < chunk.Size-2; lz++ {
			wx := startX + lx
			wz := startZ + lz
			biome := g.getBiome(wx, wz)
			height := g.getTerrainHeight(wx, wz, biome)

			ly, inSlab := withinChunk(height, startY)
			if !inSlab || height <= g.Config.SeaLevel {
				continue
			}

			densityMultiplier := g.Config.TreeDensity / 0.05

			if biome.HasTrees && chunkRng.Next() < biome.TreeChance*float64(densityMultiplier) {
				g.generateTree(c, lx, ly+1, lz, biome.TreeType, chunkRng)
			}
			if biome.HasCactus && chunkRng.Next() < 0.005 {
				g.generateCactus(c, lx, ly+1, lz, chunkRng)
			}
		}
	}
}

// generateTree generates a tree at the given local position. Trunk/leaves
// that would extend past this chunk's top are clipped rather than
// continued into the chunk above.
func (g *Generator) generateTree(c *chunk.Chunk, lx, ly, lz int, treeType string, rng *vmath.SeededRNG) {
	height := 4 + rng.NextInt(0, 2)

	var logType, leafType block.Type
	switch treeType {
	case "birch":
		logType, leafType = block.BirchLog, block.BirchLeaves
	case "spruce":
		logType, leafType = block.SpruceLog, block.SpruceLeaves
	default:
		logType, leafType = block.OakLog, block.OakLeaves
	}

	for i := 0; i < height; i++ {
		if ly+i < chunk.Size {
			c.Set(lx, ly+i, lz, logType)
		}
	}

	leafStart := height - 2
	for dy := leafStart; dy <= height+1; dy++ {
		radius := 2
		if dy == height+1 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if abs(dx)+abs(dz) <= radius+1 {
					nlx, nlz, nly := lx+dx, lz+dz, ly+dy
					if nlx >= 0 && nlx < chunk.Size && nlz >= 0 && nlz < chunk.Size && nly >= 0 && nly < chunk.Size {
						if c.Get(nlx, nly, nlz) == block.Air {
							c.Set(nlx, nly, nlz, leafType)
						}
					}
				}
			}
		}
	}
}

// generateCactus generates a cactus.
func (g *Generator) generateCactus(c *chunk.Chunk, lx, ly, lz int, rng *vmath.SeededRNG) {
	height := 2 + rng.NextInt(0, 2)
	for i := 0; i < height; i++ {
		if ly+i < chunk.Size {
			c.Set(lx, ly+i, lz, block.Cactus)
		}
	}
}

// SetConfig updates the generator configuration.
func (g *Generator) SetConfig(config GeneratorConfig) {
	g.Config = config
}

// generateDecorations generates flowers and tall grass.
func (g *Generator) generateDecorations(c *chunk.Chunk, startX, startY, startZ int) {
	chunkRng := vmath.NewSeededRNG(g.seed + int64(c.Coord.X)*2000 + int64(c.Coord.Z) + int64(c.Coord.Y)*97)

	for lx := 0; lx < chunk.Size; lx++ {
		for lz := 0; lz < chunk.Size; lz++ {
			wx := startX + lx
			wz := startZ + lz
			biome := g.getBiome(wx, wz)
			height := g.getTerrainHeight(wx, wz, biome)

			ly, inSlab := withinChunk(height, startY)
			if !inSlab || height <= g.Config.SeaLevel {
				continue
			}

			surfaceBlock := c.Get(lx, ly, lz)
			if surfaceBlock != block.Grass {
				continue
			}

			if biome.HasFlowers {
				if chunkRng.Next() < 0.15 {
					c.Set(lx, ly+1, lz, block.TallGrass)
				} else if chunkRng.Next() < 0.02 {
					flowerType := block.FlowerYellow
					if chunkRng.Next() > 0.5 {
						flowerType = block.FlowerRed
					}
					c.Set(lx, ly+1, lz, flowerType)
				}
			}

			if chunkRng.Next() < 0.005 {
				mushroom := block.MushroomBrown
				if chunkRng.Next() > 0.5 {
					mushroom = block.MushroomRed
				}
				c.Set(lx, ly+1, lz, mushroom)
			}
		}
	}
}

// generateWaterfalls generates waterfalls in mountain biomes.
func (g *Generator) generateWaterfalls(c *chunk.Chunk, startX, startY, startZ int) {
	chunkRng := vmath.NewSeededRNG(g.seed + int64(c.Coord.X)*3000 + int64(c.Coord.Z) + int64(c.Coord.Y)*97)

	if chunkRng.Next() > 0.15 {
		return
	}

	for lx := 3; lx < chunk.Size-3; lx++ {
		for lz := 3; lz < chunk.Size-3; lz++ {
			wx := startX + lx
			wz := startZ + lz
			biome := g.getBiome(wx, wz)
			if biome.Name != "mountains" {
				continue
			}

			height := g.getTerrainHeight(wx, wz, biome)
			ly, inSlab := withinChunk(height, startY)
			if !inSlab || height < 35 {
				continue
			}

			directions := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
			for _, dir := range directions {
				nwx, nwz := wx+dir[0]*2, wz+dir[1]*2
				neighborHeight := g.getTerrainHeight(nwx, nwz, g.getBiome(nwx, nwz))
				heightDiff := height - neighborHeight

				if heightDiff >= 8 && chunkRng.Next() < 0.3 {
					c.Set(lx, ly, lz, block.Water)

					currentY := ly - 1
					currentX := lx + dir[0]
					currentZ := lz + dir[1]
					targetLocalY, _ := withinChunk(neighborHeight, startY)

					for currentY > targetLocalY && currentY > g.Config.SeaLevel-startY {
						if currentX >= 0 && currentX < chunk.Size && currentZ >= 0 && currentZ < chunk.Size && currentY >= 0 && currentY < chunk.Size {
							if c.Get(currentX, currentY, currentZ) == block.Air {
								c.Set(currentX, currentY, currentZ, block.Water)
							}
						}
						currentY--
					}

					g.generateLake(c, currentX, targetLocalY, currentZ, 3, block.Water)
					return
				}
			}
		}
	}
}

// generateLake creates a small circular pool around a local position.
func (g *Generator) generateLake(c *chunk.Chunk, lx, ly, lz, radius int, liquid block.Type) {
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz <= radius*radius {
				nx, nz := lx+dx, lz+dz
				if nx >= 0 && nx < chunk.Size && nz >= 0 && nz < chunk.Size {
					for dy := -1; dy <= 0; dy++ {
						ny := ly + dy
						if ny > 0 && ny < chunk.Size {
							c.Set(nx, ny, nz, liquid)
						}
					}
				}
			}
		}
	}
}

// generateDungeons places stone brick structures in large cave pockets.
func (g *Generator) generateDungeons(c *chunk.Chunk, startX, startY, startZ int) {
	chunkRng := vmath.NewSeededRNG(g.seed + int64(c.Coord.X)*4000 + int64(c.Coord.Z) + int64(c.Coord.Y)*97)

	if chunkRng.Next() > 0.05 {
		return
	}

	for attempt := 0; attempt < 10; attempt++ {
		lx := chunkRng.NextInt(4, chunk.Size-4)
		lz := chunkRng.NextInt(4, chunk.Size-4)
		ly := chunkRng.NextInt(4, chunk.Size-4)

		if c.Get(lx, ly, lz) == block.Air {
			g.buildDungeonRoom(c, lx, ly, lz, chunkRng)
			return
		}
	}
}

func (g *Generator) buildDungeonRoom(c *chunk.Chunk, x, y, z int, rng *vmath.SeededRNG) {
	width := rng.NextInt(5, 8)
	height := rng.NextInt(4, 6)
	depth := rng.NextInt(5, 8)

	for dx := -width / 2; dx <= width/2; dx++ {
		for dy := 0; dy < height; dy++ {
			for dz := -depth / 2; dz <= depth/2; dz++ {
				nx, ny, nz := x+dx, y+dy, z+dz
				if nx < 0 || nx >= chunk.Size || ny < 0 || ny >= chunk.Size || nz < 0 || nz >= chunk.Size {
					continue
				}

				isWall := dx == -width/2 || dx == width/2 || dy == 0 || dy == height-1 || dz == -depth/2 || dz == depth/2
				if isWall {
					brick := block.StoneBrick
					if rng.Next() < 0.2 {
						brick = block.MossyStoneBrick
					}
					c.Set(nx, ny, nz, brick)
				} else {
					c.Set(nx, ny, nz, block.Air)
				}
			}
		}
	}
}

// generateCampfires places campfires on the surface.
func (g *Generator) generateCampfires(c *chunk.Chunk, startX, startY, startZ int) {
	chunkRng := vmath.NewSeededRNG(g.seed + int64(c.Coord.X)*5000 + int64(c.Coord.Z) + int64(c.Coord.Y)*97)

	if chunkRng.Next() > 0.02 {
		return
	}

	lx := chunkRng.NextInt(2, chunk.Size-2)
	lz := chunkRng.NextInt(2, chunk.Size-2)
	wx := startX + lx
	wz := startZ + lz
	biome := g.getBiome(wx, wz)

	if biome.Name == "plains" || biome.Name == "forest" {
		height := g.getTerrainHeight(wx, wz, biome)
		ly, inSlab := withinChunk(height, startY)
		if inSlab && height > g.Config.SeaLevel && ly+1 < chunk.Size {
			c.Set(lx, ly+1, lz, block.Campfire)
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GetBiomeName returns the biome name at world coordinates.
func (g *Generator) GetBiomeName(wx, wz int) string {
	return g.getBiome(wx, wz).Name
}
