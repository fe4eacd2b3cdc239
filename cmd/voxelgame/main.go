// Voxel Game - Main entry point
// A high-performance voxel streaming engine written in Go with OpenGL rendering.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxelgame/internal/applog"
	"voxelgame/internal/config"
	"voxelgame/internal/core/block"
	"voxelgame/internal/frustum"
	"voxelgame/internal/generation/terrain"
	"voxelgame/internal/physics"
	"voxelgame/internal/render"
	"voxelgame/internal/world"
)

// Build metadata - injected at build time via ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GameName  = "Voxel Engine"
)

func init() {
	// GLFW must run on the main OS thread.
	runtime.LockOSThread()
}

// Game wires the render engine to the streaming world and handles the
// thin layer of player interaction (look, move, break/place) that exists
// above it.
type Game struct {
	engine  *render.Engine
	world   *world.World
	log     *applog.Logger
	cfg     config.Config
	sky     *render.Sky
	outline *render.BlockOutlineRenderer
	breaker *render.BlockBreaker

	moveSpeed   float32
	targetBlock physics.RaycastResult

	lastPlace bool
}

func main() {
	fmt.Printf("%s %s (%s, %s)\n", GameName, Version, GitCommit, BuildDate)
	fmt.Println("Controls: WASD move, mouse look, left-click break, right-click place, Esc quit")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed, using defaults: %v\n", err)
		cfg = config.Default()
	}

	log := applog.New(applog.ParseLevel(cfg.Performance.LogLevel))
	log.Summary("main", "starting with seed=%d load_radius=%d workers=%d",
		cfg.World.Seed, cfg.World.LoadRadius, cfg.Performance.PipelineWorkers)

	game, err := NewGame(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer game.Close()

	game.Run()
}

// NewGame constructs the render engine and the world it drives.
func NewGame(cfg config.Config, log *applog.Logger) (*Game, error) {
	engineCfg := render.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Title:      GameName,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}
	engine, err := render.NewEngine(engineCfg)
	if err != nil {
		return nil, fmt.Errorf("engine init: %w", err)
	}
	if err := engine.LoadShaders(); err != nil {
		return nil, fmt.Errorf("shader load: %w", err)
	}

	terrainCfg := terrain.DefaultConfig()
	terrainCfg.TerrainAmplitude = cfg.World.TerrainAmplitude
	terrainCfg.CaveFrequency = cfg.World.CaveFrequency
	terrainCfg.TreeDensity = cfg.World.TreeDensity

	worldCfg := world.Config{
		Seed:             cfg.World.Seed,
		LoadRadius:       cfg.World.LoadRadius,
		UnloadRadius:     cfg.World.UnloadRadius,
		VerticalRadius:   cfg.World.VerticalRadius,
		VerticalBall:     cfg.World.VerticalLoading == "ball",
		PipelineWorkers:  cfg.Performance.PipelineWorkers,
		MaxLoadsPerTick:  cfg.Performance.MaxLoadsPerTick,
		MaxMeshesPerTick: cfg.Performance.MaxMeshesPerTick,
		TerrainConfig:    terrainCfg,
	}
	w := world.New(worldCfg, engine, log)

	spawnX, spawnZ := int32(0), int32(0)
	spawnY := w.SpawnHeight(spawnX, spawnZ)
	engine.GetCamera().SetPosition(mgl32.Vec3{float32(spawnX), float32(spawnY), float32(spawnZ)})
	engine.SetCursorMode(true)

	sky, err := render.NewSky()
	if err != nil {
		return nil, fmt.Errorf("sky init: %w", err)
	}
	outline, err := render.NewBlockOutlineRenderer()
	if err != nil {
		return nil, fmt.Errorf("outline init: %w", err)
	}
	breaker, err := render.NewBlockBreaker()
	if err != nil {
		return nil, fmt.Errorf("breaker init: %w", err)
	}

	return &Game{
		engine:    engine,
		world:     w,
		log:       log,
		cfg:       cfg,
		sky:       sky,
		outline:   outline,
		breaker:   breaker,
		moveSpeed: 12.0,
	}, nil
}

// Run hands control to the engine's GLFW loop until the window closes.
func (g *Game) Run() {
	g.engine.Run(g.update, g.render)
}

// Close releases the world's pipeline and engine resources.
func (g *Game) Close() {
	g.world.Close()
	g.sky.Cleanup()
	g.outline.Cleanup()
	g.breaker.Cleanup()
	g.engine.Cleanup()
}

// update runs once per frame before rendering: it moves the camera from
// input, re-centers the streaming world, and resolves the block the
// player is looking at for break/place interaction.
func (g *Game) update(dt float32) {
	input := g.engine.GetInput()
	camera := g.engine.GetCamera()

	if dx, dy := input.GetMouseDelta(); dx != 0 || dy != 0 {
		camera.ProcessMouseMovement(float32(dx), float32(-dy))
	}

	g.applyMovement(dt, input, camera)

	pos := camera.Position
	g.world.Tick(int32(pos.X()), int32(pos.Y()), int32(pos.Z()))

	g.sky.Update(dt)

	g.targetBlock = g.world.Raycast(camera.Position, camera.Front, 6.0)
	g.handleInteraction(input, dt)

	if input.IsKeyPressed(glfw.KeyEscape) {
		g.engine.CloseWindow()
	}
}

func (g *Game) applyMovement(dt float32, input *render.Input, camera *render.Camera) {
	speed := g.moveSpeed * dt
	forward := camera.Front
	right := camera.Right

	var move mgl32.Vec3
	if input.IsKeyPressed(glfw.KeyW) {
		move = move.Add(forward)
	}
	if input.IsKeyPressed(glfw.KeyS) {
		move = move.Sub(forward)
	}
	if input.IsKeyPressed(glfw.KeyD) {
		move = move.Add(right)
	}
	if input.IsKeyPressed(glfw.KeyA) {
		move = move.Sub(right)
	}
	if input.IsKeyPressed(glfw.KeySpace) {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if input.IsKeyPressed(glfw.KeyLeftShift) {
		move = move.Sub(mgl32.Vec3{0, 1, 0})
	}

	if move.Len() > 0 {
		move = move.Normalize().Mul(speed)
		camera.SetPosition(camera.Position.Add(move))
	}
}

const breakSeconds = 0.4

func (g *Game) handleInteraction(input *render.Input, dt float32) {
	breaking := input.IsMouseButtonPressed(glfw.MouseButtonLeft)
	placing := input.IsMouseButtonPressed(glfw.MouseButtonRight)

	if breaking && g.targetBlock.Hit {
		bp := g.targetBlock.BlockPos
		g.breaker.StartBreaking([3]int{int(bp[0]), int(bp[1]), int(bp[2])}, breakSeconds)
		if g.breaker.Update(dt) {
			g.world.SetBlock(bp[0], bp[1], bp[2], block.Air)
		}
	} else {
		g.breaker.StopBreaking()
	}

	if placing && !g.lastPlace && g.targetBlock.Hit {
		place := physics.GetPlacementPosition(g.targetBlock)
		g.world.SetBlock(place[0], place[1], place[2], block.Stone)
	}

	g.lastPlace = placing
}

// render draws every mesh entry surviving frustum culling against the
// current view-projection matrix.
func (g *Game) render() {
	vp := g.engine.GetViewProjection()

	g.sky.Render(vp.Inv(), g.engine.GetCamera().Position)

	g.engine.UseVoxelShader()

	fr := frustum.FromMatrix(vp)
	visible := g.world.CullVisible(fr)
	for _, entry := range visible {
		if entry.OpaqueIndexCount > 0 {
			g.engine.DrawIndexed(entry.OpaqueVBO, entry.OpaqueEBO, entry.OpaqueIndexCount)
		}
	}
	for _, entry := range visible {
		if entry.TransparentIndexCount > 0 {
			g.engine.DrawIndexed(entry.TransparentVBO, entry.TransparentEBO, entry.TransparentIndexCount)
		}
	}

	if g.targetBlock.Hit {
		bp := g.targetBlock.BlockPos
		g.outline.Render([3]int{int(bp[0]), int(bp[1]), int(bp[2])}, vp)
	}
	g.breaker.Render(vp)

	if g.log != nil {
		stats := g.world.GetStats()
		g.log.Verbose("main", "chunks=%d meshes=%d pending=%d", stats.ChunksLoaded, stats.MeshesReady, stats.PipelinePending)
	}
}
