package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/AdrianBisson/YEN/camera"
	"github.com/AdrianBisson/YEN/components"
	"github.com/AdrianBisson/YEN/config"
	"github.com/AdrianBisson/YEN/renderer"
	"github.com/AdrianBisson/YEN/systems"
	"github.com/AdrianBisson/YEN/telemetry"
	"github.com/AdrianBisson/YEN/ui"
)

// Options configures a game instance.
type Options struct {
	Seed           int64          // RNG seed (used as-is; callers resolve 0 themselves)
	Headless       bool           // No raylib: skip camera, renderer, and UI
	Config         *config.Config // nil = the global config from config.Cfg()
	StepsPerUpdate int            // Simulation ticks per Update call (min 1)
	StatsWindowSec float64        // Stats window override in sim seconds (0 = config)
	LogStats       bool           // Emit window stats and perf via slog
	OutputDir      string         // CSV logs and config snapshot (empty = disabled)
	SnapshotDir    string         // World snapshots on highlights (empty = disabled)

	// StatsCallback receives every flushed stats window. Used by the tuner.
	StatsCallback func(telemetry.WindowStats)
	// EventCallback receives every simulation event as it happens.
	EventCallback func(telemetry.Event)
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	cfg   *config.Config
	rng   *rand.Rand
	seed  int64

	// Entity mappers
	bodyMapper *ecs.Map2[components.Position, components.Body]
	wallMapper *ecs.Map3[components.Position, components.Body, components.Wall]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]

	// Filter over the nibble archetype, walked by the render path
	nibFilter *ecs.Filter2[components.Position, components.Nibble]

	// Spatial index and collision engine
	index  *systems.SpatialIndex
	engine *systems.CollisionEngine

	// Actors
	player  *Snake
	shadows []*Snake
	nibbles *NibbleField
	walls   []ecs.Entity

	// Timers in sim milliseconds
	lastShadowSpawnMs float64
	lastNibbleSpawnMs float64

	// Scratch buffers reused across ticks
	heads        []systems.HeadRef
	collisionBuf []systems.CollisionEvent
	nibbleBuf    []r3.Vec
	shadowLenBuf []float64
	dueBuf       []int
	doomedBuf    []doomed

	// Steering worker pool
	steer *steerPool

	// State
	tick           int32
	nextID         uint32
	score          int
	paused         bool
	gameOver       bool
	headless       bool
	stepsPerUpdate int
	prevPlayerPos  r3.Vec

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	lifeTracker   *telemetry.LifeTracker
	detector      *telemetry.HighlightDetector
	leaderboard   *telemetry.Leaderboard
	output        *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	eventCallback func(telemetry.Event)
	logStats      bool
	snapshotDir   string

	// Events produced this frame, consumed by the renderer
	frameEvents []telemetry.Event

	// Rendering and UI (nil in headless mode)
	cam        *camera.Camera
	background *renderer.Background
	arena      *renderer.Arena
	particles  *renderer.ParticleSystem
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	inspector  *ui.InspectorPanel
	perfPanel  *ui.PerfPanel
	uiOverlays *ui.OverlayRegistry
	selectedID uint32 // Snake under inspection (0 = none)
}

// NewGameWithOptions creates a game instance with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps <= 0 {
		steps = 1
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()

	g := &Game{
		world: world,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		seed:  opts.Seed,

		bodyMapper: ecs.NewMap2[components.Position, components.Body](world),
		wallMapper: ecs.NewMap3[components.Position, components.Body, components.Wall](world),
		posMap:     ecs.NewMap1[components.Position](world),
		bodyMap:    ecs.NewMap1[components.Body](world),
		nibFilter:  ecs.NewFilter2[components.Position, components.Nibble](world),

		nextID:         1,
		stepsPerUpdate: steps,
		headless:       opts.Headless,

		lastShadowSpawnMs: math.Inf(-1),
		lastNibbleSpawnMs: 0,

		statsCallback: opts.StatsCallback,
		eventCallback: opts.EventCallback,
		logStats:      opts.LogStats,
		snapshotDir:   opts.SnapshotDir,
	}

	// Spatial index and collision engine
	g.index = systems.NewSpatialIndex(cfg.Arena.CellSize)
	g.engine = systems.NewCollisionEngine(g.index, g.posMap, g.bodyMap)

	// Telemetry
	g.collector = telemetry.NewCollector(statsWindow, cfg.Sim.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.lifeTracker = telemetry.NewLifeTracker()
	g.detector = telemetry.NewHighlightDetector(cfg.Telemetry.HighlightHistorySize)
	if cfg.Leaderboard.Enabled {
		g.leaderboard = telemetry.NewLeaderboard(cfg.Leaderboard.Size)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "dir", opts.OutputDir, "error", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config snapshot", "error", err)
			}
		}
	}

	// Nibble field
	g.nibbles = newNibbleField(world, g.index, g.rng)

	// Steering worker pool
	g.steer = newSteerPool()

	// World content
	g.createWalls()
	g.spawnPlayer()
	g.nibbles.SeedInitial(cfg)
	g.prevPlayerPos = g.player.HeadPos()

	// Rendering and UI
	if !opts.Headless {
		w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
		g.cam = camera.New(w, h, g.player.HeadPos(), g.player.Yaw)
		g.background = renderer.NewBackground(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
		g.arena = renderer.NewArena(cfg.Derived.Half32)
		g.particles = renderer.NewParticleSystem(2048)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(int32(cfg.Screen.Width))
		g.inspector = ui.NewInspectorPanel(int32(cfg.Screen.Width))
		g.perfPanel = ui.NewPerfPanel()
		g.uiOverlays = ui.NewOverlayRegistry()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"headless", opts.Headless,
		"arena_half", cfg.Arena.Half,
		"initial_nibbles", g.nibbles.Count(),
	)

	return g
}

// Update runs input handling and one or more simulation steps.
// Used in graphical mode; call Draw after it each frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused || g.gameOver {
		// The camera keeps settling so pausing does not freeze mid-shake.
		g.updateCamera()
		return
	}

	for i := 0; i < g.stepsPerUpdate && !g.gameOver; i++ {
		g.simulationStep()
	}
	g.updateCamera()
}

// UpdateHeadless runs simulation steps without input or camera work.
func (g *Game) UpdateHeadless() {
	if g.gameOver {
		return
	}
	for i := 0; i < g.stepsPerUpdate && !g.gameOver; i++ {
		g.simulationStep()
	}
}

// updateCamera advances the chase camera toward the player head.
func (g *Game) updateCamera() {
	if g.cam == nil {
		return
	}
	g.cam.Update(g.player.HeadPos(), g.player.Yaw, g.cfg.Sim.DT)
}

// simTimeMs returns the current simulation time in milliseconds.
func (g *Game) simTimeMs() float64 {
	return float64(g.tick) * g.cfg.Derived.MsPerTick
}

// emit forwards an event to the callback and queues it for the renderer.
func (g *Game) emit(ev telemetry.Event) {
	if g.eventCallback != nil {
		g.eventCallback(ev)
	}
	if !g.headless {
		g.frameEvents = append(g.frameEvents, ev)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Score returns the player's nibble count for this run.
func (g *Game) Score() int {
	return g.score
}

// GameOver reports whether the player has dissolved.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// ShadowCount returns the number of live shadow snakes.
func (g *Game) ShadowCount() int {
	return len(g.shadows)
}

// NibbleCount returns the number of nibbles in the arena.
func (g *Game) NibbleCount() int {
	return g.nibbles.Count()
}

// PlayerLength returns the player's segment count.
func (g *Game) PlayerLength() int {
	return g.player.Length()
}

// Player returns the player snake.
func (g *Game) Player() *Snake {
	return g.player
}

// Leaderboard returns the run leaderboard, or nil when disabled.
func (g *Game) Leaderboard() *telemetry.Leaderboard {
	return g.leaderboard
}

// Seed returns the RNG seed this run was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Reset clears the arena and starts a fresh run on the same world.
// The tick counter keeps running so telemetry windows stay contiguous.
func (g *Game) Reset() {
	// Retire every living snake into the leaderboard before releasing it.
	for _, s := range g.shadows {
		g.retireSnake(s, telemetry.CauseReset)
		g.releaseSnakeEntities(s)
	}
	g.shadows = g.shadows[:0]

	// A dissolved player has no entities left to release; dissolution
	// already retired it.
	if !g.gameOver {
		g.retireSnake(g.player, telemetry.CauseReset)
		g.releaseSnakeEntities(g.player)
	}

	g.nibbles.Clear()

	g.spawnPlayer()
	g.nibbles.SeedInitial(g.cfg)
	g.prevPlayerPos = g.player.HeadPos()

	g.lastShadowSpawnMs = math.Inf(-1)
	g.lastNibbleSpawnMs = g.simTimeMs()
	g.score = 0
	g.gameOver = false
	g.selectedID = 0

	if g.cam != nil {
		g.cam.Reset(g.player.HeadPos(), g.player.Yaw)
	}

	slog.Info("run reset", "tick", g.tick)
}

// retireSnake finalizes a snake's life stats and offers them to the
// leaderboard.
func (g *Game) retireSnake(s *Snake, cause string) {
	g.lifeTracker.SetCause(s.ID, cause)
	g.lifeTracker.UpdateSurvivalTime(s.ID, g.tick, g.cfg.Sim.DT)
	g.lifeTracker.UpdateLength(s.ID, s.Length())
	if stats := g.lifeTracker.Remove(s.ID); stats != nil && g.leaderboard != nil {
		g.leaderboard.Consider(stats, s.ID)
	}
}

// Unload releases workers, entities, telemetry outputs, and GPU resources.
func (g *Game) Unload() {
	g.steer.stop()

	if g.output != nil {
		if g.leaderboard != nil {
			if err := g.output.WriteLeaderboard(g.leaderboard); err != nil {
				slog.Error("failed to write leaderboard", "error", err)
			}
		}
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}

	for _, s := range g.shadows {
		g.releaseSnakeEntities(s)
	}
	g.shadows = nil
	if g.player != nil && !g.gameOver {
		g.releaseSnakeEntities(g.player)
	}
	g.player = nil
	g.nibbles.Clear()
	for _, w := range g.walls {
		g.index.Remove(w)
		g.world.RemoveEntity(w)
	}
	g.walls = nil

	if g.background != nil {
		g.background.Unload()
	}
}
