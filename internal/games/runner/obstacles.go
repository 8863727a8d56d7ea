package runner

import (
	"math/rand"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

// Known obstacle kinds. Configs may define others; they render with a
// generic glyph.
const (
	KindCabinet = "cabinet"
	KindChair   = "chair"
	KindMonitor = "monitor"
	KindPrinter = "printer"
)

// Obstacle is a piece of office furniture scrolling toward the player.
// Width and height come from its type and never change.
type Obstacle struct {
	Kind   string
	X, Y   float64
	Width  float64
	Height float64
}

// Update moves the obstacle left by the world speed.
func (o *Obstacle) Update(speed float64) {
	o.X -= speed
}

// Offscreen reports whether the obstacle has fully left the playfield.
func (o Obstacle) Offscreen() bool {
	return o.X+o.Width < 0
}

// Bounds returns the collision rectangle.
func (o Obstacle) Bounds() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// ObstacleManager spawns, moves and culls obstacles.
type ObstacleManager struct {
	obstacles     []Obstacle
	rng           *rand.Rand
	cfg           config.ObstaclesConfig
	worldW        float64
	floorY        float64
	spawnTimer    int
	spawnInterval int
}

// NewObstacleManager creates an obstacle manager drawing from the given seed.
func NewObstacleManager(seed int64, world config.WorldConfig, cfg config.ObstaclesConfig) *ObstacleManager {
	return &ObstacleManager{
		obstacles:     make([]Obstacle, 0, 8),
		rng:           rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay RNG
		cfg:           cfg,
		worldW:        world.Width,
		floorY:        world.FloorY(),
		spawnInterval: 1,
	}
}

// Reset clears all obstacles and the spawn timer. The RNG stream continues.
func (om *ObstacleManager) Reset() {
	om.obstacles = om.obstacles[:0]
	om.spawnTimer = 0
}

// SetSpawnInterval sets the number of ticks between spawn attempts.
func (om *ObstacleManager) SetSpawnInterval(ticks int) {
	om.spawnInterval = max(1, ticks)
}

// Update moves obstacles, culls those offscreen and attempts a spawn when
// the spawn interval elapses.
func (om *ObstacleManager) Update(speed float64) {
	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		o.Update(speed)
		if !o.Offscreen() {
			kept = append(kept, o)
		}
	}
	om.obstacles = kept

	om.spawnTimer++
	if om.spawnTimer >= om.spawnInterval {
		om.TrySpawn()
		om.spawnTimer = 0
	}
}

// TrySpawn adds an obstacle at the right edge unless the most recent one
// is still closer than the minimum distance. Reports whether one spawned.
func (om *ObstacleManager) TrySpawn() bool {
	if len(om.cfg.Types) == 0 {
		return false
	}
	if n := len(om.obstacles); n > 0 {
		if om.worldW-om.obstacles[n-1].X < om.cfg.MinDistance {
			return false
		}
	}

	t := om.cfg.Types[om.rng.Intn(len(om.cfg.Types))]
	om.obstacles = append(om.obstacles, Obstacle{
		Kind:   t.Name,
		X:      om.worldW,
		Y:      om.placeY(t),
		Width:  t.Width,
		Height: t.Height,
	})
	return true
}

// placeY picks the top edge for a new obstacle of type t.
func (om *ObstacleManager) placeY(t config.ObstacleType) float64 {
	onFloor := om.floorY - t.Height

	switch t.Placement {
	case config.PlacementRaised:
		return onFloor - om.rng.Float64()*om.cfg.RaiseMax
	case config.PlacementFloat:
		band := max(0, om.floorY-om.cfg.FloatBottom-om.cfg.FloatTop)
		return min(onFloor, om.cfg.FloatTop+om.rng.Float64()*band)
	default:
		return onFloor
	}
}

// CheckCollision reports whether r overlaps any obstacle.
func (om *ObstacleManager) CheckCollision(r core.Rect) bool {
	for _, o := range om.obstacles {
		if core.Overlaps(r, o.Bounds()) {
			return true
		}
	}
	return false
}

// Obstacles returns the live obstacles, oldest first.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}
