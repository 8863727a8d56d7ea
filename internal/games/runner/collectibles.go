package runner

import (
	"math/rand"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

// Known collectible kinds.
const (
	KindCoffee    = "coffee"
	KindPaperclip = "paperclip"
	KindStapler   = "stapler"
	KindNotebook  = "notebook"
)

// Reward is what collecting an item grants.
type Reward struct {
	Kind       string
	Points     int
	Effect     Effect
	DurationMs float64
}

// Collectible is an office supply worth points and possibly a power-up.
type Collectible struct {
	X, Y   float64
	Width  float64
	Height float64
	Speed  float64
	Active bool
	reward Reward
}

// Kind returns the collectible's type name.
func (c *Collectible) Kind() string {
	return c.reward.Kind
}

// Reward returns what collecting this item would grant.
func (c *Collectible) Reward() Reward {
	return c.reward
}

// Update scrolls the item left and applies the player's magnetic pull.
func (c *Collectible) Update(p *Player) {
	c.X -= c.Speed

	cx, cy := c.Bounds().Center()
	dx, dy := p.MagnetPull(cx, cy)
	c.X += dx
	c.Y += dy
}

// Collect deactivates the item and returns its reward. A second call
// returns false.
func (c *Collectible) Collect() (Reward, bool) {
	if !c.Active {
		return Reward{}, false
	}
	c.Active = false
	return c.reward, true
}

// Offscreen reports whether the item has fully left the playfield.
func (c *Collectible) Offscreen() bool {
	return c.X+c.Width < 0
}

// Bounds returns the collision rectangle.
func (c *Collectible) Bounds() core.Rect {
	return core.NewRect(c.X, c.Y, c.Width, c.Height)
}

// CollectibleManager spawns, moves and culls collectibles.
type CollectibleManager struct {
	items         []*Collectible
	rewards       []Reward
	rng           *rand.Rand
	cfg           config.CollectiblesConfig
	worldW        float64
	floorY        float64
	spawnTimer    int
	spawnInterval int
}

// NewCollectibleManager creates a collectible manager drawing from the given seed.
func NewCollectibleManager(seed int64, world config.WorldConfig, cfg config.CollectiblesConfig) *CollectibleManager {
	rewards := make([]Reward, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		rewards = append(rewards, Reward{
			Kind:       t.Name,
			Points:     t.Points,
			Effect:     ParseEffect(t.Effect),
			DurationMs: float64(t.DurationMs),
		})
	}

	return &CollectibleManager{
		items:         make([]*Collectible, 0, 8),
		rewards:       rewards,
		rng:           rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay RNG
		cfg:           cfg,
		worldW:        world.Width,
		floorY:        world.FloorY(),
		spawnInterval: 1,
	}
}

// Reset clears all collectibles and the spawn timer.
func (cm *CollectibleManager) Reset() {
	cm.items = cm.items[:0]
	cm.spawnTimer = 0
}

// SetSpawnInterval sets the number of ticks between spawn attempts.
func (cm *CollectibleManager) SetSpawnInterval(ticks int) {
	cm.spawnInterval = max(1, ticks)
}

// Update moves items at a fraction of the world speed, culls collected
// and offscreen ones and attempts a spawn when the interval elapses.
func (cm *CollectibleManager) Update(worldSpeed float64, p *Player) {
	speed := worldSpeed * cm.cfg.SpeedFactor

	kept := cm.items[:0]
	for _, c := range cm.items {
		if !c.Active {
			continue
		}
		c.Speed = speed
		c.Update(p)
		if !c.Offscreen() {
			kept = append(kept, c)
		}
	}
	clear(cm.items[len(kept):])
	cm.items = kept

	cm.spawnTimer++
	if cm.spawnTimer >= cm.spawnInterval {
		cm.TrySpawn(speed)
		cm.spawnTimer = 0
	}
}

// TrySpawn adds an item at the right edge unless the most recent one is
// still closer than the minimum distance. Reports whether one spawned.
func (cm *CollectibleManager) TrySpawn(speed float64) bool {
	if len(cm.rewards) == 0 {
		return false
	}
	if n := len(cm.items); n > 0 {
		if cm.worldW-cm.items[n-1].X < cm.cfg.MinDistance {
			return false
		}
	}

	r := cm.rewards[cm.rng.Intn(len(cm.rewards))]
	band := max(0, cm.floorY-2*cm.cfg.Margin-cm.cfg.Height)
	cm.items = append(cm.items, &Collectible{
		X:      cm.worldW,
		Y:      cm.cfg.Margin + cm.rng.Float64()*band,
		Width:  cm.cfg.Width,
		Height: cm.cfg.Height,
		Speed:  speed,
		Active: true,
		reward: r,
	})
	return true
}

// CheckCollisions collects the first active item overlapping r, in spawn
// order. At most one item is collected per call.
func (cm *CollectibleManager) CheckCollisions(r core.Rect) (Reward, bool) {
	for _, c := range cm.items {
		if c.Active && core.Overlaps(r, c.Bounds()) {
			return c.Collect()
		}
	}
	return Reward{}, false
}

// Collectibles returns the active items, oldest first.
func (cm *CollectibleManager) Collectibles() []Collectible {
	out := make([]Collectible, 0, len(cm.items))
	for _, c := range cm.items {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out
}
