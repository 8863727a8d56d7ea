package runner

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

// EntityView is a renderable entity in world units.
type EntityView struct {
	Kind   string
	Bounds core.Rect
}

// PowerUpView is an active effect with its remaining time.
type PowerUpView struct {
	Effect      Effect
	RemainingMs float64
}

// Snapshot is the read-only view of a tick's world state consumed by
// renderers. It holds copies, so later ticks do not change it.
type Snapshot struct {
	Tick     int
	Score    int
	Level    int
	Progress float64 // Fraction of the way to the next level
	Speed    float64
	Started  bool
	GameOver bool
	Paused   bool
	Runs     int

	World  config.WorldConfig
	Player core.Rect

	Boosting        bool
	SpeedTarget     int
	WobbleAmplitude float64
	MagnetRange     float64
	PowerUps        []PowerUpView

	Obstacles    []EntityView
	Collectibles []EntityView
	LastReward   *Reward // Collected this tick, if any
}

// Snapshot captures the current world state.
func (g *Game) Snapshot() Snapshot {
	pu := g.player.PowerUps()
	snap := Snapshot{
		Tick:            g.frameCount,
		Score:           g.score,
		Level:           g.difficulty.Level(),
		Progress:        g.difficulty.Progress(g.score),
		Speed:           g.difficulty.Speed(),
		Started:         g.started,
		GameOver:        g.gameOver,
		Paused:          g.paused,
		Runs:            g.runs,
		World:           g.cfg.World,
		Player:          g.player.Bounds(),
		Boosting:        pu.Speed.Active,
		SpeedTarget:     pu.Speed.TargetScore,
		WobbleAmplitude: g.cfg.PowerUps.Speed.WobbleAmplitude,
	}
	if pu.Magnet.Active {
		snap.MagnetRange = pu.Magnet.Range
	}

	for _, e := range g.player.ActiveEffects() {
		snap.PowerUps = append(snap.PowerUps, PowerUpView{Effect: e, RemainingMs: g.player.Remaining(e)})
	}

	obstacles := g.obstacles.Obstacles()
	snap.Obstacles = make([]EntityView, 0, len(obstacles))
	for _, o := range obstacles {
		snap.Obstacles = append(snap.Obstacles, EntityView{Kind: o.Kind, Bounds: o.Bounds()})
	}

	collectibles := g.collectibles.Collectibles()
	snap.Collectibles = make([]EntityView, 0, len(collectibles))
	for _, c := range collectibles {
		snap.Collectibles = append(snap.Collectibles, EntityView{Kind: c.Kind(), Bounds: c.Bounds()})
	}

	if g.lastReward != nil {
		r := *g.lastReward
		snap.LastReward = &r
	}
	return snap
}

// Hash returns an FNV-1a digest of the simulation-relevant fields.
// Two runs with the same seed, config and inputs produce equal hashes.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //#nosec G115 -- hash computation
		_, _ = h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	putRect := func(r core.Rect) {
		putFloat(r.X)
		putFloat(r.Y)
		putFloat(r.W)
		putFloat(r.H)
	}
	putBool := func(b bool) {
		if b {
			putInt(1)
		} else {
			putInt(0)
		}
	}

	putInt(snap.Tick)
	putInt(snap.Score)
	putInt(snap.Level)
	putInt(snap.Runs)
	putBool(snap.GameOver)
	putRect(snap.Player)
	putInt(snap.SpeedTarget)

	for _, p := range snap.PowerUps {
		putInt(int(p.Effect))
		putFloat(p.RemainingMs)
	}
	for _, o := range snap.Obstacles {
		_, _ = h.Write([]byte(o.Kind))
		putRect(o.Bounds)
	}
	for _, c := range snap.Collectibles {
		_, _ = h.Write([]byte(c.Kind))
		putRect(c.Bounds)
	}
	return h.Sum64()
}
