package config

// Difficulty maps cumulative score to a discrete level and derives the
// world speed and both spawn cadences from it. The level never decreases
// between resets.
type Difficulty struct {
	cfg                 DifficultyConfig
	level               int
	speed               float64
	obstacleInterval    int
	collectibleInterval int
}

// NewDifficulty creates a difficulty controller at level 1.
func NewDifficulty(cfg DifficultyConfig) *Difficulty {
	d := &Difficulty{cfg: cfg}
	d.Reset()
	return d
}

// Reset returns to level 1 and base parameters.
func (d *Difficulty) Reset() {
	d.level = 1
	d.recompute()
}

// IsEnabled returns whether difficulty progression is active.
func (d *Difficulty) IsEnabled() bool {
	return d.cfg.Enabled
}

// LevelFor returns the level for a score: min(maxLevel, score/pointsPerLevel + 1).
func (d *Difficulty) LevelFor(score int) int {
	if !d.cfg.Enabled || d.cfg.PointsPerLevel <= 0 || score < 0 {
		return 1
	}
	return min(max(d.cfg.MaxLevel, 1), score/d.cfg.PointsPerLevel+1)
}

// Update recomputes the level for the given score.
// Returns true if the level increased.
func (d *Difficulty) Update(score int) bool {
	next := d.LevelFor(score)
	if next <= d.level {
		return false
	}
	d.level = next
	d.recompute()
	return true
}

func (d *Difficulty) recompute() {
	d.speed = d.cfg.BaseSpeed + float64(d.level-1)*d.cfg.SpeedPerLevel
	d.obstacleInterval = d.cfg.ObstacleInterval.At(d.level)
	d.collectibleInterval = d.cfg.CollectibleInterval.At(d.level)
}

// Level returns the current level (1..MaxLevel).
func (d *Difficulty) Level() int {
	return d.level
}

// Speed returns the current world speed in units per tick.
func (d *Difficulty) Speed() float64 {
	return d.speed
}

// ObstacleInterval returns ticks between obstacle spawn attempts.
func (d *Difficulty) ObstacleInterval() int {
	return d.obstacleInterval
}

// CollectibleInterval returns ticks between collectible spawn attempts.
func (d *Difficulty) CollectibleInterval() int {
	return d.collectibleInterval
}

// Progress returns how far the score is toward the next level, in [0, 1).
// At the max level it reports 1.
func (d *Difficulty) Progress(score int) float64 {
	if d.cfg.PointsPerLevel <= 0 || d.level >= d.cfg.MaxLevel {
		return 1
	}
	return float64(score%d.cfg.PointsPerLevel) / float64(d.cfg.PointsPerLevel)
}
