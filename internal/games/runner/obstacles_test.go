package runner

import (
	"testing"

	"github.com/vovakirdan/office-runner/internal/config"
	"github.com/vovakirdan/office-runner/internal/core"
)

func newTestObstacles(types ...config.ObstacleType) *ObstacleManager {
	cfg := config.DefaultRunnerConfig()
	if len(types) > 0 {
		cfg.Obstacles.Types = types
	}
	return NewObstacleManager(7, cfg.World, cfg.Obstacles)
}

func TestObstacleSpawnThrottle(t *testing.T) {
	tests := []struct {
		name  string
		lastX float64
		want  bool
	}{
		{"distance below minimum", 750, false},
		{"distance at minimum", 500, true},
		{"distance above minimum", 400, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			om := newTestObstacles()
			om.obstacles = append(om.obstacles, Obstacle{Kind: KindCabinet, X: tt.lastX, Y: 480, Width: 60, Height: 100})

			if got := om.TrySpawn(); got != tt.want {
				t.Errorf("TrySpawn() = %v, want %v", got, tt.want)
			}
			wantCount := 1
			if tt.want {
				wantCount = 2
			}
			if n := len(om.Obstacles()); n != wantCount {
				t.Errorf("expected %d obstacles, got %d", wantCount, n)
			}
		})
	}
}

func TestObstaclePlacement(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	floorY := cfg.World.FloorY()

	tests := []struct {
		placement config.Placement
		check     func(o Obstacle) bool
	}{
		{config.PlacementFloor, func(o Obstacle) bool {
			return o.Y+o.Height == floorY
		}},
		{config.PlacementRaised, func(o Obstacle) bool {
			return o.Y+o.Height <= floorY && o.Y+o.Height >= floorY-cfg.Obstacles.RaiseMax
		}},
		{config.PlacementFloat, func(o Obstacle) bool {
			return o.Y >= cfg.Obstacles.FloatTop && o.Y+o.Height <= floorY
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.placement), func(t *testing.T) {
			om := newTestObstacles(config.ObstacleType{Name: "box", Width: 40, Height: 60, Placement: tt.placement})
			for range 50 {
				om.Reset()
				om.TrySpawn()
				o := om.Obstacles()[0]
				if !tt.check(o) {
					t.Fatalf("bad placement y=%.2f h=%.2f", o.Y, o.Height)
				}
				if o.X != cfg.World.Width {
					t.Fatalf("expected spawn at right edge, got x=%.2f", o.X)
				}
			}
		})
	}
}

func TestObstacleSizeFromType(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	sizes := make(map[string][2]float64)
	for _, ot := range cfg.Obstacles.Types {
		sizes[ot.Name] = [2]float64{ot.Width, ot.Height}
	}

	om := newTestObstacles()
	for range 40 {
		om.Reset()
		om.TrySpawn()
		o := om.Obstacles()[0]
		want, ok := sizes[o.Kind]
		if !ok {
			t.Fatalf("unexpected kind %q", o.Kind)
		}
		if o.Width != want[0] || o.Height != want[1] {
			t.Errorf("%s: size %.0fx%.0f, want %.0fx%.0f", o.Kind, o.Width, o.Height, want[0], want[1])
		}
	}
}

func TestObstacleUpdateCullsAndSpawns(t *testing.T) {
	om := newTestObstacles()
	om.SetSpawnInterval(3)
	om.obstacles = append(om.obstacles, Obstacle{Kind: KindChair, X: -45, Y: 510, Width: 50, Height: 70})

	om.Update(10)
	if n := len(om.Obstacles()); n != 0 {
		t.Fatalf("expected offscreen obstacle culled, got %d", n)
	}

	om.Update(10)
	if n := len(om.Obstacles()); n != 0 {
		t.Fatalf("expected no spawn before interval, got %d", n)
	}

	om.Update(10)
	if n := len(om.Obstacles()); n != 1 {
		t.Fatalf("expected spawn on third update, got %d", n)
	}
}

func TestObstacleCollision(t *testing.T) {
	om := newTestObstacles()
	om.obstacles = append(om.obstacles, Obstacle{Kind: KindPrinter, X: 300, Y: 500, Width: 80, Height: 60})

	tests := []struct {
		name string
		r    core.Rect
		want bool
	}{
		{"overlapping", core.NewRect(290, 490, 40, 40), true},
		{"touching edge", core.NewRect(260, 500, 40, 40), false},
		{"above", core.NewRect(300, 400, 40, 40), false},
	}

	for _, tt := range tests {
		if got := om.CheckCollision(tt.r); got != tt.want {
			t.Errorf("%s: CheckCollision = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestObstacleManagerDeterminism(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	a := NewObstacleManager(99, cfg.World, cfg.Obstacles)
	b := NewObstacleManager(99, cfg.World, cfg.Obstacles)
	a.SetSpawnInterval(20)
	b.SetSpawnInterval(20)

	for range 600 {
		a.Update(5)
		b.Update(5)
	}

	oa, ob := a.Obstacles(), b.Obstacles()
	if len(oa) != len(ob) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(oa), len(ob))
	}
	for i := range oa {
		if oa[i] != ob[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, oa[i], ob[i])
		}
	}
}
