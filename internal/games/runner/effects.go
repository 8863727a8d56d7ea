package runner

// Effect is a power-up kind granted by collectibles.
type Effect int

const (
	EffectNone         Effect = iota // Plain collectible, no power-up
	EffectSpeed                      // Forward dash until a score target is reached
	EffectInvincible                 // Obstacles are ignored
	EffectMagnet                     // Collectibles ahead are pulled toward the player
	EffectDoublePoints               // All points doubled
)

// Effects lists every power-up kind in display order.
var Effects = []Effect{EffectSpeed, EffectInvincible, EffectMagnet, EffectDoublePoints}

// String returns the config name of the effect.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectSpeed:
		return "speed"
	case EffectInvincible:
		return "invincible"
	case EffectMagnet:
		return "magnet"
	case EffectDoublePoints:
		return "double_points"
	default:
		return "unknown"
	}
}

// Label returns the HUD label for the effect.
func (e Effect) Label() string {
	switch e {
	case EffectSpeed:
		return "Speed Boost"
	case EffectInvincible:
		return "Invincible"
	case EffectMagnet:
		return "Magnetic Pull"
	case EffectDoublePoints:
		return "Double Points"
	default:
		return ""
	}
}

// ParseEffect converts a config name to an Effect.
// Empty and unknown names yield EffectNone.
func ParseEffect(name string) Effect {
	for _, e := range Effects {
		if e.String() == name {
			return e
		}
	}
	return EffectNone
}
