// Package clipfile provides the JSON wire format and parsers for animation
// clip files. Clip files define keyframed skeletal animations for articulated
// rigs, containing per-bone transforms, timeline events and optional combat
// metadata.
package clipfile

// ClipJSON is the root structure of an animation clip file.
type ClipJSON struct {
	// Name is the clip identifier, e.g. "walk", "attack_slash"
	Name string `json:"name"`

	// Duration is the clip length in seconds
	Duration float64 `json:"duration"`

	// Looping controls whether playback wraps at Duration or stops
	Looping bool `json:"looping"`

	// Keyframes is the ordered list of keyframes. Times must be
	// non-decreasing; loaders sort defensively.
	Keyframes []KeyframeJSON `json:"keyframes"`

	// Events is the list of timeline events, e.g. footsteps or
	// hit triggers. Optional.
	Events []EventJSON `json:"events,omitempty"`

	// Combat holds attack metadata for combat clips. Nil for
	// ordinary clips.
	Combat *CombatJSON `json:"combat_metadata,omitempty"`
}

// KeyframeJSON is a single keyframe: a time point plus the local transforms
// of the bones it poses. Bones absent from a keyframe keep whatever value
// the sampler had for them.
type KeyframeJSON struct {
	// Time is the keyframe position in seconds from clip start
	Time float64 `json:"time"`

	// Transforms maps bone name to its local transform at this time
	Transforms map[string]TransformJSON `json:"transforms"`
}

// TransformJSON is a bone local transform on the wire. Arrays are always
// 3 elements: [x, y, z]. Rotations are Euler angles in degrees. Scale is
// optional; a nil Scale means uniform 1 and is normalized on parse.
type TransformJSON struct {
	Position [3]float64  `json:"position"`
	Rotation [3]float64  `json:"rotation"`
	Scale    *[3]float64 `json:"scale,omitempty"`
}

// EventJSON is a named timeline event with an optional payload.
type EventJSON struct {
	// Time is the trigger position in seconds from clip start
	Time float64 `json:"time"`

	// EventName identifies the event, e.g. "footstep", "hit"
	EventName string `json:"event_name"`

	// Data is an arbitrary payload passed to event handlers. Optional.
	Data map[string]any `json:"data,omitempty"`
}

// CombatJSON carries attack timing metadata for combat clips.
type CombatJSON struct {
	// HitWindows are the time ranges during which the attack can land
	HitWindows []HitWindowJSON `json:"hit_windows"`

	// CanCancelAfter is the earliest time the clip may be cancelled
	// into another action, in seconds
	CanCancelAfter float64 `json:"can_cancel_after"`

	// MomentumInfluence scales how much character momentum leans the
	// attack pose. 0 disables the effect.
	MomentumInfluence float64 `json:"momentum_influence"`

	// RecoveryTime is the post-attack recovery duration in seconds
	RecoveryTime float64 `json:"recovery_time"`
}

// HitWindowJSON is a single damage window inside a combat clip.
type HitWindowJSON struct {
	// Start and End bound the window in seconds from clip start
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`

	// DamageMultiplier scales base damage for hits in this window
	DamageMultiplier float64 `json:"damage_multiplier"`
}
