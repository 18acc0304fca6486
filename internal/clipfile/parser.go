package clipfile

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Parse decodes a clip from JSON bytes and validates it.
func Parse(data []byte) (*ClipJSON, error) {
	var clip ClipJSON
	if err := json.Unmarshal(data, &clip); err != nil {
		return nil, fmt.Errorf("failed to parse clip JSON: %w", err)
	}
	if err := Validate(&clip); err != nil {
		return nil, err
	}
	// Keyframe order is a sampling invariant; authoring tools may emit
	// keyframes out of order, so sort here rather than reject.
	sort.SliceStable(clip.Keyframes, func(i, j int) bool {
		return clip.Keyframes[i].Time < clip.Keyframes[j].Time
	})
	normalizeScale(&clip)
	return &clip, nil
}

// normalizeScale fills in the uniform-1 default for transforms whose
// scale was omitted on the wire.
func normalizeScale(clip *ClipJSON) {
	for _, kf := range clip.Keyframes {
		for bone, tr := range kf.Transforms {
			if tr.Scale == nil {
				tr.Scale = &[3]float64{1, 1, 1}
				kf.Transforms[bone] = tr
			}
		}
	}
}

// Serialize encodes a clip to indented JSON suitable for checking into
// version control.
func Serialize(clip *ClipJSON) ([]byte, error) {
	data, err := json.MarshalIndent(clip, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize clip '%s': %w", clip.Name, err)
	}
	return data, nil
}

// Load parses a clip file from disk.
//
// Example:
//
//	clip, err := clipfile.Load("data/clips/walk.json")
//	if err != nil {
//	    log.Fatalf("Failed to load clip: %v", err)
//	}
//	fmt.Printf("Clip duration: %.2fs\n", clip.Duration)
func Load(path string) (*ClipJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clip file '%s': %w", path, err)
	}
	clip, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid clip file '%s': %w", path, err)
	}
	return clip, nil
}

// Save writes a clip file to disk.
func Save(path string, clip *ClipJSON) error {
	data, err := Serialize(clip)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write clip file '%s': %w", path, err)
	}
	return nil
}

// Validate checks the structural invariants of a clip. It returns the first
// violation found, or nil if the clip is well formed.
func Validate(clip *ClipJSON) error {
	if clip.Name == "" {
		return fmt.Errorf("clip has no name")
	}
	if clip.Duration <= 0 {
		return fmt.Errorf("clip '%s' has non-positive duration %v", clip.Name, clip.Duration)
	}
	if len(clip.Keyframes) == 0 {
		return fmt.Errorf("clip '%s' has no keyframes", clip.Name)
	}
	for i, kf := range clip.Keyframes {
		if kf.Time < 0 {
			return fmt.Errorf("clip '%s': keyframe %d has negative time %v", clip.Name, i, kf.Time)
		}
		if kf.Time > clip.Duration {
			return fmt.Errorf("clip '%s': keyframe %d time %v exceeds duration %v",
				clip.Name, i, kf.Time, clip.Duration)
		}
	}
	for i, ev := range clip.Events {
		if ev.EventName == "" {
			return fmt.Errorf("clip '%s': event %d has no name", clip.Name, i)
		}
		if ev.Time < 0 || ev.Time > clip.Duration {
			return fmt.Errorf("clip '%s': event '%s' time %v outside [0, %v]",
				clip.Name, ev.EventName, ev.Time, clip.Duration)
		}
	}
	if clip.Combat != nil {
		for i, hw := range clip.Combat.HitWindows {
			if hw.End < hw.Start {
				return fmt.Errorf("clip '%s': hit window %d ends (%v) before it starts (%v)",
					clip.Name, i, hw.End, hw.Start)
			}
		}
	}
	return nil
}
