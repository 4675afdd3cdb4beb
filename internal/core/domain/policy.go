package domain

// ExtractionPolicy is the swappable analysis strategy: the persona
// directive sent to the model plus the timing rule applied to what it
// returns. Policies differ in text and bounds only, never in pipeline
// shape.
type ExtractionPolicy struct {
	Name          string
	Directive     string
	DurationFloor float64
	DurationCap   float64 // 0 means no cap
}

// ClampDuration bounds a model-reported duration to the policy's limits.
func (p ExtractionPolicy) ClampDuration(d float64) float64 {
	if d < p.DurationFloor {
		d = p.DurationFloor
	}
	if p.DurationCap > 0 && d > p.DurationCap {
		d = p.DurationCap
	}
	return d
}

const (
	PolicyAudioDirector  = "audio-director"
	PolicyCombatDesigner = "combat-designer"
)

// AudioDirectorPolicy is the default general-purpose analysis.
func AudioDirectorPolicy() ExtractionPolicy {
	return ExtractionPolicy{
		Name:          PolicyAudioDirector,
		DurationFloor: 1.0,
		DurationCap:   5.0,
		Directive: `You are a Game Audio Director analyzing gameplay footage frame-by-frame.

CRITICAL REQUIREMENTS:
1. Watch the ENTIRE video carefully to identify ALL significant gameplay events
2. For EACH event, determine the EXACT moment it begins (in seconds with 2 decimal precision)
3. Calculate REALISTIC duration - how long the action/sound should last (minimum 1s, maximum 5s)

For each event provide:
- name: Short, descriptive name (e.g., "Jump", "Sword Swing", "Footstep")
- start: Exact timestamp in seconds when the action BEGINS (e.g., 2.45)
- duration: How long the sound effect should last (e.g., 1.2 for a quick action, 2.5 for longer)
- prompts: Array of 3 DISTINCT, highly detailed audio descriptions that:
  * Describe the sonic characteristics (pitch, tone, intensity)
  * Include environmental context (echoes, reverb, space)
  * Specify the sound's evolution over time
  * Mention material/texture sounds if applicable

EXAMPLE:
{"name": "Door Creak", "start": 5.30, "duration": 1.8, "prompts": [
  "Old wooden door slowly creaking open with rusty metal hinges squeaking, echoing in empty hallway, 1.8 seconds",
  "Heavy oak door groaning with stress, metal hardware rattling, slow sustained creak lasting 1.8 seconds",
  "Antique door with worn hinges producing high-pitched metallic squeal followed by deep wood groans, 1.8 second duration"
]}

Return ONLY valid JSON array. NO markdown, NO code blocks.`,
	}
}

// CombatDesignerPolicy focuses on combat impacts; durations follow the
// visual action with a floor and no upper cap.
func CombatDesignerPolicy() ExtractionPolicy {
	return ExtractionPolicy{
		Name:          PolicyCombatDesigner,
		DurationFloor: 1.0,
		Directive: `You are a Combat Audio Designer reviewing gameplay footage for fight choreography.

Focus EXCLUSIVELY on combat actions: weapon swings, impacts, blocks, parries, hit reactions, ability casts, projectiles and deaths. Ignore ambient movement and UI.

For EACH combat event provide:
- name: Short combat-specific name (e.g., "Heavy Slash", "Shield Block", "Fireball Impact")
- start: Exact timestamp in seconds when the action BEGINS (2 decimal precision)
- duration: max(visual duration of the action, 1.0) in seconds. Do NOT cut impacts short; let tails ring out as long as the visuals justify.
- prompts: Array of 3 DISTINCT layered sound design descriptions covering attack transient, body of the impact, and environmental tail.

Return ONLY valid JSON array. NO markdown, NO code blocks.`,
	}
}

// PolicyByName resolves a request's policy field, defaulting to the
// audio director when the name is empty or unknown.
func PolicyByName(name string) ExtractionPolicy {
	switch name {
	case PolicyCombatDesigner:
		return CombatDesignerPolicy()
	default:
		return AudioDirectorPolicy()
	}
}
