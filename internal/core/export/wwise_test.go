package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
)

func threeSlotEvent(name string) domain.EventResult {
	return domain.EventResult{
		Name:       name,
		Start:      1.0,
		Duration:   1.5,
		Prompts:    []string{"a", "b", "c"},
		Variations: []string{"https://x/0.mp3", domain.UnresolvedURL, "https://x/2.mp3"},
	}
}

func TestWwiseImportMap(t *testing.T) {
	t.Run("one header line plus one line per variation", func(t *testing.T) {
		events := []domain.EventResult{threeSlotEvent("Sword Swing"), threeSlotEvent("Jump")}

		manifest := WwiseImportMap("demo", events)
		lines := strings.Split(strings.TrimRight(manifest, "\n"), "\n")

		assert.Len(t, lines, 1+3*len(events))
		assert.Equal(t, "Audio File\tObject Path\tEvent\tVariation", lines[0])
	})

	t.Run("rows carry sanitized object paths and indexed file names", func(t *testing.T) {
		manifest := WwiseImportMap("My Game!", []domain.EventResult{threeSlotEvent("Sword Swing")})
		lines := strings.Split(strings.TrimRight(manifest, "\n"), "\n")

		cols := strings.Split(lines[1], "\t")
		assert.Equal(t, "sword_swing_00.wav", cols[0])
		assert.Equal(t, `\Actor-Mixer Hierarchy\Default Work Unit\My_Game_\Sword_Swing`, cols[1])
		assert.Equal(t, "Sword Swing", cols[2])
		assert.Equal(t, "0", cols[3])

		last := strings.Split(lines[3], "\t")
		assert.Equal(t, "sword_swing_02.wav", last[0])
		assert.Equal(t, "2", last[3])
	})

	t.Run("idempotent for equal input", func(t *testing.T) {
		events := []domain.EventResult{threeSlotEvent("Door Creak")}

		first := WwiseImportMap("demo", events)
		second := WwiseImportMap("demo", events)

		assert.Equal(t, first, second)
	})

	t.Run("sentinel slots still produce rows", func(t *testing.T) {
		ev := threeSlotEvent("Dash")
		ev.Variations = []string{domain.UnresolvedURL, domain.UnresolvedURL, domain.UnresolvedURL}

		manifest := WwiseImportMap("demo", []domain.EventResult{ev})
		lines := strings.Split(strings.TrimRight(manifest, "\n"), "\n")

		assert.Len(t, lines, 4)
	})

	t.Run("no events yields header only", func(t *testing.T) {
		manifest := WwiseImportMap("demo", nil)

		assert.Equal(t, "Audio File\tObject Path\tEvent\tVariation\n", manifest)
	})
}
