package export

import (
	"fmt"
	"strings"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
)

const wwiseHeader = "Audio File\tObject Path\tEvent\tVariation"

// WwiseImportMap renders the tab-separated import manifest consumed by
// the Wwise tab-delimited import dialog: one header line plus one line
// per (event, variation) pair. Deterministic for equal input.
func WwiseImportMap(project string, events []domain.EventResult) string {
	var b strings.Builder
	b.WriteString(wwiseHeader)
	b.WriteString("\n")

	for _, ev := range events {
		objectPath := fmt.Sprintf(`\Actor-Mixer Hierarchy\Default Work Unit\%s\%s`,
			sanitizeName(project), sanitizeName(ev.Name))
		fileStem := strings.ToLower(sanitizeName(ev.Name))

		for i := range ev.Variations {
			fmt.Fprintf(&b, "%s_%02d.wav\t%s\t%s\t%d\n", fileStem, i, objectPath, ev.Name, i)
		}
	}
	return b.String()
}

// sanitizeName keeps letters and digits, mapping everything else to an
// underscore so names stay safe as Wwise object and file path segments.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
