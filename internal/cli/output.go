package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/pipeline"
)

// =============================================================================
// Artifact Files
// =============================================================================

// artifactPath names the file for one format. With a single format an
// explicit output is used as is; otherwise it is a base path and each
// format gets its own suffix. Solution documents get a ".solution" infix so
// they never overwrite a JSON arena next to them.
func artifactPath(input, output, format string, single bool) string {
	if output != "" && single {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	switch format {
	case pipeline.FormatJSON, pipeline.FormatYAML:
		return base + ".solution." + format
	default:
		return base + "." + format
	}
}

// writeArtifacts writes each artifact in format order and returns the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(input, output, format, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", format, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// =============================================================================
// Solution Display
// =============================================================================

// formatIDs renders node IDs sorted, e.g. "{1, 2, 4}".
func formatIDs(ids []arena.NodeID) string {
	sorted := slices.Sorted(slices.Values(ids))
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprint(int(id))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// formatStrategy renders a strategy sorted by source, e.g. "1→2, 3→1".
func formatStrategy(s arena.Strategy) string {
	if len(s) == 0 {
		return "-"
	}
	from := make([]arena.NodeID, 0, len(s))
	for id := range s {
		from = append(from, id)
	}
	slices.Sort(from)
	parts := make([]string, len(from))
	for i, id := range from {
		parts[i] = fmt.Sprintf("%d%s%d", id, iconArrow, s[id])
	}
	return strings.Join(parts, ", ")
}

// printSolution prints both regions and, when present, both strategies.
func printSolution(sol *arena.Solution) {
	for p := range arena.Player(2) {
		printPlayerValue(p, fmt.Sprintf("W%d", p), formatIDs(sol.Regions[p]))
	}
	if !sol.HasStrategies() {
		return
	}
	for p := range arena.Player(2) {
		printPlayerValue(p, fmt.Sprintf("σ%d", p), formatStrategy(sol.Strategies[p]))
	}
}
