package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/gamesolver/pkg/arena"
	"github.com/matzehuels/gamesolver/pkg/cache"
	gerr "github.com/matzehuels/gamesolver/pkg/errors"
	gio "github.com/matzehuels/gamesolver/pkg/io"
)

// LoadArena reads an arena from path. Files ending in .json use the JSON
// graph format; everything else is read as the text format.
func LoadArena(path string) (*arena.Arena, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, gerr.Wrap(gerr.ErrCodeFileNotFound, err, "arena file %s", path)
		}
		if err != nil {
			return nil, err
		}
		return gio.ReadArenaJSON(bytes.NewReader(data))
	}
	return gio.ImportArena(path)
}

// DecodeArena parses an arena from data. A leading '{' selects the JSON
// graph format.
func DecodeArena(data []byte) (*arena.Arena, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return gio.ReadArenaJSON(bytes.NewReader(trimmed))
	}
	return gio.ReadArena(bytes.NewReader(data))
}

// HashArena returns the content hash of a in the text format. Arenas that
// differ only in node insertion order hash differently.
func HashArena(a *arena.Arena) (string, error) {
	var buf bytes.Buffer
	if err := gio.WriteArena(a, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
