package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Load reads an archetype file, preferring an on-disk copy under prefabs/
// so designers can tune values without rebuilding; the embedded defaults
// are the fallback.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ArchetypesFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPath(name)
	info, err := os.Stat(diskPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "archetypes/") {
		s = "archetypes/" + s
	}
	return s
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
