package clips

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml
var ClipsFS embed.FS

// Load reads a clip definition document. A file in the clips/ directory on
// disk shadows the embedded copy of the same name.
func Load(name string) ([]byte, error) {
	clean := cleanClipPath(name)
	if data, err := os.ReadFile(diskClipPath(clean)); err == nil {
		return data, nil
	}
	return ClipsFS.ReadFile(clean)
}

// ModTime returns the on-disk modification time of a definition, if a disk
// copy exists.
func ModTime(name string) (time.Time, bool) {
	clean := cleanClipPath(name)
	info, err := os.Stat(diskClipPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanClipPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "clips/") {
		return strings.TrimPrefix(s, "clips/")
	}
	return s
}

func diskClipPath(clean string) string {
	return filepath.Join("clips", filepath.FromSlash(clean))
}
