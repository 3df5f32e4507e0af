package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskDir is where on-disk overrides are looked up, relative to the working
// directory. Running from the repository root picks up edited files without a
// rebuild.
const DiskDir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns a spec file such as "world.yaml" or "prefabs/world.yaml".
func Load(name string) ([]byte, error) {
	return readOverride(PrefabsFS, strings.TrimPrefix(filepath.ToSlash(name), DiskDir+"/"))
}

// LoadScript returns a volley script by bare name or by any of its
// prefabs/scripts/ prefixed forms.
func LoadScript(name string) ([]byte, error) {
	return readOverride(ScriptsFS, scriptPath(name))
}

func scriptPath(name string) string {
	s := filepath.ToSlash(name)
	for _, prefix := range []string{DiskDir + "/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return path.Join("scripts", s)
}

// readOverride prefers DiskDir/rel over the embedded copy.
func readOverride(fsys fs.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fs.ReadFile(fsys, rel)
}
