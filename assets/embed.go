// assets/embed.go
//
// Embedded default resources: localized prompt bundles under prompts/.
// The l10n package prefers a PROMPTS_DIR override and falls back to these.

package assets

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed prompts/*.yaml
var FS embed.FS

// PromptBundles returns the raw contents of every embedded prompt bundle,
// keyed by file name without extension (the locale tag).
func PromptBundles() (map[string][]byte, error) {
	return readBundles(FS, "prompts")
}

// readBundles reads every *.yaml / *.yml file directly under dir.
func readBundles(fsys fs.FS, dir string) (map[string][]byte, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(path.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(name, path.Ext(name))] = b
	}
	return out, nil
}

// ReadBundles reads prompt bundles from an arbitrary file system root.
func ReadBundles(fsys fs.FS) (map[string][]byte, error) {
	return readBundles(fsys, ".")
}
