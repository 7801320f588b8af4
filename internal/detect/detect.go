package detect

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

const (
	// ManifestFile is the package manifest at the project root.
	ManifestFile = "package.json"

	// StrapiDependency is the package that marks a Strapi project.
	StrapiDependency = "@strapi/strapi"
)

// EntryPoints are the conventional Strapi entry points, relative to the
// project root. One of them must exist.
var EntryPoints = []string{
	filepath.Join("src", "index.ts"),
	filepath.Join("src", "index.js"),
}

// Facts is a read-only snapshot of everything detection looks at.
type Facts struct {
	Dir               string
	HasManifest       bool
	ManifestParsed    bool
	InDependencies    bool
	InDevDependencies bool
	StrapiRange       string
	EntryPoints       []string // entry points that exist, relative to Dir
}

// Inspect reads the project manifest and probes the entry points in dir.
// It never fails: unreadable or malformed manifests are recorded as facts.
func Inspect(dir string) Facts {
	f := Facts{Dir: dir}

	for _, ep := range EntryPoints {
		if _, err := os.Stat(filepath.Join(dir, ep)); err == nil {
			f.EntryPoints = append(f.EntryPoints, ep)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return f
	}
	f.HasManifest = true

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return f
	}
	pkg, ok := raw.(map[string]any)
	if !ok {
		// null, arrays and scalars parse but cannot hold dependency maps.
		return f
	}
	f.ManifestParsed = true

	if v, ok := lookup(pkg, "dependencies"); ok {
		f.InDependencies = truthy(v)
		f.StrapiRange = rangeString(v)
	}
	if v, ok := lookup(pkg, "devDependencies"); ok {
		f.InDevDependencies = truthy(v)
		if f.StrapiRange == "" {
			f.StrapiRange = rangeString(v)
		}
	}

	return f
}

// Compatible reports whether the facts describe a Strapi project: the
// dependency is declared in either map and an entry point exists.
func Compatible(f Facts) bool {
	if !f.HasManifest || !f.ManifestParsed {
		return false
	}
	return (f.InDependencies || f.InDevDependencies) && len(f.EntryPoints) > 0
}

// Problems lists why f is not compatible, in the order detection checks
// them. It is empty for a compatible project.
func (f Facts) Problems() []string {
	var out []string
	switch {
	case !f.HasManifest:
		out = append(out, ManifestFile+" not found")
	case !f.ManifestParsed:
		out = append(out, ManifestFile+" is not a valid JSON object")
	case !f.InDependencies && !f.InDevDependencies:
		out = append(out, StrapiDependency+" is not listed in dependencies or devDependencies")
	}
	if len(f.EntryPoints) == 0 {
		out = append(out, "neither src/index.ts nor src/index.js exists")
	}
	return out
}

// IsStrapiProject is Compatible(Inspect(dir)).
func IsStrapiProject(dir string) bool {
	return Compatible(Inspect(dir))
}

var versionLiteral = regexp.MustCompile(`\d+(\.\d+){0,2}(-[0-9A-Za-z.-]+)?`)

// ErrNoVersion is returned when the declared range holds no version literal,
// e.g. "latest" or "*".
var ErrNoVersion = errors.New("no version in dependency range")

// StrapiVersion returns the lowest version literal found in the declared
// Strapi range ("^5.0.0" → 5.0.0, ">=4.15 <6" → 4.15.0).
func (f Facts) StrapiVersion() (*semver.Version, error) {
	var lowest *semver.Version
	for _, lit := range versionLiteral.FindAllString(f.StrapiRange, -1) {
		v, err := semver.NewVersion(lit)
		if err != nil {
			continue
		}
		if lowest == nil || v.LessThan(lowest) {
			lowest = v
		}
	}
	if lowest == nil {
		return nil, ErrNoVersion
	}
	return lowest, nil
}

// lookup returns deps[StrapiDependency] when deps is an object.
func lookup(pkg map[string]any, field string) (any, bool) {
	deps, ok := pkg[field].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := deps[StrapiDependency]
	return v, ok
}

// truthy mirrors how package managers treat a dependency value: an empty
// string, false, zero or null does not declare anything.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	default:
		return true
	}
}

func rangeString(v any) string {
	s, _ := v.(string)
	return s
}
