package manifest

// Manifest is the list of template files materialized into a project.
type Manifest struct {
	Version int     `yaml:"version" json:"version"`
	Files   []Entry `yaml:"files" json:"files"`
}

// Entry maps one template to its destination inside the project. Src is
// relative to the template root, Dest to the project root.
type Entry struct {
	Src       string `yaml:"src" json:"src"`
	Dest      string `yaml:"dest" json:"dest"`
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty"`
}

// Transform names. An empty transform copies the template verbatim.
const (
	TransformNone   = ""
	TransformEvents = "events"
)

// ValidTransforms contains all transform values the schema accepts.
var ValidTransforms = []string{TransformEvents}

// HasTransform reports whether the entry rewrites the template before writing.
func (e Entry) HasTransform() bool {
	return e.Transform != TransformNone
}
