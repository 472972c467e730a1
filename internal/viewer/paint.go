// Package viewer decides which parts of a 3D car model receive the body
// color. Mesh and material names in the shipped assets follow loose naming
// conventions, so the decision is a keyword match rather than a scene graph
// walk.
package viewer

import "strings"

// DefaultExcludedKeywords covers the glass, chrome, wheel and interior
// naming used by the current model assets. Assets with other conventions
// can supply their own set.
var DefaultExcludedKeywords = []string{
	"glass",
	"window",
	"tire",
	"rubber",
	"chrome",
	"metal",
	"light",
	"lens",
	"rim",
	"wheel",
	"interior",
}

// PaintFilter reports whether a mesh should be repainted with the body
// color. Matching is case-insensitive substring on either the material or
// the mesh name, and order of keywords is irrelevant.
type PaintFilter struct {
	keywords []string
}

// NewPaintFilter builds a filter from the given exclusion keywords,
// falling back to DefaultExcludedKeywords when none are given.
func NewPaintFilter(keywords ...string) *PaintFilter {
	if len(keywords) == 0 {
		keywords = DefaultExcludedKeywords
	}

	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}

	return &PaintFilter{keywords: lowered}
}

// Paintable is true when neither the material nor the mesh name contains
// any excluded keyword.
func (f *PaintFilter) Paintable(materialName, meshName string) bool {
	material := strings.ToLower(materialName)
	mesh := strings.ToLower(meshName)

	for _, k := range f.keywords {
		if strings.Contains(material, k) || strings.Contains(mesh, k) {
			return false
		}
	}

	return true
}

// Keywords returns a copy of the active exclusion set.
func (f *PaintFilter) Keywords() []string {
	return append([]string(nil), f.keywords...)
}
