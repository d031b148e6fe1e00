package source

// Registry holds the fixed, ordered list of site parsers. Order matters:
// the first parser whose predicate accepts a document wins. The two
// fodmap-formula parsers overlap by domain, so the newer template is
// checked first.
type Registry struct {
	parsers []Parser
}

// NewRegistry returns the registry of all supported site parsers.
func NewRegistry() *Registry {
	return &Registry{parsers: []Parser{
		fodmapFormulaNew{},
		fodmapFormulaOld{},
		fodmapEveryday{},
		karlijns{},
	}}
}

// FindDetailParser returns the first parser that can parse in as a recipe
// detail page, or nil. A nil result is a normal outcome, not an error.
func (r *Registry) FindDetailParser(in Input) Parser {
	for _, p := range r.parsers {
		if p.CanParse(in) {
			return p
		}
	}
	return nil
}

// FindListParser returns the first parser that can read in as a listing
// page, or nil.
func (r *Registry) FindListParser(in Input) Parser {
	for _, p := range r.parsers {
		if p.CanList(in) {
			return p
		}
	}
	return nil
}
