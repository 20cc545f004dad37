package pagination

// Wire names of the parameters interpreted by this package.
const (
	ParamPage    = "page"
	ParamPerPage = "per_page"
	ParamSort    = "sort"
)

// DefaultPerPage is the page size the API applies when per_page is not sent.
const DefaultPerPage = 5

// Params holds request parameters keyed by their wire name.
type Params map[string]string

// Clone returns a copy of p. A nil Params yields an empty, non-nil map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Alias maps alternative spellings of a parameter onto its canonical name.
type Alias struct {
	Canonical string
	Names     []string
}

// PerPageAlias accepts the camel-case and dashed spellings of per_page.
var PerPageAlias = Alias{Canonical: ParamPerPage, Names: []string{"perPage", "per-page"}}

// Normalize rewrites aliased keys of p in place and returns p.
//
// A non-empty canonical value always wins. Otherwise the first non-empty alias in
// declaration order is used. All alias keys are removed afterwards, so running
// Normalize on an already canonical set changes nothing.
func Normalize(p Params, aliases ...Alias) Params {
	if p == nil {
		p = Params{}
	}
	for _, a := range aliases {
		if p[a.Canonical] == "" {
			for _, name := range a.Names {
				if v := p[name]; v != "" {
					p[a.Canonical] = v
					break
				}
			}
		}
		for _, name := range a.Names {
			delete(p, name)
		}
	}
	return p
}
