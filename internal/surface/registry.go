package surface

// Registry holds named surfaces for the host render path. Components own
// their entry via an id-derived name; two components must not share one.
type Registry struct {
	surfaces map[string]*Surface
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*Surface)}
}

// Get returns the surface registered under id, creating it on first
// access. When the requested area differs from the stored one the surface
// is resized and cleared before being returned.
func (r *Registry) Get(id string, area Rect) *Surface {
	if s, ok := r.surfaces[id]; ok {
		if s.Area() != area {
			s.Resize(area)
			s.Clear()
		}
		return s
	}
	s := New(area)
	r.surfaces[id] = s
	return s
}

// Lookup returns the surface registered under id without creating one.
func (r *Registry) Lookup(id string) (*Surface, bool) {
	s, ok := r.surfaces[id]
	return s, ok
}

// Len reports the number of registered surfaces.
func (r *Registry) Len() int { return len(r.surfaces) }
