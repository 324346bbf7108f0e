package model

import (
	"fmt"
	"sort"
)

func NewRegistry() *Registry {
	return &Registry{
		cities: make([]string, 0),
		routes: make(map[string]map[Direction]string),
	}
}

// AddCity registers name with no roads. Existing cities are left untouched.
func (r *Registry) AddCity(name string) {
	if _, found := r.routes[name]; found {
		return
	}
	r.cities = append(r.cities, name)
	r.routes[name] = make(map[Direction]string)
}

// Link builds a two-way road: from -d-> to and to -d.Opposite()-> from.
// Both ends are registered if missing. Linking a pair that is already linked
// the same way does nothing; taking a slot held by another city fails with
// ErrRouteAlreadyExists and leaves the registry unchanged.
func (r *Registry) Link(from string, d Direction, to string) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	back := d.Opposite()
	if cur, found := r.routes[from][d]; found && cur != to {
		return fmt.Errorf("%w: %s %s is %s, not %s", ErrRouteAlreadyExists, from, d, cur, to)
	}
	if cur, found := r.routes[to][back]; found && cur != from {
		return fmt.Errorf("%w: %s %s is %s, not %s", ErrRouteAlreadyExists, to, back, cur, from)
	}
	r.AddCity(from)
	r.AddCity(to)
	r.routes[from][d] = to
	r.routes[to][back] = from
	return nil
}

// Destroy removes the city and every road that leads to it.
// It reports whether the city was live.
func (r *Registry) Destroy(name string) bool {
	if _, found := r.routes[name]; !found {
		return false
	}
	delete(r.routes, name)
	for i, c := range r.cities {
		if c == name {
			r.cities = append(r.cities[:i], r.cities[i+1:]...)
			break
		}
	}
	for _, roads := range r.routes {
		for d, dest := range roads {
			if dest == name {
				delete(roads, d)
			}
		}
	}
	return true
}

func (r *Registry) IsLive(name string) bool {
	_, found := r.routes[name]
	return found
}

func (r *Registry) Len() int {
	return len(r.cities)
}

// Cities returns live city names in the order they were first seen.
func (r *Registry) Cities() []string {
	out := make([]string, len(r.cities))
	copy(out, r.cities)
	return out
}

// Routes returns a copy of the roads leaving city, nil for unknown cities.
func (r *Registry) Routes(city string) map[Direction]string {
	roads, found := r.routes[city]
	if !found {
		return nil
	}
	out := make(map[Direction]string, len(roads))
	for d, dest := range roads {
		out[d] = dest
	}
	return out
}

// Route returns the destination of the road leaving city towards d.
func (r *Registry) Route(city string, d Direction) (string, bool) {
	dest, found := r.routes[city][d]
	return dest, found
}

// Directions lists the open directions of city in render order.
func (r *Registry) Directions(city string) []Direction {
	roads := r.routes[city]
	out := make([]Direction, 0, len(roads))
	for d := range roads {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
