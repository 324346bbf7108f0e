package model

// Registry is the road graph. Cities reference each other by name only.
type Registry struct {
	cities []string
	routes map[string]map[Direction]string
}

type Alien struct {
	Name        string
	CurrentCity string
	Trapped     bool
	Dead        bool
}

// Active aliens still move and still count for collisions.
func (a Alien) Active() bool {
	return !a.Dead && !a.Trapped
}

// Rand is the slice of *rand.Rand the engine needs.
type Rand interface {
	Intn(n int) int
}

// World is the whole mutable state of a single run.
type World struct {
	Registry  *Registry
	aliens    []*Alien
	rng       Rand
	day       int
	destroyed int
}

type Move struct {
	Alien     string
	From      string
	Direction Direction
	To        string
}

type Destruction struct {
	City   string
	Aliens []string
}

type DayReport struct {
	Day       int
	Moves     []Move
	Trapped   []string
	Destroyed []Destruction
}

type Summary struct {
	Days      int
	Cities    int
	Destroyed int
	Aliens    int
	Dead      int
	Trapped   int
	Over      bool
}

// Survivors are aliens neither dead nor trapped.
func (s Summary) Survivors() int {
	return s.Aliens - s.Dead - s.Trapped
}
