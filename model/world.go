package model

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

func NewWorld(reg *Registry, rng Rand) *World {
	if reg == nil {
		reg = NewRegistry()
	}
	return &World{
		Registry: reg,
		aliens:   make([]*Alien, 0),
		rng:      rng,
	}
}

func (w *World) Day() int {
	return w.day
}

// Aliens returns copies of every alien ever spawned, dead and trapped included.
func (w *World) Aliens() []Alien {
	out := make([]Alien, 0, len(w.aliens))
	for _, a := range w.aliens {
		out = append(out, *a)
	}
	return out
}

// SpawnAliens drops count aliens on uniformly random live cities.
// Several aliens may land on the same city.
func (w *World) SpawnAliens(count int) {
	cities := w.Registry.Cities()
	if len(cities) == 0 {
		log.Warnf("SpawnAliens no city left for %d aliens", count)
		return
	}
	log.Debugf("Spawning %d aliens", count)
	for i := 0; i < count; i++ {
		a := &Alien{
			Name:        fmt.Sprintf("alien%d", len(w.aliens)),
			CurrentCity: cities[w.rng.Intn(len(cities))],
		}
		w.aliens = append(w.aliens, a)
		log.WithFields(log.Fields{"alien": a.Name, "city": a.CurrentCity}).Debug("alien landed")
	}
	log.Infof("Spawned %d aliens", count)
}

// Move walks every active alien down one random road. Aliens standing in a
// city without roads become trapped for good.
func (w *World) Move() ([]Move, []string) {
	moves := make([]Move, 0, len(w.aliens))
	trapped := make([]string, 0)
	for _, a := range w.aliens {
		if !a.Active() {
			continue
		}
		dirs := w.Registry.Directions(a.CurrentCity)
		if len(dirs) == 0 {
			a.Trapped = true
			trapped = append(trapped, a.Name)
			log.WithFields(log.Fields{"alien": a.Name, "city": a.CurrentCity}).Info("alien trapped")
			continue
		}
		d := dirs[w.rng.Intn(len(dirs))]
		to, _ := w.Registry.Route(a.CurrentCity, d)
		moves = append(moves, Move{Alien: a.Name, From: a.CurrentCity, Direction: d, To: to})
		log.Debugf("Alien %s moved %s from %s to %s", a.Name, d, a.CurrentCity, to)
		a.CurrentCity = to
	}
	return moves, trapped
}

// Collide destroys every city holding two or more active aliens and kills
// everyone standing there. All live cities are examined on each call.
func (w *World) Collide() []Destruction {
	occupants := make(map[string]int)
	for _, a := range w.aliens {
		if a.Active() {
			occupants[a.CurrentCity]++
		}
	}
	destroyed := make([]Destruction, 0)
	for _, city := range w.Registry.Cities() {
		if occupants[city] < 2 {
			continue
		}
		victims := make([]string, 0, occupants[city])
		for _, a := range w.aliens {
			if a.CurrentCity == city {
				a.Dead = true
				victims = append(victims, a.Name)
			}
		}
		w.Registry.Destroy(city)
		w.destroyed++
		destroyed = append(destroyed, Destruction{City: city, Aliens: victims})
		log.WithFields(log.Fields{"day": w.day, "city": city}).
			Infof("%s has been destroyed by %s", city, strings.Join(victims, ", "))
	}
	return destroyed
}

// Tick runs one day: everybody moves, then collisions are resolved.
func (w *World) Tick() DayReport {
	w.day++
	moves, trapped := w.Move()
	return DayReport{
		Day:       w.day,
		Moves:     moves,
		Trapped:   trapped,
		Destroyed: w.Collide(),
	}
}

// IsOver is true once no alien can move any more or no city is left.
func (w *World) IsOver() bool {
	if w.Registry.Len() == 0 {
		return true
	}
	for _, a := range w.aliens {
		if a.Active() {
			return false
		}
	}
	return true
}

// Run ticks until days are used up or IsOver. onDay may be nil.
func (w *World) Run(days int, onDay func(DayReport)) Summary {
	for i := 0; i < days && !w.IsOver(); i++ {
		report := w.Tick()
		if onDay != nil {
			onDay(report)
		}
	}
	return w.Summary()
}

func (w *World) Summary() Summary {
	s := Summary{
		Days:      w.day,
		Cities:    w.Registry.Len(),
		Destroyed: w.destroyed,
		Aliens:    len(w.aliens),
		Over:      w.IsOver(),
	}
	for _, a := range w.aliens {
		switch {
		case a.Dead:
			s.Dead++
		case a.Trapped:
			s.Trapped++
		}
	}
	return s
}
