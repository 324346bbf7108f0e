package model

// ServerMessage is one frame sent to a watcher. Each slice holds zero or one
// part, so a frame carries only what changed.
type ServerMessage struct {
	Setup []Setup
	Days  []DayReport
	Final []Final
}

type Setup struct {
	Session string
	Map     string
	Cities  []string
	Aliens  []Alien
	Days    int
}

type Final struct {
	Summary Summary
	Map     string
	Reason  string
}

type ClientMessage struct {
	Stop bool
}
