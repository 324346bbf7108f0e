package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/invasion/model"
)

type SimServer struct {
	Sessions    []*SimSession
	SimRequests chan SimRequest
	Finished    chan string
	Upgrader    *websocket.Upgrader

	MapsDir  string
	Timeout  time.Duration
	DayDelay time.Duration
	Defaults SimParams
}

type SimSessionState int

const (
	SS_NEW SimSessionState = iota
	SS_RUN
	SS_OVER
	SS_ERR
)

// SimSession owns one World. Only the goroutine running Play touches it.
type SimSession struct {
	mu     sync.Mutex
	state  SimSessionState
	Id     string
	Params SimParams
	World  *model.World

	Conn           *websocket.Conn
	MessagesToSend chan model.ServerMessage
	stop           chan struct{}
	stopOnce       sync.Once
	writerDone     chan struct{}
	dayDelay       time.Duration
	finished       chan<- string

	DebugOutMessages int
	DebugStarted     time.Time
}

type SimParams struct {
	Map    string
	Aliens int
	Days   int
	Seed   int64
}
