package server

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/invasion/config"
	"github.com/zucenko/invasion/model"
)

func NewSimServer(conf *config.Config) *SimServer {
	timeout := conf.Server.Timeout
	if timeout <= 0 {
		timeout = 200 * time.Millisecond
	}
	return &SimServer{
		Sessions:    make([]*SimSession, 0),
		SimRequests: make(chan SimRequest),
		Finished:    make(chan string, 16),
		Upgrader:    &websocket.Upgrader{},
		MapsDir:     conf.Server.MapsDir,
		Timeout:     timeout,
		DayDelay:    conf.Server.DayDelay,
		Defaults: SimParams{
			Aliens: conf.Sim.Aliens,
			Days:   conf.Sim.Days,
			Seed:   conf.Sim.Seed,
		},
	}
}

// parseParams reads map, aliens, days and seed from the query string,
// falling back to the server defaults.
func (s *SimServer) parseParams(r *http.Request) (SimParams, error) {
	q := r.URL.Query()
	p := s.Defaults
	p.Map = q.Get("map")
	if p.Map == "" {
		return p, errors.New("missing map")
	}
	for key, dst := range map[string]*int{"aliens": &p.Aliens, "days": &p.Days} {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return p, errors.New("bad " + key)
			}
			*dst = n
		}
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return p, errors.New("bad seed")
		}
		p.Seed = n
	}
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	return p, nil
}

func (s *SimServer) HandleHttpCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received %s", r.URL.RawQuery)
		params, err := s.parseParams(r)
		if err != nil {
			log.Warnf("HandleHttpCall %v", err)
			http.Error(w, err.Error(), HTTP_BAD_REQUEST)
			return
		}

		scas := make(chan SimContextAwaiting, 1)
		select {
		case s.SimRequests <- SimRequest{Params: params, SimContextAwaiting: scas}:
		case <-time.After(s.Timeout):
			log.Warn("SimRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sca SimContextAwaiting
		select {
		case sca = <-scas:
			log.Printf("HandleHttpCall SimContextAwaiting <- code:%d", sca.ResponseCode)
			if sca.ResponseCode != SIM_READY {
				http.Error(w, sca.Reason, sca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(s.Timeout):
			log.Warnf("HandleHttpCall SimContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client.
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			sca.SimSession.finish(SS_ERR)
			return
		}
		defer con.Close()

		sca.SimSession.Play(con)
	}
}

// HandleMaps lists the map files a session can be started on.
func (s *SimServer) HandleMaps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := listMaps(s.MapsDir)
		if err != nil {
			log.Warnf("HandleMaps %v", err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(names); err != nil {
			log.Warnf("HandleMaps encode %v", err)
		}
	}
}

// Loop owns the session list until ctx is done.
func (s *SimServer) Loop(ctx context.Context) {
	log.Printf("SimServer.Loop starting")
	for {
		select {
		case <-ctx.Done():
			log.Printf("SimServer.Loop ENDED")
			return
		case req := <-s.SimRequests:
			reg, code, err := loadMap(s.MapsDir, req.Params.Map)
			if err != nil {
				log.Warnf("SimServer.Loop map %q: %v", req.Params.Map, err)
				req.SimContextAwaiting <- SimContextAwaiting{ResponseCode: code, Reason: err.Error()}
				continue
			}
			ss := s.newSession(req.Params, reg)
			s.Sessions = append(s.Sessions, ss)
			log.WithFields(log.Fields{"session": ss.Id, "map": req.Params.Map}).Info("create SimSession")
			req.SimContextAwaiting <- SimContextAwaiting{ResponseCode: SIM_READY, SimSession: ss}
		case id := <-s.Finished:
			for i, ss := range s.Sessions {
				if ss.Id == id {
					s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
					break
				}
			}
			log.Printf("SimServer.Loop session %s removed, %d left", id, len(s.Sessions))
		}
	}
}

func (s *SimServer) newSession(p SimParams, reg *model.Registry) *SimSession {
	return &SimSession{
		state:          SS_NEW,
		Id:             uuid.NewString(),
		Params:         p,
		World:          model.NewWorld(reg, rand.New(rand.NewSource(p.Seed))),
		MessagesToSend: make(chan model.ServerMessage, 10),
		stop:           make(chan struct{}),
		writerDone:     make(chan struct{}),
		dayDelay:       s.DayDelay,
		finished:       s.Finished,
	}
}

func (ss *SimSession) State() SimSessionState {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.state
}

func (ss *SimSession) setState(state SimSessionState) {
	ss.mu.Lock()
	ss.state = state
	ss.mu.Unlock()
}

// Stop asks the tick loop to end after the current day.
func (ss *SimSession) Stop() {
	ss.stopOnce.Do(func() { close(ss.stop) })
}

func (ss *SimSession) finish(state SimSessionState) {
	ss.setState(state)
	select {
	case ss.finished <- ss.Id:
	default:
		log.Warnf("SimSession %s finished but nobody is listening", ss.Id)
	}
}

// Play runs the whole invasion over conn and returns once it is over
// or the watcher went away.
func (ss *SimSession) Play(conn *websocket.Conn) {
	ss.Conn = conn
	ss.DebugStarted = time.Now()
	ss.setState(SS_RUN)
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ss.LoopChannelRead()
	go ss.LoopChannelWrite()

	w := ss.World
	w.SpawnAliens(ss.Params.Aliens)
	ss.send(model.ServerMessage{Setup: []model.Setup{{
		Session: ss.Id,
		Map:     ss.Params.Map,
		Cities:  w.Registry.Cities(),
		Aliens:  w.Aliens(),
		Days:    ss.Params.Days,
	}}})

	reason := "days"
	state := SS_OVER
loop:
	for day := 0; day < ss.Params.Days; day++ {
		if w.IsOver() {
			reason = "over"
			break
		}
		select {
		case <-ss.stop:
			reason = "stopped"
			break loop
		case <-ss.writerDone:
			reason = "watcher lost"
			state = SS_ERR
			break loop
		case <-time.After(ss.dayDelay):
		}
		report := w.Tick()
		if !ss.send(model.ServerMessage{Days: []model.DayReport{report}}) {
			reason = "watcher lost"
			state = SS_ERR
			break
		}
	}
	if reason == "days" && w.IsOver() {
		reason = "over"
	}

	summary := w.Summary()
	ss.send(model.ServerMessage{Final: []model.Final{{
		Summary: summary,
		Map:     w.Registry.Render(),
		Reason:  reason,
	}}})
	close(ss.MessagesToSend)
	<-ss.writerDone
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(time.Second))
	log.WithFields(log.Fields{"session": ss.Id, "days": summary.Days, "reason": reason}).Info("SimSession over")
	ss.Stop()
	ss.finish(state)
}

func (ss *SimSession) send(m model.ServerMessage) bool {
	select {
	case ss.MessagesToSend <- m:
		return true
	case <-ss.writerDone:
		return false
	}
}

// LoopChannelRead waits for a stop request. Any read error also stops the run.
func (ss *SimSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
	defer ss.Stop()
	for {
		_, r, err := ss.Conn.NextReader()
		if err != nil {
			log.Printf("LoopChannelRead ended: %v", err)
			return
		}
		cm := &model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(cm); err != nil {
			log.Warnf("LoopChannelRead cant decode %v", err)
			return
		}
		if cm.Stop {
			log.Info("LoopChannelRead stop requested")
			return
		}
	}
}

// LoopChannelWrite only consumes, so a slow watcher cannot stall anything
// but its own session.
func (ss *SimSession) LoopChannelWrite() {
	log.Printf("SimSession.LoopChannelWrite STARTED")
	defer close(ss.writerDone)
	for mes := range ss.MessagesToSend {
		w, err := ss.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("SimSession.LoopChannelWrite cant get writer %v", err)
			return
		}
		if err := gob.NewEncoder(w).Encode(mes); err != nil {
			log.Warnf("SimSession.LoopChannelWrite cant encode %v", err)
			return
		}
		if err := w.Close(); err != nil {
			log.Warnf("SimSession.LoopChannelWrite cant flush %v", err)
			return
		}
		ss.DebugOutMessages++
	}
	log.Printf("LoopChannelWrite ENDED")
}
