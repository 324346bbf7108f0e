package main

import (
	"github.com/matryer/way"
)

const URI_WS = "/invade"
const URI_MAPS = "/maps"

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URI_WS, s.SimServer.HandleHttpCall())
	s.router.HandleFunc("GET", URI_MAPS, s.SimServer.HandleMaps())
}
