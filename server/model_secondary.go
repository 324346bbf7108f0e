package server

import (
	"fmt"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_NOT_FOUND = 404
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	SIM_READY ResponseCode = iota
	SIM_MAP_NOT_FOUND
	SIM_INVALID
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SIM_READY:
		return HTTP_SUCCESS
	case SIM_MAP_NOT_FOUND:
		return HTTP_NOT_FOUND
	case SIM_INVALID:
		return HTTP_BAD_REQUEST
	default:
		panic(h)
	}
}

func (ss SimSessionState) Name() string {
	switch ss {
	case SS_NEW:
		return "SS_NEW"
	case SS_RUN:
		return "SS_RUN"
	case SS_OVER:
		return "SS_OVER"
	case SS_ERR:
		return "SS_ERR"
	default:
		return fmt.Sprintf("n/a:%d", ss)
	}
}

type SimContextAwaiting struct {
	ResponseCode ResponseCode
	Reason       string
	SimSession   *SimSession
}

type SimRequest struct {
	Params             SimParams
	SimContextAwaiting chan SimContextAwaiting
}
