package common

import "github.com/andrescamacho/colonybot/internal/application/mediator"

// Mediator types re-exported so handlers only import common
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

var NewMediator = mediator.NewMediator
