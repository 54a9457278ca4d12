package router

import (
	"billiard/internal/handlers/occupation"
	"billiard/internal/handlers/table"
	"billiard/internal/handlers/waitinglist"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Table       table.Handler
	Occupation  occupation.Handler
	WaitingList waitinglist.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Occupation.Router(routerGroup)
		r.DomainHandlers.WaitingList.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
