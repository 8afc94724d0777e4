// Package server exposes the procurement agent over HTTP.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/agents/router"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

// New creates and configures the HTTP server around the message router.
func New(rt *router.Router, store statex.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h := NewHandler(rt, store)
	h.RegisterRoutes(e)

	return e
}
