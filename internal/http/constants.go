package http

import "time"

const (
	PathHealth     = "/api/health"
	PathDashboard  = "/api/dashboard"
	PathConnect    = "/api/connect"
	PathDisconnect = "/api/disconnect"
	PathRefresh    = "/api/refresh"
	PathMetrics    = "/metrics"
)

const (
	JSONKeyOK       = "ok"
	JSONKeyError    = "error"
	JSONKeyView     = "view"
	JSONKeyStarted  = "started"
	JSONKeyStatus   = "status"
	JSONKeyState    = "state"
	JSONKeyStats    = "stats"
	JSONKeyStrategy = "strategy"
)

const (
	connectTimeout    = 2 * time.Minute
	readHeaderTimeout = 5 * time.Second
)
