package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteIndex     = "/"
	RouteLogin     = "/login"
	RouteSignup    = "/signup"
	RouteDashboard = "/dashboard"

	// Auth actions
	RouteAuthLogin  = "/auth/login"
	RouteAuthSignup = "/auth/signup"
	RouteAuthLogout = "/auth/logout"

	// Authorized API proxy (everything under here goes through the refresh
	// coordinator)
	RouteAPIPrefix = "/api/"

	// Ops
	RouteHealthz = "/healthz"
	RouteMetrics = "/metrics"
)

// CallbackParam carries the originally requested path through the sign-in
// redirect so a successful sign-in can return to it.
const CallbackParam = "callbackUrl"
