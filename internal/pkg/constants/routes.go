package constants

// Static route constants
const (
	HomeRoute      = "/"
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
	// Share path without trailing slash for URL construction
	ShareRoute = "/b"
)
