// Package introspect exposes a read-only HTTP view of a container's modules
// and registrations for debugging.
//
//	r := gin.New()
//	introspect.Mount(r.Group("/debug"), container)
//	// GET /debug/di/modules
//	// GET /debug/di/registrations?module=app.Billing
package introspect
