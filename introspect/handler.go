package introspect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/tinyioc/di"
)

// ModuleView describes one module.
type ModuleView struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Services int    `json:"services"`
}

// RegistrationView describes one registered service.
type RegistrationView struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Module      string `json:"module"`
	Lifetime    string `json:"lifetime"`
	Initialized bool   `json:"initialized"`
}

// Mount registers the introspection routes under r.
func Mount(r gin.IRouter, c *di.Container) {
	g := r.Group("/di")
	g.GET("/modules", Modules(c))
	g.GET("/registrations", Registrations(c))
}

// Modules returns a handler listing the container's modules.
func Modules(c *di.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		keys := c.Modules()
		views := make([]ModuleView, 0, len(keys))
		for _, key := range keys {
			m, ok := c.GetModule(key)
			if !ok {
				continue
			}
			views = append(views, ModuleView{Name: m.Name(), ID: m.ID(), Services: m.Len()})
		}
		ctx.JSON(http.StatusOK, gin.H{"modules": views})
	}
}

// Registrations returns a handler listing registered services, optionally
// filtered by the "module" query parameter.
func Registrations(c *di.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		filter := ctx.Query("module")

		views := []RegistrationView{}
		for _, info := range c.Registrations() {
			module := info.Module.String()
			if filter != "" && module != filter {
				continue
			}
			views = append(views, RegistrationView{
				ID:          info.ID,
				Key:         info.Key.String(),
				Module:      module,
				Lifetime:    info.Lifetime.String(),
				Initialized: info.Initialized,
			})
		}
		ctx.JSON(http.StatusOK, gin.H{"registrations": views})
	}
}
