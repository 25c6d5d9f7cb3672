package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/api/http/middleware"
	"github.com/livecanvas/dashboard-backend/internal/auth"
	authhttp "github.com/livecanvas/dashboard-backend/internal/auth/http"
	authmw "github.com/livecanvas/dashboard-backend/internal/auth/middleware"
	bindinghttp "github.com/livecanvas/dashboard-backend/internal/bindings/http"
	dashboardhttp "github.com/livecanvas/dashboard-backend/internal/dashboards/http"
	"github.com/livecanvas/dashboard-backend/internal/editor"
	editorhttp "github.com/livecanvas/dashboard-backend/internal/editor/http"
	"github.com/livecanvas/dashboard-backend/internal/livevalues"
	livehttp "github.com/livecanvas/dashboard-backend/internal/livevalues/http"
)

// AuthAPI is what the routes need from the auth service.
type AuthAPI interface {
	authhttp.Service
	authmw.Verifier
}

// LiveResolver serves snapshots and per-code lookups.
type LiveResolver interface {
	livehttp.Snapshotter
	Lookup(code string) (string, bool)
}

type V1Deps struct {
	AuthRequired bool
	CookieSecure bool
	IngestAPIKey string
	LoginLimiter *middleware.IPRateLimiter

	Auth       AuthAPI
	Dashboards dashboardhttp.Service
	Bindings   bindinghttp.Service
	LiveValues livehttp.Store
	Resolver   LiveResolver
	Sessions   editor.SessionStore
	Gateway    editor.DashboardGateway
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	var limit []gin.HandlerFunc
	if dep.LoginLimiter != nil {
		limit = append(limit, dep.LoginLimiter.Middleware())
	}
	requireSession := authmw.RequireSession(dep.Auth)
	authhttp.New(dep.Auth, dep.CookieSecure).Register(api.Group("/auth"), requireSession, limit...)

	session := authmw.OptionalSession(dep.Auth)
	if dep.AuthRequired {
		session = requireSession
	}
	app := api.Group("", session)

	dashboardhttp.New(dep.Dashboards).Register(app.Group("/dashboards"))
	bindinghttp.New(dep.Bindings).Register(app.Group("/bindings"))

	live := livehttp.New(dep.LiveValues, dep.Resolver)
	live.Register(app.Group("/live-values"))
	live.RegisterIngest(api.Group("/live-values"), middleware.APIKeyMiddleware(dep.IngestAPIKey))

	editorhttp.New(dep.Sessions, dep.Gateway, livevalues.LookupFunc(dep.Resolver.Lookup), auth.UserID).
		Register(app.Group("/editor/sessions"))
}
