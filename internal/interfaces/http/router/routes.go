package router

import (
	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/interfaces/http/handler"
	"github.com/atlas/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler of the API
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Customers     *handler.CustomerHandler
	Opportunities *handler.OpportunityHandler
	Orders        *handler.OrderHandler
	Promoters     *handler.PromoterHandler
	Dashboard     *handler.DashboardHandler
	Operations    *handler.OperationsHandler
	Assistant     *handler.AssistantHandler
	Geocode       *handler.GeocodeHandler
	Survey        *handler.SurveyHandler
	System        *handler.SystemHandler
}

// Guards are the access checks the route table applies
type Guards struct {
	// Session resolves the caller from the session cookie
	Session gin.HandlerFunc
	Access  *identity.ModuleAccess
	// PublicLimit throttles unauthenticated endpoints; nil disables it
	PublicLimit gin.HandlerFunc
	// LoginLimit additionally throttles login attempts; nil disables it
	LoginLimit gin.HandlerFunc
}

// Register mounts the API routes under the router prefix and /health at the
// root, returning the mounted API routes
func Register(engine *gin.Engine, h Handlers, g Guards, opts ...RouterOption) []Route {
	engine.GET("/health", h.System.Health)
	return NewRouter(engine, opts...).Register(Groups(h, g)...).Setup()
}

// Groups returns one route group per access level: public, any session,
// then one per console module
func Groups(h Handlers, g Guards) []*DomainGroup {
	public := NewDomainGroup("public", "")
	if g.PublicLimit != nil {
		public.Use(g.PublicLimit)
	}
	login := []gin.HandlerFunc{h.Auth.Login}
	if g.LoginLimit != nil {
		login = append([]gin.HandlerFunc{g.LoginLimit}, login...)
	}
	public.
		POST("/auth/login", login...).
		POST("/delivery-survey/submit", h.Survey.Submit).
		GET("/delivery-survey/:token", h.Survey.Lookup)

	session := NewDomainGroup("session", "").Use(g.Session, middleware.SpanAttributes())
	session.
		POST("/auth/logout", h.Auth.Logout).
		GET("/auth/me", h.Auth.Me).
		POST("/ai/chat", h.Assistant.Chat).
		POST("/geocode", h.Geocode.Resolve)

	sales := moduleGroup(identity.ModuleSales, g)
	sales.
		GET("/customers", h.Customers.List).
		POST("/customers", h.Customers.Create).
		PATCH("/customers/:id", h.Customers.Update).
		GET("/opportunities", h.Opportunities.List).
		POST("/opportunities", h.Opportunities.Create).
		GET("/opportunities/pipeline", h.Opportunities.Pipeline).
		PATCH("/opportunities/:id", h.Opportunities.Update).
		GET("/orders", h.Orders.List).
		POST("/orders", h.Orders.Create).
		GET("/orders/:id", h.Orders.Get).
		DELETE("/orders/:id", h.Orders.Delete).
		POST("/orders/:id/survey", h.Survey.Issue).
		POST("/returns", h.Orders.CreateReturn)

	productivity := moduleGroup(identity.ModuleProductivity, g)
	productivity.
		GET("/my/promoter-sales", h.Promoters.ListMine).
		POST("/my/promoter-sales", h.Promoters.Report).
		DELETE("/my/promoter-sales/:id", h.Promoters.Withdraw).
		PATCH("/promoters/sales/:id", h.Promoters.Review).
		GET("/promoters/summary", h.Promoters.Summary)

	dashboard := moduleGroup(identity.ModuleDashboard, g)
	dashboard.
		GET("/metrics/overview", h.Dashboard.Overview).
		GET("/reports/sales", h.Dashboard.SalesReport).
		GET("/reports/returns", h.Dashboard.ReturnsReport)

	inventory := moduleGroup(identity.ModuleInventory, g)
	inventory.GET("/inventory/summary", h.Operations.InventorySummary)

	cash := moduleGroup(identity.ModuleCash, g)
	cash.
		GET("/cash/closures", h.Operations.ListClosures).
		POST("/cash/closures", h.Operations.CloseRegister)

	hr := moduleGroup(identity.ModuleHR, g)
	hr.
		POST("/attendance/check-in", h.Operations.CheckIn).
		GET("/attendance/today", h.Operations.AttendanceToday)

	configuration := moduleGroup(identity.ModuleConfiguration, g)
	configuration.
		GET("/users", h.Users.List).
		POST("/users", h.Users.Create).
		GET("/users/:id", h.Users.Get).
		PATCH("/users/:id", h.Users.Update).
		DELETE("/users/:id", h.Users.Delete).
		POST("/users/:id/password", h.Users.SetPassword)

	return []*DomainGroup{public, session, sales, productivity, dashboard, inventory, cash, hr, configuration}
}

func moduleGroup(m identity.Module, g Guards) *DomainGroup {
	return NewDomainGroup(string(m), "").Use(g.Session, middleware.SpanAttributes(), middleware.RequireModule(g.Access, m))
}
