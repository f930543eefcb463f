package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// DefaultPrefix is where every API route is mounted
const DefaultPrefix = "/endpoints"

// Route is one mounted endpoint
type Route struct {
	Group  string
	Method string
	Path   string
}

// Router mounts route groups under a common prefix
type Router struct {
	engine *gin.Engine
	prefix string
	groups []*DomainGroup
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithPrefix mounts the API under a different path
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.prefix = prefix
	}
}

// NewRouter creates a router over engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues groups for Setup
func (r *Router) Register(groups ...*DomainGroup) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

// Setup mounts every queued group and returns the resulting route table
func (r *Router) Setup() []Route {
	api := r.engine.Group(r.prefix)
	var table []Route
	for _, g := range r.groups {
		g.RegisterRoutes(api)
		table = append(table, g.Routes(r.prefix)...)
	}
	return table
}

// DomainGroup is a set of routes sharing one middleware chain, typically
// the session and module guard of a console module
type DomainGroup struct {
	name       string
	prefix     string
	routes     []Route
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
	handlers   [][]gin.HandlerFunc
}

// NewDomainGroup creates a group mounted at prefix below the router prefix
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use appends middleware run before every route of the group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) GET(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, p, h)
}

func (dg *DomainGroup) POST(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, p, h)
}

func (dg *DomainGroup) PATCH(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, p, h)
}

func (dg *DomainGroup) DELETE(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, p, h)
}

func (dg *DomainGroup) handle(method, p string, h []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, Route{Group: dg.name, Method: method, Path: p})
	dg.handlers = append(dg.handlers, h)
	return dg
}

// Group creates a nested group that inherits this group's middleware
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

// RegisterRoutes mounts the group and its subgroups below parent
func (dg *DomainGroup) RegisterRoutes(parent *gin.RouterGroup) {
	group := parent.Group(dg.prefix, dg.middleware...)
	for i, rt := range dg.routes {
		group.Handle(rt.Method, rt.Path, dg.handlers[i]...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

// Routes lists the group's endpoints, subgroups included, with full paths
// under base
func (dg *DomainGroup) Routes(base string) []Route {
	prefix := path.Join(base, dg.prefix)
	out := make([]Route, 0, len(dg.routes))
	for _, rt := range dg.routes {
		rt.Path = joinRoute(prefix, rt.Path)
		out = append(out, rt)
	}
	for _, sub := range dg.subgroups {
		out = append(out, sub.Routes(prefix)...)
	}
	return out
}

// joinRoute keeps gin's ":param" segments and a trailing slash intact
func joinRoute(prefix, p string) string {
	if p == "" || p == "/" {
		return prefix
	}
	return path.Join(prefix, p)
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
