package client

import (
	"errors"
	"slices"

	"go-recordshop/internal/model"
)

var (
	ErrNotLoggedIn = errors.New("not logged in, run `recordctl login` first")
	ErrForbidden   = errors.New("your role is not allowed to do this")
)

// Route names the client screens that are guarded.
type Route string

const (
	RouteList   Route = "list"
	RouteShow   Route = "show"
	RouteAdd    Route = "add"
	RouteEdit   Route = "edit"
	RouteDelete Route = "delete"
	RouteExport Route = "export"
)

// routeRoles lists the roles allowed on each route. A nil entry means any logged-in user.
var routeRoles = map[Route][]string{
	RouteList:   nil,
	RouteShow:   nil,
	RouteExport: nil,
	RouteAdd:    {model.RoleClerk, model.RoleManager, model.RoleAdmin},
	RouteEdit:   {model.RoleManager, model.RoleAdmin},
	RouteDelete: {model.RoleAdmin},
}

// Guard checks the cached session before a screen is shown. The checks are advisory:
// the API decides on its own whether to enforce roles.
type Guard struct {
	sessions *SessionStore
}

func NewGuard(sessions *SessionStore) *Guard {
	return &Guard{sessions: sessions}
}

// RequireLogin returns the session or ErrNotLoggedIn.
func (g *Guard) RequireLogin() (*Session, error) {
	sess, err := g.sessions.Load()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

// RequireRole returns the session when its role is one of allowed.
func (g *Guard) RequireRole(allowed ...string) (*Session, error) {
	sess, err := g.RequireLogin()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(allowed, sess.User.Role) {
		return nil, ErrForbidden
	}
	return sess, nil
}

// Check applies both checks configured for route.
func (g *Guard) Check(route Route) (*Session, error) {
	roles, ok := routeRoles[route]
	if !ok || roles == nil {
		return g.RequireLogin()
	}
	return g.RequireRole(roles...)
}

// Allows reports whether role may open route, without touching the session.
func Allows(route Route, role string) bool {
	roles, ok := routeRoles[route]
	if !ok || roles == nil {
		return role != ""
	}
	return slices.Contains(roles, role)
}
