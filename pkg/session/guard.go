package session

import "context"

// RouteClass classifies a navigation target for the guard.
type RouteClass int

const (
	// Public routes are reachable regardless of session state.
	Public RouteClass = iota
	// AuthEntry routes are the login/register pages.
	AuthEntry
	// Protected routes require an authenticated session.
	Protected
)

// Decision is the guard's verdict for a navigation.
type Decision int

const (
	Proceed Decision = iota
	RedirectLogin
	RedirectHome
)

// Guard gates navigation on session state. It always waits for the session
// to finish initializing before deciding, so a freshly started client never
// misroutes while the profile fetch is in flight.
type Guard struct {
	session *Session
}

func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Check decides what should happen for a navigation to a route of the given
// class. Authenticated users are bounced off auth entry pages; unauthenticated
// users are bounced off protected pages.
func (g *Guard) Check(ctx context.Context, class RouteClass) (Decision, error) {
	if err := g.session.Initialize(ctx); err != nil {
		return Proceed, err
	}

	authenticated := g.session.Authenticated()
	switch class {
	case AuthEntry:
		if authenticated {
			return RedirectHome, nil
		}
	case Protected:
		if !authenticated {
			return RedirectLogin, nil
		}
	}
	return Proceed, nil
}
