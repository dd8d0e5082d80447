package middleware

import (
	"context"

	"homestay/internal/app/commands"
	"homestay/internal/app/queries"
	"homestay/internal/domain/auth"
)

// SessionBound is implemented by messages that carry the caller's session.
type SessionBound interface {
	CallerSession() auth.Session
	RequiresSession() bool
}

type Authorizer interface {
	Authorize(ctx context.Context, message any) error
}

// SessionAuthorizer rejects session-bound messages that need a session but carry none.
type SessionAuthorizer struct{}

func (SessionAuthorizer) Authorize(ctx context.Context, message any) error {
	bound, ok := message.(SessionBound)
	if !ok || !bound.RequiresSession() {
		return nil
	}
	if !bound.CallerSession().Authenticated() {
		return auth.ErrSessionRequired
	}
	return nil
}

func Authorization(a Authorizer) CommandMiddleware {
	if a == nil {
		panic("middleware: authorizer required")
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := a.Authorize(ctx, cmd); err != nil {
				return nil, err
			}
			return next.Dispatch(ctx, cmd)
		})
	}
}

func QueryAuthorization(a Authorizer) QueryMiddleware {
	if a == nil {
		panic("middleware: authorizer required")
	}
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := a.Authorize(ctx, q); err != nil {
				return nil, err
			}
			return next.Ask(ctx, q)
		})
	}
}
