package use_cases

import (
	"context"
	"errors"

	"github.com/mkravets/storefront-service/internal/application/ports"
	domainErrors "github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/domain/session"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type SessionResolver struct {
	identity ports.IdentityGateway
	log      *logger.Logger
}

func NewSessionResolver(identity ports.IdentityGateway, log *logger.Logger) *SessionResolver {
	return &SessionResolver{
		identity: identity,
		log:      log,
	}
}

// Resolve consults the identity backend for the credential's user. A missing
// credential resolves to anonymous, a rejected token to expired (silently
// downgraded, never surfaced as a user-facing error), and any other failure
// to unknown with the cause preserved.
func (r *SessionResolver) Resolve(ctx context.Context, cred session.Credential) session.Resolution {
	if !cred.Present() {
		monitoring.RecordSessionResolution(session.StateAnonymous.String())
		return session.Resolution{State: session.StateAnonymous}
	}

	user, err := r.identity.GetUser(ctx, cred.AccessToken)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			r.log.Debug("Session token rejected, downgrading to anonymous")
			monitoring.RecordSessionResolution(session.StateExpired.String())
			return session.Resolution{State: session.StateExpired}
		}

		r.log.Error("Failed to resolve session", "error", err)
		monitoring.RecordSessionResolution(session.StateUnknown.String())
		return session.Resolution{State: session.StateUnknown, Err: err}
	}

	if user == nil || user.ID == 0 {
		r.log.Error("Identity backend returned user without id")
		monitoring.RecordSessionResolution(session.StateUnknown.String())
		return session.Resolution{State: session.StateUnknown, Err: domainErrors.ErrSessionUnavailable}
	}

	monitoring.RecordSessionResolution(session.StateAuthenticated.String())
	return session.Resolution{State: session.StateAuthenticated, User: user}
}
