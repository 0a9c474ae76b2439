package identity

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/rs/zerolog/log"
)

// Auth0Claims дополнительные claims из токена Auth0
type Auth0Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate реализует validator.CustomClaims
func (c *Auth0Claims) Validate(ctx context.Context) error {
	return nil
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// Auth0Provider проверяет JWT, выпущенные Auth0 (RS256, JWKS с кешированием)
type Auth0Provider struct {
	validator tokenValidator
}

// NewAuth0Provider создаёт провайдер для домена и аудитории Auth0
func NewAuth0Provider(domain, audience string) (*Auth0Provider, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid auth0 domain: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &Auth0Claims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwt validator: %w", err)
	}

	return &Auth0Provider{validator: jwtValidator}, nil
}

func (p *Auth0Provider) Identify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := p.validator.ValidateToken(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return nil, ErrUnauthenticated
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	who := &Identity{UID: validated.RegisteredClaims.Subject}
	if custom, ok := validated.CustomClaims.(*Auth0Claims); ok {
		who.Email = custom.Email
		who.DisplayName = custom.Name
	}
	return who, nil
}
