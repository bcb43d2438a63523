package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newAccessTokenManager),
	fx.Provide(
		func(m *AccessTokenManager) AccessTokenIssuer { return m },
		func(m *AccessTokenManager) AccessTokenVerifier { return m },
	),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.AccessTokenSecret, Options{TTL: p.Config.AdminSessionTTL})
}

func newAccessTokenManager(p strategyParams) *AccessTokenManager {
	return NewAccessTokenManager(p.Config.AccessTokenSecret, Options{TTL: p.Config.AccessTokenTTL})
}
