package realtime

import (
	"github.com/anikeenko/psysync/internal/config"
	"github.com/anikeenko/psysync/internal/utils"
	"github.com/anikeenko/psysync/models"
)

//go:generate mockgen -source=auth.go -destination=../mock/realtime_mock.go -package=mock

// TokenVerifier checks an inbound identity token and returns the principal
// it describes.
type TokenVerifier interface {
	Verify(tokenString string) (models.Identity, error)
}

type jwtVerifier struct {
	signKey string
	issuer  string
}

// NewJWTVerifier returns a [TokenVerifier] validating HS256 tokens issued
// by the platform identity service.
func NewJWTVerifier(cfg config.ServerAuth) TokenVerifier {
	return &jwtVerifier{signKey: cfg.TokenSignKey, issuer: cfg.TokenIssuer}
}

func (v *jwtVerifier) Verify(tokenString string) (models.Identity, error) {
	token, err := utils.ValidateAndParseToken(tokenString, v.signKey, v.issuer)
	if err != nil {
		return models.Identity{}, err
	}

	return token.Identity, nil
}
