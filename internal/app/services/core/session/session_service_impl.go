package session

import (
	"context"
	"fmt"
	"medilab-service/internal/app/config"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type sessionService struct {
	InternalConfig *config.InternalConfig
}

func NewSessionService(internalConfig *config.InternalConfig) contracts.SessionService {
	return &sessionService{
		InternalConfig: internalConfig,
	}
}

// ParseSessionData validates the bearer token issued by the identity service
// and extracts the caller's session.
func (svc *sessionService) ParseSessionData(ctx context.Context, sessionToken string) (*models.Session, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(svc.InternalConfig.JWT.Secret), nil
	}

	parsed, err := jwt.Parse(sessionToken, keyFunc)
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("invalid token claims"))
	}

	session := &models.Session{
		SessionID:    stringClaim(claims, "sid"),
		UserID:       stringClaim(claims, "sub"),
		Role:         stringClaim(claims, "role"),
		PatientID:    stringClaim(claims, "patient_id"),
		LaboratoryID: stringClaim(claims, "laboratory_id"),
	}
	if exp, ok := claims["exp"].(float64); ok {
		session.ExpiresAt = time.Unix(int64(exp), 0)
	}

	if session.UserID == "" || session.Role == "" {
		return nil, exceptions.ErrParseSessionData(fmt.Errorf("token is missing required claims"))
	}

	return session, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}
