package session

import (
	"context"
	"medilab-service/internal/app/config"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func issueToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func newTestSessionService(secret string) *sessionService {
	internalConfig := &config.InternalConfig{}
	internalConfig.JWT.Secret = secret
	return &sessionService{InternalConfig: internalConfig}
}

func TestParseSessionData(t *testing.T) {
	secret := "session-test-secret"
	service := newTestSessionService(secret)

	t.Run("parses a valid patient token", func(t *testing.T) {
		token := issueToken(t, secret, jwt.MapClaims{
			"sid":        "session-1",
			"sub":        "user-1",
			"role":       "patient",
			"patient_id": "patient-1",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		session, err := service.ParseSessionData(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
		assert.Equal(t, "patient-1", session.PatientID)
		assert.True(t, session.IsPatient())
	})

	t.Run("parses a laboratory token", func(t *testing.T) {
		token := issueToken(t, secret, jwt.MapClaims{
			"sub":           "user-2",
			"role":          "laboratory",
			"laboratory_id": "lab-1",
			"exp":           time.Now().Add(time.Hour).Unix(),
		})

		session, err := service.ParseSessionData(context.Background(), token)

		assert.NoError(t, err)
		assert.Equal(t, "lab-1", session.LaboratoryID)
		assert.True(t, session.IsLaboratory())
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := issueToken(t, secret, jwt.MapClaims{
			"sub":  "user-1",
			"role": "patient",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})

		_, err := service.ParseSessionData(context.Background(), token)

		assert.Error(t, err)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token := issueToken(t, "other-secret", jwt.MapClaims{
			"sub":  "user-1",
			"role": "patient",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})

		_, err := service.ParseSessionData(context.Background(), token)

		assert.Error(t, err)
	})

	t.Run("rejects a token without required claims", func(t *testing.T) {
		token := issueToken(t, secret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		_, err := service.ParseSessionData(context.Background(), token)

		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ParseSessionData(context.Background(), "not-a-token")

		assert.Error(t, err)
	})
}
