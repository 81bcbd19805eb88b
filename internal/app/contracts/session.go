package contracts

import (
	"context"
	"medilab-service/internal/app/models"
)

type SessionService interface {
	ParseSessionData(ctx context.Context, sessionToken string) (*models.Session, error)
}
