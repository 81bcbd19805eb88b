package payments

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/app/models"
	"medilab-service/internal/pkg/constvars"
	"medilab-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// paymentLedgerMongoRepository only ever inserts. There is deliberately no
// update or delete path, the ledger is the immutable audit trail.
type paymentLedgerMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentLedgerMongoRepository(client *mongo.Client, dbName string) contracts.PaymentLedgerRepository {
	return &paymentLedgerMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollectionPaymentLedger),
	}
}

func (repo *paymentLedgerMongoRepository) AppendEntry(ctx context.Context, entry *models.PaymentTransaction) (*models.PaymentTransaction, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return entry, nil
}

func (repo *paymentLedgerMongoRepository) FindByPaymentID(ctx context.Context, paymentID string) ([]models.PaymentTransaction, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"payment_id": paymentID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var entries []models.PaymentTransaction
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return entries, nil
}

func (repo *paymentLedgerMongoRepository) CountByPaymentIDAndType(ctx context.Context, paymentID string, entryType models.PaymentTransactionType) (int64, error) {
	count, err := repo.Collection.CountDocuments(ctx, bson.M{
		"payment_id": paymentID,
		"type":       entryType,
	})
	if err != nil {
		return 0, exceptions.ErrMongoDBCountDocuments(err)
	}
	return count, nil
}
