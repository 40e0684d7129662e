package audit

import (
	"context"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Database, collectionName string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Collection(collectionName),
	}
}

func (repo *AuditMongoRepository) Insert(ctx context.Context, entry *models.AuditEntry) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, entry)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

// FindByRecord returns the trail of one record, newest first.
func (repo *AuditMongoRepository) FindByRecord(ctx context.Context, resource, recordID string) ([]models.AuditEntry, error) {
	filter := bson.M{"resource": resource, "recordId": recordID}
	findOptions := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: -1}})

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.AuditEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return entries, nil
}
