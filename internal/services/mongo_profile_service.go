package services

import (
	"context"
	"crypto/tls"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linkswipe/backend/internal/models"
)

type MongoProfileService struct {
	client      *mongo.Client
	db          *mongo.Database
	profilesCol *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, mongoURI, dbName string) (*MongoProfileService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("profiles")

	// Best-effort indexes. Email is intentionally NOT unique: the webhook
	// correlates by email and resolves duplicates to the first match.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})

	return &MongoProfileService{
		client:      client,
		db:          db,
		profilesCol: col,
	}, nil
}

func (s *MongoProfileService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProfileService) Create(ctx context.Context, p *models.Profile) (string, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Status == "" {
		p.Status = models.StatusPendingPayment
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	if _, err := s.profilesCol.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID.Hex(), nil
}

func (s *MongoProfileService) FindByEmail(ctx context.Context, email string) ([]models.Profile, error) {
	cur, err := s.profilesCol.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveByEmail updates the first record matching email. With no sort the
// match follows natural order, which is implementation-defined when several
// records share an email.
func (s *MongoProfileService) ApproveByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var prof models.Profile
	err := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"status": models.StatusApproved}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&prof)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) ApproveByID(ctx context.Context, id string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	var prof models.Profile
	err = s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": models.StatusApproved}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&prof)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) ListByStatus(ctx context.Context, status string) ([]models.Profile, error) {
	cur, err := s.profilesCol.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoProfileService) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProfileNotFound
	}
	res, err := s.profilesCol.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
