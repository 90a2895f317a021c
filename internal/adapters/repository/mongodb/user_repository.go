package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) ports.UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, identity domain.GoogleIdentity, at time.Time) (*domain.User, error) {
	filter := bson.M{"googleId": identity.Subject}
	update := bson.M{
		"$set": bson.M{
			"email":     identity.Email,
			"picture":   identity.Picture,
			"lastLogin": at,
			"updatedAt": at,
		},
		"$setOnInsert": bson.M{
			"name":               identity.Name,
			"onboardingComplete": false,
			"profileCreated":     false,
			"createdAt":          at,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := userObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, userError(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) UpdateOnboarding(ctx context.Context, id string, profile domain.OnboardingProfile, at time.Time) (*domain.User, error) {
	set := bson.M{
		"name":               profile.Name,
		"socialHandle":       profile.SocialHandle,
		"gender":             profile.Gender,
		"location":           profile.Location,
		"onboardingComplete": true,
		"updatedAt":          at,
	}
	if profile.Age != nil {
		set["age"] = *profile.Age
	}
	return r.update(ctx, id, bson.M{"$set": set})
}

func (r *UserRepository) UpdateInterests(ctx context.Context, id string, interests []string, at time.Time) (*domain.User, error) {
	return r.update(ctx, id, bson.M{"$set": bson.M{
		"interests":      interests,
		"profileCreated": true,
		"updatedAt":      at,
	}})
}

func (r *UserRepository) update(ctx context.Context, id string, update bson.M) (*domain.User, error) {
	oid, err := userObjectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, userError(err)
	}
	return doc.toDomain(), nil
}

func userError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrUserNotFound
	}
	return err
}
