package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type SurveyRepository struct {
	coll *mongo.Collection
}

func NewSurveyRepository(db *mongo.Database) ports.SurveyRepository {
	return &SurveyRepository{coll: db.Collection(surveysCollection)}
}

func (r *SurveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	creator, err := userObjectID(survey.CreatedBy)
	if err != nil {
		return err
	}
	doc := surveyDocument{
		ID:            primitive.NewObjectID(),
		Title:         survey.Title,
		Description:   survey.Description,
		Questions:     newQuestionDocuments(survey.Questions),
		QuestionCount: len(survey.Questions),
		EstimatedTime: survey.EstimatedTime,
		Settings:      settingsDocument(survey.Settings),
		IsPublished:   survey.IsPublished,
		ShareURL:      survey.ShareURL,
		Stats:         statsDocument(survey.Stats),
		CreatedBy:     creator,
		CreatedAt:     survey.CreatedAt,
		UpdatedAt:     survey.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	survey.ID = doc.ID.Hex()
	return nil
}

func (r *SurveyRepository) SetShareURL(ctx context.Context, id, shareURL string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"shareUrl": shareURL}})
}

func (r *SurveyRepository) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	oid, err := surveyObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SurveyRepository) GetPublished(ctx context.Context, id string) (*domain.Survey, error) {
	oid, err := surveyObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid, "isPublished": true})
}

func (r *SurveyRepository) findOne(ctx context.Context, filter bson.M) (*domain.Survey, error) {
	var doc surveyDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSurveyNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *SurveyRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Survey, error) {
	creator, err := userObjectID(creatorID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"createdBy": creator}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}

	var docs []surveyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode surveys: %w", err)
	}

	surveys := make([]*domain.Survey, 0, len(docs))
	for i := range docs {
		surveys = append(surveys, docs[i].toDomain())
	}
	return surveys, nil
}

func (r *SurveyRepository) ListIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list survey ids: %w", err)
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode survey ids: %w", err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID.Hex()
	}
	return ids, nil
}

func (r *SurveyRepository) IncrementResponses(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.M{
		"$inc": bson.M{"stats.totalResponses": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *SurveyRepository) SetStats(ctx context.Context, id string, stats domain.SurveyStats) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"stats": statsDocument(stats)}})
}

func (r *SurveyRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	oid, err := surveyObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update survey: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}
