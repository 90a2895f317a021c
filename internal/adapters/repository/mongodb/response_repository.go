package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type ResponseRepository struct {
	coll *mongo.Collection
}

func NewResponseRepository(db *mongo.Database) ports.ResponseRepository {
	return &ResponseRepository{coll: db.Collection(responsesCollection)}
}

func (r *ResponseRepository) Insert(ctx context.Context, resp *domain.SurveyResponse) error {
	surveyID, err := surveyObjectID(resp.SurveyID)
	if err != nil {
		return err
	}
	doc := responseDocument{
		ID:          primitive.NewObjectID(),
		SurveyID:    surveyID,
		Responses:   newAnswerDocuments(resp.Responses),
		CompletedAt: resp.CompletedAt,
		TimeSpent:   resp.TimeSpent,
		SubmittedAt: resp.SubmittedAt,
		IPAddress:   resp.IPAddress,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	resp.ID = doc.ID.Hex()
	return nil
}

func (r *ResponseRepository) ListBySurvey(ctx context.Context, surveyID string) ([]*domain.SurveyResponse, error) {
	oid, err := surveyObjectID(surveyID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"surveyId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	var docs []responseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}

	out := make([]*domain.SurveyResponse, 0, len(docs))
	for i := range docs {
		resp, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

type statsResult struct {
	Total       int64    `bson:"total"`
	Completed   int64    `bson:"completed"`
	AverageTime *float64 `bson:"averageTime"`
}

func (r *ResponseRepository) StatsFor(ctx context.Context, surveyID string) (domain.SurveyStats, error) {
	oid, err := surveyObjectID(surveyID)
	if err != nil {
		return domain.SurveyStats{}, err
	}

	completed := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$ifNull", Value: bson.A{"$completedAt", false}}}, 1, 0,
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "surveyId", Value: oid}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "completed", Value: bson.D{{Key: "$sum", Value: completed}}},
			{Key: "averageTime", Value: bson.D{{Key: "$avg", Value: "$timeSpent"}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.SurveyStats{}, fmt.Errorf("failed to aggregate responses: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return domain.SurveyStats{}, err
		}
		return domain.SurveyStats{}, nil
	}

	var res statsResult
	if err := cursor.Decode(&res); err != nil {
		return domain.SurveyStats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return statsFrom(res), nil
}

func statsFrom(res statsResult) domain.SurveyStats {
	stats := domain.SurveyStats{TotalResponses: res.Total}
	if res.Total > 0 {
		stats.CompletionRate = float64(res.Completed) / float64(res.Total) * 100
	}
	if res.AverageTime != nil {
		stats.AverageTime = *res.AverageTime
	}
	return stats
}
