package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readypulse/internal/forces"
	"readypulse/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.SurveyResponse) error
	GetByID(ctx context.Context, id string) (*model.SurveyResponse, error)
	ListBySurvey(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error)
	ListPendingBySurvey(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error)
	SetScore(ctx context.Context, id string, score *forces.RawScore) error
	SetFailed(ctx context.Context, id string, reason string) error
	CountByStatus(ctx context.Context, surveyID string, status model.ResponseStatus) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("survey_responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.SurveyResponse) error {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	if response.Status == "" {
		response.Status = model.ResponseStatusPending
	}

	result, err := r.collection.InsertOne(ctx, response)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		response.ID = oid.Hex()
	}
	return nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.SurveyResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var response model.SurveyResponse
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepo) ListBySurvey(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	// Stable order so rollups over the same batch see the same sequence
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.SurveyResponse
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) ListPendingBySurvey(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"surveyId": surveyID,
		"status":   model.ResponseStatusPending,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.SurveyResponse
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) SetScore(ctx context.Context, id string, score *forces.RawScore) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":       model.ResponseStatusScored,
		"score":        score,
		"scoringError": "",
		"scoredAt":     time.Now(),
	}})
	return err
}

func (r *responseRepo) SetFailed(ctx context.Context, id string, reason string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":       model.ResponseStatusFailed,
		"scoringError": reason,
	}})
	return err
}

func (r *responseRepo) CountByStatus(ctx context.Context, surveyID string, status model.ResponseStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID, "status": status})
}
