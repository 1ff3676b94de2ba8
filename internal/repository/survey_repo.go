package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"readypulse/internal/model"
)

// SurveyRepo handles MongoDB operations for surveys
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) error
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*model.Survey, error)
	ListByHost(ctx context.Context, hostID string) ([]*model.Survey, error)
	Update(ctx context.Context, survey *model.Survey) error
	SetStatus(ctx context.Context, id string, status model.SurveyStatus) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) error {
	now := time.Now()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	if survey.Status == "" {
		survey.Status = model.SurveyStatusDraft
	}

	result, err := r.collection.InsertOne(ctx, survey)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		survey.ID = oid.Hex()
	}
	return nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var survey model.Survey
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) ListByOrganization(ctx context.Context, orgID string) ([]*model.Survey, error) {
	return r.list(ctx, bson.M{"organizationId": orgID})
}

func (r *surveyRepo) ListByHost(ctx context.Context, hostID string) ([]*model.Survey, error) {
	return r.list(ctx, bson.M{"hostId": hostID})
}

func (r *surveyRepo) list(ctx context.Context, filter bson.M) ([]*model.Survey, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.Survey
	if err = cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	oid, err := primitive.ObjectIDFromHex(survey.ID)
	if err != nil {
		return err
	}
	survey.UpdatedAt = time.Now()

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":     survey.Title,
		"intent":    survey.Intent,
		"settings":  survey.Settings,
		"questions": survey.Questions,
		"updatedAt": survey.UpdatedAt,
	}})
	return err
}

func (r *surveyRepo) SetStatus(ctx context.Context, id string, status model.SurveyStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	return err
}
