package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"readypulse/internal/model"
)

// AnalysisRepo handles MongoDB operations for analysis snapshots
type AnalysisRepo interface {
	Save(ctx context.Context, snapshot *model.AnalysisSnapshot) error
	GetBySurvey(ctx context.Context, surveyID string) (*model.AnalysisSnapshot, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*model.AnalysisSnapshot, error)
}

type analysisRepo struct {
	collection *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		collection: db.Collection("analysis_snapshots"),
	}
}

// Save upserts by survey: a rollup replaces the previous snapshot wholesale
func (r *analysisRepo) Save(ctx context.Context, snapshot *model.AnalysisSnapshot) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"surveyId": snapshot.SurveyID}, snapshot, opts)
	return err
}

func (r *analysisRepo) GetBySurvey(ctx context.Context, surveyID string) (*model.AnalysisSnapshot, error) {
	var snapshot model.AnalysisSnapshot
	err := r.collection.FindOne(ctx, bson.M{"surveyId": surveyID}).Decode(&snapshot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *analysisRepo) ListByOrganization(ctx context.Context, orgID string) ([]*model.AnalysisSnapshot, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"organizationId": orgID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snapshots []*model.AnalysisSnapshot
	if err = cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
