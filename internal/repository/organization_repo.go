package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"readypulse/internal/model"
)

// OrganizationRepo handles MongoDB operations for organizations
type OrganizationRepo interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	List(ctx context.Context) ([]*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id string) error
}

type organizationRepo struct {
	collection *mongo.Collection
}

// NewOrganizationRepo creates a new organization repository
func NewOrganizationRepo(db *mongo.Database) OrganizationRepo {
	return &organizationRepo{
		collection: db.Collection("organizations"),
	}
}

func (r *organizationRepo) Create(ctx context.Context, org *model.Organization) error {
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, org)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		org.ID = oid.Hex()
	}
	return nil
}

func (r *organizationRepo) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var org model.Organization
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepo) List(ctx context.Context) ([]*model.Organization, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orgs []*model.Organization
	if err = cursor.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *model.Organization) error {
	oid, err := primitive.ObjectIDFromHex(org.ID)
	if err != nil {
		return err
	}
	org.UpdatedAt = time.Now()

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":      org.Name,
		"industry":  org.Industry,
		"size":      org.Size,
		"updatedAt": org.UpdatedAt,
	}})
	return err
}

func (r *organizationRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
