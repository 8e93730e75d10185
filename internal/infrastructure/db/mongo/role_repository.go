package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invensys/inventory-api/internal/core/domain"
)

const roleCollection = "roles"

// MongoRoleRepository persists role identities. Roles are written once at
// seed time and only read afterwards.
type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRole struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoRoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := mongoRole{Name: role.Name, CreatedAt: role.CreatedAt.Unix()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return r.FindByName(ctx, role.Name)
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{
		ID:        mr.ID.Hex(),
		Name:      mr.Name,
		CreatedAt: unixToTime(mr.CreatedAt),
	}, nil
}

func (r *MongoRoleRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return n, nil
}
