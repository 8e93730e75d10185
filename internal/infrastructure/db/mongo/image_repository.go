package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invensys/inventory-api/internal/core/domain"
)

const imageCollection = "product_images"

// MongoImageRepository persists product image metadata.
type MongoImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *MongoImageRepository {
	return &MongoImageRepository{coll: db.Collection(imageCollection)}
}

type mongoImage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ProductID  string             `bson:"product_id"`
	Filename   string             `bson:"filename"`
	URL        string             `bson:"url"`
	UploadedAt int64              `bson:"uploaded_at"`
}

func (r *MongoImageRepository) Create(ctx context.Context, image *domain.ProductImage) (*domain.ProductImage, error) {
	doc := mongoImage{
		ProductID:  image.ProductID,
		Filename:   image.Filename,
		URL:        image.URL,
		UploadedAt: image.UploadedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return r.FindByID(ctx, id.Hex())
}

func (r *MongoImageRepository) FindByID(ctx context.Context, id string) (*domain.ProductImage, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrImageNotFound
	}

	var mi mongoImage
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("find image: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *MongoImageRepository) FindAllByProductID(ctx context.Context, productID string) ([]domain.ProductImage, error) {
	cur, err := r.coll.Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ProductImage
	for cur.Next(ctx) {
		var mi mongoImage
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		out = append(out, *mi.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	return out, nil
}

func (r *MongoImageRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrImageNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

func (mi mongoImage) toDomain() *domain.ProductImage {
	return &domain.ProductImage{
		ID:         mi.ID.Hex(),
		ProductID:  mi.ProductID,
		Filename:   mi.Filename,
		URL:        mi.URL,
		UploadedAt: unixToTime(mi.UploadedAt),
	}
}
