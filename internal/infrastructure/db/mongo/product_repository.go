package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/invensys/inventory-api/internal/core/domain"
)

const productCollection = "products"

// MongoProductRepository persists catalog entries.
type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(productCollection)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	doc := mongoProduct{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		CreatedAt:   product.CreatedAt.Unix(),
		UpdatedAt:   product.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	id, _ := res.InsertedID.(primitive.ObjectID)
	return r.findByObjectID(ctx, id)
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	return r.findByObjectID(ctx, oid)
}

func (r *MongoProductRepository) findByObjectID(ctx context.Context, oid primitive.ObjectID) (*domain.Product, error) {
	var mp mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"updated_at":  product.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProductNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// FindPage returns one page of products, newest first, plus the total count
// of documents matching the filter. The name filter is a case-insensitive
// substring match with regex metacharacters escaped.
func (r *MongoProductRepository) FindPage(ctx context.Context, page, size int, nameFilter string) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if nameFilter != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(nameFilter), "$options": "i"}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(size)).
		SetLimit(int64(size))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Product
	for cur.Next(ctx) {
		var mp mongoProduct
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode product: %w", err)
		}
		out = append(out, *mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return out, total, nil
}

func (mp mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		Price:       mp.Price,
		Quantity:    mp.Quantity,
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}
