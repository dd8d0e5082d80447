package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "homestay/internal/domain/catalog"
)

// PlaceRepository reads the catalog from the places collection in insertion order.
type PlaceRepository struct {
	col *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{col: db.Collection("places")}
}

type placeDocument struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Address     string  `bson:"address"`
	Description string  `bson:"description"`
	Category    string  `bson:"category"`
	PriceCents  int64   `bson:"price_cents"`
	Currency    string  `bson:"currency"`
	Rating      float64 `bson:"rating"`
	NumOfRating int     `bson:"num_of_rating"`
	MaxGuests   int     `bson:"max_guests"`
	ImageURL    string  `bson:"image_url"`
	Position    int64   `bson:"position"`
}

func (d placeDocument) toItem() domaincatalog.Item {
	return domaincatalog.Item{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.PriceCents,
		Currency:    d.Currency,
		Rating:      d.Rating,
		NumOfRating: d.NumOfRating,
		MaxGuests:   d.MaxGuests,
		ImageURL:    d.ImageURL,
	}
}

func placeFromItem(item domaincatalog.Item, position int64) placeDocument {
	return placeDocument{
		ID:          item.ID,
		Name:        item.Name,
		Address:     item.Address,
		Description: item.Description,
		Category:    item.Category,
		PriceCents:  item.Price,
		Currency:    item.Currency,
		Rating:      item.Rating,
		NumOfRating: item.NumOfRating,
		MaxGuests:   item.MaxGuests,
		ImageURL:    item.ImageURL,
		Position:    position,
	}
}

// Items loads every place ordered by position. Documents failing validation are skipped.
func (r *PlaceRepository) Items(ctx context.Context) ([]domaincatalog.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []placeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]domaincatalog.Item, 0, len(docs))
	for _, doc := range docs {
		item := doc.toItem()
		if item.Validate() != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PlaceRepository) ByID(ctx context.Context, id string) (domaincatalog.Item, error) {
	var doc placeDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domaincatalog.Item{}, domaincatalog.ErrNotFound
		}
		return domaincatalog.Item{}, err
	}
	return doc.toItem(), nil
}

// Seed upserts items keeping their slice order as catalog order.
func (r *PlaceRepository) Seed(ctx context.Context, items []domaincatalog.Item) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		doc := placeFromItem(item, int64(i))
		if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

var _ domaincatalog.Source = (*PlaceRepository)(nil)
