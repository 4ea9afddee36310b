package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"meraki/db"
	"meraki/models"
	"meraki/rdx"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("product not found")

const catalogCacheKey = "meraki:catalog:all"
const catalogCacheTTL = 5 * time.Minute

// Store reads products and categories from Mongo, keeping the full catalog in
// a Redis cache so list filtering stays cheap. Filtering itself is pure and
// happens in memory over the cached snapshot.
type Store struct {
	store *db.Store
	cache *rdx.Cache
	sfg   singleflight.Group // collapses concurrent catalog reloads
}

func NewStore(store *db.Store, cache *rdx.Cache) *Store {
	return &Store{store: store, cache: cache}
}

// List applies the filter to the catalog and paginates the result.
// Returned total/pages describe the filtered set, not the page.
func (s *Store) List(ctx context.Context, f Filter, page, limit int) ([]models.Product, int, int, error) {
	all, err := s.catalog(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	filtered := f.Apply(all)
	total := len(filtered)
	pages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, total, pages, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, pages, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := s.store.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) GetByHandle(ctx context.Context, handle string) (models.Product, error) {
	var p models.Product
	err := s.store.Products.FindOne(ctx, bson.M{"handle": handle}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Categories lists categories with a live product count per category.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.store.Categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	for i := range categories {
		count, err := s.store.Products.CountDocuments(ctx, bson.M{"category": categories[i].Name})
		if err != nil {
			return nil, err
		}
		categories[i].ProductCount = count
	}

	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// InvalidateCache drops the cached catalog snapshot after an admin write.
func (s *Store) InvalidateCache(ctx context.Context) {
	if err := s.cache.Del(ctx, catalogCacheKey); err != nil {
		log.Println("catalog cache invalidate error:", err)
	}
}

// catalog returns the full product list, cache-aside with singleflight so a
// cold cache triggers exactly one Mongo read.
func (s *Store) catalog(ctx context.Context) ([]models.Product, error) {
	v, err, _ := s.sfg.Do(catalogCacheKey, func() (interface{}, error) {
		data, err := s.cache.GetBytes(ctx, catalogCacheKey)
		if err == nil {
			var products []models.Product
			if err := json.Unmarshal(data, &products); err == nil {
				return products, nil
			}
			// corrupt cache entry, fall through to Mongo
		} else if !errors.Is(err, rdx.ErrCacheMiss) {
			log.Println("catalog cache get error:", err)
		}

		cursor, err := s.store.Products.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			return nil, err
		}
		if products == nil {
			products = []models.Product{}
		}

		go func() {
			data, err := json.Marshal(products)
			if err != nil {
				return
			}
			if err := s.cache.SetBytes(context.Background(), catalogCacheKey, data, catalogCacheTTL); err != nil {
				log.Println("catalog cache set error:", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Product), nil
}
