package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/basic_shop/internal/models"
	"github.com/Skotchmaster/basic_shop/internal/repo"
	"github.com/Skotchmaster/basic_shop/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Index  ProductIndex
	Topic  string
}

// CreateProducts inserts the products in order, each in its own commit. On
// failure the products created so far stay persisted and are returned with
// the error.
func (s *CatalogService) CreateProducts(ctx context.Context, reqs []transport.CreateProductRequest) ([]models.Product, error) {
	created := make([]models.Product, 0, len(reqs))

	for i, req := range reqs {
		prod := models.Product{
			Name:        *req.Name,
			Price:       *req.Price,
			Description: req.Description,
		}
		if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
			return created, fmt.Errorf("create product %d of %d: %w", i+1, len(reqs), err)
		}
		created = append(created, prod)

		indexProduct(ctx, s.Index, &prod)
		ev := newEvent(EventProductCreated, prod.ID)
		ev.Name = prod.Name
		publish(ctx, s.Events, s.Topic, ev)
	}

	return created, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product")
	}

	unindexProduct(ctx, s.Index, id)
	publish(ctx, s.Events, s.Topic, newEvent(EventProductDeleted, id))
	return nil
}
