package service

import (
	"context"

	"github.com/Skotchmaster/basic_shop/internal/models"
	"github.com/Skotchmaster/basic_shop/internal/repo"
	"github.com/Skotchmaster/basic_shop/internal/transport"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Index  ProductIndex
	Topic  string
}

// AddToCart returns ErrNotFound when the product does not exist. Quantity is
// not validated.
func (s *CartService) AddToCart(ctx context.Context, productID uint, quantity int) (*models.CartItem, error) {
	item, err := s.Repo.AddToCart(ctx, productID, quantity)
	if err != nil {
		return nil, notFound(err, "product")
	}

	ev := newEvent(EventCartItemAdded, productID)
	ev.Quantity = &item.Quantity
	publish(ctx, s.Events, s.Topic, ev)
	return item, nil
}

// CartTotal prices every row at the product's current price.
func (s *CartService) CartTotal(ctx context.Context) (*transport.CartTotalResponse, error) {
	items, err := s.Repo.CartItems(ctx)
	if err != nil {
		return nil, err
	}

	resp := &transport.CartTotalResponse{Items: make([]transport.CartLineResponse, 0, len(items))}
	for _, item := range items {
		line := float64(item.Quantity) * item.Product.Price
		resp.TotalPrice += line
		resp.Items = append(resp.Items, transport.CartLineResponse{
			ProductID:       item.Product.ID,
			ProductName:     item.Product.Name,
			Quantity:        item.Quantity,
			PricePerUnit:    item.Product.Price,
			PriceAsPerCount: line,
		})
	}
	return resp, nil
}

// RemoveCartItem deletes the cart row and also the product it references.
func (s *CartService) RemoveCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	item, err := s.Repo.RemoveCartItem(ctx, id)
	if err != nil {
		return nil, notFound(err, "cart item")
	}

	unindexProduct(ctx, s.Index, item.ProductID)

	zero := 0
	ev := newEvent(EventCartItemRemoved, item.ProductID)
	ev.Quantity = &zero
	publish(ctx, s.Events, s.Topic, ev)
	return item, nil
}
