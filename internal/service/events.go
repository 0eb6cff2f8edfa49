package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/basic_shop/internal/logging"
	"github.com/Skotchmaster/basic_shop/internal/models"
)

const (
	EventProductCreated  = "product_created"
	EventProductDeleted  = "product_deleted"
	EventCartItemAdded   = "cart_item_added"
	EventCartItemRemoved = "cart_item_removed"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ProductIndex interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	Quantity   *int      `json:"quantity,omitempty"`
}

func newEvent(typ string, productID uint) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		ProductID:  productID,
	}
}

// publish never fails the caller; the write already committed.
func publish(ctx context.Context, p Publisher, topic string, ev Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, fmt.Sprint(ev.ProductID), ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", ev.Type, "error", err)
	}
}

func indexProduct(ctx context.Context, idx ProductIndex, p *models.Product) {
	if idx == nil {
		return
	}
	if err := idx.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("index_product_failed", "product_id", p.ID, "error", err)
	}
}

func unindexProduct(ctx context.Context, idx ProductIndex, id uint) {
	if idx == nil {
		return
	}
	if err := idx.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("unindex_product_failed", "product_id", id, "error", err)
	}
}
