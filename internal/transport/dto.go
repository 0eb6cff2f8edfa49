package transport

import "github.com/Skotchmaster/basic_shop/internal/models"

// CreateProductRequest fields are pointers so a missing name or price can be
// told apart from a zero value.
type CreateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
}

type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
	}
}

func NewProductsResponse(items []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, NewProductResponse(&items[i]))
	}
	return out
}

type AddToCartRequest struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type CartItemResponse struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CartLineResponse struct {
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PricePerUnit    float64 `json:"price_per_unit"`
	PriceAsPerCount float64 `json:"price_as_per_count"`
}

type CartTotalResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalPrice float64            `json:"total_price"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SearchResponse struct {
	Total    int64             `json:"total"`
	Products []ProductResponse `json:"products"`
}
