package dto

import (
	"time"

	"github.com/techstore/admin-manager/internal/entity"
)

// ProductRequest mirrors the storefront's product document schema.
type ProductRequest struct {
	Name     string   `json:"p_name"`
	Category string   `json:"p_cat"`
	Cost     Number   `json:"p_cost"`
	Details  string   `json:"p_details"`
	Images   []string `json:"p_imgs"`
	Featured bool     `json:"isFeatured"`
}

func (pr *ProductRequest) ToEntity() *entity.ProductNew {
	return &entity.ProductNew{
		Name:      pr.Name,
		Category:  entity.CategoryEnum(pr.Category),
		Cost:      pr.Cost.Decimal,
		Details:   pr.Details,
		ImageURLs: pr.Images,
		Featured:  pr.Featured,
	}
}

type ProductResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"p_name"`
	Category  string    `json:"p_cat"`
	Cost      Number    `json:"p_cost"`
	Details   string    `json:"p_details"`
	Images    []string  `json:"p_imgs"`
	Featured  bool      `json:"isFeatured"`
	CreatedAt time.Time `json:"createdAt"`
}

func ConvertProductFull(pf *entity.ProductFull) *ProductResponse {
	if pf == nil || pf.Product == nil {
		return nil
	}
	images := pf.ImageURLs
	if images == nil {
		images = []string{}
	}
	return &ProductResponse{
		ID:        pf.Product.ID,
		Name:      pf.Product.Name,
		Category:  string(pf.Category),
		Cost:      NumberFromDecimal(pf.Product.Cost),
		Details:   pf.Product.Details,
		Images:    images,
		Featured:  pf.Product.Featured,
		CreatedAt: pf.Product.CreatedAt,
	}
}

func ConvertProducts(products []entity.ProductFull) []ProductResponse {
	resp := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, *ConvertProductFull(&products[i]))
	}
	return resp
}
