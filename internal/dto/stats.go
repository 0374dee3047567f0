package dto

import "github.com/techstore/admin-manager/internal/entity"

type DailySales struct {
	Month  string  `json:"month"`
	Day    int     `json:"day"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

func ConvertDailySales(buckets []entity.DailySalesBucket) []DailySales {
	resp := make([]DailySales, 0, len(buckets))
	for _, b := range buckets {
		sales, _ := b.Sales.Float64()
		resp = append(resp, DailySales{
			Month:  b.Month,
			Day:    b.Day,
			Sales:  sales,
			Orders: b.Orders,
		})
	}
	return resp
}

type CategoryStock struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Fill     string `json:"fill,omitempty"`
}

func ConvertCategoryStock(buckets []entity.CategoryStockBucket) []CategoryStock {
	resp := make([]CategoryStock, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, CategoryStock{
			Category: string(b.Category),
			Quantity: b.Quantity,
			Fill:     b.Fill,
		})
	}
	return resp
}

type Counters struct {
	Orders    int     `json:"orders"`
	Products  int     `json:"products"`
	Customers int     `json:"customers"`
	Revenue   float64 `json:"revenue"`
}

func ConvertCounters(s *entity.CountersSnapshot) *Counters {
	if s == nil {
		return nil
	}
	revenue, _ := s.Revenue.Float64()
	return &Counters{
		Orders:    s.Orders,
		Products:  s.Products,
		Customers: s.Customers,
		Revenue:   revenue,
	}
}
