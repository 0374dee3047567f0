package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductNew struct {
	Name      string          `valid:"required"`
	Category  CategoryEnum    `valid:"required"`
	Cost      decimal.Decimal `valid:"-"`
	Details   string          `valid:"-"`
	ImageURLs []string        `valid:"-"`
	Featured  bool            `valid:"-"`
}

// Product represents the product table.
type Product struct {
	ID         int             `db:"id"`
	Name       string          `db:"name"`
	CategoryID int             `db:"category_id"`
	Cost       decimal.Decimal `db:"cost"`
	Details    string          `db:"details"`
	Featured   bool            `db:"featured"`
	CreatedAt  time.Time       `db:"created_at"`
}

type ProductFull struct {
	Product   *Product
	Category  CategoryEnum
	ImageURLs []string
}

// ProductFilter bounds a product listing. Zero values mean "no constraint";
// Limit falls back to a store default.
type ProductFilter struct {
	Category   CategoryEnum
	NamePrefix string
	Featured   bool
	Limit      int
}

// ProductImage represents the product_image table.
type ProductImage struct {
	ID        int    `db:"id"`
	ProductID int    `db:"product_id"`
	URL       string `db:"url"`
	Position  int    `db:"position"`
}

// Category represents the category dictionary table.
type Category struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type CategoryEnum string

const (
	PC          CategoryEnum = "PC"
	Laptop      CategoryEnum = "LAPTOP"
	Webcams     CategoryEnum = "WEBCAMS"
	HardDrives  CategoryEnum = "HARD_DRIVES"
	Headsets    CategoryEnum = "HEADSETS"
	Keyboards   CategoryEnum = "KEYBOARDS"
	Speakers    CategoryEnum = "SPEAKERS"
	Printers    CategoryEnum = "PRINTERS"
	Microphones CategoryEnum = "MICROPHONES"
	Monitors    CategoryEnum = "MONITORS"
	Tablets     CategoryEnum = "TABLETS"
	Projectors  CategoryEnum = "PROJECTORS"
	Scanners    CategoryEnum = "SCANNERS"
	SSD         CategoryEnum = "SSD"
	Mouses      CategoryEnum = "MOUSES"
	Desktop     CategoryEnum = "DESKTOP"
	Accessories CategoryEnum = "ACCESSORIES"
)

// AllCategories is the full category enumeration in presentation order.
// The storefront and the stock report rely on this ordering.
var AllCategories = []CategoryEnum{
	PC, Laptop, Webcams, HardDrives, Headsets, Keyboards, Speakers, Printers,
	Microphones, Monitors, Tablets, Projectors, Scanners, SSD, Mouses, Desktop,
	Accessories,
}

var ValidCategories = func() map[CategoryEnum]bool {
	m := make(map[CategoryEnum]bool, len(AllCategories))
	for _, c := range AllCategories {
		m[c] = true
	}
	return m
}()

func IsValidCategory(c CategoryEnum) bool {
	return ValidCategories[c]
}

// categoryColors maps categories to the chart palette used by the console.
var categoryColors = map[CategoryEnum]string{
	PC:          "#cbd5e1",
	Laptop:      "#94a3b8",
	Webcams:     "#64748b",
	HardDrives:  "#475569",
	Headsets:    "#334155",
	Keyboards:   "#1e293b",
	Speakers:    "#0f172a",
	Printers:    "#020617",
	Microphones: "#cbd5e1",
	Monitors:    "#94a3b8",
	Tablets:     "#64748b",
	Projectors:  "#475569",
	Scanners:    "#334155",
	SSD:         "#1e293b",
	Mouses:      "#0f172a",
	Desktop:     "#3b82f6",
}

const fallbackCategoryColor = "#64748b"

// CategoryColor returns the presentation color for a category. Categories
// absent from the palette get a stable fallback value.
func CategoryColor(c CategoryEnum) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return fallbackCategoryColor
}
