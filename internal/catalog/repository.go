package catalog

import (
	"context"
	"time"

	pkgdb "github.com/esihle/storefront-backend/pkg/db"
	pkgerrors "github.com/esihle/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRecord mirrors the products table.
type productRecord struct {
	ID              string              `gorm:"primaryKey;column:id"`
	Position        int                 `gorm:"column:position"`
	Name            string              `gorm:"column:name"`
	Description     string              `gorm:"column:description"`
	LongDescription string              `gorm:"column:long_description"`
	Price           decimal.Decimal     `gorm:"column:price"`
	OriginalPrice   decimal.NullDecimal `gorm:"column:original_price"`
	Image           string              `gorm:"column:image"`
	Category        string              `gorm:"column:category"`
	Ingredients     []string            `gorm:"column:ingredients;serializer:json"`
	Benefits        []string            `gorm:"column:benefits;serializer:json"`
	Usage           string              `gorm:"column:usage_instructions"`
	Size            string              `gorm:"column:size"`
	InStock         bool                `gorm:"column:in_stock"`
	Featured        bool                `gorm:"column:featured"`
	Rating          float64             `gorm:"column:rating"`
	Reviews         int                 `gorm:"column:reviews"`
	CreatedAt       time.Time           `gorm:"column:created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r productRecord) toProduct() Product {
	p := Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		LongDescription: r.LongDescription,
		Image:           r.Image,
		Price:           r.Price,
		Category:        r.Category,
		Ingredients:     r.Ingredients,
		Benefits:        r.Benefits,
		Usage:           r.Usage,
		Size:            r.Size,
		InStock:         r.InStock,
		Featured:        r.Featured,
		Rating:          r.Rating,
		Reviews:         r.Reviews,
	}
	if r.OriginalPrice.Valid {
		op := r.OriginalPrice.Decimal
		p.OriginalPrice = &op
	}
	return p
}

func recordFromProduct(p Product, position int) productRecord {
	rec := productRecord{
		ID:              p.ID,
		Position:        position,
		Name:            p.Name,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Price:           p.Price,
		Image:           p.Image,
		Category:        p.Category,
		Ingredients:     p.Ingredients,
		Benefits:        p.Benefits,
		Usage:           p.Usage,
		Size:            p.Size,
		InStock:         p.InStock,
		Featured:        p.Featured,
		Rating:          p.Rating,
		Reviews:         p.Reviews,
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []string{}
	}
	if rec.Benefits == nil {
		rec.Benefits = []string{}
	}
	if p.OriginalPrice != nil {
		rec.OriginalPrice = decimal.NewNullDecimal(*p.OriginalPrice)
	}
	return rec
}

// Repository reads and seeds the products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return r.db
	}
	return r.db.WithContext(ctx)
}

// Products returns every row ordered by position, making the repository a catalog Source.
func (r *Repository) Products(ctx context.Context) ([]Product, error) {
	var rows []productRecord
	if err := r.conn(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog products")
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toProduct())
	}
	return out, nil
}

// Seed writes products in order, updating rows whose id already exists.
// It returns how many rows were newly inserted.
func (r *Repository) Seed(ctx context.Context, products []Product) (int, error) {
	inserted := 0
	for i, p := range products {
		rec := recordFromProduct(p, i)
		err := r.conn(ctx).Create(&rec).Error
		switch {
		case err == nil:
			inserted++
		case pkgdb.IsUniqueViolation(err, ""):
			if err := r.conn(ctx).Model(&rec).Select("*").Omit("id", "created_at").Updates(&rec).Error; err != nil {
				return inserted, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update catalog product "+rec.ID)
			}
		default:
			return inserted, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert catalog product "+rec.ID)
		}
	}
	return inserted, nil
}
