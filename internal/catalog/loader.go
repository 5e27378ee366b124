package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	pkgerrors "github.com/esihle/storefront-backend/pkg/errors"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

//go:embed fixtures/products.json
var embeddedFixture []byte

// Source supplies the raw catalog records at startup.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
}

// FixtureSource reads a JSON product array. An empty Path selects the
// fixture compiled into the binary.
type FixtureSource struct {
	Path string
}

// Products decodes the fixture.
func (s FixtureSource) Products(ctx context.Context) ([]Product, error) {
	data := embeddedFixture
	if s.Path != "" {
		raw, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read catalog fixture %q: %w", s.Path, err)
		}
		data = raw
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var products []Product
	if err := decoder.Decode(&products); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog fixture")
	}
	return products, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Load pulls products from src, validates them and builds the Store.
func Load(ctx context.Context, src Source, logg *logger.Logger) (*Store, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := Validate(products); err != nil {
		return nil, err
	}

	store := NewStore(products)
	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"products":   store.Len(),
			"categories": len(store.Categories()) - 1,
		}), "catalog loaded")
	}
	return store, nil
}

// Validate checks every record and reports all problems at once.
func Validate(products []Product) error {
	if len(products) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "catalog is empty")
	}

	var errs error
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		label := fmt.Sprintf("product[%d] id=%q", i, p.ID)
		if err := validate.Struct(p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", label, err))
		}
		if _, dup := seen[p.ID]; dup && p.ID != "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate id", label))
		}
		seen[p.ID] = struct{}{}
		if p.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("%s: price must not be negative", label))
		}
		if p.OriginalPrice != nil && !p.OriginalPrice.GreaterThan(p.Price) {
			errs = multierr.Append(errs, fmt.Errorf("%s: original_price %s must exceed price %s", label, p.OriginalPrice, p.Price))
		}
	}
	if errs == nil {
		return nil
	}

	messages := []string{}
	for _, err := range multierr.Errors(errs) {
		messages = append(messages, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog").
		WithDetails(map[string]any{"errors": messages})
}
