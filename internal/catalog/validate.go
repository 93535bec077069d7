package catalog

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/lvargas/dulceria/internal/domain"
)

// validatePackFields enforces the price and pack invariants at write time,
// so the pricing engine never has to error on malformed records:
// price >= 0; pack variants carry a pack size of at least 1; the pack
// discount is a percentage in [0,100] and only meaningful on a pack.
func validatePackFields(op string, price decimal.Decimal, isPack bool, packSize *int, packDiscount *decimal.Decimal) error {
	var err error

	if price.IsNegative() {
		err = domain.AddFieldError(err, "price", "must not be negative")
	}

	if isPack {
		if packSize == nil {
			err = domain.AddFieldError(err, "packSize", "required when isPack is set")
		} else if *packSize < 1 {
			err = domain.AddFieldError(err, "packSize", "must be at least 1")
		}
	} else {
		if packSize != nil {
			err = domain.AddFieldError(err, "packSize", "only valid when isPack is set")
		}
		if packDiscount != nil {
			err = domain.AddFieldError(err, "packDiscount", "only valid when isPack is set")
		}
	}

	if packDiscount != nil {
		if packDiscount.IsNegative() || packDiscount.GreaterThan(decimal.NewFromInt(100)) {
			err = domain.AddFieldError(err, "packDiscount", "must be between 0 and 100")
		}
	}

	if err != nil {
		if ve, ok := err.(*domain.ValidationError); ok {
			ve.Op = op
		}
		return err
	}
	return nil
}

// fieldErrors converts go-playground/validator errors into the domain's
// field-level validation error.
func fieldErrors(op string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Internal(err, op, "validation failed")
	}

	var out error
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out = domain.AddFieldError(out, field, "is required")
		default:
			out = domain.AddFieldError(out, field, "is invalid")
		}
	}
	if ve, ok := out.(*domain.ValidationError); ok {
		ve.Op = op
	}
	return out
}
