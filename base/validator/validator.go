package validator

import (
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// IsValidAddress reports whether address is a 20 byte hex account, in any letter case
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	return strings.EqualFold(common.HexToAddress(address).Hex(), address)
}

// IsPositive reports whether amount parses as a decimal greater than zero
func IsPositive(amount string) bool {
	d, err := decimal.NewFromString(amount)
	return err == nil && d.IsPositive()
}

// NewCustomValidator teaches v the "address" tag and the "positive" tag, the
// latter validates decimal.Decimal fields through their string form
func NewCustomValidator(v *validator.Validate) echo.Validator {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		return IsPositive(fl.Field().String())
	})
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
