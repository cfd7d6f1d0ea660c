package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/escrow/domain"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "valid address - real address",
			address:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			expIsValid: true,
		},
		{
			desc:       "valid address - lower case",
			address:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952b",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func (s *ValidatorTestSuite) TestAddressTag() {
	type params struct {
		Seller domain.Address `validate:"required,address"`
	}

	v := NewCustomValidator(validator.New())
	s.NoError(v.Validate(&params{"0x939ae6a4c8dfdbb1f7085189574f0a938013952b"}))
	s.Error(v.Validate(&params{"0x939ae6a4"}))
	s.Error(v.Validate(&params{}))
}

func (s *ValidatorTestSuite) TestPositiveTag() {
	type params struct {
		Price *decimal.Decimal `validate:"required,positive"`
	}

	v := NewCustomValidator(validator.New())
	d := func(v string) *decimal.Decimal {
		res := decimal.RequireFromString(v)
		return &res
	}
	s.NoError(v.Validate(&params{d("0.5")}))
	s.NoError(v.Validate(&params{d("100")}))
	s.Error(v.Validate(&params{d("0")}))
	s.Error(v.Validate(&params{d("-1")}))
	s.Error(v.Validate(&params{}))
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
