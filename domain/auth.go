package domain

import (
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/escrow/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// VerifySignature checks that address signed the login message for issuedAt
	VerifySignature(ctx ctx.Ctx, address Address, issuedAt time.Time, signature string) error
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
