package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/base/ethereum"
	"github.com/x-xyz/escrow/domain"
)

type AuthUsecaseCfg struct {
	JwtSecret string
	// SigningMsgTemplate takes the lowercase address and the unix issue time
	SigningMsgTemplate string
	TokenTtl           time.Duration
	// SignatureTtl bounds how old a login signature may be
	SignatureTtl time.Duration
}

type impl struct {
	jwtSecret    []byte
	template     string
	tokenTtl     time.Duration
	signatureTtl time.Duration
	timeNow      func() time.Time
}

func New(cfg *AuthUsecaseCfg) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(cfg.JwtSecret),
		template:     cfg.SigningMsgTemplate,
		tokenTtl:     cfg.TokenTtl,
		signatureTtl: cfg.SignatureTtl,
		timeNow:      time.Now,
	}
}

// SigningMsg is the message a wallet signs to log in
func SigningMsg(template string, address domain.Address, issuedAt time.Time) string {
	return fmt.Sprintf(template, address.ToLowerStr(), issuedAt.Unix())
}

func (im *impl) VerifySignature(ctx ctx.Ctx, address domain.Address, issuedAt time.Time, signature string) error {
	if age := im.timeNow().Sub(issuedAt); age > im.signatureTtl || age < -im.signatureTtl {
		return xerrors.Errorf("signature issued at %s: %w", issuedAt, domain.ErrUnauthorized)
	}

	ok, err := ethereum.ValidateMsgSignature([]byte(SigningMsg(im.template, address, issuedAt)), signature, string(address))
	if err != nil {
		ctx.WithField("err", err).Warn("ethereum.ValidateMsgSignature failed")
		return xerrors.Errorf("%v: %w", err, domain.ErrInvalidArgument)
	} else if !ok {
		return xerrors.Errorf("signer mismatch: %w", domain.ErrUnauthorized)
	}
	return nil
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: im.timeNow().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}
	return "", domain.ErrUnauthorized
}
