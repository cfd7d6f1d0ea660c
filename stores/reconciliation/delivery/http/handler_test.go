package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	mListing "github.com/x-xyz/escrow/domain/listing/mocks"
	authMiddleware "github.com/x-xyz/escrow/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/escrow/stores/auth/usecase"
)

const (
	admin = domain.Address("0xadmin")
	user  = domain.Address("0xuser")
)

type handlerTestSuite struct {
	suite.Suite

	e      *echo.Echo
	uc     *mListing.ReconciliationUseCase
	tokens map[domain.Address]string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerTestSuite))
}

func (s *handlerTestSuite) SetupTest() {
	auth := authUsecase.New(&authUsecase.AuthUsecaseCfg{JwtSecret: "secret", TokenTtl: time.Hour})
	s.tokens = map[domain.Address]string{}
	for _, a := range []domain.Address{admin, user} {
		token, err := auth.SignToken(ctx.Background(), a)
		s.Require().NoError(err)
		s.tokens[a] = token
	}

	s.e = echo.New()
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	s.uc = mListing.NewReconciliationUseCase(s.T())
	New(s.e, s.uc, authMiddleware.New(auth, authUsecase.NewAdminAuthorizer([]domain.Address{admin})))
}

func (s *handlerTestSuite) do(method, url string, caller domain.Address) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	token, ok := s.tokens[caller]
	if !ok {
		token = "not-a-token"
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerTestSuite) TestFindAll() {
	s.uc.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]*listing.Reconciliation{{ReconciliationId: "r1"}}, nil).Once()

	rec := s.do(http.MethodGet, "/reconciliations?resolved=false", admin)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"reconciliationId":"r1"`)

	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/reconciliations", "0xnobody").Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/reconciliations", user).Code)
}

func (s *handlerTestSuite) TestResolve() {
	s.uc.On("Resolve", mock.Anything, admin, "r1").Return(&listing.Reconciliation{ReconciliationId: "r1", Resolved: true}, nil).Once()
	s.uc.On("Resolve", mock.Anything, user, "r1").Return(nil, xerrors.Errorf("resolve: %w", domain.ErrUnauthorized)).Once()
	s.uc.On("Resolve", mock.Anything, admin, "r2").Return(nil, xerrors.Errorf("pay: %w", domain.ErrPaymentFailed)).Once()

	rec := s.do(http.MethodPost, "/reconciliations/r1/resolve", admin)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"resolved":true`)

	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/reconciliations/r1/resolve", user).Code)
	s.Equal(http.StatusBadGateway, s.do(http.MethodPost, "/reconciliations/r2/resolve", admin).Code)
}
