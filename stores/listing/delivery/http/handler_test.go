package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/xerrors"

	"github.com/x-xyz/escrow/base/ctx"
	customValidator "github.com/x-xyz/escrow/base/validator"
	"github.com/x-xyz/escrow/domain"
	"github.com/x-xyz/escrow/domain/listing"
	mListing "github.com/x-xyz/escrow/domain/listing/mocks"
	authMiddleware "github.com/x-xyz/escrow/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/escrow/stores/auth/usecase"
)

const (
	collection = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
	seller     = domain.Address("0xseller")
	buyer      = domain.Address("0xbuyer")
)

var nft = listing.Id{CollectionId: collection, AssetId: "7"}

func amount(v int64) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(v)) })
}

type handlerTestSuite struct {
	suite.Suite

	e      *echo.Echo
	uc     *mListing.UseCase
	tokens map[domain.Address]string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerTestSuite))
}

func (s *handlerTestSuite) SetupTest() {
	auth := authUsecase.New(&authUsecase.AuthUsecaseCfg{JwtSecret: "secret", TokenTtl: time.Hour})
	s.tokens = map[domain.Address]string{}
	for _, a := range []domain.Address{seller, buyer} {
		token, err := auth.SignToken(ctx.Background(), a)
		s.Require().NoError(err)
		s.tokens[a] = token
	}

	s.e = echo.New()
	s.e.Validator = customValidator.NewCustomValidator(validator.New())
	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	s.uc = mListing.NewUseCase(s.T())
	New(s.e, s.uc, authMiddleware.New(auth, authUsecase.NewAdminAuthorizer(nil)))
}

func (s *handlerTestSuite) do(method, url string, caller domain.Address, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if caller != "" {
		token, ok := s.tokens[caller]
		if !ok {
			token = "not-a-token"
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *handlerTestSuite) TestCreate() {
	s.uc.On("List", mock.Anything, nft, amount(100), seller).Return(&listing.Listing{CollectionId: collection, AssetId: "7", Seller: seller}, nil).Once()
	s.uc.On("ListForAuction", mock.Anything, nft, amount(50), seller).Return(&listing.Listing{IsAuction: true}, nil).Once()
	s.uc.On("List", mock.Anything, nft, amount(100), buyer).Return(nil, xerrors.Errorf("listed: %w", domain.ErrConflict)).Once()

	url := "/listings/" + collection + "/7"
	rec := s.do(http.MethodPost, url, seller, `{"price":"100"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"seller":"0xseller"`)

	s.Equal(http.StatusCreated, s.do(http.MethodPost, url, seller, `{"price":50,"auction":true}`).Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, url, buyer, `{"price":"100"}`).Code)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, url, seller, `{}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/listings/0x123/7", seller, `{"price":"100"}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, url, seller, `{"price":"0"}`).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, url, "0xnobody", `{"price":"100"}`).Code)
}

func (s *handlerTestSuite) TestGet() {
	s.uc.On("Get", mock.Anything, nft).Return(&listing.Listing{CollectionId: collection, AssetId: "7"}, nil).Once()
	s.uc.On("Get", mock.Anything, listing.Id{CollectionId: collection, AssetId: "8"}).Return(nil, xerrors.Errorf("x: %w", domain.ErrNotFound)).Once()

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/listings/"+collection+"/7", "", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/listings/"+collection+"/8", "", "").Code)
}

func (s *handlerTestSuite) TestFindAll() {
	s.uc.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*listing.Listing{{AssetId: "7"}, {AssetId: "8"}}, nil).Once()

	rec := s.do(http.MethodGet, "/listings?seller=0xseller&auction=true", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"assetId":"8"`)
}

func (s *handlerTestSuite) TestChangePriceAndUnlist() {
	s.uc.On("ChangePrice", mock.Anything, nft, buyer, amount(200)).Return(nil, xerrors.Errorf("x: %w", domain.ErrUnauthorized)).Once()
	s.uc.On("ChangePrice", mock.Anything, nft, seller, amount(200)).Return(&listing.Listing{}, nil).Once()
	s.uc.On("Unlist", mock.Anything, nft, seller).Return(nil).Once()

	url := "/listings/" + collection + "/7"
	s.Equal(http.StatusForbidden, s.do(http.MethodPut, url+"/price", buyer, `{"price":"200"}`).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPut, url+"/price", seller, `{"price":"200"}`).Code)
	s.Equal(http.StatusOK, s.do(http.MethodDelete, url, seller, "").Code)
}

func (s *handlerTestSuite) TestAuctionRoutes() {
	s.uc.On("PlaceBid", mock.Anything, nft, buyer, amount(10)).Return(nil, xerrors.Errorf("x: %w", domain.ErrBidTooLow)).Once()
	s.uc.On("PlaceBid", mock.Anything, nft, buyer, amount(150)).Return(&listing.Listing{HighestBidder: buyer}, nil).Once()
	s.uc.On("EndAuction", mock.Anything, nft, seller).Return(&listing.Settlement{Buyer: buyer}, nil).Once()

	url := "/listings/" + collection + "/7"
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, url+"/bids", buyer, `{"amount":"10"}`).Code)
	s.Equal(http.StatusOK, s.do(http.MethodPost, url+"/bids", buyer, `{"amount":"150"}`).Code)

	rec := s.do(http.MethodPost, url+"/end", seller, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"buyer":"0xbuyer"`)
}

func (s *handlerTestSuite) TestBuy() {
	s.uc.On("Buy", mock.Anything, nft, buyer, amount(100)).Return(&listing.Settlement{Buyer: buyer}, nil).Once()
	s.uc.On("Buy", mock.Anything, nft, buyer, amount(101)).Return(nil, xerrors.Errorf("x: %w", domain.ErrOperationInProgress)).Once()
	s.uc.On("Buy", mock.Anything, nft, buyer, amount(102)).Return(nil, xerrors.Errorf("pay: %v: %w", domain.ErrPaymentFailed, domain.ErrFatalInconsistency)).Once()

	url := "/listings/" + collection + "/7/buy"
	s.Equal(http.StatusOK, s.do(http.MethodPost, url, buyer, `{"amount":"100"}`).Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, url, buyer, `{"amount":"101"}`).Code)
	s.Equal(http.StatusInternalServerError, s.do(http.MethodPost, url, buyer, `{"amount":"102"}`).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, url, buyer, `{"amount":"abc"}`).Code)
}
