//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"island-eats/internal/handler/api"
	reqdto "island-eats/internal/handler/dto/request"
	resdto "island-eats/internal/handler/dto/response"
	"island-eats/internal/usecase/commands"
	"island-eats/tests/common/builder"
	"island-eats/tests/common/httptest"
	commandsmock "island-eats/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockStore    *commandsmock.MockCartStore
	handler      *api.CartHandler
	userID       uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.userID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockStore = commandsmock.NewMockCartStore(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockStore)

	authed := func(h gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.userID)
			h(c)
		}
	}

	s.router.GET("/cart", authed(s.handler.GetCart))
	s.router.DELETE("/cart", authed(s.handler.ClearCart))
	s.router.POST("/cart/items", authed(s.handler.AddItem))
	s.router.PATCH("/cart/items/:id", authed(s.handler.UpdateItem))
	s.router.DELETE("/cart/items/:id", authed(s.handler.RemoveItem))
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func (s *CartHandlerTestSuite) TestGetCart() {
	c := builder.NewCartBuilder().WithItem(1, 2).WithItem(2, 1).Build()
	s.mockStore.EXPECT().Get(s.userID).Return(c).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cart", nil, "")

	var response resdto.CartResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Len(response.Lines, 2)
	s.Equal(int64(5250), response.TotalCents)
	s.Equal(int32(3), response.TotalQuantity)
}

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"

	s.Run("success: returns the updated cart", func() {
		updated := builder.NewCartBuilder().WithItem(1, 1).Build()
		s.mockCommands.EXPECT().AddItem(gomock.Any(), s.userID, int32(1)).
			Return(updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.AddCartItemRequest{ItemID: 1}, "")

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int32(1), response.TotalQuantity)
	})

	s.Run("error: 404 for an unknown item", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), s.userID, int32(42)).
			Return(builder.NewCartBuilder().Build(), commands.ErrMenuItemNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.AddCartItemRequest{ItemID: 42}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})

	s.Run("error: 409 once the drop is sold out", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), s.userID, int32(1)).
			Return(builder.NewCartBuilder().Build(), commands.ErrDropSoldOut).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqdto.AddCartItemRequest{ItemID: 1}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "sold out")
	})

	s.Run("error: 400 for a malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"itemId": "one"}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *CartHandlerTestSuite) TestUpdateItem() {
	s.Run("success: sets the quantity", func() {
		updated := builder.NewCartBuilder().WithItem(1, 3).Build()
		s.mockCommands.EXPECT().SetQuantity(gomock.Any(), s.userID, int32(1), int32(3)).
			Return(updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/1", reqdto.UpdateCartItemRequest{Quantity: 3}, "")

		var response resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int32(3), response.TotalQuantity)
	})

	s.Run("error: 400 for a non-numeric item id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/cart/items/abc", reqdto.UpdateCartItemRequest{Quantity: 3}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *CartHandlerTestSuite) TestRemoveItem() {
	s.mockCommands.EXPECT().RemoveItem(gomock.Any(), s.userID, int32(1)).
		Return(builder.NewCartBuilder().Build(), nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart/items/1", nil, "")

	var response resdto.CartResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.Empty(response.Lines)
}

func (s *CartHandlerTestSuite) TestClearCart() {
	s.mockCommands.EXPECT().Clear(gomock.Any(), s.userID).Return(nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/cart", nil, "")

	s.Equal(http.StatusNoContent, rec.Code)
}
