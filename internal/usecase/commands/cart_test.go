//go:build unit

package commands_test

import (
	"context"
	"testing"

	"island-eats/internal/domain/cart"
	"island-eats/internal/domain/menu"
	"island-eats/internal/usecase/commands"
	"island-eats/internal/usecase/queries"
	commandsmock "island-eats/tests/mock/commands"
	queriesmock "island-eats/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CartCommandsTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	carts       *commandsmock.MockCartStore
	dropQueries *queriesmock.MockDropQueries

	uc commands.CartCommands
}

func (s *CartCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.carts = commandsmock.NewMockCartStore(s.ctrl)
	s.dropQueries = queriesmock.NewMockDropQueries(s.ctrl)

	s.uc = commands.NewCartCommands(s.carts, menu.NewCatalog(), s.dropQueries)
}

func (s *CartCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCartCommandsSuite(t *testing.T) {
	suite.Run(t, new(CartCommandsTestSuite))
}

func (s *CartCommandsTestSuite) openDrop() {
	s.dropQueries.EXPECT().Status(gomock.Any()).
		Return(&queries.DropStatusView{DropID: "sunday-drop", TotalSlots: 20, OrdersCount: 3}, nil).
		Times(1)
}

func (s *CartCommandsTestSuite) TestAddItem() {
	userID := uuid.New()

	s.Run("adds a catalog item to the cart", func() {
		s.openDrop()
		s.carts.EXPECT().Get(userID).Return(cart.New()).Times(1)
		s.carts.EXPECT().Replace(userID, gomock.Any()).
			Do(func(_ uuid.UUID, c cart.Cart) {
				s.Equal(int32(1), c.TotalQuantity())
			}).Times(1)

		updated, err := s.uc.AddItem(context.Background(), userID, 1)

		s.Require().NoError(err)
		s.Equal(int32(1), updated.TotalQuantity())
	})

	s.Run("unknown item id is rejected", func() {
		_, err := s.uc.AddItem(context.Background(), userID, 42)
		s.ErrorIs(err, commands.ErrMenuItemNotFound)
	})

	s.Run("adding is blocked once the drop sells out", func() {
		s.dropQueries.EXPECT().Status(gomock.Any()).
			Return(&queries.DropStatusView{DropID: "sunday-drop", TotalSlots: 20, OrdersCount: 20, SoldOut: true}, nil).
			Times(1)

		_, err := s.uc.AddItem(context.Background(), userID, 1)

		s.ErrorIs(err, commands.ErrDropSoldOut)
	})
}

func (s *CartCommandsTestSuite) TestSetQuantity() {
	userID := uuid.New()
	wings, err := menu.NewCatalog().ByID(1)
	s.Require().NoError(err)

	s.Run("updates the line quantity", func() {
		s.carts.EXPECT().Get(userID).Return(cart.New().Add(wings)).Times(1)
		s.carts.EXPECT().Replace(userID, gomock.Any()).
			Do(func(_ uuid.UUID, c cart.Cart) {
				s.Equal(int32(4), c.TotalQuantity())
			}).Times(1)

		updated, err := s.uc.SetQuantity(context.Background(), userID, 1, 4)

		s.Require().NoError(err)
		s.Equal(int32(4), updated.TotalQuantity())
	})

	s.Run("unknown item id is rejected", func() {
		_, err := s.uc.SetQuantity(context.Background(), userID, 42, 2)
		s.ErrorIs(err, commands.ErrMenuItemNotFound)
	})
}

func (s *CartCommandsTestSuite) TestRemoveItem() {
	userID := uuid.New()
	wings, err := menu.NewCatalog().ByID(1)
	s.Require().NoError(err)

	s.carts.EXPECT().Get(userID).Return(cart.New().Add(wings)).Times(1)
	s.carts.EXPECT().Replace(userID, gomock.Any()).
		Do(func(_ uuid.UUID, c cart.Cart) {
			s.True(c.IsEmpty())
		}).Times(1)

	updated, err := s.uc.RemoveItem(context.Background(), userID, 1)

	s.Require().NoError(err)
	s.True(updated.IsEmpty())
}

func (s *CartCommandsTestSuite) TestClear() {
	userID := uuid.New()

	s.carts.EXPECT().Clear(userID).Times(1)

	s.Require().NoError(s.uc.Clear(context.Background(), userID))
}
