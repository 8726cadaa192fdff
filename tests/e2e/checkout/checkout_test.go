//go:build e2e

package checkout_test

import (
	"net/http"
	"sync"
	"testing"

	"island-eats/internal/handler/dto/request"
	"island-eats/internal/handler/dto/response"
	"island-eats/tests/common/authtest"
	"island-eats/tests/common/dbtest"
	"island-eats/tests/common/httptest"
	"island-eats/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	cartURL      = "/api/cart"
	cartItemsURL = "/api/cart/items"
	ordersURL    = "/api/orders"
	dropURL      = "/api/drop"

	wingsItemID       = int32(1)
	macaroniPieItemID = int32(2)
)

type CheckoutSuite struct {
	e2e.SharedSuite
}

func (s *CheckoutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) addItem(token string, itemID int32) {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartItemsURL,
		request.AddCartItemRequest{ItemID: itemID}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *CheckoutSuite) checkout(token string, key uuid.UUID) *response.OrderResponse {
	t := s.T()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
		map[string]string{"Idempotency-Key": key.String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order response.OrderResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &order))
	return &order
}

func (s *CheckoutSuite) dropStatus() map[string]any {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, dropURL, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]any
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &status))
	return status
}

func (s *CheckoutSuite) countOrders() int {
	t := s.T()
	var count int
	err := s.DB.QueryRow(t.Context(), "SELECT count(*) FROM orders").Scan(&count)
	require.NoError(t, err)
	return count
}

// =============================================================================
// TestCheckoutFlow - the full add-to-cart / checkout path
// =============================================================================

func (s *CheckoutSuite) TestCheckoutFlow() {
	s.Run("Normal case: cart totals and checkout claim the first slot", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer One")

		// Two wings orders plus one macaroni pie.
		s.addItem(token, wingsItemID)
		s.addItem(token, macaroniPieItemID)
		s.addItem(token, wingsItemID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var cart response.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
		require.Equal(t, int32(3), cart.TotalQuantity)
		require.Equal(t, int64(5250), cart.TotalCents)
		require.Len(t, cart.Lines, 2, "repeated adds should merge into one line")

		order := s.checkout(token, uuid.New())

		expected := &response.OrderResponse{
			DropID:      s.Config.Drop.ID,
			OrderNumber: 1,
			UserEmail:   "buyer@example.com",
			UserName:    "Buyer One",
			TotalCents:  5250,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.OrderResponse{}, "ID", "Items", "PlacedAt"),
		}
		if diff := cmp.Diff(expected, order, opts...); diff != "" {
			t.Errorf("Order response mismatch (-want +got):\n%s", diff)
		}
		require.Len(t, order.Items, 2)

		// The cart is consumed by checkout.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
		require.Empty(t, cart.Lines)

		status := s.dropStatus()
		require.Equal(t, float64(1), status["ordersCount"])
		require.Equal(t, float64(19), status["slotsRemaining"])
		require.Equal(t, false, status["soldOut"])
	})

	s.Run("Error case: checkout with an empty cart is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "empty@example.com", "Empty Cart")

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
			map[string]string{"Idempotency-Key": uuid.New().String()})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Cart is empty")
	})

	s.Run("Error case: missing Idempotency-Key header is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "nokey@example.com", "No Key")
		s.addItem(token, wingsItemID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Idempotency-Key")
	})
}

// =============================================================================
// TestCheckoutIdempotency - replaying and misusing the Idempotency-Key
// =============================================================================

func (s *CheckoutSuite) TestCheckoutIdempotency() {
	s.Run("Normal case: replaying a completed key returns the stored order", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "replay@example.com", "Replay User")
		key := uuid.New()

		s.addItem(token, wingsItemID)
		first := s.checkout(token, key)

		// The success cleared the cart. A client that lost the response
		// retries with the same key and the now-empty cart; the stored
		// order comes back and no second slot is claimed.
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
			map[string]string{"Idempotency-Key": key.String()})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var replayed response.OrderResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &replayed))
		require.Equal(t, first.ID, replayed.ID)
		require.Equal(t, first.OrderNumber, replayed.OrderNumber)

		require.Equal(t, 1, s.countOrders())

		status := s.dropStatus()
		require.Equal(t, float64(1), status["ordersCount"])
	})

	s.Run("Error case: reusing a key with a different cart is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "reuse@example.com", "Reuse User")
		key := uuid.New()

		s.addItem(token, wingsItemID)
		s.checkout(token, key)

		s.addItem(token, macaroniPieItemID)
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
			map[string]string{"Idempotency-Key": key.String()})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Duplicate checkout request")

		require.Equal(t, 1, s.countOrders())
	})
}

// =============================================================================
// TestLastSlotContention - two buyers racing for the final slot
// =============================================================================

func (s *CheckoutSuite) TestLastSlotContention() {
	s.Run("Exactly one of two concurrent checkouts wins the last slot", func() {
		t := s.T()

		tokenA := authtest.CreateAndLogin(t, s.DB, s.Router, "racer-a@example.com", "Racer A")
		tokenB := authtest.CreateAndLogin(t, s.DB, s.Router, "racer-b@example.com", "Racer B")

		s.addItem(tokenA, wingsItemID)
		s.addItem(tokenB, macaroniPieItemID)

		dbtest.SetDropCount(t, s.DB, s.Config.Drop.ID, s.Config.Drop.TotalSlots, s.Config.Drop.TotalSlots-1)

		ordersBefore := s.countOrders()

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i, token := range []string{tokenA, tokenB} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
					map[string]string{"Idempotency-Key": uuid.New().String()})
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes,
			"one checkout should win the slot and the other should see sold out")

		// The order log gained exactly one record and the counter stopped at
		// capacity.
		require.Equal(t, ordersBefore+1, s.countOrders())

		status := s.dropStatus()
		require.Equal(t, float64(s.Config.Drop.TotalSlots), status["ordersCount"])
		require.Equal(t, float64(0), status["slotsRemaining"])
		require.Equal(t, true, status["soldOut"])
	})

	s.Run("Error case: checkout against a sold-out drop writes nothing", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "late@example.com", "Late Buyer")
		s.addItem(token, wingsItemID)

		dbtest.SetDropCount(t, s.DB, s.Config.Drop.ID, s.Config.Drop.TotalSlots, s.Config.Drop.TotalSlots)

		key := uuid.New()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
			map[string]string{"Idempotency-Key": key.String()})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Sold out")

		// The failed attempt released its key, so the same key sees the
		// same sold-out answer instead of a stuck "being processed".
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, nil, token,
			map[string]string{"Idempotency-Key": key.String()})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Sold out")

		require.Equal(t, 0, s.countOrders())
	})
}
