package orders

import (
	"context"
	"errors"
	"testing"

	"poultryfarm/internal/domain"
	"poultryfarm/internal/domain/models"
	"poultryfarm/internal/repository"
	"poultryfarm/internal/repository/memory"
)

type recordingNotifier struct {
	updates []models.StockUpdate
}

func (n *recordingNotifier) NotifyStockUpdate(u models.StockUpdate) {
	n.updates = append(n.updates, u)
}

func seedProduct(t *testing.T, stores *repository.Stores, id string, quantity int, price float64) {
	t.Helper()
	p := models.Product{
		ID:       id,
		FarmID:   "farm-1",
		Name:     "eggs " + id,
		Type:     models.ProductEggs,
		Quantity: quantity,
		Price:    price,
		Quality:  models.QualityStandard,
	}
	p.SyncAvailability()
	if err := stores.Products.Insert(context.Background(), p); err != nil {
		t.Fatalf("seed product %s: %v", id, err)
	}
}

func productQuantity(t *testing.T, stores *repository.Stores, id string) int {
	t.Helper()
	p, err := stores.Products.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("load product %s: %v", id, err)
	}
	return p.Quantity
}

func orderCount(t *testing.T, stores *repository.Stores) int {
	t.Helper()
	all, err := stores.Orders.List(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	return len(all)
}

func TestCreate_FulfillsAndDecrementsStock(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	notifier := &recordingNotifier{}
	svc := NewService(stores, notifier, nil)

	seedProduct(t, stores, "p1", 10, 2)

	order, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products:   []models.LineItem{{ProductID: "p1", Quantity: 4, Price: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if order.TotalAmount != 8 {
		t.Fatalf("expected total 8, got %v", order.TotalAmount)
	}
	if order.Status != models.OrderPending || order.PaymentStatus != models.PaymentPending {
		t.Fatalf("unexpected statuses: %s %s", order.Status, order.PaymentStatus)
	}
	if qty := productQuantity(t, stores, "p1"); qty != 6 {
		t.Fatalf("expected quantity 6, got %d", qty)
	}
	if orderCount(t, stores) != 1 {
		t.Fatalf("expected one persisted order")
	}
	if len(notifier.updates) != 1 || notifier.updates[0].NewQuantity != 6 {
		t.Fatalf("unexpected stock updates: %+v", notifier.updates)
	}
}

func TestCreate_InsufficientStockLeavesProductUntouched(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil, nil)

	seedProduct(t, stores, "p1", 3, 5)

	_, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products:   []models.LineItem{{ProductID: "p1", Quantity: 5, Price: 5}},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if qty := productQuantity(t, stores, "p1"); qty != 3 {
		t.Fatalf("expected quantity unchanged at 3, got %d", qty)
	}
	if orderCount(t, stores) != 0 {
		t.Fatalf("no order should persist on failure")
	}
}

func TestCreate_MissingProductPreventsPartialMutation(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil, nil)

	seedProduct(t, stores, "p1", 10, 2)

	_, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products: []models.LineItem{
			{ProductID: "p1", Quantity: 4, Price: 2},
			{ProductID: "ghost", Quantity: 1, Price: 1},
		},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if qty := productQuantity(t, stores, "p1"); qty != 10 {
		t.Fatalf("earlier line item leaked a decrement: quantity %d", qty)
	}
	if orderCount(t, stores) != 0 {
		t.Fatalf("no order should persist on failure")
	}
}

func TestCreate_RepeatedLineItemsAreAggregated(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil, nil)

	seedProduct(t, stores, "p1", 10, 1)

	_, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products: []models.LineItem{
			{ProductID: "p1", Quantity: 6, Price: 1},
			{ProductID: "p1", Quantity: 6, Price: 1},
		},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected aggregated demand to fail, got %v", err)
	}
	if qty := productQuantity(t, stores, "p1"); qty != 10 {
		t.Fatalf("expected quantity unchanged at 10, got %d", qty)
	}
}

func TestCreate_DepletionFlipsAvailability(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil, nil)

	seedProduct(t, stores, "p1", 4, 3)

	if _, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products:   []models.LineItem{{ProductID: "p1", Quantity: 4, Price: 3}},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := stores.Products.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("load product: %v", err)
	}
	if p.Quantity != 0 || p.Available {
		t.Fatalf("expected depleted unavailable product, got %+v", p)
	}
	if p.UpdatedAt == nil {
		t.Fatalf("expected UpdatedAt stamp on mutation")
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStores(), nil, nil)

	cases := []CreateOrderRequest{
		{FarmID: "farm-1", CustomerID: "cust-1"},
		{FarmID: "farm-1", CustomerID: "cust-1", Products: []models.LineItem{}},
		{FarmID: "farm-1", CustomerID: "cust-1", Products: []models.LineItem{{ProductID: "p1", Quantity: 0, Price: 1}}},
		{FarmID: "", CustomerID: "cust-1", Products: []models.LineItem{{ProductID: "p1", Quantity: 1, Price: 1}}},
	}
	for i, req := range cases {
		if _, err := svc.Create(ctx, req); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestUpdateStatus_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil, nil)

	seedProduct(t, stores, "p1", 10, 2)

	order, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products:   []models.LineItem{{ProductID: "p1", Quantity: 4, Price: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cancelled := "cancelled"
	updated, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateRequest{Status: &cancelled})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != models.OrderCancelled {
		t.Fatalf("expected cancelled, got %s", updated.Status)
	}
	if qty := productQuantity(t, stores, "p1"); qty != 10 {
		t.Fatalf("expected restored quantity 10, got %d", qty)
	}
}

func TestUpdateStatus_ShippedOrdersCannotBeCancelled(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := NewService(stores, nil, nil)

	seedProduct(t, stores, "p1", 10, 2)

	order, err := svc.Create(ctx, CreateOrderRequest{
		FarmID:     "farm-1",
		CustomerID: "cust-1",
		Products:   []models.LineItem{{ProductID: "p1", Quantity: 2, Price: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shipped := "shipped"
	if _, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateRequest{Status: &shipped}); err != nil {
		t.Fatalf("ship: %v", err)
	}

	cancelled := "cancelled"
	if _, err := svc.UpdateStatus(ctx, order.ID, StatusUpdateRequest{Status: &cancelled}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if qty := productQuantity(t, stores, "p1"); qty != 8 {
		t.Fatalf("expected quantity 8, got %d", qty)
	}
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	svc := NewService(memory.NewStores(), nil, nil)
	paid := "paid"
	if _, err := svc.UpdateStatus(context.Background(), "missing", StatusUpdateRequest{PaymentStatus: &paid}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
