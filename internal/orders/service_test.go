package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pharmacy-backend/internal/apperr"
	"pharmacy-backend/internal/identity"
	"pharmacy-backend/internal/models"
)

/* =========================
   FAKE COLLABORATORS
========================= */

type fakeCatalog struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeCatalog) Product(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, apperr.NotFoundf("product %s not found", id.Hex())
	}
	return &product, nil
}

type fakeStore struct {
	orders     []*models.Order
	failInsert bool
}

func (f *fakeStore) Insert(_ context.Context, order *models.Order) error {
	if f.failInsert {
		return apperr.Storagef(nil, "order insert failed")
	}
	order.ID = primitive.NewObjectID()
	stored := *order
	f.orders = append(f.orders, &stored)
	return nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(f.orders))
	for i := len(f.orders) - 1; i >= 0; i-- {
		out = append(out, *f.orders[i])
	}
	return out, nil
}

func (f *fakeStore) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		order := f.orders[i]
		if order.UserID != nil && *order.UserID == owner {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperr.NotFoundf("order not found")
}

func (f *fakeStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	for _, order := range f.orders {
		if order.ID == id {
			order.Status = status
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperr.NotFoundf("order not found")
}

func (f *fakeStore) Stats(_ context.Context) (*models.OrderStats, error) {
	stats := &models.OrderStats{}
	for _, order := range f.orders {
		stats.TotalOrders++
		switch order.Status {
		case models.StatusPending:
			stats.PendingOrders++
		case models.StatusCompleted:
			stats.CompletedOrders++
		}
		if order.Status == models.StatusCompleted || order.Status == models.StatusShipped {
			stats.TotalRevenue += order.Total
		}
	}
	return stats, nil
}

func newFixture() (*Service, *fakeCatalog, *fakeStore) {
	cat := &fakeCatalog{products: map[primitive.ObjectID]models.Product{}}
	store := &fakeStore{}
	return NewService(cat, store), cat, store
}

func addProduct(cat *fakeCatalog, name string, price float64) primitive.ObjectID {
	id := primitive.NewObjectID()
	cat.products[id] = models.Product{ID: id, Name: name, Price: price}
	return id
}

func customer(name string) *identity.Identity {
	return &identity.Identity{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Role:    models.RoleCustomer,
		Phone:   "555-0100",
		Address: "12 High Street",
	}
}

/* =========================
   CREATE
========================= */

func TestCreateComputesTotalFromCatalog(t *testing.T) {
	svc, cat, store := newFixture()
	paracetamol := addProduct(cat, "Paracetamol 500mg", 250)

	receipt, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: paracetamol, Quantity: 2}},
		Contact{Name: "Sam", Phone: "123", Address: "somewhere"},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 500.0, receipt.Total)
	assert.False(t, receipt.CreatedAt.IsZero())
	assert.False(t, receipt.OrderID.IsZero())

	require.Len(t, store.orders, 1)
	order := store.orders[0]
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, paracetamol, order.Items[0].ProductID)
	assert.Equal(t, "Paracetamol 500mg", order.Items[0].Name)
	assert.Equal(t, 250.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestCreateMissingProductWritesNothing(t *testing.T) {
	svc, cat, store := newFixture()
	known := addProduct(cat, "Omega 3", 1200)
	unknown := primitive.NewObjectID()

	// The valid first line must not survive the miss on the second.
	_, err := svc.Create(context.Background(),
		[]LineItem{
			{ProductID: known, Quantity: 1},
			{ProductID: unknown, Quantity: 1},
		},
		Contact{},
		nil,
	)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), unknown.Hex())
	assert.Empty(t, store.orders)
}

func TestCreateEmptyItems(t *testing.T) {
	svc, _, store := newFixture()

	_, err := svc.Create(context.Background(), nil, Contact{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	assert.EqualError(t, err, "order items required")
	assert.Empty(t, store.orders)
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	svc, cat, store := newFixture()
	product := addProduct(cat, "Vitamin C", 750)

	for _, quantity := range []int{0, -3} {
		_, err := svc.Create(context.Background(),
			[]LineItem{{ProductID: product, Quantity: quantity}},
			Contact{},
			nil,
		)
		require.Error(t, err, "quantity %d", quantity)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	}
	assert.Empty(t, store.orders)
}

func TestCreateGuestWithExplicitContact(t *testing.T) {
	svc, cat, store := newFixture()
	product := addProduct(cat, "Ibuprofen", 350)

	_, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: product, Quantity: 1}},
		Contact{Name: "Walk-in", Phone: "777", Address: "Main Road 3"},
		nil,
	)
	require.NoError(t, err)

	order := store.orders[0]
	assert.Nil(t, order.UserID)
	assert.Equal(t, "Walk-in", order.CustomerName)
	assert.Equal(t, "777", order.CustomerPhone)
	assert.Equal(t, "Main Road 3", order.CustomerAddress)
}

func TestCreateGuestWithoutContactFallsBack(t *testing.T) {
	svc, cat, store := newFixture()
	product := addProduct(cat, "Ibuprofen", 350)

	_, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: product, Quantity: 1}},
		Contact{},
		nil,
	)
	require.NoError(t, err)

	order := store.orders[0]
	assert.Nil(t, order.UserID)
	assert.Equal(t, "Guest", order.CustomerName)
	assert.Empty(t, order.CustomerPhone)
	assert.Empty(t, order.CustomerAddress)
}

func TestCreateContactFieldsFallBackPerField(t *testing.T) {
	svc, cat, store := newFixture()
	product := addProduct(cat, "Baby Milk", 1800)
	caller := customer("Dana Profile")

	_, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: product, Quantity: 1}},
		Contact{Name: "Dana Request"},
		caller,
	)
	require.NoError(t, err)

	order := store.orders[0]
	require.NotNil(t, order.UserID)
	assert.Equal(t, caller.ID, *order.UserID)
	assert.Equal(t, "Dana Request", order.CustomerName)
	assert.Equal(t, caller.Phone, order.CustomerPhone)
	assert.Equal(t, caller.Address, order.CustomerAddress)
}

func TestCreateUsesSalePrice(t *testing.T) {
	svc, cat, store := newFixture()
	id := primitive.NewObjectID()
	cat.products[id] = models.Product{
		ID:          id,
		Name:        "Moisturizing Cream",
		Price:       1000,
		SaleEnabled: true,
		SalePrice:   850,
	}

	receipt, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: id, Quantity: 2}},
		Contact{},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, receipt.Total)
	assert.Equal(t, 850.0, store.orders[0].Items[0].Price)
}

func TestCreateSnapshotSurvivesCatalogChange(t *testing.T) {
	svc, cat, store := newFixture()
	product := addProduct(cat, "Paracetamol 500mg", 250)

	_, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: product, Quantity: 1}},
		Contact{},
		nil,
	)
	require.NoError(t, err)

	// Catalog edits after creation never alter historical orders.
	changed := cat.products[product]
	changed.Price = 9999
	cat.products[product] = changed

	assert.Equal(t, 250.0, store.orders[0].Items[0].Price)
	assert.Equal(t, 250.0, store.orders[0].Total)
}

func TestCreateStorageFailure(t *testing.T) {
	svc, cat, store := newFixture()
	product := addProduct(cat, "BP Monitor", 2500)
	store.failInsert = true

	_, err := svc.Create(context.Background(),
		[]LineItem{{ProductID: product, Quantity: 1}},
		Contact{},
		nil,
	)
	require.Error(t, err)
	assert.Equal(t, apperr.Storage, apperr.KindOf(err))
	assert.Empty(t, store.orders)
}
