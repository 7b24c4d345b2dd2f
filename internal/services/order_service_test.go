package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/queue"
	"snackshop-admin/internal/repository"
	"snackshop-admin/internal/services"
	"snackshop-admin/internal/status"
)

type fakeOrderRepo struct {
	orders        map[uint]models.Order
	created       []models.Order
	statusUpdates []models.StatusHistory
}

func newFakeOrderRepo(orders ...models.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[uint]models.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	order.ID = uint(len(r.orders) + len(r.created) + 1)
	r.created = append(r.created, *order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber {
			copied := o
			return &copied, nil
		}
	}
	for _, o := range r.created {
		if o.OrderNumber == orderNumber {
			copied := o
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) List(repository.OrderFilter) ([]models.Order, error) { return nil, nil }
func (r *fakeOrderRepo) GetByDateRange(time.Time, time.Time) ([]models.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) GetRecent(int) ([]models.Order, error)        { return nil, nil }
func (r *fakeOrderRepo) GetByCustomerID(uint) ([]models.Order, error) { return nil, nil }
func (r *fakeOrderRepo) GetAll() ([]models.Order, error)              { return nil, nil }

func (r *fakeOrderRepo) UpdateStatus(order *models.Order, entry models.StatusHistory) error {
	r.orders[order.ID] = *order
	r.statusUpdates = append(r.statusUpdates, entry)
	return nil
}

type fakeProductRepo struct {
	products map[uint]models.Product
}

func (r *fakeProductRepo) Create(*models.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := p
	return &copied, nil
}
func (r *fakeProductRepo) List(repository.ProductFilter) ([]models.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetBelowStock(int) ([]models.Product, error)  { return nil, nil }
func (r *fakeProductRepo) GetByIDs([]uint) ([]models.Product, error)    { return nil, nil }
func (r *fakeProductRepo) Update(product *models.Product) error {
	r.products[product.ID] = *product
	return nil
}
func (r *fakeProductRepo) Delete(uint) error          { return nil }
func (r *fakeProductRepo) Count() (int64, error)      { return 0, nil }
func (r *fakeProductRepo) GetAll() ([]models.Product, error) { return nil, nil }

type fakeCustomerRepo struct {
	byPhone map[string]models.Customer
}

func (r *fakeCustomerRepo) Create(*models.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByID(uint) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeCustomerRepo) GetByPhone(phone string) (*models.Customer, error) {
	c, ok := r.byPhone[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := c
	return &copied, nil
}
func (r *fakeCustomerRepo) List(string) ([]models.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(*models.Customer) error          { return nil }
func (r *fakeCustomerRepo) Delete(uint) error                      { return nil }
func (r *fakeCustomerRepo) Count() (int64, error)                  { return 0, nil }
func (r *fakeCustomerRepo) CountSince(time.Time) (int64, error)    { return 0, nil }
func (r *fakeCustomerRepo) GetAll() ([]models.Customer, error)     { return nil, nil }

type fakePublisher struct {
	events []queue.StatusEvent
}

func (p *fakePublisher) PublishStatusChanged(event queue.StatusEvent) error {
	p.events = append(p.events, event)
	return nil
}

func shippingOrder() models.Order {
	return models.Order{
		ID:          42,
		OrderNumber: "SO-2001",
		Status:      models.OrderShipping,
		Total:       250000,
		StatusHistory: []models.StatusHistory{
			{OrderID: 42, Status: models.OrderPending},
			{OrderID: 42, Status: models.OrderProcessing},
			{OrderID: 42, Status: models.OrderShipping},
		},
	}
}

func newOrderService(orderRepo *fakeOrderRepo, productRepo *fakeProductRepo, customerRepo *fakeCustomerRepo, events services.EventPublisher) services.OrderService {
	if productRepo == nil {
		productRepo = &fakeProductRepo{products: map[uint]models.Product{}}
	}
	if customerRepo == nil {
		customerRepo = &fakeCustomerRepo{}
	}
	return services.NewOrderService(orderRepo, productRepo, customerRepo, events, nil)
}

func TestUpdateStatusPersistsAndPublishes(t *testing.T) {
	orderRepo := newFakeOrderRepo(shippingOrder())
	publisher := &fakePublisher{}
	svc := newOrderService(orderRepo, nil, nil, publisher)

	updated, err := svc.UpdateStatus(42, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, updated.Status)
	assert.Len(t, updated.StatusHistory, 4)

	require.Len(t, orderRepo.statusUpdates, 1)
	assert.Equal(t, models.OrderCompleted, orderRepo.statusUpdates[0].Status)
	assert.Equal(t, models.OrderCompleted, orderRepo.orders[42].Status)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, models.OrderShipping, publisher.events[0].From)
	assert.Equal(t, models.OrderCompleted, publisher.events[0].To)
	assert.Equal(t, "SO-2001", publisher.events[0].OrderNumber)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	order := shippingOrder()
	order.Status = models.OrderPending
	orderRepo := newFakeOrderRepo(order)
	publisher := &fakePublisher{}
	svc := newOrderService(orderRepo, nil, nil, publisher)

	_, err := svc.UpdateStatus(42, models.OrderShipping)

	var invalid *status.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, models.OrderPending, invalid.From)
	assert.Equal(t, models.OrderShipping, invalid.To)

	assert.Empty(t, orderRepo.statusUpdates, "nothing persisted")
	assert.Empty(t, publisher.events, "nothing published")
	assert.Equal(t, models.OrderPending, orderRepo.orders[42].Status)
}

func TestUpdateStatusSameStateIsNoOp(t *testing.T) {
	orderRepo := newFakeOrderRepo(shippingOrder())
	publisher := &fakePublisher{}
	svc := newOrderService(orderRepo, nil, nil, publisher)

	updated, err := svc.UpdateStatus(42, models.OrderShipping)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipping, updated.Status)
	assert.Len(t, updated.StatusHistory, 3, "no duplicate history entry")
	assert.Empty(t, orderRepo.statusUpdates)
	assert.Empty(t, publisher.events)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := newOrderService(newFakeOrderRepo(shippingOrder()), nil, nil, nil)

	_, err := svc.UpdateStatus(42, "refunded")
	require.ErrorIs(t, err, services.ErrUnknownStatus)
}

func TestUpdateStatusWithoutPublisher(t *testing.T) {
	orderRepo := newFakeOrderRepo(shippingOrder())
	svc := newOrderService(orderRepo, nil, nil, nil)

	_, err := svc.UpdateStatus(42, models.OrderCompleted)
	require.NoError(t, err, "nil publisher must not break transitions")
	assert.Len(t, orderRepo.statusUpdates, 1)
}

func TestIngestOrderCreatesAndReducesStock(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	productRepo := &fakeProductRepo{products: map[uint]models.Product{
		1: {ID: 1, Name: "Chocolate cookies", Stock: 10},
		2: {ID: 2, Name: "Cola", Stock: 1},
	}}
	customerRepo := &fakeCustomerRepo{byPhone: map[string]models.Customer{
		"0900000001": {ID: 5, Name: "Alice", Phone: "0900000001"},
	}}
	svc := newOrderService(orderRepo, productRepo, customerRepo, nil)

	raw := models.RawOrder{
		OrderNumber:   "SO-3001",
		CustomerName:  "Alice",
		CustomerPhone: "0900000001",
		Items: []models.RawOrderItem{
			{ProductID: 1, ProductName: "Chocolate cookies", Price: 25000, Quantity: 2},
			{ProductID: 2, ProductName: "Cola", Price: 12000, Quantity: 3},
		},
	}
	require.NoError(t, svc.IngestOrder(raw))

	require.Len(t, orderRepo.created, 1)
	created := orderRepo.created[0]
	assert.Equal(t, "SO-3001", created.OrderNumber)
	require.NotNil(t, created.CustomerID, "intake links the customer by phone")
	assert.Equal(t, uint(5), *created.CustomerID)
	require.Len(t, created.StatusHistory, 1)
	assert.Equal(t, models.OrderPending, created.StatusHistory[0].Status)

	assert.Equal(t, 8, productRepo.products[1].Stock)
	assert.Equal(t, 0, productRepo.products[2].Stock, "stock floors at zero")
}

func TestIngestOrderIsIdempotent(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := newOrderService(orderRepo, nil, nil, nil)

	raw := models.RawOrder{
		OrderNumber: "SO-3002",
		Items:       []models.RawOrderItem{{ProductID: 1, Price: 10000, Quantity: 1}},
	}
	require.NoError(t, svc.IngestOrder(raw))
	require.NoError(t, svc.IngestOrder(raw))

	assert.Len(t, orderRepo.created, 1, "duplicate delivery must not create a second order")
}

func TestIngestOrderWithoutNumberGetsOne(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := newOrderService(orderRepo, nil, nil, nil)

	require.NoError(t, svc.IngestOrder(models.RawOrder{}))
	require.Len(t, orderRepo.created, 1)
	assert.NotEmpty(t, orderRepo.created[0].OrderNumber)
}
