package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"snackshop-admin/internal/models"
	"snackshop-admin/internal/queue"
	"snackshop-admin/internal/repository"
	"snackshop-admin/internal/status"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownStatus = errors.New("unknown order status")

// EventPublisher pushes status changes to the broker. A nil publisher
// disables events without changing any other behavior.
type EventPublisher interface {
	PublishStatusChanged(event queue.StatusEvent) error
}

type OrderService interface {
	ListOrders(filter repository.OrderFilter) ([]models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	UpdateStatus(id uint, to models.OrderStatus) (*models.Order, error)
	IngestOrder(raw models.RawOrder) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	events       EventPublisher
	cache        ReportCache
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository, events EventPublisher, cache ReportCache) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		events:       events,
		cache:        cache,
	}
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.List(filter)
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateStatus runs the requested transition through the status machine and
// persists the result. An invalid transition surfaces as
// *status.InvalidTransitionError with the order untouched; resubmitting the
// current status is a no-op.
func (s *orderService) UpdateStatus(id uint, to models.OrderStatus) (*models.Order, error) {
	if !status.Known(to) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated, err := status.Transition(*order, to, time.Now())
	if err != nil {
		return nil, err
	}
	if len(updated.StatusHistory) == len(order.StatusHistory) {
		// Same-state resubmission; nothing to persist.
		return order, nil
	}

	entry := updated.StatusHistory[len(updated.StatusHistory)-1]
	if err := s.orderRepo.UpdateStatus(&updated, entry); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	if s.events != nil {
		event := queue.StatusEvent{
			OrderID:     updated.ID,
			OrderNumber: updated.OrderNumber,
			From:        order.Status,
			To:          updated.Status,
			Occurred:    entry.RecordedAt,
		}
		if err := s.events.PublishStatusChanged(event); err != nil {
			log.Printf("Failed to publish status event for order %s: %v", updated.OrderNumber, err)
		}
	}
	s.invalidateReports()

	return &updated, nil
}

// IngestOrder normalizes and stores a raw checkout order. Intake is
// idempotent on order number, links the customer record by phone when one
// exists, and decrements catalog stock for each line item.
func (s *orderService) IngestOrder(raw models.RawOrder) error {
	order := raw.Normalize()
	if order.OrderNumber == "" {
		order.OrderNumber = uuid.NewString()
	}

	if _, err := s.orderRepo.GetByOrderNumber(order.OrderNumber); err == nil {
		log.Printf("Order %s already ingested, skipping", order.OrderNumber)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing order: %w", err)
	}

	if order.CustomerID == nil && order.CustomerPhone != "" {
		if customer, err := s.customerRepo.GetByPhone(order.CustomerPhone); err == nil {
			order.CustomerID = &customer.ID
		}
	}

	if err := s.orderRepo.Create(&order); err != nil {
		return fmt.Errorf("failed to store order %s: %w", order.OrderNumber, err)
	}

	for _, item := range order.Items {
		if err := s.reduceStock(item.ProductID, item.Quantity); err != nil {
			log.Printf("Failed to reduce stock for product %d: %v", item.ProductID, err)
		}
	}
	s.invalidateReports()

	return nil
}

func (s *orderService) reduceStock(productID uint, quantity int) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	product.Stock -= quantity
	if product.Stock < 0 {
		product.Stock = 0
	}
	return s.productRepo.Update(product)
}

func (s *orderService) invalidateReports() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReports(); err != nil {
		log.Printf("Failed to invalidate report cache: %v", err)
	}
}
