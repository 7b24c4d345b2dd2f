package services

import (
	"snackshop-admin/internal/models"
	"snackshop-admin/internal/repository"
)

// CustomerDetail combines a customer record with the order stats the
// customer screen shows next to it.
type CustomerDetail struct {
	Customer   models.Customer `json:"customer"`
	OrderCount int             `json:"order_count"`
	TotalSpent float64         `json:"total_spent"`
}

type CustomerService interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomerByID(id uint) (*CustomerDetail, error)
	ListCustomers(search string) ([]models.Customer, error)
	UpdateCustomer(customer *models.Customer) error
	DeleteCustomer(id uint) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, orderRepo: orderRepo}
}

func (s *customerService) CreateCustomer(customer *models.Customer) error {
	return s.customerRepo.Create(customer)
}

func (s *customerService) GetCustomerByID(id uint) (*CustomerDetail, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.GetByCustomerID(id)
	if err != nil {
		return nil, err
	}

	detail := &CustomerDetail{Customer: *customer, OrderCount: len(orders)}
	for i := range orders {
		detail.TotalSpent += orders[i].EffectiveTotal()
	}
	return detail, nil
}

func (s *customerService) ListCustomers(search string) ([]models.Customer, error) {
	return s.customerRepo.List(search)
}

func (s *customerService) UpdateCustomer(customer *models.Customer) error {
	return s.customerRepo.Update(customer)
}

func (s *customerService) DeleteCustomer(id uint) error {
	// Orders keep their contact snapshot, so deleting the customer record
	// does not touch order history.
	return s.customerRepo.Delete(id)
}
