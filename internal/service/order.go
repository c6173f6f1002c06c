package service

import (
	"context"                     // Request-scoped context
	"errors"                      // Sentinel matching
	"fmt"                         // Message formatting
	"time"                        // Audit timestamps
	"user_orders/internal/domain" // Importing domain models
	"user_orders/internal/dto"    // Request payloads

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// OrderStore is the persistence the order service needs
type OrderStore interface {
	InvoiceExists(ctx context.Context, invoiceNumber string) (bool, error)
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByInvoice(ctx context.Context, invoiceNumber string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, order *domain.Order) error
}

// UserLookup is what the order service needs from the user service. GetUser
// must return the current persisted state of the user.
type UserLookup interface {
	GetUser(ctx context.Context, username string) Response
	InvalidateListing(ctx context.Context)
}

// OrderService owns order CRUD. Owners are referenced by username and
// resolved through UserLookup on every write; a failed lookup is returned to
// the caller as is.
type OrderService struct {
	store OrderStore         // Persistence
	users UserLookup         // Owner resolution
	log   logrus.FieldLogger // Logger
	now   func() time.Time   // Clock, replaced in tests
}

// NewOrderService wires the order service
func NewOrderService(store OrderStore, users UserLookup, log logrus.FieldLogger) *OrderService {
	return &OrderService{
		store: store,
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// CreateOrder persists the order and answers with the owner's current state,
// not with the order itself.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.OrderRequest) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while create an order with invoice number `%s`", req.InvoiceNumber)
	defer recoverFailure(s.log, &resp, errMsg)

	exists, err := s.store.InvoiceExists(ctx, req.InvoiceNumber)
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	if exists {
		return failure(s.log, StatusConflict, "duplicate invoice!") // Invoice numbers are unique
	}

	owner := s.users.GetUser(ctx, req.Username) // Resolve the owner
	if !owner.OK() {
		return owner // Lookup envelope goes back as is
	}
	user, ok := owner.Data.(*domain.User)
	if !ok {
		return fatal(s.log, fmt.Errorf("unexpected user payload %T", owner.Data), errMsg)
	}

	order := &domain.Order{
		InvoiceNumber: req.InvoiceNumber,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		Description:   req.Description,
		UserID:        user.ID,
		CreatedBy:     operatorOr(req.CreatedBy, DefaultOperator), // Audit fallback
		CreatedOn:     s.now(),                                    // Server stamp
	}
	if err := s.store.Create(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return failure(s.log, StatusConflict, "duplicate invoice!")
		}
		return fatal(s.log, err, errMsg)
	}
	s.users.InvalidateListing(ctx)

	return s.ownerState(ctx, user.Username, fmt.Sprintf("Successfully created an order with invoice number `%s`", req.InvoiceNumber))
}

// UpdateOrder replaces every field of the order, possibly moving it to
// another owner. Like CreateOrder it answers with the owner's current state.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, req dto.OrderRequest) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while update an order with invoice number `%s`", req.InvoiceNumber)
	defer recoverFailure(s.log, &resp, errMsg)

	owner := s.users.GetUser(ctx, req.Username)
	if !owner.OK() {
		return owner
	}
	user, ok := owner.Data.(*domain.User)
	if !ok {
		return fatal(s.log, fmt.Errorf("unexpected user payload %T", owner.Data), errMsg)
	}

	order, err := s.store.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return failure(s.log, StatusNotFound, fmt.Sprintf("an order with id `%d` not found", id))
	}
	if err != nil {
		return fatal(s.log, err, errMsg)
	}

	now := s.now()
	updatedBy := operatorOr(req.UpdatedBy, DefaultOperator)
	order.InvoiceNumber = req.InvoiceNumber
	order.ProductName = req.ProductName
	order.Quantity = req.Quantity
	order.Description = req.Description
	order.UserID = user.ID
	order.UpdatedBy = &updatedBy // Audit fallback
	order.UpdatedOn = &now       // Server stamp

	if err := s.store.Update(ctx, order); err != nil {
		if !errors.Is(err, domain.ErrStaleWrite) {
			return fatal(s.log, err, errMsg)
		}
		// The row vanished or moved underneath us. A missing invoice is
		// reported as 400, unlike the 404 of a plain lookup miss.
		exists, existsErr := s.store.InvoiceExists(ctx, req.InvoiceNumber)
		if existsErr != nil {
			return fatal(s.log, existsErr, errMsg)
		}
		if !exists {
			return failure(s.log, StatusConflict, "order not found")
		}
		return fatal(s.log, err, errMsg)
	}
	s.users.InvalidateListing(ctx)

	return s.ownerState(ctx, user.Username, fmt.Sprintf("Successfully updated an order with invoice number `%s`", req.InvoiceNumber))
}

// DeleteOrder removes the order and answers with the removed order.
func (s *OrderService) DeleteOrder(ctx context.Context, invoiceNumber string) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while delete an order with invoice number `%s`.", invoiceNumber)
	defer recoverFailure(s.log, &resp, errMsg)

	order, err := s.store.FindByInvoice(ctx, invoiceNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return failure(s.log, StatusNotFound, fmt.Sprintf("an order with invoice number `%s` not found", invoiceNumber))
	}
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	if err := s.store.Delete(ctx, order); err != nil {
		return fatal(s.log, err, errMsg)
	}
	s.users.InvalidateListing(ctx)

	msg := fmt.Sprintf("Successfully deleted an order with invoice number `%s`.", invoiceNumber)
	s.log.Info(msg)
	return success(order, msg)
}

// ownerState answers with the owner's current persisted state
func (s *OrderService) ownerState(ctx context.Context, username, msg string) Response {
	fresh := s.users.GetUser(ctx, username)
	if !fresh.OK() {
		return fresh
	}
	s.log.Info(msg)
	return success(fresh.Data, msg)
}
