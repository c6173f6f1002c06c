package service

import (
	"context"                     // Request-scoped context
	"errors"                      // Sentinel matching
	"fmt"                         // Message formatting
	"slices"                      // Per-caller listing copies
	"time"                        // Audit timestamps
	"user_orders/internal/domain" // Importing domain models
	"user_orders/internal/dto"    // Request payloads

	"github.com/sirupsen/logrus"     // Logrus for structured logging
	"golang.org/x/sync/singleflight" // Collapse concurrent cache misses
)

// UsersCacheKey is the single key the user listing is cached under.
const UsersCacheKey = "users"

// DefaultOperator stamps audit fields when neither the request nor the
// authenticated caller names one.
const DefaultOperator = "system"

// UserStore is the persistence the user service needs
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, user *domain.User) error
}

// Cache holds the user listing
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, key string) error
}

// UserService owns user CRUD and the username/email uniqueness invariants.
//
// The listing is served read-through from the cache. Unless invalidateOnWrite
// is set, writers leave the cached listing alone, so a write can stay
// invisible to GetUsers for up to one expiration window.
type UserService struct {
	store             UserStore          // Persistence
	cache             Cache              // Listing cache
	log               logrus.FieldLogger // Logger
	invalidateOnWrite bool               // Writers drop the listing
	sf                singleflight.Group // Shared listing reads
	now               func() time.Time   // Clock, replaced in tests
}

// NewUserService wires the user service
func NewUserService(store UserStore, cache Cache, log logrus.FieldLogger, invalidateOnWrite bool) *UserService {
	return &UserService{
		store:             store,
		cache:             cache,
		log:               log,
		invalidateOnWrite: invalidateOnWrite,
		now:               time.Now,
	}
}

// GetUsers returns every user with orders, served from the cache when possible
func (s *UserService) GetUsers(ctx context.Context) (resp Response) {
	const errMsg = "An error occurred while getting users."
	defer recoverFailure(s.log, &resp, errMsg)

	users, err := s.listUsers(ctx)
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	if len(users) == 0 {
		return failure(s.log, StatusEmpty, "user empty") // Empty listing is 204
	}
	return s.ok(users, "Successfully get users")
}

// listUsers reads the listing through the cache. Concurrent misses share one
// storage read that is detached from any single caller's cancellation; each
// caller still stops waiting when its own ctx ends.
func (s *UserService) listUsers(ctx context.Context) ([]domain.User, error) {
	var cached []domain.User
	found, err := s.cache.Get(ctx, UsersCacheKey, &cached)
	if err != nil {
		s.log.WithError(err).Warn("user listing cache read failed") // Fall through to storage
	}
	if err == nil && found {
		return cached, nil // Cache hit
	}

	readCtx := context.WithoutCancel(ctx) // Outlives the caller that started the flight
	ch := s.sf.DoChan(UsersCacheKey, func() (any, error) {
		users, err := s.store.List(readCtx)
		if err != nil {
			return nil, err
		}
		if users == nil {
			users = []domain.User{}
		}
		if err := s.cache.Set(readCtx, UsersCacheKey, users); err != nil {
			s.log.WithError(err).Warn("user listing cache write failed")
		}
		return users, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err() // This caller gave up, the flight carries on
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Waiters get their own slice; nested orders are shared and read-only.
		return slices.Clone(res.Val.([]domain.User)), nil
	}
}

// CreateUser registers a user after checking username and email are free
func (s *UserService) CreateUser(ctx context.Context, req dto.UserRequest) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while create user with username `%s`", req.Username)
	defer recoverFailure(s.log, &resp, errMsg)

	// Both predicates run before the insert.
	usernameTaken, err := s.store.UsernameExists(ctx, req.Username)
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	emailTaken, err := s.store.EmailExists(ctx, req.Email)
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	if usernameTaken || emailTaken {
		return failure(s.log, StatusConflict, "username or email was taken")
	}

	user := &domain.User{
		Fullname:  req.Fullname,
		Username:  req.Username,
		Email:     req.Email,
		Address:   req.Address,
		CreatedBy: operatorOr(req.CreatedBy, DefaultOperator), // Audit fallback
		CreatedOn: s.now(),                                    // Server stamp
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return failure(s.log, StatusConflict, "username or email was taken") // Lost a race with another insert
		}
		return fatal(s.log, err, errMsg)
	}
	s.InvalidateListing(ctx)

	// Read-your-write: the response carries the persisted row, not the value
	// built above.
	stored := s.GetUser(ctx, user.Username)
	if !stored.OK() {
		return stored
	}
	return s.ok(stored.Data, "Successfully created user")
}

// UpdateUser replaces the mutable fields of the user with id
func (s *UserService) UpdateUser(ctx context.Context, id uint, req dto.UserRequest) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while update user with username `%s`", req.Username)
	defer recoverFailure(s.log, &resp, errMsg)

	user, err := s.store.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return failure(s.log, StatusNotFound, fmt.Sprintf("the user with id `%d` not found", id))
	}
	if err != nil {
		return fatal(s.log, err, errMsg)
	}

	// A user never conflicts with itself: only changed values are checked.
	if req.Username != user.Username {
		taken, err := s.store.UsernameExists(ctx, req.Username)
		if err != nil {
			return fatal(s.log, err, errMsg)
		}
		if taken {
			return failure(s.log, StatusConflict, "username or email was taken")
		}
	}
	if req.Email != user.Email {
		taken, err := s.store.EmailExists(ctx, req.Email)
		if err != nil {
			return fatal(s.log, err, errMsg)
		}
		if taken {
			return failure(s.log, StatusConflict, "username or email was taken")
		}
	}

	now := s.now()
	updatedBy := operatorOr(req.UpdatedBy, DefaultOperator)
	user.Fullname = req.Fullname
	user.Username = req.Username
	user.Email = req.Email
	user.Address = req.Address
	user.UpdatedBy = &updatedBy // Audit fallback
	user.UpdatedOn = &now       // Server stamp

	if err := s.store.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return failure(s.log, StatusConflict, "username or email was taken")
		case errors.Is(err, domain.ErrStaleWrite):
			_, lookupErr := s.store.FindByID(ctx, id) // Did the row vanish?
			switch {
			case errors.Is(lookupErr, domain.ErrNotFound):
				return failure(s.log, StatusConflict, "user not found") // Deleted mid-update
			case lookupErr != nil:
				return fatal(s.log, lookupErr, errMsg) // The re-check itself failed
			}
			return fatal(s.log, err, errMsg)
		default:
			return fatal(s.log, err, errMsg)
		}
	}
	s.InvalidateListing(ctx)

	stored := s.GetUser(ctx, user.Username)
	if !stored.OK() {
		return stored
	}
	return s.ok(stored.Data, "Successfully updated user")
}

// GetUser loads one user with its orders by username
func (s *UserService) GetUser(ctx context.Context, username string) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while getting the user with username `%s`.", username)
	defer recoverFailure(s.log, &resp, errMsg)

	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return failure(s.log, StatusNotFound, fmt.Sprintf("the user with username `%s` not found", username))
	}
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	return s.ok(user, "Successfully get user")
}

// DeleteUser removes the user and its orders
func (s *UserService) DeleteUser(ctx context.Context, username string) (resp Response) {
	errMsg := fmt.Sprintf("An error occurred while delete the user with username `%s`.", username)
	defer recoverFailure(s.log, &resp, errMsg)

	user, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return failure(s.log, StatusNotFound, fmt.Sprintf("the user with username `%s` not found", username))
	}
	if err != nil {
		return fatal(s.log, err, errMsg)
	}
	if err := s.store.Delete(ctx, user); err != nil {
		return fatal(s.log, err, errMsg)
	}
	s.InvalidateListing(ctx)
	return s.ok(user, "Successfully deleted user")
}

// InvalidateListing drops the cached user listing when invalidate-on-write is
// enabled. It is a no-op otherwise.
func (s *UserService) InvalidateListing(ctx context.Context) {
	if !s.invalidateOnWrite {
		return
	}
	if err := s.cache.Invalidate(ctx, UsersCacheKey); err != nil {
		s.log.WithError(err).Warn("user listing cache invalidation failed")
	}
}

// ok logs and wraps a successful result
func (s *UserService) ok(data any, msg string) Response {
	s.log.Info(msg)
	return success(data, msg)
}
