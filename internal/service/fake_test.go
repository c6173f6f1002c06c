package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"user_orders/internal/cache"
	"user_orders/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// memDB is an in-memory stand-in for the relational store shared by
// fakeUsers and fakeOrders.
type memDB struct {
	mu        sync.Mutex
	users     map[uint]domain.User
	orders    map[uint]domain.Order
	nextUser  uint
	nextOrder uint

	listCalls int
	err       error        // returned by every call when set
	onUpdate  func() error // runs instead of an order/user update when set
	panicMsg  string

	listGate    chan struct{} // List blocks on it when set
	listStarted chan struct{} // signalled once per List call that blocks
}

func newMemDB() *memDB {
	return &memDB{users: map[uint]domain.User{}, orders: map[uint]domain.Order{}}
}

func (m *memDB) withOrders(u domain.User) *domain.User {
	u.Orders = []domain.Order{}
	for _, o := range m.orders {
		if o.UserID == u.ID {
			u.Orders = append(u.Orders, o)
		}
	}
	return &u
}

type fakeUsers struct{ db *memDB }

func (f fakeUsers) List(ctx context.Context) ([]domain.User, error) {
	f.db.mu.Lock()
	f.db.listCalls++
	gate, started := f.db.listGate, f.db.listStarted
	f.db.mu.Unlock()
	if gate != nil {
		started <- struct{}{}
		<-gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return nil, f.db.err
	}
	var out []domain.User
	for id := uint(1); id <= f.db.nextUser; id++ {
		if u, ok := f.db.users[id]; ok {
			out = append(out, *f.db.withOrders(u))
		}
	}
	return out, nil
}

func (f fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return nil, f.db.err
	}
	u, ok := f.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.db.withOrders(u), nil
}

func (f fakeUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.panicMsg != "" {
		panic(f.db.panicMsg)
	}
	if f.db.err != nil {
		return nil, f.db.err
	}
	for _, u := range f.db.users {
		if u.Username == username {
			return f.db.withOrders(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return false, f.db.err
	}
	for _, u := range f.db.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return false, f.db.err
	}
	for _, u := range f.db.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return f.db.err
	}
	f.db.nextUser++
	user.ID = f.db.nextUser
	stored := *user
	stored.Orders = nil
	f.db.users[user.ID] = stored
	return nil
}

func (f fakeUsers) Update(_ context.Context, user *domain.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.onUpdate != nil {
		return f.db.onUpdate()
	}
	prev, ok := f.db.users[user.ID]
	if !ok {
		return domain.ErrStaleWrite
	}
	stored := *user
	stored.Orders = nil
	stored.CreatedBy = prev.CreatedBy
	stored.CreatedOn = prev.CreatedOn
	f.db.users[user.ID] = stored
	return nil
}

func (f fakeUsers) Delete(_ context.Context, user *domain.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return f.db.err
	}
	delete(f.db.users, user.ID)
	for id, o := range f.db.orders {
		if o.UserID == user.ID {
			delete(f.db.orders, id)
		}
	}
	return nil
}

type fakeOrders struct{ db *memDB }

func (f fakeOrders) InvoiceExists(_ context.Context, invoiceNumber string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return false, f.db.err
	}
	for _, o := range f.db.orders {
		if o.InvoiceNumber == invoiceNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeOrders) FindByID(_ context.Context, id uint) (*domain.Order, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	o, ok := f.db.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u, ok := f.db.users[o.UserID]; ok {
		o.User = &u
	}
	return &o, nil
}

func (f fakeOrders) FindByInvoice(_ context.Context, invoiceNumber string) (*domain.Order, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, o := range f.db.orders {
		if o.InvoiceNumber == invoiceNumber {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeOrders) Create(_ context.Context, order *domain.Order) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.err != nil {
		return f.db.err
	}
	f.db.nextOrder++
	order.ID = f.db.nextOrder
	f.db.orders[order.ID] = *order
	return nil
}

func (f fakeOrders) Update(_ context.Context, order *domain.Order) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.onUpdate != nil {
		return f.db.onUpdate()
	}
	prev, ok := f.db.orders[order.ID]
	if !ok {
		return domain.ErrStaleWrite
	}
	stored := *order
	stored.User = nil
	stored.CreatedBy = prev.CreatedBy
	stored.CreatedOn = prev.CreatedOn
	f.db.orders[order.ID] = stored
	return nil
}

func (f fakeOrders) Delete(_ context.Context, order *domain.Order) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.orders, order.ID)
	return nil
}

// countingCache records how many reads it has served.
type countingCache struct {
	Cache
	mu    sync.Mutex
	reads int
}

func (c *countingCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	found, err := c.Cache.Get(ctx, key, dest)
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return found, err
}

func (c *countingCache) readCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// brokenCache fails every call.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error) { return false, errBoom }
func (brokenCache) Set(context.Context, string, any) error         { return errBoom }
func (brokenCache) Invalidate(context.Context, string) error       { return errBoom }

type fixture struct {
	db     *memDB
	users  *UserService
	orders *OrderService
	hook   *test.Hook
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, invalidateOnWrite bool) *fixture {
	t.Helper()
	c, err := cache.NewMemory(8, time.Minute)
	require.NoError(t, err)
	return newFixtureWithCache(t, c, invalidateOnWrite)
}

func newFixtureWithCache(t *testing.T, c Cache, invalidateOnWrite bool) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	db := newMemDB()
	users := NewUserService(fakeUsers{db: db}, c, log, invalidateOnWrite)
	users.now = func() time.Time { return fixedNow }
	orders := NewOrderService(fakeOrders{db: db}, users, log)
	orders.now = func() time.Time { return fixedNow }
	return &fixture{db: db, users: users, orders: orders, hook: hook}
}
