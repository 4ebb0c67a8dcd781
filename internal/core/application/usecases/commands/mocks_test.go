package commands_test

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStaleInStatus(
	ctx context.Context, status order.Status, before time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, status, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyStatusChanged(ctx context.Context, n ports.StatusNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// Test fixtures shared across handler tests.

var codeSeq int

func nextCode() string {
	codeSeq++
	return fmt.Sprintf("ORD-CMD-%05d", codeSeq)
}

func money(v string) kernel.Money {
	m, err := kernel.NewMoney(decimal.RequireFromString(v), "USD")
	if err != nil {
		panic(err)
	}
	return m
}

func testTotals() order.Totals {
	totals, err := order.NewTotals(
		money("1000.00"), money("50.00"), money("76.00"), money("30.00"), money("1056.00"))
	if err != nil {
		panic(err)
	}
	return totals
}

func testSnapshot(name string) order.PartySnapshot {
	snapshot, err := order.NewPartySnapshot(order.PartySnapshotFields{
		Name:    name,
		City:    "Isfahan",
		Country: "IR",
	})
	if err != nil {
		panic(err)
	}
	return snapshot
}

func staffActor() order.Actor {
	actor, err := order.NewActor(kernel.NewUUID(), "Leyla Ahmadi", order.RoleStaff)
	if err != nil {
		panic(err)
	}
	return actor
}

func adminActor() order.Actor {
	actor, err := order.NewActor(kernel.NewUUID(), "Admin Karimi", order.RoleAdmin)
	if err != nil {
		panic(err)
	}
	return actor
}

// storedOrder builds an order as a repository would return it: constructed,
// persisted once, with no pending history rows.
func storedOrder(id kernel.UUID) *order.Order {
	o, err := order.NewOrder(
		id, nextCode(), testTotals(),
		testSnapshot("Buyer Co"), testSnapshot("Warehouse"), testSnapshot("Billing Dept"),
		false, staffActor())
	if err != nil {
		panic(err)
	}
	o.ClearPendingChanges()
	return o
}

// storedOrderInStatus walks the order along legal transitions to the wanted
// status and clears the resulting history rows.
func storedOrderInStatus(id kernel.UUID, target order.Status) *order.Order {
	o := storedOrder(id)

	paths := map[order.Status][]order.Status{
		order.PendingConfirmation: {},
		order.Confirmed:           {order.Confirmed},
		order.Packing:             {order.Confirmed, order.Packing},
		order.Shipped:             {order.Confirmed, order.Packing, order.Shipped},
		order.Delivered:           {order.Confirmed, order.Packing, order.Shipped, order.Delivered},
	}

	actor := staffActor()
	for _, step := range paths[target] {
		if _, err := o.ChangeStatus(step, actor, order.ChangeStatusOptions{}); err != nil {
			panic(err)
		}
	}
	o.ClearPendingChanges()
	return o
}
