package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/policy"
	"shop-backend/internal/product"
	"shop-backend/internal/user"
)

// memRepo keeps orders in memory and honors the same scoping contract as
// the Postgres repository.
type memRepo struct {
	byID map[string]*Order
}

func newMemRepo() *memRepo { return &memRepo{byID: map[string]*Order{}} }

func (m *memRepo) visible(o *Order, sc Scope) bool {
	return sc.Admin || o.User.ID == sc.UserID
}

func (m *memRepo) Create(ctx context.Context, o *Order) error {
	cp := *o
	m.byID[o.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string, sc Scope) (*Order, error) {
	o, ok := m.byID[id]
	if !ok || !m.visible(o, sc) {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memRepo) List(ctx context.Context, sc Scope, f Filter) ([]Order, error) {
	var out []Order
	for _, o := range m.byID {
		if !m.visible(o, sc) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *memRepo) Update(ctx context.Context, id string, sc Scope, p Patch) error {
	o, ok := m.byID[id]
	if !ok || !m.visible(o, sc) {
		return ErrNotFound
	}
	if p.Address != "" {
		o.Address = p.Address
	}
	if p.Phone != "" {
		o.Phone = p.Phone
	}
	if p.Comment != "" {
		o.Comment = p.Comment
	}
	if p.Status != "" {
		o.Status = p.Status
	}
	return nil
}

func (m *memRepo) Cancel(ctx context.Context, id string, sc Scope) (bool, error) {
	o, ok := m.byID[id]
	if !ok || !m.visible(o, sc) || !o.Status.Cancellable() {
		return false, nil
	}
	o.Status = StatusCancelled
	return true, nil
}

func (m *memRepo) Delete(ctx context.Context, id string, sc Scope, onlyNew bool) (bool, error) {
	o, ok := m.byID[id]
	if !ok || !m.visible(o, sc) {
		return false, nil
	}
	if onlyNew && o.Status != StatusNew {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

// memProducts serves fixed products by id.
type memProducts struct {
	byID map[string]*product.Product
}

func (m *memProducts) Create(ctx context.Context, p *product.Product) error { return nil }
func (m *memProducts) GetByID(ctx context.Context, id string) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}
func (m *memProducts) List(ctx context.Context, q product.Query) ([]product.Product, error) {
	return nil, nil
}
func (m *memProducts) Update(ctx context.Context, p *product.Product, updatePrice, updateAvailable bool) error {
	return nil
}
func (m *memProducts) Delete(ctx context.Context, id string) (bool, error) { return false, nil }

func testUser(role policy.Role) *user.User {
	return &user.User{ID: uuid.NewString(), Username: "u-" + uuid.NewString()[:8], Role: role}
}

func seedOrder(repo *memRepo, owner *user.User, status Status) *Order {
	o := &Order{
		ID:     uuid.NewString(),
		User:   ownerFor(owner),
		Status: status,
		Total:  "10.00",
	}
	repo.byID[o.ID] = o
	return o
}

func newTestService(repo Repository, products product.Repository) *Service {
	return NewService(repo, products, nil)
}

func TestCreate_ComputesTotalAndForcesStatus(t *testing.T) {
	repo := newMemRepo()
	prodID := uuid.NewString()
	products := &memProducts{byID: map[string]*product.Product{
		prodID: {ID: prodID, Name: "Margherita", Price: "9.90", Available: true},
	}}
	svc := newTestService(repo, products)
	owner := testUser(policy.RoleUser)

	o, err := svc.Create(context.Background(), owner, CreateOrderRequest{
		Items:      []CreateOrderItem{{ProductID: prodID, Quantity: 3}},
		TotalPrice: "0.01", // must be ignored when items are present
		Address:    "Main st 1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusNew, o.Status)
	assert.Equal(t, owner.ID, o.User.ID)
	assert.Equal(t, "29.70", o.Total)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "9.90", o.Items[0].Price) // snapshot
	assert.Equal(t, 3, o.Items[0].Quantity)

	stored, err := repo.GetByID(context.Background(), o.ID, Scope{UserID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, StatusNew, stored.Status)
}

func TestCreate_ItemlessKeepsClientTotal(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &memProducts{byID: map[string]*product.Product{}})
	owner := testUser(policy.RoleUser)

	o, err := svc.Create(context.Background(), owner, CreateOrderRequest{TotalPrice: "15.5"})
	require.NoError(t, err)
	assert.Equal(t, "15.50", o.Total)

	_, err = svc.Create(context.Background(), owner, CreateOrderRequest{TotalPrice: "-1"})
	assert.ErrorIs(t, err, ErrBadTotal)
}

func TestCreate_RejectsBadItems(t *testing.T) {
	repo := newMemRepo()
	prodID := uuid.NewString()
	products := &memProducts{byID: map[string]*product.Product{
		prodID: {ID: prodID, Price: "5.00"},
	}}
	svc := newTestService(repo, products)
	owner := testUser(policy.RoleUser)

	_, err := svc.Create(context.Background(), owner, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: prodID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = svc.Create(context.Background(), owner, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, repo.byID, "nothing persisted on validation failure")
}

func TestCancel_FromCancellableStatuses(t *testing.T) {
	for _, status := range []Status{StatusNew, StatusPreparing} {
		repo := newMemRepo()
		svc := newTestService(repo, nil)
		owner := testUser(policy.RoleUser)
		o := seedOrder(repo, owner, status)

		out, err := svc.Cancel(context.Background(), owner, o.ID)
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, StatusCancelled, out.Status)
		assert.Equal(t, StatusCancelled, repo.byID[o.ID].Status)
	}
}

func TestCancel_TerminalStatusFails(t *testing.T) {
	for _, status := range []Status{StatusDone, StatusCancelled} {
		repo := newMemRepo()
		svc := newTestService(repo, nil)
		owner := testUser(policy.RoleUser)
		o := seedOrder(repo, owner, status)

		_, err := svc.Cancel(context.Background(), owner, o.ID)
		var ise *InvalidStateError
		require.ErrorAs(t, err, &ise, "status %s", status)
		assert.Equal(t, status, ise.Status)
		assert.Contains(t, err.Error(), string(status))
		assert.Equal(t, status, repo.byID[o.ID].Status, "status must be unchanged")
	}
}

func TestDelete_OwnerOnlyWhileNew(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)
	owner := testUser(policy.RoleUser)

	fresh := seedOrder(repo, owner, StatusNew)
	require.NoError(t, svc.Delete(context.Background(), owner, fresh.ID))
	assert.NotContains(t, repo.byID, fresh.ID)

	busy := seedOrder(repo, owner, StatusPreparing)
	err := svc.Delete(context.Background(), owner, busy.ID)
	var ise *InvalidStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusPreparing, ise.Status)
	assert.Contains(t, repo.byID, busy.ID)
}

func TestDelete_AdminAnyStatus(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)
	owner := testUser(policy.RoleUser)
	admin := testUser(policy.RoleAdmin)

	done := seedOrder(repo, owner, StatusDone)
	require.NoError(t, svc.Delete(context.Background(), admin, done.ID))
	assert.NotContains(t, repo.byID, done.ID)
}

func TestScoping_OtherUsersOrderIsNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)
	owner := testUser(policy.RoleUser)
	stranger := testUser(policy.RoleUser)
	o := seedOrder(repo, owner, StatusNew)

	_, err := svc.Get(context.Background(), stranger, o.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Cancel(context.Background(), stranger, o.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), stranger, o.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, repo.byID, o.ID)

	// admins resolve anyone's order
	admin := testUser(policy.RoleAdmin)
	got, err := svc.Get(context.Background(), admin, o.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.User.ID)
}

func TestList_RoleScopingAndStatusFilter(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)
	alice := testUser(policy.RoleUser)
	bob := testUser(policy.RoleUser)
	admin := testUser(policy.RoleAdmin)

	seedOrder(repo, alice, StatusNew)
	seedOrder(repo, alice, StatusDone)
	seedOrder(repo, bob, StatusNew)

	own, err := svc.List(context.Background(), alice, "")
	require.NoError(t, err)
	assert.Len(t, own, 2)
	for _, o := range own {
		assert.Equal(t, alice.ID, o.User.ID)
	}

	all, err := svc.List(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	fresh, err := svc.List(context.Background(), admin, "new")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	_, err = svc.List(context.Background(), admin, "shipped")
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestUpdate_StatusIsAdminOnly(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, nil)
	owner := testUser(policy.RoleUser)
	admin := testUser(policy.RoleAdmin)
	o := seedOrder(repo, owner, StatusNew)

	_, err := svc.Update(context.Background(), owner, o.ID, UpdateOrderRequest{Status: StatusDone})
	assert.ErrorIs(t, err, ErrStatusNotAllowed)
	assert.Equal(t, StatusNew, repo.byID[o.ID].Status)

	out, err := svc.Update(context.Background(), admin, o.ID, UpdateOrderRequest{Status: StatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, StatusPreparing, out.Status)

	_, err = svc.Update(context.Background(), admin, o.ID, UpdateOrderRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrBadStatus)

	// plain field updates stay open to the owner
	out, err = svc.Update(context.Background(), owner, o.ID, UpdateOrderRequest{Address: "Elm st 2"})
	require.NoError(t, err)
	assert.Equal(t, "Elm st 2", out.Address)
	assert.Equal(t, StatusPreparing, out.Status)
}
