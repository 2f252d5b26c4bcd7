package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-backend/internal/events"
	"shop-backend/internal/policy"
	"shop-backend/internal/product"
	"shop-backend/internal/user"
)

var (
	ErrUnknownProduct   = errors.New("unknown product in items")
	ErrBadQuantity      = errors.New("quantity must be at least 1")
	ErrBadTotal         = errors.New("total_price must be a non-negative decimal")
	ErrBadStatus        = errors.New("invalid order status")
	ErrStatusNotAllowed = errors.New("only admins can set the order status directly")
)

// InvalidStateError reports a status-gated operation attempted in the
// wrong state. It is a client error, not a server one.
type InvalidStateError struct {
	Op     string
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s order with status %q", e.Op, e.Status)
}

// Service implements the order lifecycle: role-scoped reads, status-gated
// cancel and delete, and creation with forced owner and status.
type Service struct {
	repo     Repository
	products product.Repository
	events   *events.Producer
}

func NewService(repo Repository, products product.Repository, ev *events.Producer) *Service {
	return &Service{repo: repo, products: products, events: ev}
}

func scopeFor(u *user.User) Scope {
	return Scope{UserID: u.ID, Admin: u.Role == policy.RoleAdmin}
}

func ownerFor(u *user.User) Owner {
	return Owner{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role), Phone: u.Phone}
}

// Create builds an order owned by the requester with status "new",
// whatever the client sent. With items present each line gets a price
// snapshot from the current product price and the total is the computed
// sum; an itemless order keeps the client-supplied total.
func (s *Service) Create(ctx context.Context, requester *user.User, in CreateOrderRequest) (*Order, error) {
	o := &Order{
		ID:      uuid.NewString(),
		User:    ownerFor(requester),
		Status:  StatusNew,
		Address: in.Address,
		Phone:   in.Phone,
		Comment: in.Comment,
	}

	if len(in.Items) > 0 {
		total := decimal.Zero
		for _, line := range in.Items {
			if line.Quantity < 1 {
				return nil, ErrBadQuantity
			}
			p, err := s.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, ErrUnknownProduct
			}
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return nil, fmt.Errorf("product %s has unparseable price: %w", p.ID, err)
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			o.Items = append(o.Items, Item{
				ID:        uuid.NewString(),
				OrderID:   o.ID,
				ProductID: p.ID,
				Product:   p,
				Quantity:  line.Quantity,
				Price:     price.StringFixed(2),
			})
		}
		o.Total = total.StringFixed(2)
	} else {
		total := decimal.Zero
		if in.TotalPrice != "" {
			var err error
			total, err = decimal.NewFromString(in.TotalPrice)
			if err != nil || total.IsNegative() {
				return nil, ErrBadTotal
			}
		}
		o.Total = total.StringFixed(2)
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.OrderEvent{
		Type: events.OrderCreated, OrderID: o.ID, UserID: o.User.ID, Status: string(o.Status),
	})
	return o, nil
}

// List returns the requester's orders, or every order for admins,
// optionally filtered by status.
func (s *Service) List(ctx context.Context, requester *user.User, status string) ([]Order, error) {
	var f Filter
	if status != "" {
		st := Status(status)
		if !st.Valid() {
			return nil, ErrBadStatus
		}
		f.Status = st
	}
	return s.repo.List(ctx, scopeFor(requester), f)
}

func (s *Service) Get(ctx context.Context, requester *user.User, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id, scopeFor(requester))
}

// Update applies a partial update. Status changes through PATCH are an
// admin-only path (the admin console parity); owners use cancel.
func (s *Service) Update(ctx context.Context, requester *user.User, id string, in UpdateOrderRequest) (*Order, error) {
	sc := scopeFor(requester)
	if in.Status != "" {
		if !sc.Admin {
			return nil, ErrStatusNotAllowed
		}
		if !in.Status.Valid() {
			return nil, ErrBadStatus
		}
	}
	err := s.repo.Update(ctx, id, sc, Patch{
		Address: in.Address,
		Phone:   in.Phone,
		Comment: in.Comment,
		Status:  in.Status,
	})
	if err != nil {
		return nil, err
	}
	o, err := s.repo.GetByID(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	if in.Status != "" {
		s.events.Publish(ctx, events.OrderEvent{
			Type: events.OrderStatusChanged, OrderID: o.ID, UserID: o.User.ID, Status: string(o.Status),
		})
	}
	return o, nil
}

// Cancel moves the order to cancelled when it is still new or preparing.
// Terminal orders yield an InvalidStateError carrying the current status.
func (s *Service) Cancel(ctx context.Context, requester *user.User, id string) (*Order, error) {
	sc := scopeFor(requester)
	o, err := s.repo.GetByID(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.Cancel(ctx, id, sc)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race or the precondition never held; re-read for the message
		cur, err := s.repo.GetByID(ctx, id, sc)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidStateError{Op: "cancel", Status: cur.Status}
	}
	o.Status = StatusCancelled
	s.events.Publish(ctx, events.OrderEvent{
		Type: events.OrderCancelled, OrderID: o.ID, UserID: o.User.ID, Status: string(StatusCancelled),
	})
	return o, nil
}

// Delete removes the order and its items. Admins may delete any order;
// owners only while it is still new.
func (s *Service) Delete(ctx context.Context, requester *user.User, id string) error {
	sc := scopeFor(requester)
	o, err := s.repo.GetByID(ctx, id, sc)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, id, sc, !sc.Admin)
	if err != nil {
		return err
	}
	if !ok {
		cur, err := s.repo.GetByID(ctx, id, sc)
		if err != nil {
			return err
		}
		return &InvalidStateError{Op: "delete", Status: cur.Status}
	}
	s.events.Publish(ctx, events.OrderEvent{
		Type: events.OrderDeleted, OrderID: o.ID, UserID: o.User.ID, Status: string(o.Status),
	})
	return nil
}
