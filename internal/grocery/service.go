package grocery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store abstracts grocery persistence. Reads exclude soft-deleted
// rows unless stated otherwise.
type Store interface {
	InsertGrocery(ctx context.Context, g Grocery) error
	GetGrocery(ctx context.Context, uid string) (Grocery, bool, error)
	ListGroceries(ctx context.Context) ([]Grocery, error)
	UpdateGrocery(ctx context.Context, g Grocery) error

	InsertItem(ctx context.Context, it Item) error
	GetItem(ctx context.Context, uid string) (Item, bool, error)
	ListItems(ctx context.Context, groceryUID string) ([]Item, error)
	UpdateItem(ctx context.Context, it Item) error

	InsertIncome(ctx context.Context, in DailyIncome) error
	ListIncomes(ctx context.Context, groceryUID, from, to string) ([]DailyIncome, error)
}

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrGroceryInactive = errors.New("grocery is not active")
)

const dateLayout = "2006-01-02"

// Service implements grocery, item and income management.
type Service struct {
	store Store
	clock func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, clock: time.Now}
}

type GroceryRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (s *Service) CreateGrocery(ctx context.Context, req GroceryRequest) (Grocery, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Grocery{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	now := s.clock().UTC()
	g := Grocery{
		UID:       uuid.NewString(),
		Name:      name,
		Location:  strings.TrimSpace(req.Location),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertGrocery(ctx, g); err != nil {
		return Grocery{}, err
	}
	return g, nil
}

func (s *Service) GetGrocery(ctx context.Context, uid string) (Grocery, error) {
	g, ok, err := s.store.GetGrocery(ctx, uid)
	if err != nil {
		return Grocery{}, err
	}
	if !ok || !g.Active {
		return Grocery{}, ErrNotFound
	}
	return g, nil
}

func (s *Service) ListGroceries(ctx context.Context) ([]Grocery, error) {
	return s.store.ListGroceries(ctx)
}

func (s *Service) UpdateGrocery(ctx context.Context, uid string, req GroceryRequest) (Grocery, error) {
	g, err := s.GetGrocery(ctx, uid)
	if err != nil {
		return Grocery{}, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		g.Name = name
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		g.Location = loc
	}
	g.UpdatedAt = s.clock().UTC()
	if err := s.store.UpdateGrocery(ctx, g); err != nil {
		return Grocery{}, err
	}
	return g, nil
}

// DeleteGrocery soft-deletes. The grocery and its items disappear
// from listings and from ownership resolution, but rows are kept.
func (s *Service) DeleteGrocery(ctx context.Context, uid string) error {
	g, err := s.GetGrocery(ctx, uid)
	if err != nil {
		return err
	}
	g.Active = false
	g.UpdatedAt = s.clock().UTC()
	return s.store.UpdateGrocery(ctx, g)
}

type ItemRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
}

func (s *Service) CreateItem(ctx context.Context, groceryUID string, req ItemRequest) (Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Item{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if req.Price < 0 {
		return Item{}, fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	g, ok, err := s.store.GetGrocery(ctx, groceryUID)
	if err != nil {
		return Item{}, err
	}
	if !ok {
		return Item{}, ErrNotFound
	}
	if !g.Active {
		return Item{}, ErrGroceryInactive
	}

	now := s.clock().UTC()
	it := Item{
		UID:        uuid.NewString(),
		GroceryUID: groceryUID,
		Name:       name,
		Type:       strings.TrimSpace(req.Type),
		Location:   strings.TrimSpace(req.Location),
		Price:      req.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertItem(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) GetItem(ctx context.Context, uid string) (Item, error) {
	it, ok, err := s.store.GetItem(ctx, uid)
	if err != nil {
		return Item{}, err
	}
	if !ok || it.Deleted {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (s *Service) ListItems(ctx context.Context, groceryUID string) ([]Item, error) {
	if _, err := s.GetGrocery(ctx, groceryUID); err != nil {
		return nil, err
	}
	return s.store.ListItems(ctx, groceryUID)
}

func (s *Service) UpdateItem(ctx context.Context, uid string, req ItemRequest) (Item, error) {
	it, err := s.GetItem(ctx, uid)
	if err != nil {
		return Item{}, err
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		it.Name = name
	}
	if typ := strings.TrimSpace(req.Type); typ != "" {
		it.Type = typ
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		it.Location = loc
	}
	if req.Price > 0 {
		it.Price = req.Price
	}
	it.UpdatedAt = s.clock().UTC()
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// DeleteItem soft-deletes; the item keeps its row but no longer
// resolves to a grocery.
func (s *Service) DeleteItem(ctx context.Context, uid string) error {
	it, err := s.GetItem(ctx, uid)
	if err != nil {
		return err
	}
	it.Deleted = true
	it.UpdatedAt = s.clock().UTC()
	return s.store.UpdateItem(ctx, it)
}

type IncomeRequest struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

func (s *Service) AddIncome(ctx context.Context, groceryUID string, req IncomeRequest) (DailyIncome, error) {
	if req.Amount < 0 {
		return DailyIncome{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidArgument)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return DailyIncome{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
	}
	if _, err := s.GetGrocery(ctx, groceryUID); err != nil {
		return DailyIncome{}, err
	}

	in := DailyIncome{
		UID:        uuid.NewString(),
		GroceryUID: groceryUID,
		Amount:     req.Amount,
		Date:       req.Date,
		CreatedAt:  s.clock().UTC(),
	}
	if err := s.store.InsertIncome(ctx, in); err != nil {
		return DailyIncome{}, err
	}
	return in, nil
}

// ListIncomes returns incomes for a grocery, optionally bounded by an
// inclusive [from, to] date range. Empty bounds are open.
func (s *Service) ListIncomes(ctx context.Context, groceryUID, from, to string) ([]DailyIncome, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
		}
	}
	if _, err := s.GetGrocery(ctx, groceryUID); err != nil {
		return nil, err
	}
	return s.store.ListIncomes(ctx, groceryUID, from, to)
}
