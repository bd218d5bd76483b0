package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"grocery-platform/internal/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Store abstracts user persistence. Emails are stored normalized
// (lowercase, trimmed); lookups expect the normalized form.
type Store interface {
	Insert(ctx context.Context, u User) error
	GetByUID(ctx context.Context, uid string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
}

// ResponsibilityAssigner manages supplier->grocery responsibility edges.
// Implemented by the grocery stores; this package never reads edges.
type ResponsibilityAssigner interface {
	Assign(ctx context.Context, supplierUID, groceryUID string) error
	Unassign(ctx context.Context, supplierUID, groceryUID string) error
}

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

const minPasswordLength = 8

// Service provides user administration. It is an external collaborator
// of the auth core: the core only reads users through the directory.
type Service struct {
	store  Store
	assign ResponsibilityAssigner
	clock  func() time.Time
}

func NewService(store Store, assign ResponsibilityAssigner) *Service {
	return &Service{store: store, assign: assign, clock: time.Now}
}

type CreateRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	name := strings.TrimSpace(req.Name)
	email := auth.NormalizeEmail(req.Email)
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidArgument
	}
	if len(req.Password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password too short (min %d)", ErrInvalidArgument, minPasswordLength)
	}
	if !auth.ValidRole(req.Role) {
		return User{}, fmt.Errorf("%w: invalid role %q", ErrInvalidArgument, req.Role)
	}

	if _, exists, err := s.store.GetByEmail(ctx, email); err != nil {
		return User{}, err
	} else if exists {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.clock().UTC()
	u := User{
		UID:          uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type CreateSupplierRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	GroceryUID string `json:"grocery_id"`
}

// CreateSupplier creates a supplier account and immediately makes it
// responsible for the given grocery.
func (s *Service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (User, error) {
	if strings.TrimSpace(req.GroceryUID) == "" {
		return User{}, ErrInvalidArgument
	}
	u, err := s.Create(ctx, CreateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.RoleSupplier,
	})
	if err != nil {
		return User{}, err
	}
	if err := s.assign.Assign(ctx, u.UID, req.GroceryUID); err != nil {
		return User{}, fmt.Errorf("assign responsibility: %w", err)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, uid string) (User, error) {
	u, ok, err := s.store.GetByUID(ctx, uid)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

type UpdateRequest struct {
	Name *string    `json:"name"`
	Role *auth.Role `json:"role"`
}

func (s *Service) Update(ctx context.Context, uid string, req UpdateRequest) (User, error) {
	if req.Name == nil && req.Role == nil {
		return User{}, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	u, err := s.Get(ctx, uid)
	if err != nil {
		return User{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return User{}, ErrInvalidArgument
		}
		u.Name = name
	}
	if req.Role != nil {
		if !auth.ValidRole(*req.Role) {
			return User{}, fmt.Errorf("%w: invalid role %q", ErrInvalidArgument, *req.Role)
		}
		u.Role = *req.Role
	}
	u.UpdatedAt = s.clock().UTC()

	if err := s.store.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// SoftDelete deactivates the account. Tokens already issued keep
// verifying until expiry, but login and refresh stop immediately and
// responsibility edges from this user stop resolving.
func (s *Service) SoftDelete(ctx context.Context, uid string) error {
	u, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}
	u.Active = false
	u.UpdatedAt = s.clock().UTC()
	return s.store.Update(ctx, u)
}

// AssignResponsibility links an existing supplier to a grocery.
func (s *Service) AssignResponsibility(ctx context.Context, supplierUID, groceryUID string) error {
	u, err := s.Get(ctx, supplierUID)
	if err != nil {
		return err
	}
	if u.Role != auth.RoleSupplier {
		return fmt.Errorf("%w: user %s is not a supplier", ErrInvalidArgument, supplierUID)
	}
	return s.assign.Assign(ctx, supplierUID, groceryUID)
}

func (s *Service) UnassignResponsibility(ctx context.Context, supplierUID, groceryUID string) error {
	return s.assign.Unassign(ctx, supplierUID, groceryUID)
}

// UpsertAdmin creates or updates the seeded admin account by email.
// Idempotent: re-running with the same email resets name, password,
// role and active status. Used by cmd/bootstrap only.
func (s *Service) UpsertAdmin(ctx context.Context, name, email, password string) (User, bool, error) {
	name = strings.TrimSpace(name)
	email = auth.NormalizeEmail(email)
	if name == "" || email == "" {
		return User{}, false, ErrInvalidArgument
	}
	if len(password) < minPasswordLength {
		return User{}, false, fmt.Errorf("%w: password too short (min %d)", ErrInvalidArgument, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, false, err
	}
	now := s.clock().UTC()

	existing, ok, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return User{}, false, err
	}
	if ok {
		existing.Name = name
		existing.PasswordHash = string(hash)
		existing.Role = auth.RoleAdmin
		existing.Active = true
		existing.UpdatedAt = now
		if err := s.store.Update(ctx, existing); err != nil {
			return User{}, false, err
		}
		return existing, false, nil
	}

	u := User{
		UID:          uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return User{}, false, err
	}
	return u, true, nil
}
