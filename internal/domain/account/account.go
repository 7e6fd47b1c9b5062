package account

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = errors.New("account: not found")
	ErrRequestPending = errors.New("account: role change already requested")
	ErrInvalidRole    = errors.New("account: unknown role")
	ErrEmailRequired  = errors.New("account: email is required")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts only the three roles the marketplace knows about.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

type Status string

const (
	StatusNone      Status = ""
	StatusRequested Status = "Requested"
	StatusVerified  Status = "Verified"
)

// Account is a marketplace user keyed by email.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      Role               `bson:"role" json:"role"`
	Status    Status             `bson:"status,omitempty" json:"status,omitempty"`
	Timestamp int64              `bson:"timeStamp" json:"timeStamp"`
}

// Profile carries the display fields supplied on first login.
type Profile struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// New builds a first-time account: every account starts as a customer.
func New(email string, profile Profile, now time.Time) (*Account, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	return &Account{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      profile.Name,
		Image:     profile.Image,
		Role:      RoleCustomer,
		Timestamp: now.UnixMilli(),
	}, nil
}

// CanRequestRoleChange reports whether a new upgrade request may be recorded.
func (a *Account) CanRequestRoleChange() bool {
	return a.Status != StatusRequested
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}
