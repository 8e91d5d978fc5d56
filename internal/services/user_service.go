package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/models"
	"petshop/internal/repositories"

	"go.uber.org/zap"
)

var validRoles = map[string]bool{
	models.RoleClient: true,
	models.RoleSeller: true,
	models.RoleAdmin:  true,
}

// UserInput is the admin form for creating a user.
type UserInput struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=6"`
	RUN       string     `json:"run" validate:"required,min=7,max=12"`
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"max=100"`
	Role      string     `json:"role" validate:"required"`
	Region    string     `json:"region"`
	Comuna    string     `json:"comuna"`
	Address   string     `json:"address"`
	BirthDate *time.Time `json:"birth_date"`
}

// UserUpdate patches a user; nil fields are left alone.
type UserUpdate struct {
	Email     *string    `json:"email" validate:"omitempty,email"`
	Password  *string    `json:"password" validate:"omitempty,min=6"`
	RUN       *string    `json:"run" validate:"omitempty,min=7,max=12"`
	FirstName *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=100"`
	Role      *string    `json:"role"`
	Region    *string    `json:"region"`
	Comuna    *string    `json:"comuna"`
	Address   *string    `json:"address"`
	BirthDate *time.Time `json:"birth_date"`
}

// UserService is the admin user management.
type UserService struct {
	tx       repositories.Transactor
	userRepo repositories.UserRepository
	audit    AuditRecorder
	logger   *zap.SugaredLogger
}

// NewUserService creates a new UserService.
func NewUserService(tx repositories.Transactor, userRepo repositories.UserRepository, audit AuditRecorder, logger *zap.SugaredLogger) *UserService {
	return &UserService{
		tx:       tx,
		userRepo: userRepo,
		audit:    audit,
		logger:   logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser creates an account with any role.
func (s *UserService) CreateUser(ctx context.Context, actorID string, in UserInput) (*models.User, error) {
	role := strings.ToUpper(in.Role)
	if !validRoles[role] {
		return nil, fmt.Errorf("role %q: %w", in.Role, ErrInvalidRole)
	}
	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		RUN:       NormalizeRUN(in.RUN),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Password:  hashed,
		Role:      role,
		Region:    in.Region,
		Comuna:    in.Comuna,
		Address:   in.Address,
		BirthDate: in.BirthDate,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionUserCreate, EntityUser, user.ID, &models.AuditChanges{New: user})
	return user, nil
}

// UpdateUser applies the non-nil fields of in.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id string, in UserUpdate) (*models.User, error) {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *existing
	updated := *existing

	if in.Role != nil {
		role := strings.ToUpper(*in.Role)
		if !validRoles[role] {
			return nil, fmt.Errorf("role %q: %w", *in.Role, ErrInvalidRole)
		}
		updated.Role = role
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		updated.Password = hashed
	}
	if in.Email != nil {
		updated.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.RUN != nil {
		updated.RUN = NormalizeRUN(*in.RUN)
	}
	if in.FirstName != nil {
		updated.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updated.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Region != nil {
		updated.Region = *in.Region
	}
	if in.Comuna != nil {
		updated.Comuna = *in.Comuna
	}
	if in.Address != nil {
		updated.Address = *in.Address
	}
	if in.BirthDate != nil {
		updated.BirthDate = in.BirthDate
	}

	if err := s.userRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actorID, ActionUserUpdate, EntityUser, id, &models.AuditChanges{Old: before, New: updated})
	return &updated, nil
}

// DeleteUser removes the user together with their orders and cart.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	var deleted *models.User
	err := s.tx.Transaction(ctx, func(repos repositories.TxRepositories) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Orders.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := repos.Carts.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := repos.Users.Delete(ctx, id); err != nil {
			return err
		}
		deleted = user
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("user deleted", "user_id", id, "actor_id", actorID)
	s.audit.Record(ctx, actorID, ActionUserDelete, EntityUser, id, &models.AuditChanges{Old: deleted})
	return nil
}
