package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/domain"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
	"github.com/jhoicas/devicepos-api/internal/domain/repository"
	"github.com/jhoicas/devicepos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login y administración de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup hashea la contraseña, crea el usuario (rol cashier por defecto) y devuelve su token.
// callerRole es el rol de quien hace la petición ("" si es anónima); solo un rol de gestión
// puede crear usuarios distintos de cashier.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest, callerRole string) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: username obligatorio y password de al menos 6 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	if !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: role %q no válido", domain.ErrInvalidInput, role)
	}
	if role != entity.RoleCashier && !entity.IsManagementRole(callerRole) {
		return nil, fmt.Errorf("%w: solo owner, manager o admin pueden crear usuarios %s", domain.ErrForbidden, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUsernameTaken, username)
		}
		return nil, err
	}
	return uc.issue(user)
}

// Login verifica credenciales; cualquier fallo es ErrUnauthorized sin distinguir la causa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, fmt.Errorf("%w: usuario o contraseña inválidos", domain.ErrUnauthorized)
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// List usuarios, opcionalmente filtrados por rol.
func (uc *AuthUseCase) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	if role != "" && !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: role %q no válido", domain.ErrInvalidInput, role)
	}
	users, err := uc.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update cambia rol y/o contraseña del usuario.
func (uc *AuthUseCase) Update(ctx context.Context, username string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Password == "" && in.Role == "" {
		return nil, fmt.Errorf("%w: indique password o role", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
	}
	if in.Role != "" {
		if !entity.IsValidRole(in.Role) {
			return nil, fmt.Errorf("%w: role %q no válido", domain.ErrInvalidInput, in.Role)
		}
		user.Role = in.Role
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, fmt.Errorf("%w: password de al menos 6 caracteres", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// Delete elimina el usuario por username.
func (uc *AuthUseCase) Delete(ctx context.Context, username string) error {
	if err := uc.userRepo.Delete(ctx, username); err != nil {
		return fmt.Errorf("%w: %s", err, username)
	}
	return nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
