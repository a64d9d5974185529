// Package auth couvre l'inscription, la connexion et le profil du commerçant.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cosmolab/akompta-api/internal/application/dto"
	"github.com/cosmolab/akompta-api/internal/domain"
	"github.com/cosmolab/akompta-api/internal/domain/entity"
	"github.com/cosmolab/akompta-api/internal/domain/repository"
	"github.com/cosmolab/akompta-api/pkg/jwt"
)

// JWTConfig paramètres de génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase cas d'usage d'authentification : inscription, connexion, profil.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construit le cas d'usage d'auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crée un commerçant : vérifie l'unicité du username et de l'email,
// hashe le mot de passe avec bcrypt et persiste.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.userRepo.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if phone := strings.TrimSpace(in.PhoneNumber); phone != "" {
		if existing, err := uc.userRepo.FindByPhone(ctx, phone); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	language := in.Language
	if language == "" {
		language = entity.LangFrench
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:                uuid.New().String(),
		Username:          username,
		Email:             email,
		PhoneNumber:       strings.TrimSpace(in.PhoneNumber),
		PasswordHash:      string(hash),
		Role:              entity.RoleMerchant,
		BusinessName:      in.BusinessName,
		BusinessAddress:   in.BusinessAddress,
		PreferredLanguage: language,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login vérifie identifiant/mot de passe, génère un JWT et retourne
// token + utilisateur. L'identifiant accepte username, email ou téléphone.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.findByIdentifier(ctx, strings.TrimSpace(in.Identifier))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func (uc *UseCase) findByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	if identifier == "" {
		return nil, domain.ErrInvalidInput
	}
	if strings.Contains(identifier, "@") {
		return uc.userRepo.FindByEmail(ctx, strings.ToLower(identifier))
	}
	user, err := uc.userRepo.FindByUsername(ctx, identifier)
	if err != nil || user != nil {
		return user, err
	}
	return uc.userRepo.FindByPhone(ctx, identifier)
}

// Profile retourne le profil du user connecté.
func (uc *UseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile modifie les champs profil fournis, les autres restent inchangés.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.BusinessName != nil {
		user.BusinessName = *in.BusinessName
	}
	if in.BusinessAddress != nil {
		user.BusinessAddress = *in.BusinessAddress
	}
	if in.Language != nil {
		user.PreferredLanguage = *in.Language
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		PhoneNumber:       u.PhoneNumber,
		Role:              u.Role,
		BusinessName:      u.BusinessName,
		BusinessAddress:   u.BusinessAddress,
		PreferredLanguage: u.PreferredLanguage,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
