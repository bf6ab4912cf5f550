package auth

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/gourav132/Show-IT/internal/domain/profile"
	"github.com/gourav132/Show-IT/internal/domain/user"
	"github.com/gourav132/Show-IT/pkg/apperror"
	"github.com/gourav132/Show-IT/pkg/auth"
	"github.com/gourav132/Show-IT/pkg/logger"
)

type RegisterUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	jwtSvc      *auth.JWTService
	publicBase  string
	logger      logger.Logger
}

func NewRegisterUseCase(
	userRepo user.Repository,
	profileRepo profile.Repository,
	jwtSvc *auth.JWTService,
	publicBase string,
	log logger.Logger,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtSvc:      jwtSvc,
		publicBase:  strings.TrimRight(publicBase, "/"),
		logger:      log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	UserID      uuid.UUID
	Username    string
	PublicURL   string
	AccessToken string
}

// deriveUsername builds the shareable handle: first name plus four digits,
// e.g. "jane4821".
func deriveUsername(name string) string {
	first := strings.ToLower(strings.Fields(name)[0])
	return fmt.Sprintf("%s%d", first, 1000+rand.IntN(9000))
}

// Execute creates the account and writes the empty default profile exactly
// once; every later change goes through the builder's explicit save.
func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewInvalidInput("name is required", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	username := deriveUsername(input.Name)
	publicURL := fmt.Sprintf("%s/portfolio/%s", uc.publicBase, username)

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		Username:     username,
		AuthProvider: "local",
		PasswordHash: hash,
	}
	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		span.RecordError(err)
		return nil, err
	}

	newProfile := profile.Default(newUser.ID, username, publicURL)
	newProfile.DisplayName = input.Name
	if err := uc.profileRepo.Create(ctx, newProfile); err != nil {
		uc.logger.Error("Failed to create default profile", err, zap.String("user_id", newUser.ID.String()))
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(newUser.ID, username)
	if err != nil {
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	span.SetAttributes(attribute.String("user_id", newUser.ID.String()))
	uc.logger.Info("registered new user", zap.String("username", username))

	return &RegisterOutput{
		UserID:      newUser.ID,
		Username:    username,
		PublicURL:   publicURL,
		AccessToken: token,
	}, nil
}
