package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// VerificationCodeLength is the number of digits in an emailed code.
const VerificationCodeLength = 6

// EmailVerificationUseCase keeps signups in a pending collection until the
// emailed code is confirmed.
type EmailVerificationUseCase struct {
	pendingRepo contract.IPendingUserRepository
	userRepo    contract.IUserRepository
	hasher      contract.IHasher
	jwtService  JWTService
	composer    contract.IMessageComposer
	mailer      contract.IEmailService
	randomGen   contract.IRandomGenerator
	uuidGen     contract.IUUIDGenerator
	validator   usecasecontract.IValidator
	config      usecasecontract.IConfigProvider
	logger      usecasecontract.IAppLogger
	now         func() time.Time
}

var _ usecasecontract.IEmailVerificationUC = (*EmailVerificationUseCase)(nil)

func NewEmailVerificationUseCase(
	pendingRepo contract.IPendingUserRepository,
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	composer contract.IMessageComposer,
	mailer contract.IEmailService,
	randomGen contract.IRandomGenerator,
	uuidGen contract.IUUIDGenerator,
	validator usecasecontract.IValidator,
	cfg usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *EmailVerificationUseCase {
	return &EmailVerificationUseCase{
		pendingRepo: pendingRepo,
		userRepo:    userRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		composer:    composer,
		mailer:      mailer,
		randomGen:   randomGen,
		uuidGen:     uuidGen,
		validator:   validator,
		config:      cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// validateSignup checks the fields shared by public signup and instructor creation.
func validateSignup(v usecasecontract.IValidator, in *usecasecontract.RegisterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Email = v.NormalizeEmail(in.Email)
	if in.Name == "" || in.Surname == "" {
		return fmt.Errorf("%w: name and surname are required", domainerrors.ErrValidation)
	}
	if err := v.ValidateEmail(in.Email); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrValidation, err)
	}
	if err := v.ValidatePassword(in.Password); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrValidation, err)
	}
	if in.EmailLanguage == "" {
		in.EmailLanguage = entity.LanguageEN
	}
	if in.EmailLanguage != entity.LanguageEN && in.EmailLanguage != entity.LanguageIT {
		return fmt.Errorf("%w: email language must be en or it", domainerrors.ErrValidation)
	}
	return nil
}

// ensureEmailFree returns ErrDuplicateEmail when a verified user owns email.
func ensureEmailFree(ctx context.Context, repo contract.IUserRepository, email string) error {
	_, err := repo.GetUserByEmail(ctx, email)
	if err == nil {
		return domainerrors.ErrDuplicateEmail
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("failed to check for existing user by email: %w", err)
}

// Register stores a pending user, emails the code and returns a pending token.
func (uc *EmailVerificationUseCase) Register(ctx context.Context, in usecasecontract.RegisterInput) (string, error) {
	if in.Role == "" {
		in.Role = entity.DefaultRole()
	}
	if in.Role != entity.UserRoleUser {
		return "", fmt.Errorf("%w: only user accounts can sign up", domainerrors.ErrValidation)
	}
	if err := validateSignup(uc.validator, &in); err != nil {
		return "", err
	}
	if err := ensureEmailFree(ctx, uc.userRepo, in.Email); err != nil {
		return "", err
	}

	// latest attempt wins
	if err := uc.pendingRepo.DeletePendingUsersByEmail(ctx, in.Email); err != nil {
		return "", fmt.Errorf("failed to clear previous signups: %w", err)
	}

	hashedPassword, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return "", fmt.Errorf("failed to process password: %w", err)
	}
	code, err := uc.randomGen.GenerateNumericCode(VerificationCodeLength)
	if err != nil {
		return "", err
	}

	now := uc.now()
	pending := &entity.PendingUser{
		ID:               uc.uuidGen.NewUUID(),
		Name:             in.Name,
		Surname:          in.Surname,
		Email:            in.Email,
		PasswordHash:     hashedPassword,
		Role:             in.Role,
		Avatar:           in.Avatar,
		EmailLanguage:    in.EmailLanguage,
		VerificationCode: code,
		CodeExpiresAt:    now.Add(uc.config.GetVerificationCodeExpiry()),
		CreatedAt:        now,
	}
	if err := uc.pendingRepo.CreatePendingUser(ctx, pending); err != nil {
		return "", fmt.Errorf("failed to store pending user: %w", err)
	}

	if err := uc.sendCode(ctx, pending); err != nil {
		return "", err
	}

	token, err := uc.jwtService.GeneratePendingToken(pending.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	uc.logger.Infof("pending signup %s created", pending.ID)
	return token, nil
}

func (uc *EmailVerificationUseCase) sendCode(ctx context.Context, p *entity.PendingUser) error {
	msg, err := uc.composer.VerificationEmail(p.Email, p.EmailLanguage, p.Name, p.VerificationCode)
	if err != nil {
		return err
	}
	if err := uc.mailer.SendEmail(ctx, msg.To, msg.Subject, msg.HTML); err != nil {
		uc.logger.Errorf("failed to send verification email to %s: %v", p.Email, err)
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// pendingIDFromToken accepts only pending-shaped tokens.
func (uc *EmailVerificationUseCase) pendingIDFromToken(token string) (string, error) {
	claims, err := uc.jwtService.ParseToken(token)
	if err != nil {
		return "", domainerrors.ErrInvalidToken
	}
	if !claims.IsPending || claims.PendingUserID == "" {
		return "", domainerrors.ErrInvalidToken
	}
	return claims.PendingUserID, nil
}

// VerifyEmail promotes the pending user to a verified user exactly once.
func (uc *EmailVerificationUseCase) VerifyEmail(ctx context.Context, pendingToken, code string) (*entity.User, string, error) {
	pendingID, err := uc.pendingIDFromToken(pendingToken)
	if err != nil {
		return nil, "", err
	}
	pending, err := uc.pendingRepo.GetPendingUserByID(ctx, pendingID)
	if err != nil {
		return nil, "", err
	}

	if subtle.ConstantTimeCompare([]byte(pending.VerificationCode), []byte(strings.TrimSpace(code))) != 1 {
		return nil, "", domainerrors.ErrInvalidCode
	}
	if pending.IsExpired(uc.now()) {
		uc.discard(ctx, pending.ID)
		return nil, "", domainerrors.ErrExpired
	}
	if err := ensureEmailFree(ctx, uc.userRepo, pending.Email); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			uc.discard(ctx, pending.ID)
		}
		return nil, "", err
	}

	claimed, err := uc.pendingRepo.ClaimPendingUser(ctx, pending.ID, pending.VerificationCode)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			// still there means the code was re-armed after we read it
			if _, getErr := uc.pendingRepo.GetPendingUserByID(ctx, pending.ID); getErr == nil {
				return nil, "", domainerrors.ErrInvalidCode
			}
		}
		return nil, "", err
	}
	user := claimed.Promote(uc.now())
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			return nil, "", domainerrors.ErrDuplicateEmail
		}
		// put the claim back so the same code can be retried
		if restoreErr := uc.pendingRepo.CreatePendingUser(ctx, claimed); restoreErr != nil {
			uc.logger.Errorf("failed to restore pending signup %s: %v", claimed.ID, restoreErr)
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	uc.logger.Infof("user %s verified", user.ID)
	return user, token, nil
}

// ResendVerification re-arms the code on the same pending record.
func (uc *EmailVerificationUseCase) ResendVerification(ctx context.Context, pendingToken string) error {
	pendingID, err := uc.pendingIDFromToken(pendingToken)
	if err != nil {
		return err
	}
	pending, err := uc.pendingRepo.GetPendingUserByID(ctx, pendingID)
	if err != nil {
		return err
	}
	code, err := uc.randomGen.GenerateNumericCode(VerificationCodeLength)
	if err != nil {
		return err
	}
	expiresAt := uc.now().Add(uc.config.GetVerificationCodeExpiry())
	if err := uc.pendingRepo.UpdateVerificationCode(ctx, pending.ID, code, expiresAt); err != nil {
		return err
	}
	pending.VerificationCode = code
	pending.CodeExpiresAt = expiresAt
	return uc.sendCode(ctx, pending)
}

func (uc *EmailVerificationUseCase) discard(ctx context.Context, id string) {
	if err := uc.pendingRepo.DeletePendingUser(ctx, id); err != nil {
		uc.logger.Warnf("failed to delete pending user %s: %v", id, err)
	}
}
