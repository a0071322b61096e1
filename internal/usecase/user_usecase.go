package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo        contract.IUserRepository
	tokenRepo       contract.ITokenRepository
	reviewRepo      contract.IReviewRepository
	workshopRepo    contract.IWorkshopRepository
	hasher          contract.IHasher
	jwtService      JWTService
	composer        contract.IMessageComposer
	mailService     contract.IEmailService
	logger          usecasecontract.IAppLogger
	config          usecasecontract.IConfigProvider
	validator       usecasecontract.IValidator
	uuidGenerator   contract.IUUIDGenerator
	randomGenerator contract.IRandomGenerator
	cache           contract.IWorkshopCache
	now             func() time.Time
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	reviewRepo contract.IReviewRepository,
	workshopRepo contract.IWorkshopRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	composer contract.IMessageComposer,
	mailService contract.IEmailService,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	randomgen contract.IRandomGenerator,
) *UserUsecase {
	return &UserUsecase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		reviewRepo:      reviewRepo,
		workshopRepo:    workshopRepo,
		hasher:          hasher,
		jwtService:      jwtService,
		composer:        composer,
		mailService:     mailService,
		logger:          logger,
		config:          cfg,
		validator:       validator,
		uuidGenerator:   uuidGenerator,
		randomGenerator: randomgen,
		now:             time.Now,
	}
}

// SetCache enables invalidation of cached workshops and featured reviews.
func (uc *UserUsecase) SetCache(c contract.IWorkshopCache) {
	uc.cache = c
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Login flattens unknown email and wrong password into ErrInvalidCredentials.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, uc.validator.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, "", domainerrors.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", err
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", domainerrors.ErrInvalidCredentials
	}
	token, err := uc.jwtService.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate session token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// ForgotPassword never reveals whether the email belongs to an account.
func (uc *UserUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetUserByEmail(ctx, uc.validator.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			uc.logger.Debugf("password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := uc.tokenRepo.RevokeAllTokensForUser(ctx, user.ID, entity.TokenTypePasswordReset); err != nil {
		return fmt.Errorf("failed to revoke old tokens: %w", err)
	}
	plainToken, err := uc.randomGenerator.GenerateRandomToken(32)
	if err != nil {
		return err
	}
	tokenHash, err := uc.hasher.HashPassword(plainToken)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}
	verifier, err := uc.randomGenerator.GenerateRandomToken(16)
	if err != nil {
		return err
	}
	now := uc.now()
	token := &entity.Token{
		ID:        uc.uuidGenerator.NewUUID(),
		UserID:    user.ID,
		TokenType: entity.TokenTypePasswordReset,
		TokenHash: tokenHash,
		Verifier:  verifier,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.config.GetPasswordResetTokenExpiry()),
	}
	if err := uc.tokenRepo.CreateToken(ctx, token); err != nil {
		return fmt.Errorf("failed to create token in db: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?verifier=%s&token=%s",
		strings.TrimRight(uc.config.GetFrontendURL(), "/"), url.QueryEscape(verifier), url.QueryEscape(plainToken))
	msg, err := uc.composer.PasswordResetEmail(user.Email, user.EmailLanguage, user.Name, link)
	if err != nil {
		return err
	}
	if err := uc.mailService.SendEmail(ctx, msg.To, msg.Subject, msg.HTML); err != nil {
		uc.logger.Errorf("failed to send password reset email to user %s: %v", user.ID, err)
	}
	return nil
}

// ResetPassword folds every token problem into ErrInvalidToken.
func (uc *UserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error {
	if err := uc.validator.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrValidation, err)
	}
	if verifier == "" || resetToken == "" {
		return domainerrors.ErrInvalidToken
	}
	token, err := uc.tokenRepo.GetTokenByVerifier(ctx, verifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.ErrInvalidToken
		}
		return err
	}
	if token.Revoke || token.TokenType != entity.TokenTypePasswordReset || uc.now().After(token.ExpiresAt) {
		return domainerrors.ErrInvalidToken
	}
	if err := uc.hasher.ComparePasswordHash(resetToken, token.TokenHash); err != nil {
		return domainerrors.ErrInvalidToken
	}

	hashed, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to process password: %w", err)
	}
	if err := uc.userRepo.UpdateUserPassword(ctx, token.UserID, hashed); err != nil {
		return err
	}
	if err := uc.tokenRepo.RevokeToken(ctx, token.ID); err != nil {
		return fmt.Errorf("failed to revoke token after password reset: %w", err)
	}
	return nil
}

// LoginWithOAuth signs in the account owning email, creating a verified user on first login.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, name, surname, email string) (*entity.User, string, error) {
	email = uc.validator.NormalizeEmail(email)
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domainerrors.ErrValidation, err)
	}
	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, "", err
	}
	if user == nil {
		// the account gets an unusable random password; it can be set through password reset
		secret, err := uc.randomGenerator.GenerateRandomToken(32)
		if err != nil {
			return nil, "", err
		}
		hashed, err := uc.hasher.HashPassword(secret)
		if err != nil {
			return nil, "", err
		}
		user = newVerifiedUser(uc.uuidGenerator.NewUUID(), name, surname, email, hashed, entity.UserRoleUser, uc.now())
		if err := uc.userRepo.CreateUser(ctx, user); err != nil {
			return nil, "", err
		}
		uc.logger.Infof("user %s created through oauth", user.ID)
	}
	token, err := uc.jwtService.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

func newVerifiedUser(id, name, surname, email, passwordHash string, role entity.UserRole, now time.Time) *entity.User {
	pending := &entity.PendingUser{
		ID:            id,
		Name:          strings.TrimSpace(name),
		Surname:       strings.TrimSpace(surname),
		Email:         email,
		PasswordHash:  passwordHash,
		Role:          role,
		EmailLanguage: entity.LanguageEN,
	}
	return pending.Promote(now)
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile ignores instructor-only fields for regular users.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, p entity.Principal, update usecasecontract.ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domainerrors.ErrValidation)
		}
		fields["name"] = name
	}
	if update.Surname != nil {
		surname := strings.TrimSpace(*update.Surname)
		if surname == "" {
			return nil, fmt.Errorf("%w: surname cannot be empty", domainerrors.ErrValidation)
		}
		fields["surname"] = surname
	}
	if update.Avatar != nil {
		fields["avatar"] = *update.Avatar
	}
	if user.IsInstructor() {
		if update.Description != nil {
			fields["description"] = *update.Description
		}
		if update.Website != nil {
			fields["website"] = *update.Website
		}
		if update.Linkedin != nil {
			fields["linkedin"] = *update.Linkedin
		}
	}
	if len(fields) == 0 {
		return user, nil
	}
	if err := uc.userRepo.UpdateUserFields(ctx, user.ID, fields); err != nil {
		return nil, err
	}
	return uc.userRepo.GetUserByID(ctx, user.ID)
}

func (uc *UserUsecase) ChangePassword(ctx context.Context, p entity.Principal, currentPassword, newPassword string) error {
	if err := uc.validator.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrValidation, err)
	}
	user, err := uc.userRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if err := uc.hasher.ComparePasswordHash(currentPassword, user.PasswordHash); err != nil {
		return domainerrors.ErrInvalidCredentials
	}
	hashed, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to process password: %w", err)
	}
	return uc.userRepo.UpdateUserPassword(ctx, user.ID, hashed)
}

func (uc *UserUsecase) UpdateNotificationPreferences(ctx context.Context, p entity.Principal, prefs entity.EmailNotifications) (*entity.User, error) {
	if err := uc.userRepo.UpdateUserFields(ctx, p.UserID, map[string]interface{}{"email_notifications": prefs}); err != nil {
		return nil, err
	}
	return uc.userRepo.GetUserByID(ctx, p.UserID)
}

func (uc *UserUsecase) UpdateEmailLanguage(ctx context.Context, p entity.Principal, lang string) (*entity.User, error) {
	l := entity.Language(lang)
	if l != entity.LanguageEN && l != entity.LanguageIT {
		return nil, fmt.Errorf("%w: email language must be en or it", domainerrors.ErrValidation)
	}
	if err := uc.userRepo.UpdateUserFields(ctx, p.UserID, map[string]interface{}{"email_language": l}); err != nil {
		return nil, err
	}
	return uc.userRepo.GetUserByID(ctx, p.UserID)
}

func (uc *UserUsecase) GetNotifications(ctx context.Context, p entity.Principal) ([]entity.Notification, error) {
	user, err := uc.userRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if user.Notifications == nil {
		return []entity.Notification{}, nil
	}
	return user.Notifications, nil
}

func (uc *UserUsecase) MarkNotificationsRead(ctx context.Context, p entity.Principal) error {
	return uc.userRepo.MarkNotificationsRead(ctx, p.UserID)
}

// DeleteAccount removes the user's reviews, frees their seats and drops them from taught
// workshops before deleting the user.
func (uc *UserUsecase) DeleteAccount(ctx context.Context, p entity.Principal, password string) error {
	user, err := uc.userRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return domainerrors.ErrInvalidCredentials
	}

	deleted, err := uc.reviewRepo.DeleteReviewsByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	for _, workshopID := range user.RegisteredWorkshops {
		if err := uc.workshopRepo.DecrementRegisteredCount(ctx, workshopID); err != nil {
			return fmt.Errorf("failed to release seat in workshop %s: %w", workshopID, err)
		}
		uc.invalidateWorkshop(ctx, workshopID)
	}
	if deleted > 0 && uc.cache != nil {
		if err := uc.cache.InvalidateFeaturedReviews(ctx); err != nil {
			uc.logger.Warnf("failed to invalidate featured reviews: %v", err)
		}
	}
	if user.Role == entity.UserRoleInstructor {
		if err := uc.leaveTaughtWorkshops(ctx, user.ID); err != nil {
			return err
		}
	}
	if err := uc.userRepo.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	uc.logger.Infof("user %s deleted (%d reviews, %d registrations)", user.ID, deleted, len(user.RegisteredWorkshops))
	return nil
}

// leaveTaughtWorkshops drops the instructor from every workshop they teach so no
// workshop keeps a reference to a deleted account.
func (uc *UserUsecase) leaveTaughtWorkshops(ctx context.Context, instructorID string) error {
	taught, err := uc.workshopRepo.ListWorkshops(ctx, &contract.WorkshopFilterOptions{InstructorID: instructorID})
	if err != nil {
		return fmt.Errorf("failed to list taught workshops: %w", err)
	}
	if len(taught) == 0 {
		return nil
	}
	if _, err := uc.workshopRepo.RemoveInstructorFromAll(ctx, instructorID); err != nil {
		return fmt.Errorf("failed to remove instructor from workshops: %w", err)
	}
	for _, w := range taught {
		uc.invalidateWorkshop(ctx, w.ID)
	}
	return nil
}

func (uc *UserUsecase) invalidateWorkshop(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateWorkshop(ctx, id); err != nil {
		uc.logger.Warnf("failed to invalidate workshop %s: %v", id, err)
	}
}

func (uc *UserUsecase) ListInstructors(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.GetUsersByRole(ctx, entity.UserRoleInstructor)
}

// CreateInstructor lets an instructor add a verified instructor account directly.
func (uc *UserUsecase) CreateInstructor(ctx context.Context, p entity.Principal, in usecasecontract.RegisterInput) (*entity.User, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	if err := validateSignup(uc.validator, &in); err != nil {
		return nil, err
	}
	if err := ensureEmailFree(ctx, uc.userRepo, in.Email); err != nil {
		return nil, err
	}
	hashed, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to process password: %w", err)
	}
	user := newVerifiedUser(uc.uuidGenerator.NewUUID(), in.Name, in.Surname, in.Email, hashed, entity.UserRoleInstructor, uc.now())
	user.Avatar = in.Avatar
	user.Description = in.Description
	user.Website = in.Website
	user.Linkedin = in.Linkedin
	user.EmailLanguage = in.EmailLanguage
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Infof("instructor %s created by %s", user.ID, p.UserID)
	return user, nil
}
