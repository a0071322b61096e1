package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

type BadgeUseCase struct {
	userRepo     contract.IUserRepository
	workshopRepo contract.IWorkshopRepository
	uuidGen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
	now          func() time.Time
}

var _ usecasecontract.IBadgeUseCase = (*BadgeUseCase)(nil)

func NewBadgeUseCase(userRepo contract.IUserRepository, workshopRepo contract.IWorkshopRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *BadgeUseCase {
	return &BadgeUseCase{
		userRepo:     userRepo,
		workshopRepo: workshopRepo,
		uuidGen:      uuidGen,
		logger:       logger,
		now:          time.Now,
	}
}

// AwardBadge gives a registered user the workshop badge once. The registration is kept.
func (uc *BadgeUseCase) AwardBadge(ctx context.Context, p entity.Principal, userID, workshopID string) (*entity.Badge, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	if !user.IsRegisteredFor(workshopID) {
		return nil, domainerrors.ErrNotRegistered
	}
	if user.HasBadgeFor(workshopID) {
		return nil, domainerrors.ErrAlreadyAwarded
	}

	now := uc.now()
	badge := entity.Badge{
		WorkshopID: workshopID,
		Name:       w.LocalizedBadgeName(user.EmailLanguage),
		Image:      w.BadgeImage,
		Date:       now,
		AwardedBy:  p.UserID,
	}
	added, err := uc.userRepo.AddBadge(ctx, userID, badge)
	if err != nil {
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}
	if !added {
		return nil, domainerrors.ErrAlreadyAwarded
	}
	pushNotification(ctx, uc.userRepo, uc.uuidGen, uc.logger, now, []string{userID},
		fmt.Sprintf("You earned the %s badge", badge.Name), "/profile")
	uc.logger.Infof("badge for %s awarded to %s by %s", workshopID, userID, p.UserID)
	return &badge, nil
}
