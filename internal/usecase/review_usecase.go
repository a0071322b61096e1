package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

type ReviewUseCase struct {
	reviewRepo   contract.IReviewRepository
	workshopRepo contract.IWorkshopRepository
	userRepo     contract.IUserRepository
	uuidGen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
	cache        contract.IWorkshopCache
	now          func() time.Time
}

var _ usecasecontract.IReviewUseCase = (*ReviewUseCase)(nil)

func NewReviewUseCase(reviewRepo contract.IReviewRepository, workshopRepo contract.IWorkshopRepository, userRepo contract.IUserRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:   reviewRepo,
		workshopRepo: workshopRepo,
		userRepo:     userRepo,
		uuidGen:      uuidGen,
		logger:       logger,
		now:          time.Now,
	}
}

// SetReviewCache enables caching of the featured review list.
func (uc *ReviewUseCase) SetReviewCache(c contract.IWorkshopCache) {
	uc.cache = c
}

func validateStamp(s entity.Stamp) error {
	if strings.TrimSpace(s.CircleColor) == "" || strings.TrimSpace(s.CircleFont) == "" || strings.TrimSpace(s.CircleText) == "" {
		return fmt.Errorf("%w: circle color, font and text are required", domainerrors.ErrValidation)
	}
	return nil
}

// requirePast returns ErrNotPastYet unless the workshop has ended and was not canceled.
func (uc *ReviewUseCase) requirePast(ctx context.Context, workshopID string) (*entity.Workshop, error) {
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	if w.Status(uc.now()) != entity.WorkshopStatusPast {
		return nil, domainerrors.ErrNotPastYet
	}
	return w, nil
}

func (uc *ReviewUseCase) CreateReview(ctx context.Context, p entity.Principal, workshopID string, stamp entity.Stamp, comment string) (*entity.Review, error) {
	if p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	if err := validateStamp(stamp); err != nil {
		return nil, err
	}
	w, err := uc.requirePast(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsRegisteredFor(workshopID) {
		return nil, domainerrors.ErrNotRegistered
	}
	if _, err := uc.reviewRepo.GetReviewByUserAndWorkshop(ctx, user.ID, workshopID); err == nil {
		return nil, domainerrors.ErrDuplicateReview
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := uc.now()
	review := &entity.Review{
		ID:           uc.uuidGen.NewUUID(),
		UserID:       user.ID,
		WorkshopID:   workshopID,
		AuthorName:   user.FullName(),
		Stamp:        stamp,
		Comment:      strings.TrimSpace(comment),
		WorkshopName: w.DisplayName(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) GetReview(ctx context.Context, id string) (*entity.Review, error) {
	return uc.reviewRepo.GetReviewByID(ctx, id)
}

// ownReview loads a review the principal may still edit.
func (uc *ReviewUseCase) ownReview(ctx context.Context, p entity.Principal, id string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !review.IsOwnedBy(p.UserID) {
		return nil, domainerrors.ErrForbidden
	}
	if _, err := uc.requirePast(ctx, review.WorkshopID); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) UpdateReview(ctx context.Context, p entity.Principal, id string, stamp *entity.Stamp, comment *string) (*entity.Review, error) {
	review, err := uc.ownReview(ctx, p, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if stamp != nil {
		if err := validateStamp(*stamp); err != nil {
			return nil, err
		}
		updates["circle_color"] = stamp.CircleColor
		updates["circle_font"] = stamp.CircleFont
		updates["circle_text"] = stamp.CircleText
	}
	if comment != nil {
		updates["comment"] = strings.TrimSpace(*comment)
	}
	if len(updates) == 0 {
		return review, nil
	}
	if err := uc.reviewRepo.UpdateReview(ctx, id, updates); err != nil {
		return nil, err
	}
	if review.Featured {
		uc.invalidateFeatured(ctx)
	}
	return uc.reviewRepo.GetReviewByID(ctx, id)
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, p entity.Principal, id string) error {
	review, err := uc.ownReview(ctx, p, id)
	if err != nil {
		return err
	}
	if err := uc.reviewRepo.DeleteReview(ctx, id); err != nil {
		return err
	}
	if review.Featured {
		uc.invalidateFeatured(ctx)
	}
	return nil
}

// FeatureReview toggles the featured flag and fills in a missing workshop name.
func (uc *ReviewUseCase) FeatureReview(ctx context.Context, p entity.Principal, id string, featured bool) (*entity.Review, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	review, err := uc.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"featured": featured}
	if featured && review.WorkshopName == "" {
		name := entity.UnknownWorkshopName
		if w, err := uc.workshopRepo.GetWorkshopByID(ctx, review.WorkshopID); err == nil {
			name = w.DisplayName()
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		updates["workshop_name"] = name
	}
	if err := uc.reviewRepo.UpdateReview(ctx, id, updates); err != nil {
		return nil, err
	}
	uc.invalidateFeatured(ctx)
	return uc.reviewRepo.GetReviewByID(ctx, id)
}

func (uc *ReviewUseCase) GetWorkshopReviews(ctx context.Context, workshopID string) ([]*entity.Review, error) {
	return uc.reviewRepo.GetReviewsByWorkshop(ctx, workshopID)
}

func (uc *ReviewUseCase) GetFeaturedReviews(ctx context.Context) ([]*entity.Review, error) {
	if uc.cache != nil {
		if reviews, ok, err := uc.cache.GetFeaturedReviews(ctx); err == nil && ok {
			return reviews, nil
		} else if err != nil {
			uc.logger.Warnf("featured reviews cache read failed: %v", err)
		}
	}
	reviews, err := uc.reviewRepo.GetFeaturedReviews(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetFeaturedReviews(ctx, reviews); err != nil {
			uc.logger.Warnf("featured reviews cache write failed: %v", err)
		}
	}
	return reviews, nil
}

func (uc *ReviewUseCase) GetUserReviews(ctx context.Context, p entity.Principal) ([]*entity.Review, error) {
	return uc.reviewRepo.GetReviewsByUser(ctx, p.UserID)
}

// CheckReview returns the principal's review for the workshop, or nil when there is none.
func (uc *ReviewUseCase) CheckReview(ctx context.Context, p entity.Principal, workshopID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetReviewByUserAndWorkshop(ctx, p.UserID, workshopID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) invalidateFeatured(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateFeaturedReviews(ctx); err != nil {
		uc.logger.Warnf("failed to invalidate featured reviews: %v", err)
	}
}
