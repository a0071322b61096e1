package mocks

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// MockReviewUseCase is a mock implementation of IReviewUseCase
type MockReviewUseCase struct {
	Err error

	Reviews  []*entity.Review
	Featured []*entity.Review
	// Checked is what CheckReview returns; nil means the caller has not reviewed.
	Checked *entity.Review

	LastPrincipal  entity.Principal
	LastWorkshopID string
	LastStamp      *entity.Stamp
	LastComment    *string
	LastFeatured   *bool
	FeaturedCalls  int
}

var _ usecasecontract.IReviewUseCase = (*MockReviewUseCase)(nil)

func NewMockReviewUseCase() *MockReviewUseCase {
	return &MockReviewUseCase{}
}

func (m *MockReviewUseCase) find(id string) (*entity.Review, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (m *MockReviewUseCase) CreateReview(ctx context.Context, p entity.Principal, workshopID string, stamp entity.Stamp, comment string) (*entity.Review, error) {
	m.LastPrincipal = p
	m.LastWorkshopID = workshopID
	m.LastStamp = &stamp
	m.LastComment = &comment
	if m.Err != nil {
		return nil, m.Err
	}
	r := &entity.Review{ID: "new-review", UserID: p.UserID, WorkshopID: workshopID, Stamp: stamp, Comment: comment}
	m.Reviews = append(m.Reviews, r)
	return r, nil
}

func (m *MockReviewUseCase) GetReview(ctx context.Context, id string) (*entity.Review, error) {
	return m.find(id)
}

func (m *MockReviewUseCase) UpdateReview(ctx context.Context, p entity.Principal, id string, stamp *entity.Stamp, comment *string) (*entity.Review, error) {
	m.LastPrincipal = p
	m.LastStamp = stamp
	m.LastComment = comment
	return m.find(id)
}

func (m *MockReviewUseCase) DeleteReview(ctx context.Context, p entity.Principal, id string) error {
	m.LastPrincipal = p
	_, err := m.find(id)
	return err
}

func (m *MockReviewUseCase) FeatureReview(ctx context.Context, p entity.Principal, id string, featured bool) (*entity.Review, error) {
	m.LastPrincipal = p
	m.LastFeatured = &featured
	r, err := m.find(id)
	if err != nil {
		return nil, err
	}
	r.Featured = featured
	return r, nil
}

func (m *MockReviewUseCase) GetWorkshopReviews(ctx context.Context, workshopID string) ([]*entity.Review, error) {
	m.LastWorkshopID = workshopID
	return m.Reviews, m.Err
}

func (m *MockReviewUseCase) GetFeaturedReviews(ctx context.Context) ([]*entity.Review, error) {
	m.FeaturedCalls++
	return m.Featured, m.Err
}

func (m *MockReviewUseCase) GetUserReviews(ctx context.Context, p entity.Principal) ([]*entity.Review, error) {
	m.LastPrincipal = p
	return m.Reviews, m.Err
}

func (m *MockReviewUseCase) CheckReview(ctx context.Context, p entity.Principal, workshopID string) (*entity.Review, error) {
	m.LastPrincipal = p
	m.LastWorkshopID = workshopID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Checked, nil
}
