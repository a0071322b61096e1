package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// MockBadgeUseCase is a mock implementation of IBadgeUseCase
type MockBadgeUseCase struct {
	Err error

	LastPrincipal  entity.Principal
	LastUserID     string
	LastWorkshopID string
}

var _ usecasecontract.IBadgeUseCase = (*MockBadgeUseCase)(nil)

func NewMockBadgeUseCase() *MockBadgeUseCase {
	return &MockBadgeUseCase{}
}

func (m *MockBadgeUseCase) AwardBadge(ctx context.Context, p entity.Principal, userID, workshopID string) (*entity.Badge, error) {
	m.LastPrincipal = p
	m.LastUserID = userID
	m.LastWorkshopID = workshopID
	if m.Err != nil {
		return nil, m.Err
	}
	return &entity.Badge{
		WorkshopID: workshopID,
		Name:       "Badge " + workshopID,
		Date:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		AwardedBy:  p.UserID,
	}, nil
}
