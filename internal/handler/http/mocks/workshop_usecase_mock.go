package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// MockWorkshopUseCase is a mock implementation of IWorkshopUseCase
type MockWorkshopUseCase struct {
	Err         error
	RegisterErr error

	Workshops  []*entity.Workshop
	Report     entity.DeliveryReport
	Registered []usecasecontract.RegisteredUser

	LastPrincipal entity.Principal
	LastFilter    usecasecontract.WorkshopFilter
	LastInput     usecasecontract.WorkshopInput
	Registrations []string
}

var _ usecasecontract.IWorkshopUseCase = (*MockWorkshopUseCase)(nil)

func NewMockWorkshopUseCase() *MockWorkshopUseCase {
	return &MockWorkshopUseCase{}
}

func (m *MockWorkshopUseCase) find(id string) (*entity.Workshop, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, w := range m.Workshops {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (m *MockWorkshopUseCase) CreateWorkshop(ctx context.Context, p entity.Principal, in usecasecontract.WorkshopInput) (*entity.Workshop, error) {
	m.LastPrincipal = p
	m.LastInput = in
	if m.Err != nil {
		return nil, m.Err
	}
	w := &entity.Workshop{ID: "new-workshop", Name: *in.Name, StartDate: *in.StartDate, EndDate: *in.EndDate, Capacity: *in.Capacity}
	m.Workshops = append(m.Workshops, w)
	return w, nil
}

func (m *MockWorkshopUseCase) GetWorkshop(ctx context.Context, id string) (*entity.Workshop, error) {
	return m.find(id)
}

func (m *MockWorkshopUseCase) ListWorkshops(ctx context.Context, filter usecasecontract.WorkshopFilter) ([]*entity.Workshop, error) {
	m.LastFilter = filter
	return m.Workshops, m.Err
}

func (m *MockWorkshopUseCase) UpdateWorkshop(ctx context.Context, p entity.Principal, id string, in usecasecontract.WorkshopInput) (*entity.Workshop, error) {
	m.LastPrincipal = p
	m.LastInput = in
	return m.find(id)
}

func (m *MockWorkshopUseCase) CancelWorkshop(ctx context.Context, p entity.Principal, id string) error {
	m.LastPrincipal = p
	return m.Err
}

func (m *MockWorkshopUseCase) UncancelWorkshop(ctx context.Context, p entity.Principal, id string, start, end time.Time) (*entity.Workshop, error) {
	m.LastPrincipal = p
	return m.find(id)
}

func (m *MockWorkshopUseCase) SendReminder(ctx context.Context, p entity.Principal, id string) (entity.DeliveryReport, error) {
	m.LastPrincipal = p
	return m.Report, m.Err
}

func (m *MockWorkshopUseCase) Register(ctx context.Context, p entity.Principal, workshopID string) error {
	m.LastPrincipal = p
	if m.RegisterErr != nil {
		return m.RegisterErr
	}
	m.Registrations = append(m.Registrations, workshopID)
	return nil
}

func (m *MockWorkshopUseCase) Unregister(ctx context.Context, p entity.Principal, workshopID string) error {
	m.LastPrincipal = p
	return m.Err
}

func (m *MockWorkshopUseCase) RemoveUser(ctx context.Context, p entity.Principal, userID, workshopID string) error {
	m.LastPrincipal = p
	return m.Err
}

func (m *MockWorkshopUseCase) GetRegisteredUsers(ctx context.Context, p entity.Principal, workshopID string) ([]usecasecontract.RegisteredUser, error) {
	m.LastPrincipal = p
	return m.Registered, m.Err
}
