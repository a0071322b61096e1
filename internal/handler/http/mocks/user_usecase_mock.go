package mocks

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the IUserUseCase interface
type MockUserUsecase struct {
	// Control mock behavior; a non-nil error is returned by the matching call
	LoginErr          error
	ForgotPasswordErr error
	ResetPasswordErr  error
	GetByIDErr        error
	UpdateErr         error
	DeleteErr         error
	InstructorErr     error

	// Return values
	MockUser    entity.User
	MockToken   string
	Instructors []*entity.User

	// Recorded inputs
	LastProfileUpdate usecasecontract.ProfileUpdate
	LastPrincipal     entity.Principal
	LastRegister      usecasecontract.RegisterInput
}

var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:            "mock-user-id",
			Name:          "Ada",
			Surname:       "Lovelace",
			Email:         "ada@example.com",
			Role:          entity.UserRoleUser,
			IsVerified:    true,
			EmailLanguage: entity.LanguageEN,
		},
		MockToken: "mock_session_token",
	}
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.LoginErr != nil {
		return nil, "", m.LoginErr
	}
	return &m.MockUser, m.MockToken, nil
}

func (m *MockUserUsecase) ForgotPassword(ctx context.Context, email string) error {
	return m.ForgotPasswordErr
}

func (m *MockUserUsecase) ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error {
	return m.ResetPasswordErr
}

func (m *MockUserUsecase) LoginWithOAuth(ctx context.Context, name, surname, email string) (*entity.User, string, error) {
	if m.LoginErr != nil {
		return nil, "", m.LoginErr
	}
	return &m.MockUser, m.MockToken, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	u := m.MockUser
	u.ID = userID
	return &u, nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, p entity.Principal, update usecasecontract.ProfileUpdate) (*entity.User, error) {
	m.LastPrincipal = p
	m.LastProfileUpdate = update
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if update.Name != nil {
		m.MockUser.Name = *update.Name
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) ChangePassword(ctx context.Context, p entity.Principal, currentPassword, newPassword string) error {
	m.LastPrincipal = p
	return m.UpdateErr
}

func (m *MockUserUsecase) UpdateNotificationPreferences(ctx context.Context, p entity.Principal, prefs entity.EmailNotifications) (*entity.User, error) {
	m.LastPrincipal = p
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.MockUser.EmailNotifications = prefs
	return &m.MockUser, nil
}

func (m *MockUserUsecase) UpdateEmailLanguage(ctx context.Context, p entity.Principal, lang string) (*entity.User, error) {
	m.LastPrincipal = p
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.MockUser.EmailLanguage = entity.Language(lang)
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetNotifications(ctx context.Context, p entity.Principal) ([]entity.Notification, error) {
	m.LastPrincipal = p
	return m.MockUser.Notifications, m.GetByIDErr
}

func (m *MockUserUsecase) MarkNotificationsRead(ctx context.Context, p entity.Principal) error {
	m.LastPrincipal = p
	return m.UpdateErr
}

func (m *MockUserUsecase) DeleteAccount(ctx context.Context, p entity.Principal, password string) error {
	m.LastPrincipal = p
	return m.DeleteErr
}

func (m *MockUserUsecase) ListInstructors(ctx context.Context) ([]*entity.User, error) {
	return m.Instructors, m.InstructorErr
}

func (m *MockUserUsecase) CreateInstructor(ctx context.Context, p entity.Principal, in usecasecontract.RegisterInput) (*entity.User, error) {
	m.LastPrincipal = p
	m.LastRegister = in
	if m.InstructorErr != nil {
		return nil, m.InstructorErr
	}
	return &entity.User{ID: "new-instructor", Name: in.Name, Surname: in.Surname, Email: in.Email, Role: in.Role}, nil
}
