package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	passwordservice "github.com/mikiasgoitom/GlitchLab/internal/infrastructure/password_service"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/validator"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	uc        *UserUsecase
	users     *memUserRepo
	tokens    *memTokenRepo
	reviews   *memReviewRepo
	workshops *memWorkshopRepo
	mailer    *recordingMailer
	cache     *memCache
	clock     time.Time
}

func newUserFixture(t *testing.T, users ...*entity.User) *userFixture {
	t.Helper()
	f := &userFixture{
		users:     newMemUserRepo(users...),
		tokens:    newMemTokenRepo(),
		reviews:   newMemReviewRepo(),
		workshops: newMemWorkshopRepo(),
		mailer:    &recordingMailer{},
		cache:     newMemCache(),
		clock:     testNow,
	}
	f.uc = NewUserUsecase(
		f.users, f.tokens, f.reviews, f.workshops,
		passwordservice.NewHasherWithCost(bcrypt.MinCost),
		fakeJWT{}, stubComposer{}, f.mailer, nopLogger{}, fakeConfig{},
		validator.NewValidator(), &seqUUID{}, &fixedRandom{code: "123456"},
	)
	f.uc.SetCache(f.cache)
	f.uc.now = func() time.Time { return f.clock }
	return f
}

// withPassword returns a user whose stored hash matches password.
func withPassword(t *testing.T, id string, role entity.UserRole, password string) *entity.User {
	t.Helper()
	hash, err := passwordservice.NewHasherWithCost(bcrypt.MinCost).HashPassword(password)
	require.NoError(t, err)
	u := newUser(id, role)
	u.PasswordHash = hash
	return u
}

func TestLogin(t *testing.T) {
	f := newUserFixture(t, withPassword(t, "u1", entity.UserRoleUser, "password123"))
	ctx := context.Background()

	user, token, err := f.uc.Login(ctx, " U1@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "session:u1:user", token)

	_, _, err = f.uc.Login(ctx, "u1@example.com", "wrong-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, _, err = f.uc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func resetParams(t *testing.T, link string) (string, string) {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/reset-password", u.Path)
	return u.Query().Get("verifier"), u.Query().Get("token")
}

func TestPasswordResetFlow(t *testing.T) {
	f := newUserFixture(t, withPassword(t, "u1", entity.UserRoleUser, "password123"))
	ctx := context.Background()

	require.NoError(t, f.uc.ForgotPassword(ctx, "u1@example.com"))
	link := f.mailer.last().HTML
	require.True(t, strings.HasPrefix(link, "http://app.test/reset-password?"))
	verifier, token := resetParams(t, link)

	err := f.uc.ResetPassword(ctx, verifier, "not-the-token", "newpassword1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	err = f.uc.ResetPassword(ctx, verifier, token, "short")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, f.uc.ResetPassword(ctx, verifier, token, "newpassword1"))
	_, _, err = f.uc.Login(ctx, "u1@example.com", "newpassword1")
	assert.NoError(t, err)

	err = f.uc.ResetPassword(ctx, verifier, token, "anotherpass1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestPasswordReset_ExpiredAndSuperseded(t *testing.T) {
	f := newUserFixture(t, withPassword(t, "u1", entity.UserRoleUser, "password123"))
	ctx := context.Background()

	require.NoError(t, f.uc.ForgotPassword(ctx, "u1@example.com"))
	firstVerifier, firstToken := resetParams(t, f.mailer.last().HTML)
	require.NoError(t, f.uc.ForgotPassword(ctx, "u1@example.com"))
	verifier, token := resetParams(t, f.mailer.last().HTML)

	err := f.uc.ResetPassword(ctx, firstVerifier, firstToken, "newpassword1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	f.clock = testNow.Add(16 * time.Minute)
	err = f.uc.ResetPassword(ctx, verifier, token, "newpassword1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newUserFixture(t)
	require.NoError(t, f.uc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.mailer.sent)
}

func TestLoginWithOAuth_CreatesOnce(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	first, token, err := f.uc.LoginWithOAuth(ctx, "Grace", "Hopper", "Grace@Example.com")
	require.NoError(t, err)
	assert.True(t, first.IsVerified)
	assert.Equal(t, entity.UserRoleUser, first.Role)
	assert.Equal(t, "session:"+first.ID+":user", token)

	second, _, err := f.uc.LoginWithOAuth(ctx, "Grace", "Hopper", "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestChangePassword(t *testing.T) {
	u := withPassword(t, "u1", entity.UserRoleUser, "password123")
	f := newUserFixture(t, u)
	ctx := context.Background()

	err := f.uc.ChangePassword(ctx, principalOf(u), "wrong-current", "newpassword1")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	require.NoError(t, f.uc.ChangePassword(ctx, principalOf(u), "password123", "newpassword1"))
	_, _, err = f.uc.Login(ctx, "u1@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestUpdateProfile_InstructorFieldsIgnoredForUsers(t *testing.T) {
	u := newUser("u1", entity.UserRoleUser)
	inst := newUser("inst", entity.UserRoleInstructor)
	f := newUserFixture(t, u, inst)
	ctx := context.Background()
	update := usecasecontract.ProfileUpdate{Name: ptr(" Ada "), Website: ptr("https://ada.dev")}

	got, err := f.uc.UpdateProfile(ctx, principalOf(u), update)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Empty(t, got.Website)

	got, err = f.uc.UpdateProfile(ctx, instructor, update)
	require.NoError(t, err)
	assert.Equal(t, "https://ada.dev", got.Website)

	_, err = f.uc.UpdateProfile(ctx, principalOf(u), usecasecontract.ProfileUpdate{Surname: ptr("  ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestPreferences(t *testing.T) {
	u := newUser("u1", entity.UserRoleUser)
	f := newUserFixture(t, u)
	ctx := context.Background()

	got, err := f.uc.UpdateNotificationPreferences(ctx, principalOf(u), entity.EmailNotifications{Workshops: false, Changes: true})
	require.NoError(t, err)
	assert.False(t, got.EmailNotifications.Workshops)
	assert.True(t, got.EmailNotifications.Changes)

	got, err = f.uc.UpdateEmailLanguage(ctx, principalOf(u), "it")
	require.NoError(t, err)
	assert.Equal(t, entity.LanguageIT, got.EmailLanguage)

	_, err = f.uc.UpdateEmailLanguage(ctx, principalOf(u), "de")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestNotifications(t *testing.T) {
	u := newUser("u1", entity.UserRoleUser)
	f := newUserFixture(t, u)
	ctx := context.Background()

	empty, err := f.uc.GetNotifications(ctx, principalOf(u))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, f.users.PushNotification(ctx, []string{"u1"}, entity.Notification{ID: "n1", Message: "hello"}))
	require.NoError(t, f.uc.MarkNotificationsRead(ctx, principalOf(u)))

	got, err := f.uc.GetNotifications(ctx, principalOf(u))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Read)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	u := withPassword(t, "u1", entity.UserRoleUser, "password123")
	u.RegisteredWorkshops = []string{"w1", "w2"}
	f := newUserFixture(t, u)
	ctx := context.Background()
	w1, w2 := futureWorkshop("w1", 5), pastWorkshop("w2")
	w1.RegisteredCount, w2.RegisteredCount = 3, 1
	require.NoError(t, f.workshops.CreateWorkshop(ctx, w1))
	require.NoError(t, f.workshops.CreateWorkshop(ctx, w2))
	require.NoError(t, f.reviews.CreateReview(ctx, &entity.Review{ID: "r1", UserID: "u1", WorkshopID: "w2", Featured: true}))
	require.NoError(t, f.reviews.CreateReview(ctx, &entity.Review{ID: "r2", UserID: "u9", WorkshopID: "w2"}))

	err := f.uc.DeleteAccount(ctx, principalOf(u), "wrong-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.NotNil(t, f.users.get("u1"))

	require.NoError(t, f.uc.DeleteAccount(ctx, principalOf(u), "password123"))
	assert.Nil(t, f.users.get("u1"))
	assert.Equal(t, 2, f.workshops.get("w1").RegisteredCount)
	assert.Zero(t, f.workshops.get("w2").RegisteredCount)

	left, err := f.reviews.GetReviewsByWorkshop(ctx, "w2")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "r2", left[0].ID)
	assert.ElementsMatch(t, []string{"workshop:w1", "workshop:w2", "featured"}, f.cache.invalidated)
}

func TestDeleteAccount_InstructorLeavesWorkshops(t *testing.T) {
	inst := withPassword(t, "inst", entity.UserRoleInstructor, "password123")
	f := newUserFixture(t, inst)
	ctx := context.Background()
	solo, shared, other := futureWorkshop("w1", 5), futureWorkshop("w2", 5), futureWorkshop("w3", 5)
	shared.InstructorIDs = []string{"inst", "inst2"}
	other.InstructorIDs = []string{"inst2"}
	for _, w := range []*entity.Workshop{solo, shared, other} {
		require.NoError(t, f.workshops.CreateWorkshop(ctx, w))
	}

	require.NoError(t, f.uc.DeleteAccount(ctx, principalOf(inst), "password123"))

	assert.Nil(t, f.users.get("inst"))
	assert.Empty(t, f.workshops.get("w1").InstructorIDs)
	assert.Equal(t, []string{"inst2"}, f.workshops.get("w2").InstructorIDs)
	assert.Equal(t, []string{"inst2"}, f.workshops.get("w3").InstructorIDs)
	assert.ElementsMatch(t, []string{"workshop:w1", "workshop:w2"}, f.cache.invalidated)
}

func TestInstructors(t *testing.T) {
	u := newUser("u1", entity.UserRoleUser)
	f := newUserFixture(t, u, newUser("inst", entity.UserRoleInstructor))
	ctx := context.Background()
	in := usecasecontract.RegisterInput{
		Name:        "Linus",
		Surname:     "T",
		Email:       "linus@example.com",
		Password:    "password123",
		Description: "kernel hacker",
	}

	_, err := f.uc.CreateInstructor(ctx, principalOf(u), in)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	created, err := f.uc.CreateInstructor(ctx, instructor, in)
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleInstructor, created.Role)
	assert.True(t, created.IsVerified)
	assert.Equal(t, "kernel hacker", created.Description)
	assert.Equal(t, entity.LanguageEN, created.EmailLanguage)

	_, err = f.uc.CreateInstructor(ctx, instructor, in)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)

	list, err := f.uc.ListInstructors(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
