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

// WorkshopUseCase owns the workshop lifecycle and seat accounting.
type WorkshopUseCase struct {
	workshopRepo contract.IWorkshopRepository
	userRepo     contract.IUserRepository
	notifier     contract.INotifier
	composer     contract.IMessageComposer
	uuidGen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
	cache        contract.IWorkshopCache
	now          func() time.Time
}

var _ usecasecontract.IWorkshopUseCase = (*WorkshopUseCase)(nil)

func NewWorkshopUseCase(
	workshopRepo contract.IWorkshopRepository,
	userRepo contract.IUserRepository,
	notifier contract.INotifier,
	composer contract.IMessageComposer,
	uuidGen contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
) *WorkshopUseCase {
	return &WorkshopUseCase{
		workshopRepo: workshopRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		composer:     composer,
		uuidGen:      uuidGen,
		logger:       logger,
		now:          time.Now,
	}
}

// SetWorkshopCache enables the read-through workshop cache.
func (uc *WorkshopUseCase) SetWorkshopCache(c contract.IWorkshopCache) {
	uc.cache = c
}

func (uc *WorkshopUseCase) CreateWorkshop(ctx context.Context, p entity.Principal, in usecasecontract.WorkshopInput) (*entity.Workshop, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domainerrors.ErrValidation)
	}
	if in.StartDate == nil || in.EndDate == nil {
		return nil, fmt.Errorf("%w: start and end dates are required", domainerrors.ErrValidation)
	}
	if in.Capacity == nil {
		return nil, fmt.Errorf("%w: capacity is required", domainerrors.ErrValidation)
	}

	now := uc.now()
	w := &entity.Workshop{
		ID:            uc.uuidGen.NewUUID(),
		InstructorIDs: []string{p.UserID},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyWorkshopInput(w, in)
	w.InstructorIDs = withInstructor(w.InstructorIDs, p.UserID)
	if err := validateWorkshop(w); err != nil {
		return nil, err
	}
	if err := uc.ensureInstructors(ctx, w.InstructorIDs); err != nil {
		return nil, err
	}
	if err := uc.workshopRepo.CreateWorkshop(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}
	uc.logger.Infof("workshop %s created by %s", w.ID, p.UserID)
	return w, nil
}

// applyWorkshopInput copies every set field of in onto w.
func applyWorkshopInput(w *entity.Workshop, in usecasecontract.WorkshopInput) {
	if in.Name != nil {
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		w.Description = *in.Description
	}
	if in.Translations != nil {
		w.Translations = in.Translations
	}
	if in.StartDate != nil {
		w.StartDate = in.StartDate.UTC()
	}
	if in.EndDate != nil {
		w.EndDate = in.EndDate.UTC()
	}
	if in.Location != nil {
		w.Location = *in.Location
	}
	if in.Capacity != nil {
		w.Capacity = *in.Capacity
	}
	if in.Categories != nil {
		w.Categories = *in.Categories
	}
	if in.InstructorIDs != nil {
		w.InstructorIDs = in.InstructorIDs
	}
	if in.BadgeName != nil {
		w.BadgeName = *in.BadgeName
	}
	if in.BadgeImage != nil {
		w.BadgeImage = *in.BadgeImage
	}
	if in.BgColor != nil {
		w.BgColor = *in.BgColor
	}
}

func withInstructor(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	seen := map[string]bool{}
	for _, v := range append([]string{id}, ids...) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func validateWorkshop(w *entity.Workshop) error {
	switch {
	case w.Name == "":
		return fmt.Errorf("%w: name is required", domainerrors.ErrValidation)
	case w.StartDate.IsZero() || w.EndDate.IsZero():
		return fmt.Errorf("%w: start and end dates are required", domainerrors.ErrValidation)
	case w.EndDate.Before(w.StartDate):
		return fmt.Errorf("%w: end date is before start date", domainerrors.ErrValidation)
	case w.Capacity < 1:
		return fmt.Errorf("%w: capacity must be at least 1", domainerrors.ErrValidation)
	case w.Capacity < w.RegisteredCount:
		return fmt.Errorf("%w: capacity is below the %d registered users", domainerrors.ErrValidation, w.RegisteredCount)
	case !w.Categories.Valid():
		return fmt.Errorf("%w: unknown category value", domainerrors.ErrValidation)
	case len(w.InstructorIDs) == 0:
		return fmt.Errorf("%w: at least one instructor is required", domainerrors.ErrValidation)
	}
	return nil
}

func (uc *WorkshopUseCase) ensureInstructors(ctx context.Context, ids []string) error {
	users, err := uc.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	instructors := map[string]bool{}
	for _, u := range users {
		if u.IsInstructor() {
			instructors[u.ID] = true
		}
	}
	for _, id := range ids {
		if !instructors[id] {
			return fmt.Errorf("%w: %s is not an instructor", domainerrors.ErrValidation, id)
		}
	}
	return nil
}

// GetWorkshop reads through the cache when one is configured.
func (uc *WorkshopUseCase) GetWorkshop(ctx context.Context, id string) (*entity.Workshop, error) {
	if uc.cache != nil {
		if w, ok, err := uc.cache.GetWorkshop(ctx, id); err == nil && ok {
			return w, nil
		} else if err != nil {
			uc.logger.Warnf("workshop cache read failed: %v", err)
		}
	}
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.SetWorkshop(ctx, w); err != nil {
			uc.logger.Warnf("workshop cache write failed: %v", err)
		}
	}
	return w, nil
}

// ListWorkshops filters by status in memory since status depends on the current time.
func (uc *WorkshopUseCase) ListWorkshops(ctx context.Context, filter usecasecontract.WorkshopFilter) ([]*entity.Workshop, error) {
	if !filter.Categories.Valid() {
		return nil, fmt.Errorf("%w: unknown category value", domainerrors.ErrValidation)
	}
	workshops, err := uc.workshopRepo.ListWorkshops(ctx, &contract.WorkshopFilterOptions{
		InstructorID: filter.InstructorID,
		Categories:   filter.Categories,
	})
	if err != nil {
		return nil, err
	}
	if filter.Status == nil {
		return workshops, nil
	}
	now := uc.now()
	out := make([]*entity.Workshop, 0, len(workshops))
	for _, w := range workshops {
		if w.Status(now) == *filter.Status {
			out = append(out, w)
		}
	}
	return out, nil
}

// UpdateWorkshop persists the set fields and, when date or location changed,
// notifies the registrants.
func (uc *WorkshopUseCase) UpdateWorkshop(ctx context.Context, p entity.Principal, id string, in usecasecontract.WorkshopInput) (*entity.Workshop, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	before, err := uc.workshopRepo.GetWorkshopByID(ctx, id)
	if err != nil {
		return nil, err
	}
	after := *before
	applyWorkshopInput(&after, in)
	if err := validateWorkshop(&after); err != nil {
		return nil, err
	}
	if in.InstructorIDs != nil {
		if err := uc.ensureInstructors(ctx, after.InstructorIDs); err != nil {
			return nil, err
		}
	}

	updates := workshopUpdates(in, &after)
	if len(updates) > 0 {
		if err := uc.workshopRepo.UpdateWorkshop(ctx, id, updates); err != nil {
			return nil, err
		}
		uc.invalidate(ctx, id)
	}

	if scheduleChanged(before, &after) {
		uc.notifyChange(ctx, before, &after)
	}
	return uc.workshopRepo.GetWorkshopByID(ctx, id)
}

func workshopUpdates(in usecasecontract.WorkshopInput, w *entity.Workshop) map[string]interface{} {
	u := map[string]interface{}{}
	if in.Name != nil {
		u["name"] = w.Name
	}
	if in.Description != nil {
		u["description"] = w.Description
	}
	if in.Translations != nil {
		u["translations"] = w.Translations
	}
	if in.StartDate != nil {
		u["start_date"] = w.StartDate
	}
	if in.EndDate != nil {
		u["end_date"] = w.EndDate
	}
	if in.Location != nil {
		u["location"] = w.Location
	}
	if in.Capacity != nil {
		u["capacity"] = w.Capacity
	}
	if in.Categories != nil {
		u["categories"] = w.Categories
	}
	if in.InstructorIDs != nil {
		u["instructor_ids"] = w.InstructorIDs
	}
	if in.BadgeName != nil {
		u["badge_name"] = w.BadgeName
	}
	if in.BadgeImage != nil {
		u["badge_image"] = w.BadgeImage
	}
	if in.BgColor != nil {
		u["bg_color"] = w.BgColor
	}
	return u
}

func scheduleChanged(before, after *entity.Workshop) bool {
	return !before.StartDate.Equal(after.StartDate) ||
		!before.EndDate.Equal(after.EndDate) ||
		before.Location != after.Location
}

func (uc *WorkshopUseCase) notifyChange(ctx context.Context, before, after *entity.Workshop) {
	registrants, err := uc.userRepo.GetRegisteredUsers(ctx, after.ID)
	if err != nil {
		uc.logger.Errorf("failed to load registrants of %s: %v", after.ID, err)
		return
	}
	var messages []entity.Message
	for _, u := range registrants {
		if !u.EmailNotifications.Changes {
			continue
		}
		msg, err := uc.composer.UpdateEmail(u, before, after)
		if err != nil {
			uc.logger.Errorf("failed to render update email for %s: %v", u.ID, err)
			continue
		}
		messages = append(messages, msg)
	}
	uc.notifier.NotifyAsync(messages)
	uc.pushNotification(ctx, userIDs(registrants),
		fmt.Sprintf("The details of %s have changed", after.DisplayName()), workshopLink(after.ID))
}

// CancelWorkshop loads the registrants, flips the canceled flag so no new seat can be taken,
// then notifies and releases them. Calling it again on a canceled workshop releases any
// registration a failed earlier call left behind.
func (uc *WorkshopUseCase) CancelWorkshop(ctx context.Context, p entity.Principal, id string) error {
	if !p.IsInstructor() {
		return domainerrors.ErrForbidden
	}
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, id)
	if err != nil {
		return err
	}
	registrants, err := uc.userRepo.GetRegisteredUsers(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load registrants: %w", err)
	}
	ok, err := uc.workshopRepo.MarkCanceled(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		if released, err := uc.userRepo.RemoveWorkshopFromAll(ctx, id); err != nil {
			uc.logger.Errorf("failed to release registrations of canceled workshop %s: %v", id, err)
		} else if released > 0 {
			uc.logger.Warnf("released %d leftover registrations of canceled workshop %s", released, id)
		}
		return domainerrors.ErrAlreadyCanceled
	}
	uc.invalidate(ctx, id)

	messages := make([]entity.Message, 0, len(registrants))
	for _, u := range registrants {
		msg, err := uc.composer.CancellationEmail(u, w)
		if err != nil {
			uc.logger.Errorf("failed to render cancellation email for %s: %v", u.ID, err)
			continue
		}
		messages = append(messages, msg)
	}
	uc.notifier.NotifyAsync(messages)
	uc.pushNotification(ctx, userIDs(registrants),
		fmt.Sprintf("%s has been canceled", w.DisplayName()), workshopLink(id))

	released, err := uc.userRepo.RemoveWorkshopFromAll(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to release registrations: %w", err)
	}
	uc.logger.Infof("workshop %s canceled by %s, %d registrations released", id, p.UserID, released)
	return nil
}

// UncancelWorkshop reopens a canceled workshop with new dates. Former registrants are not restored.
func (uc *WorkshopUseCase) UncancelWorkshop(ctx context.Context, p entity.Principal, id string, start, end time.Time) (*entity.Workshop, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", domainerrors.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", domainerrors.ErrValidation)
	}
	if _, err := uc.workshopRepo.GetWorkshopByID(ctx, id); err != nil {
		return nil, err
	}
	ok, err := uc.workshopRepo.MarkUncanceled(ctx, id, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrNotCanceled
	}
	uc.invalidate(ctx, id)
	return uc.workshopRepo.GetWorkshopByID(ctx, id)
}

// SendReminder claims the reminder flag, then mails every opted-in registrant and waits for the results.
func (uc *WorkshopUseCase) SendReminder(ctx context.Context, p entity.Principal, id string) (entity.DeliveryReport, error) {
	if !p.IsInstructor() {
		return entity.DeliveryReport{}, domainerrors.ErrForbidden
	}
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, id)
	if err != nil {
		return entity.DeliveryReport{}, err
	}
	if w.Canceled {
		return entity.DeliveryReport{}, domainerrors.ErrAlreadyCanceled
	}
	if w.ReminderSent {
		return entity.DeliveryReport{}, domainerrors.ErrAlreadyReminded
	}
	ok, err := uc.workshopRepo.MarkReminderSent(ctx, id)
	if err != nil {
		return entity.DeliveryReport{}, err
	}
	if !ok {
		return entity.DeliveryReport{}, domainerrors.ErrAlreadyReminded
	}
	uc.invalidate(ctx, id)

	registrants, err := uc.userRepo.GetRegisteredUsers(ctx, id)
	if err != nil {
		return entity.DeliveryReport{}, fmt.Errorf("failed to load registrants: %w", err)
	}
	var messages []entity.Message
	for _, u := range registrants {
		if !u.EmailNotifications.Workshops {
			continue
		}
		msg, err := uc.composer.ReminderEmail(u, w)
		if err != nil {
			uc.logger.Errorf("failed to render reminder email for %s: %v", u.ID, err)
			continue
		}
		messages = append(messages, msg)
	}
	report := uc.notifier.Notify(ctx, messages)
	uc.logger.Infof("reminder for %s: %d sent, %d failed", id, report.Sent(), report.Failed())
	return report, nil
}

// Register takes a seat. The user reference is added first; if the seat
// increment then loses a race the reference is pulled back.
func (uc *WorkshopUseCase) Register(ctx context.Context, p entity.Principal, workshopID string) error {
	user, err := uc.userRepo.GetUserByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID)
	if err != nil {
		return err
	}
	if w.Status(uc.now()) != entity.WorkshopStatusFuture {
		return domainerrors.ErrRegistrationClosed
	}
	if user.IsRegisteredFor(workshopID) {
		return domainerrors.ErrAlreadyRegistered
	}
	if w.IsFull() {
		return domainerrors.ErrWorkshopFull
	}

	added, err := uc.userRepo.AddRegisteredWorkshop(ctx, user.ID, workshopID)
	if err != nil {
		return err
	}
	if !added {
		return domainerrors.ErrAlreadyRegistered
	}
	seated, err := uc.workshopRepo.IncrementRegisteredCount(ctx, workshopID)
	if err != nil || !seated {
		if _, rbErr := uc.userRepo.RemoveRegisteredWorkshop(ctx, user.ID, workshopID); rbErr != nil {
			uc.logger.Errorf("failed to roll back registration of %s in %s: %v", user.ID, workshopID, rbErr)
		}
		if err != nil {
			return err
		}
		return uc.seatRefusal(ctx, workshopID)
	}
	uc.invalidate(ctx, workshopID)
	return nil
}

// seatRefusal tells a full workshop apart from one canceled meanwhile.
func (uc *WorkshopUseCase) seatRefusal(ctx context.Context, workshopID string) error {
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID)
	if err == nil && w.Canceled {
		return domainerrors.ErrRegistrationClosed
	}
	return domainerrors.ErrWorkshopFull
}

func (uc *WorkshopUseCase) Unregister(ctx context.Context, p entity.Principal, workshopID string) error {
	if _, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID); err != nil {
		return err
	}
	removed, err := uc.userRepo.RemoveRegisteredWorkshop(ctx, p.UserID, workshopID)
	if err != nil {
		return err
	}
	if !removed {
		return domainerrors.ErrNotRegistered
	}
	if err := uc.workshopRepo.DecrementRegisteredCount(ctx, workshopID); err != nil {
		return err
	}
	uc.invalidate(ctx, workshopID)
	return nil
}

// RemoveUser lets an instructor free a seat unless the user already earned the badge.
func (uc *WorkshopUseCase) RemoveUser(ctx context.Context, p entity.Principal, userID, workshopID string) error {
	if !p.IsInstructor() {
		return domainerrors.ErrForbidden
	}
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	w, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID)
	if err != nil {
		return err
	}
	if !user.IsRegisteredFor(workshopID) {
		return domainerrors.ErrNotRegistered
	}
	if user.HasBadgeFor(workshopID) {
		return domainerrors.ErrHasBadge
	}
	removed, err := uc.userRepo.RemoveRegisteredWorkshop(ctx, userID, workshopID)
	if err != nil {
		return err
	}
	if !removed {
		return domainerrors.ErrNotRegistered
	}
	if err := uc.workshopRepo.DecrementRegisteredCount(ctx, workshopID); err != nil {
		return err
	}
	uc.invalidate(ctx, workshopID)
	uc.pushNotification(ctx, []string{userID},
		fmt.Sprintf("You have been removed from %s", w.DisplayName()), workshopLink(workshopID))
	return nil
}

func (uc *WorkshopUseCase) GetRegisteredUsers(ctx context.Context, p entity.Principal, workshopID string) ([]usecasecontract.RegisteredUser, error) {
	if !p.IsInstructor() {
		return nil, domainerrors.ErrForbidden
	}
	if _, err := uc.workshopRepo.GetWorkshopByID(ctx, workshopID); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetRegisteredUsers(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	out := make([]usecasecontract.RegisteredUser, 0, len(users))
	for _, u := range users {
		out = append(out, usecasecontract.RegisteredUser{User: u, HasBadge: u.HasBadgeFor(workshopID)})
	}
	return out, nil
}

func (uc *WorkshopUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateWorkshop(ctx, id); err != nil {
		uc.logger.Warnf("failed to invalidate workshop %s: %v", id, err)
	}
}

func (uc *WorkshopUseCase) pushNotification(ctx context.Context, ids []string, message, link string) {
	pushNotification(ctx, uc.userRepo, uc.uuidGen, uc.logger, uc.now(), ids, message, link)
}

// pushNotification is best effort; failures are logged.
func pushNotification(ctx context.Context, repo contract.IUserRepository, ids contract.IUUIDGenerator, logger usecasecontract.IAppLogger, now time.Time, userIDs []string, message, link string) {
	if len(userIDs) == 0 {
		return
	}
	n := entity.Notification{ID: ids.NewUUID(), Message: message, Link: link, CreatedAt: now}
	if err := repo.PushNotification(ctx, userIDs, n); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("failed to push notification to %d users: %v", len(userIDs), err)
	}
}

func userIDs(users []*entity.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func workshopLink(id string) string {
	return "/workshops/" + id
}
