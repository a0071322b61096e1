package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
)

// In-memory stand-ins for the Mongo repositories. Each method holds the lock
// for its whole body so conditional updates behave like single-document updates.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	// one-shot failures
	createErr     error
	registeredErr error
	releaseErr    error
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.RegisteredWorkshops = append([]string(nil), u.RegisteredWorkshops...)
	c.Badges = append([]entity.Badge(nil), u.Badges...)
	c.Notifications = append([]entity.Notification(nil), u.Notifications...)
	return &c
}

func (r *memUserRepo) get(id string) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.createErr; err != nil {
		r.createErr = nil
		return err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domainerrors.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user %w", domainerrors.ErrNotFound)
}

func (r *memUserRepo) filter(keep func(*entity.User) bool) []*entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.User{}
	for _, u := range r.users {
		if keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memUserRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return r.filter(func(u *entity.User) bool { return set[u.ID] }), nil
}

func (r *memUserRepo) GetUsersByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error) {
	return r.filter(func(u *entity.User) bool { return u.Role == role }), nil
}

func (r *memUserRepo) GetRegisteredUsers(ctx context.Context, workshopID string) ([]*entity.User, error) {
	r.mu.Lock()
	if err := r.registeredErr; err != nil {
		r.registeredErr = nil
		r.mu.Unlock()
		return nil, err
	}
	r.mu.Unlock()
	return r.filter(func(u *entity.User) bool { return u.IsRegisteredFor(workshopID) }), nil
}

func (r *memUserRepo) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "surname":
			u.Surname = v.(string)
		case "avatar":
			u.Avatar = v.(string)
		case "description":
			u.Description = v.(string)
		case "website":
			u.Website = v.(string)
		case "linkedin":
			u.Linkedin = v.(string)
		case "password_hash":
			u.PasswordHash = v.(string)
		case "email_language":
			u.EmailLanguage = v.(entity.Language)
		case "email_notifications":
			u.EmailNotifications = v.(entity.EmailNotifications)
		default:
			return fmt.Errorf("unexpected user field %q", k)
		}
	}
	return nil
}

func (r *memUserRepo) UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error {
	return r.UpdateUserFields(ctx, id, map[string]interface{}{"password_hash": hashedPassword})
}

func (r *memUserRepo) AddRegisteredWorkshop(ctx context.Context, userID, workshopID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.IsRegisteredFor(workshopID) {
		return false, nil
	}
	u.RegisteredWorkshops = append(u.RegisteredWorkshops, workshopID)
	return true, nil
}

func pull(ids []string, id string) ([]string, bool) {
	out := ids[:0:0]
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	return out, found
}

func (r *memUserRepo) RemoveRegisteredWorkshop(ctx context.Context, userID, workshopID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	var found bool
	u.RegisteredWorkshops, found = pull(u.RegisteredWorkshops, workshopID)
	return found, nil
}

func (r *memUserRepo) RemoveWorkshopFromAll(ctx context.Context, workshopID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.releaseErr; err != nil {
		r.releaseErr = nil
		return 0, err
	}
	var n int64
	for _, u := range r.users {
		var found bool
		u.RegisteredWorkshops, found = pull(u.RegisteredWorkshops, workshopID)
		if found {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) AddBadge(ctx context.Context, userID string, badge entity.Badge) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.HasBadgeFor(badge.WorkshopID) {
		return false, nil
	}
	u.Badges = append(u.Badges, badge)
	return true, nil
}

func (r *memUserRepo) PushNotification(ctx context.Context, userIDs []string, n entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			u.Notifications = append([]entity.Notification{n}, u.Notifications...)
			if len(u.Notifications) > entity.MaxNotifications {
				u.Notifications = u.Notifications[:entity.MaxNotifications]
			}
		}
	}
	return nil
}

func (r *memUserRepo) MarkNotificationsRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	for i := range u.Notifications {
		u.Notifications[i].Read = true
	}
	return nil
}

func (r *memUserRepo) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %w", domainerrors.ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

type memPendingRepo struct {
	mu      sync.Mutex
	pending map[string]*entity.PendingUser
}

func newMemPendingRepo() *memPendingRepo {
	return &memPendingRepo{pending: map[string]*entity.PendingUser{}}
}

func (r *memPendingRepo) CreatePendingUser(ctx context.Context, p *entity.PendingUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.pending[p.ID] = &c
	return nil
}

func (r *memPendingRepo) GetPendingUserByID(ctx context.Context, id string) (*entity.PendingUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	if !ok {
		return nil, fmt.Errorf("pending registration %w", domainerrors.ErrNotFound)
	}
	c := *p
	return &c, nil
}

func (r *memPendingRepo) DeletePendingUsersByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.pending {
		if p.Email == email {
			delete(r.pending, id)
		}
	}
	return nil
}

func (r *memPendingRepo) UpdateVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	if !ok {
		return fmt.Errorf("pending registration %w", domainerrors.ErrNotFound)
	}
	p.VerificationCode = code
	p.CodeExpiresAt = expiresAt
	return nil
}

func (r *memPendingRepo) ClaimPendingUser(ctx context.Context, id, code string) (*entity.PendingUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	if !ok || p.VerificationCode != code {
		return nil, fmt.Errorf("pending registration %w", domainerrors.ErrNotFound)
	}
	delete(r.pending, id)
	return p, nil
}

func (r *memPendingRepo) DeletePendingUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
	return nil
}

func (r *memPendingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

type memWorkshopRepo struct {
	mu        sync.Mutex
	workshops map[string]*entity.Workshop
}

func newMemWorkshopRepo(ws ...*entity.Workshop) *memWorkshopRepo {
	r := &memWorkshopRepo{workshops: map[string]*entity.Workshop{}}
	for _, w := range ws {
		r.workshops[w.ID] = w
	}
	return r
}

func (r *memWorkshopRepo) get(id string) *entity.Workshop {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *r.workshops[id]
	return &c
}

func (r *memWorkshopRepo) CreateWorkshop(ctx context.Context, w *entity.Workshop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *w
	r.workshops[w.ID] = &c
	return nil
}

func (r *memWorkshopRepo) GetWorkshopByID(ctx context.Context, id string) (*entity.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok {
		return nil, fmt.Errorf("workshop %w", domainerrors.ErrNotFound)
	}
	c := *w
	return &c, nil
}

func (r *memWorkshopRepo) GetWorkshopsByIDs(ctx context.Context, ids []string) ([]*entity.Workshop, error) {
	out := []*entity.Workshop{}
	for _, id := range ids {
		if w, err := r.GetWorkshopByID(ctx, id); err == nil {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memWorkshopRepo) ListWorkshops(ctx context.Context, opts *contract.WorkshopFilterOptions) ([]*entity.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Workshop{}
	for _, w := range r.workshops {
		if opts != nil && opts.InstructorID != "" && !w.HasInstructor(opts.InstructorID) {
			continue
		}
		if opts != nil && opts.Categories.Subject != "" && w.Categories.Subject != opts.Categories.Subject {
			continue
		}
		c := *w
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *memWorkshopRepo) UpdateWorkshop(ctx context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok {
		return fmt.Errorf("workshop %w", domainerrors.ErrNotFound)
	}
	for k, v := range updates {
		switch k {
		case "name":
			w.Name = v.(string)
		case "description":
			w.Description = v.(string)
		case "start_date":
			w.StartDate = v.(time.Time)
		case "end_date":
			w.EndDate = v.(time.Time)
		case "location":
			w.Location = v.(string)
		case "capacity":
			w.Capacity = v.(int)
		case "categories":
			w.Categories = v.(entity.WorkshopCategories)
		case "instructor_ids":
			w.InstructorIDs = v.([]string)
		case "badge_name":
			w.BadgeName = v.(string)
		case "badge_image":
			w.BadgeImage = v.(string)
		case "bg_color":
			w.BgColor = v.(string)
		case "translations":
			w.Translations = v.(map[entity.Language]entity.WorkshopTranslation)
		default:
			return fmt.Errorf("unexpected workshop field %q", k)
		}
	}
	return nil
}

func (r *memWorkshopRepo) IncrementRegisteredCount(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok || w.Canceled || w.RegisteredCount >= w.Capacity {
		return false, nil
	}
	w.RegisteredCount++
	return true, nil
}

func (r *memWorkshopRepo) DecrementRegisteredCount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.workshops[id]; ok && w.RegisteredCount > 0 {
		w.RegisteredCount--
	}
	return nil
}

func (r *memWorkshopRepo) RemoveInstructorFromAll(ctx context.Context, instructorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, w := range r.workshops {
		if !w.HasInstructor(instructorID) {
			continue
		}
		kept := []string{}
		for _, id := range w.InstructorIDs {
			if id != instructorID {
				kept = append(kept, id)
			}
		}
		w.InstructorIDs = kept
		n++
	}
	return n, nil
}

func (r *memWorkshopRepo) MarkCanceled(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok || w.Canceled {
		return false, nil
	}
	w.Canceled = true
	w.RegisteredCount = 0
	return true, nil
}

func (r *memWorkshopRepo) MarkUncanceled(ctx context.Context, id string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok || !w.Canceled {
		return false, nil
	}
	w.Canceled = false
	w.ReminderSent = false
	w.StartDate = start
	w.EndDate = end
	return true, nil
}

func (r *memWorkshopRepo) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workshops[id]
	if !ok || w.ReminderSent {
		return false, nil
	}
	w.ReminderSent = true
	return true, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newMemReviewRepo(rs ...*entity.Review) *memReviewRepo {
	r := &memReviewRepo{reviews: map[string]*entity.Review{}}
	for _, rv := range rs {
		r.reviews[rv.ID] = rv
	}
	return r
}

func (r *memReviewRepo) CreateReview(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.UserID == review.UserID && rv.WorkshopID == review.WorkshopID {
			return domainerrors.ErrDuplicateReview
		}
	}
	c := *review
	r.reviews[review.ID] = &c
	return nil
}

func (r *memReviewRepo) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, fmt.Errorf("review %w", domainerrors.ErrNotFound)
	}
	c := *rv
	return &c, nil
}

func (r *memReviewRepo) find(keep func(*entity.Review) bool) []*entity.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Review{}
	for _, rv := range r.reviews {
		if keep(rv) {
			c := *rv
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memReviewRepo) GetReviewByUserAndWorkshop(ctx context.Context, userID, workshopID string) (*entity.Review, error) {
	found := r.find(func(rv *entity.Review) bool { return rv.UserID == userID && rv.WorkshopID == workshopID })
	if len(found) == 0 {
		return nil, fmt.Errorf("review %w", domainerrors.ErrNotFound)
	}
	return found[0], nil
}

func (r *memReviewRepo) GetReviewsByWorkshop(ctx context.Context, workshopID string) ([]*entity.Review, error) {
	return r.find(func(rv *entity.Review) bool { return rv.WorkshopID == workshopID }), nil
}

func (r *memReviewRepo) GetReviewsByUser(ctx context.Context, userID string) ([]*entity.Review, error) {
	return r.find(func(rv *entity.Review) bool { return rv.UserID == userID }), nil
}

func (r *memReviewRepo) GetFeaturedReviews(ctx context.Context) ([]*entity.Review, error) {
	return r.find(func(rv *entity.Review) bool { return rv.Featured }), nil
}

func (r *memReviewRepo) UpdateReview(ctx context.Context, id string, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return fmt.Errorf("review %w", domainerrors.ErrNotFound)
	}
	for k, v := range updates {
		switch k {
		case "featured":
			rv.Featured = v.(bool)
		case "workshop_name":
			rv.WorkshopName = v.(string)
		case "comment":
			rv.Comment = v.(string)
		case "circle_color":
			rv.CircleColor = v.(string)
		case "circle_font":
			rv.CircleFont = v.(string)
		case "circle_text":
			rv.CircleText = v.(string)
		default:
			return fmt.Errorf("unexpected review field %q", k)
		}
	}
	return nil
}

func (r *memReviewRepo) DeleteReview(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return fmt.Errorf("review %w", domainerrors.ErrNotFound)
	}
	delete(r.reviews, id)
	return nil
}

func (r *memReviewRepo) DeleteReviewsByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rv := range r.reviews {
		if rv.UserID == userID {
			delete(r.reviews, id)
			n++
		}
	}
	return n, nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*entity.Token{}}
}

func (r *memTokenRepo) CreateToken(ctx context.Context, t *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.tokens[t.ID] = &c
	return nil
}

func (r *memTokenRepo) GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Verifier == verifier {
			c := *t
			return &c, nil
		}
	}
	return nil, fmt.Errorf("token %w", domainerrors.ErrNotFound)
}

func (r *memTokenRepo) RevokeToken(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return fmt.Errorf("token %w", domainerrors.ErrNotFound)
	}
	t.Revoke = true
	return nil
}

func (r *memTokenRepo) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoke = true
		}
	}
	return nil
}

// memCache records invalidations and serves what was set.
type memCache struct {
	mu          sync.Mutex
	workshops   map[string]*entity.Workshop
	featured    []*entity.Review
	hasFeatured bool
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{workshops: map[string]*entity.Workshop{}}
}

func (c *memCache) GetWorkshop(ctx context.Context, id string) (*entity.Workshop, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.workshops[id]
	return w, ok, nil
}

func (c *memCache) SetWorkshop(ctx context.Context, w *entity.Workshop) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workshops[w.ID] = w
	return nil
}

func (c *memCache) InvalidateWorkshop(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.workshops, id)
	c.invalidated = append(c.invalidated, "workshop:"+id)
	return nil
}

func (c *memCache) GetFeaturedReviews(ctx context.Context) ([]*entity.Review, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.featured, c.hasFeatured, nil
}

func (c *memCache) SetFeaturedReviews(ctx context.Context, reviews []*entity.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.featured, c.hasFeatured = reviews, true
	return nil
}

func (c *memCache) InvalidateFeaturedReviews(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.featured, c.hasFeatured = nil, false
	c.invalidated = append(c.invalidated, "featured")
	return nil
}

// recordingNotifier keeps everything it is asked to send.
type recordingNotifier struct {
	mu     sync.Mutex
	sync   []entity.Message
	async  []entity.Message
	failTo map[string]bool
}

func (n *recordingNotifier) Notify(ctx context.Context, messages []entity.Message) entity.DeliveryReport {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sync = append(n.sync, messages...)
	report := entity.DeliveryReport{}
	for _, m := range messages {
		var err error
		if n.failTo[m.To] {
			err = fmt.Errorf("smtp refused %s", m.To)
		}
		report.Results = append(report.Results, entity.DeliveryResult{To: m.To, Err: err})
	}
	return report
}

func (n *recordingNotifier) NotifyAsync(messages []entity.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.async = append(n.async, messages...)
}

// stubComposer renders a one-line body naming the kind and recipient.
type stubComposer struct{}

func (stubComposer) msg(kind entity.MessageKind, to, body string) (entity.Message, error) {
	return entity.Message{Kind: kind, To: to, Subject: string(kind), HTML: body}, nil
}

func (s stubComposer) VerificationEmail(to string, lang entity.Language, name, code string) (entity.Message, error) {
	return s.msg(entity.MessageKindVerification, to, string(lang)+":"+code)
}

func (s stubComposer) PasswordResetEmail(to string, lang entity.Language, name, link string) (entity.Message, error) {
	return s.msg(entity.MessageKindPasswordReset, to, link)
}

func (s stubComposer) CancellationEmail(u *entity.User, w *entity.Workshop) (entity.Message, error) {
	return s.msg(entity.MessageKindCancellation, u.Email, string(u.EmailLanguage)+":"+w.LocalizedName(u.EmailLanguage))
}

func (s stubComposer) UpdateEmail(u *entity.User, before, after *entity.Workshop) (entity.Message, error) {
	return s.msg(entity.MessageKindUpdate, u.Email, before.Location+"->"+after.Location)
}

func (s stubComposer) ReminderEmail(u *entity.User, w *entity.Workshop) (entity.Message, error) {
	return s.msg(entity.MessageKindReminder, u.Email, w.Name)
}

// recordingMailer captures direct sends.
type recordingMailer struct {
	mu   sync.Mutex
	sent []entity.Message
	err  error
}

func (m *recordingMailer) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, entity.Message{To: to, Subject: subject, HTML: htmlBody})
	return nil
}

func (m *recordingMailer) last() entity.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

// fakeJWT encodes claims as readable strings.
type fakeJWT struct{}

func (fakeJWT) GenerateSessionToken(userID string, role entity.UserRole) (string, error) {
	return "session:" + userID + ":" + string(role), nil
}

func (fakeJWT) GeneratePendingToken(pendingUserID string) (string, error) {
	return "pending:" + pendingUserID, nil
}

func (fakeJWT) ParseToken(token string) (*entity.Claims, error) {
	var kind, rest string
	for i := 0; i < len(token); i++ {
		if token[i] == ':' {
			kind, rest = token[:i], token[i+1:]
			break
		}
	}
	switch kind {
	case "pending":
		return &entity.Claims{PendingUserID: rest, IsPending: true}, nil
	case "session":
		for i := len(rest) - 1; i >= 0; i-- {
			if rest[i] == ':' {
				return &entity.Claims{UserID: rest[:i], Role: entity.UserRole(rest[i+1:])}, nil
			}
		}
	}
	return nil, domainerrors.ErrInvalidToken
}

type seqUUID struct{ n int64 }

func (s *seqUUID) NewUUID() string {
	return "id-" + strconv.FormatInt(atomic.AddInt64(&s.n, 1), 10)
}

// fixedRandom returns a known code and distinct tokens.
type fixedRandom struct {
	code string
	n    int64
}

func (f *fixedRandom) GenerateRandomToken(n int) (string, error) {
	return "tok" + strconv.FormatInt(atomic.AddInt64(&f.n, 1), 10), nil
}

func (f *fixedRandom) GenerateNumericCode(n int) (string, error) {
	return f.code, nil
}

type fakeConfig struct{}

func (fakeConfig) GetAppBaseURL() string                      { return "http://api.test" }
func (fakeConfig) GetFrontendURL() string                     { return "http://app.test" }
func (fakeConfig) GetTimezone() *time.Location                { return time.UTC }
func (fakeConfig) GetSessionTokenExpiry() time.Duration       { return 7 * 24 * time.Hour }
func (fakeConfig) GetPendingTokenExpiry() time.Duration       { return 24 * time.Hour }
func (fakeConfig) GetVerificationCodeExpiry() time.Duration   { return 30 * time.Minute }
func (fakeConfig) GetPasswordResetTokenExpiry() time.Duration { return 15 * time.Minute }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

// fixtures

var testNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newUser(id string, role entity.UserRole) *entity.User {
	return &entity.User{
		ID:                  id,
		Name:                "Name" + id,
		Surname:             "Surname",
		Email:               id + "@example.com",
		Role:                role,
		IsVerified:          true,
		RegisteredWorkshops: []string{},
		Badges:              []entity.Badge{},
		EmailLanguage:       entity.LanguageEN,
		EmailNotifications:  entity.DefaultEmailNotifications(),
	}
}

// futureWorkshop starts a day after testNow and lasts two hours.
func futureWorkshop(id string, capacity int) *entity.Workshop {
	return &entity.Workshop{
		ID:            id,
		Name:          "Workshop " + id,
		StartDate:     testNow.Add(24 * time.Hour),
		EndDate:       testNow.Add(26 * time.Hour),
		Location:      "Lab A",
		Capacity:      capacity,
		InstructorIDs: []string{"inst"},
		BadgeName:     "Badge " + id,
	}
}

// pastWorkshop ended a day before testNow.
func pastWorkshop(id string) *entity.Workshop {
	w := futureWorkshop(id, 10)
	w.StartDate = testNow.Add(-26 * time.Hour)
	w.EndDate = testNow.Add(-24 * time.Hour)
	return w
}

var (
	instructor = entity.Principal{UserID: "inst", Role: entity.UserRoleInstructor}
)

func principalOf(u *entity.User) entity.Principal {
	return entity.Principal{UserID: u.ID, Role: u.Role}
}

var (
	_ contract.IUserRepository        = (*memUserRepo)(nil)
	_ contract.IPendingUserRepository = (*memPendingRepo)(nil)
	_ contract.IWorkshopRepository    = (*memWorkshopRepo)(nil)
	_ contract.IReviewRepository      = (*memReviewRepo)(nil)
	_ contract.ITokenRepository       = (*memTokenRepo)(nil)
	_ contract.IWorkshopCache         = (*memCache)(nil)
	_ contract.INotifier              = (*recordingNotifier)(nil)
	_ contract.IMessageComposer       = stubComposer{}
	_ contract.IEmailService          = (*recordingMailer)(nil)
	_ JWTService                      = fakeJWT{}
)
