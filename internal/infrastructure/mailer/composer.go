// Package mailer renders the localized HTML emails sent to users.
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/contract"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

//go:embed templates/*.html
var templateFS embed.FS

var contentFiles = map[entity.MessageKind]string{
	entity.MessageKindVerification:  "templates/verification.html",
	entity.MessageKindPasswordReset: "templates/password_reset.html",
	entity.MessageKindCancellation:  "templates/cancellation.html",
	entity.MessageKindUpdate:        "templates/update.html",
	entity.MessageKindReminder:      "templates/reminder.html",
}

// Composer formats dates in a fixed time zone and picks the phrases by the recipient's language.
type Composer struct {
	templates map[entity.MessageKind]*template.Template
	loc       *time.Location
}

var _ contract.IMessageComposer = (*Composer)(nil)

func NewComposer(loc *time.Location) (*Composer, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := &Composer{templates: make(map[entity.MessageKind]*template.Template), loc: loc}
	for kind, file := range contentFiles {
		t, err := template.ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		c.templates[kind] = t
	}
	return c, nil
}

type view struct {
	Lang     entity.Language
	Subject  string
	Name     string
	T        phrases
	Code     string
	Link     string
	Workshop string
	Date     string
	Time     string
	Location string

	OldDate     string
	OldTime     string
	OldLocation string
}

func (c *Composer) render(kind entity.MessageKind, to string, v view) (entity.Message, error) {
	v.Lang = entity.ParseLanguage(string(v.Lang))
	v.T = lookup(kind, v.Lang)
	v.Subject = v.T.Subject
	var buf bytes.Buffer
	if err := c.templates[kind].ExecuteTemplate(&buf, "layout", v); err != nil {
		return entity.Message{}, fmt.Errorf("failed to render %s email: %w", kind, err)
	}
	return entity.Message{Kind: kind, To: to, Subject: v.Subject, HTML: buf.String()}, nil
}

func (c *Composer) VerificationEmail(to string, lang entity.Language, name, code string) (entity.Message, error) {
	return c.render(entity.MessageKindVerification, to, view{Lang: lang, Name: name, Code: code})
}

func (c *Composer) PasswordResetEmail(to string, lang entity.Language, name, link string) (entity.Message, error) {
	return c.render(entity.MessageKindPasswordReset, to, view{Lang: lang, Name: name, Link: link})
}

func (c *Composer) CancellationEmail(user *entity.User, w *entity.Workshop) (entity.Message, error) {
	v := c.workshopView(user, w)
	return c.render(entity.MessageKindCancellation, user.Email, v)
}

func (c *Composer) UpdateEmail(user *entity.User, before, after *entity.Workshop) (entity.Message, error) {
	v := c.workshopView(user, after)
	v.OldDate = c.formatDate(before.StartDate, v.Lang)
	v.OldTime = c.formatTimeRange(before.StartDate, before.EndDate)
	v.OldLocation = before.Location
	return c.render(entity.MessageKindUpdate, user.Email, v)
}

func (c *Composer) ReminderEmail(user *entity.User, w *entity.Workshop) (entity.Message, error) {
	v := c.workshopView(user, w)
	return c.render(entity.MessageKindReminder, user.Email, v)
}

func (c *Composer) workshopView(user *entity.User, w *entity.Workshop) view {
	lang := entity.ParseLanguage(string(user.EmailLanguage))
	return view{
		Lang:     lang,
		Name:     user.Name,
		Workshop: w.LocalizedName(lang),
		Date:     c.formatDate(w.StartDate, lang),
		Time:     c.formatTimeRange(w.StartDate, w.EndDate),
		Location: w.Location,
	}
}

var monthsIT = [...]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"}

func (c *Composer) formatDate(t time.Time, lang entity.Language) string {
	t = t.In(c.loc)
	if lang == entity.LanguageIT {
		return fmt.Sprintf("%d %s %d", t.Day(), monthsIT[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}

func (c *Composer) formatTimeRange(start, end time.Time) string {
	return start.In(c.loc).Format("15:04") + " - " + end.In(c.loc).Format("15:04")
}
