package mailer

import (
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// phrases holds every localized string a template may reference.
type phrases struct {
	Subject       string
	Greeting      string
	Footer        string
	Intro         string
	Expiry        string
	Action        string
	Scheduled     string
	At            string
	Apology       string
	Before        string
	After         string
	DateLabel     string
	TimeLabel     string
	LocationLabel string
	Outro         string
}

var dictionary = map[entity.MessageKind]map[entity.Language]phrases{
	entity.MessageKindVerification: {
		entity.LanguageEN: {
			Subject: "Verify your GlitchLab account",
			Intro:   "Use this code to confirm your email address:",
			Expiry:  "The code expires in 30 minutes.",
		},
		entity.LanguageIT: {
			Subject: "Verifica il tuo account GlitchLab",
			Intro:   "Usa questo codice per confermare il tuo indirizzo email:",
			Expiry:  "Il codice scade tra 30 minuti.",
		},
	},
	entity.MessageKindPasswordReset: {
		entity.LanguageEN: {
			Subject: "Reset your GlitchLab password",
			Intro:   "We received a request to reset your password.",
			Action:  "Choose a new password",
			Expiry:  "The link expires in 15 minutes. If you did not ask for it, ignore this email.",
		},
		entity.LanguageIT: {
			Subject: "Reimposta la tua password GlitchLab",
			Intro:   "Abbiamo ricevuto una richiesta di reimpostazione della password.",
			Action:  "Scegli una nuova password",
			Expiry:  "Il link scade tra 15 minuti. Se non l'hai richiesto, ignora questa email.",
		},
	},
	entity.MessageKindCancellation: {
		entity.LanguageEN: {
			Subject:   "Workshop canceled",
			Intro:     "We are sorry to let you know that we had to cancel",
			Scheduled: "scheduled for",
			At:        "at",
			Apology:   "Your registration has been removed. We hope to see you at another workshop soon.",
		},
		entity.LanguageIT: {
			Subject:   "Workshop annullato",
			Intro:     "Ci dispiace comunicarti che abbiamo dovuto annullare",
			Scheduled: "previsto per il",
			At:        "presso",
			Apology:   "La tua iscrizione è stata rimossa. Speriamo di vederti presto a un altro workshop.",
		},
	},
	entity.MessageKindUpdate: {
		entity.LanguageEN: {
			Subject:       "Workshop details changed",
			Intro:         "The details of a workshop you registered for have changed:",
			Before:        "Before",
			After:         "Now",
			DateLabel:     "Date",
			TimeLabel:     "Time",
			LocationLabel: "Location",
		},
		entity.LanguageIT: {
			Subject:       "Dettagli del workshop modificati",
			Intro:         "I dettagli di un workshop a cui sei iscritto sono cambiati:",
			Before:        "Prima",
			After:         "Ora",
			DateLabel:     "Data",
			TimeLabel:     "Orario",
			LocationLabel: "Luogo",
		},
	},
	entity.MessageKindReminder: {
		entity.LanguageEN: {
			Subject:       "Workshop reminder",
			Intro:         "This is a reminder for",
			DateLabel:     "Date",
			TimeLabel:     "Time",
			LocationLabel: "Location",
			Outro:         "See you there!",
		},
		entity.LanguageIT: {
			Subject:       "Promemoria workshop",
			Intro:         "Ti ricordiamo il workshop",
			DateLabel:     "Data",
			TimeLabel:     "Orario",
			LocationLabel: "Luogo",
			Outro:         "Ci vediamo lì!",
		},
	},
}

var common = map[entity.Language]phrases{
	entity.LanguageEN: {Greeting: "Hi", Footer: "You receive this email because you have a GlitchLab account."},
	entity.LanguageIT: {Greeting: "Ciao", Footer: "Ricevi questa email perché hai un account GlitchLab."},
}

func lookup(kind entity.MessageKind, lang entity.Language) phrases {
	lang = entity.ParseLanguage(string(lang))
	c := dictionary[kind][lang]
	base := common[lang]
	c.Greeting = base.Greeting
	c.Footer = base.Footer
	return c
}
