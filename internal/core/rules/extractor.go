package rules

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

// Defaults are the labels applied when a classifier reports no match.
type Defaults struct {
	LetterType string
	ActionType string
	Medium     string
}

// StandardDefaults are the labels the letter register expects.
var StandardDefaults = Defaults{
	LetterType: DefaultLetterType,
	ActionType: DefaultActionType,
	Medium:     DefaultMedium,
}

// Extractor turns OCR text into a StructuredRecord. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	logger     *slog.Logger
	defaults   Defaults
	yearWindow int
	now        func() time.Time
}

type Option func(*Extractor)

// WithYearWindow sets how many years around the current year a letter date may fall.
func WithYearWindow(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.yearWindow = n
		}
	}
}

// WithClock overrides the time source used for date plausibility.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

func WithDefaults(d Defaults) Option {
	return func(e *Extractor) {
		if d.LetterType != "" {
			e.defaults.LetterType = d.LetterType
		}
		if d.ActionType != "" {
			e.defaults.ActionType = d.ActionType
		}
		if d.Medium != "" {
			e.defaults.Medium = d.Medium
		}
	}
}

func NewExtractor(logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{
		logger:     logger,
		defaults:   StandardDefaults,
		yearWindow: DefaultYearWindow,
		now:        time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// classification holds the raw outcome of the table-driven classifiers
// before defaults are applied.
type classification struct {
	letterType Match
	actionType Match
	medium     Match
}

func (d Defaults) apply(c classification) (letterType, actionType, medium string) {
	return c.letterType.Or(d.LetterType), c.actionType.Or(d.ActionType), c.medium.Or(d.Medium)
}

// Extract runs every extractor over the cleaned text and returns the cleaned record.
func (e *Extractor) Extract(in Input) StructuredRecord {
	text := CleanText(in.Text)

	c := classification{
		letterType: MatchLetterType(text),
		actionType: MatchActionType(text),
		medium:     MatchMedium(text),
	}
	letterType, actionType, medium := e.defaults.apply(c)

	rec := Clean(StructuredRecord{
		ReceivedByOffice:            ExtractOffice(text),
		RecipientNameAndDesignation: ExtractRecipients(text),
		LetterType:                  letterType,
		LetterDate:                  ExtractDateAt(text, e.now(), e.yearWindow),
		MobileNumber:                ExtractPhones(text),
		Remarks:                     SynthesizeRemarks(text),
		ActionType:                  actionType,
		LetterStatus:                constants.LetterStatusPending,
		LetterMedium:                medium,
		LetterSubject:               ExtractSubject(text),
		OfficeType:                  ResolveOfficeType(text),
		OfficeName:                  ResolveOfficeName(text),
	})

	e.logger.Debug("structured record extracted",
		"text_runes", utf8.RuneCountInString(text),
		"pages", in.PageCount,
		"model", in.Model,
		"letter_type", rec.LetterType,
		"letter_type_matched", c.letterType.Matched,
		"action_matched", c.actionType.Matched,
		"medium_matched", c.medium.Matched,
		"office_name", rec.OfficeName,
	)
	return rec
}

// ExtractStructuredData is the package-level entry point with standard settings.
func ExtractStructuredData(text string) StructuredRecord {
	return NewExtractor(slog.Default()).Extract(Input{Text: text})
}
