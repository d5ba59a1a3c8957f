package almanac

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/ai-almanac/pkg/errors"
	"github.com/yanqian/ai-almanac/pkg/util"
)

// Service produces almanac readings.
type Service interface {
	Generate(ctx context.Context, req Request) (Reading, error)
	Prompt(req Request) (string, error)
}

type service struct {
	cfg       Config
	generator Generator
	logger    *slog.Logger
	timezone  *time.Location
	now       func() time.Time
}

// NewService wires up the almanac domain.
func NewService(cfg Config, generator Generator, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: generator,
		logger:    logger.With("component", "almanac.service"),
		timezone:  util.LoadLocation(cfg.Timezone),
		now:       util.NowUTC,
	}
}

// Generate runs the reading pipeline. Provider and parse failures resolve to
// fallback content; only invalid input, unsupported locales and caller
// cancellation surface as errors.
func (s *service) Generate(ctx context.Context, req Request) (Reading, error) {
	req = req.Normalize()
	attrs, prompt, err := s.prepare(req)
	if err != nil {
		return Reading{}, err
	}

	raw := ""
	completion, err := s.generator.Generate(ctx, prompt)
	switch {
	case err == nil:
		raw = completion.Text
		s.logger.Info("almanac completion received", append([]any{"model", completion.Model, "locale", req.Locale}, completion.Usage.LogArgs()...)...)
	case ctx.Err() != nil:
		return Reading{}, apperrors.Wrap("canceled", "request canceled", ctx.Err())
	default:
		s.logger.Warn("almanac generation failed, using fallback", "locale", req.Locale, "error", err)
	}

	ext := ExtractContent(raw, req.Locale)
	switch ext.Source {
	case SourceProvider:
		s.logger.Debug("almanac content extracted", "locale", req.Locale)
	case SourcePartial:
		s.logger.Warn("almanac content incomplete, fallback fields substituted", "locale", req.Locale, "missing", ext.Missing)
	case SourceFallback:
		if err == nil {
			s.logger.Warn("almanac content unparseable, using fallback", "locale", req.Locale, "error", ext.Err)
		}
	}

	reading := Assemble(attrs, ext, req.Locale)
	s.logger.Info("almanac reading generated",
		"locale", req.Locale,
		"element", attrs.Element,
		"year_element", attrs.YearElement,
		"polarity", attrs.Polarity,
		"source", reading.Source,
	)
	return reading, nil
}

// Prompt renders the provider prompt for a request without calling the
// provider.
func (s *service) Prompt(req Request) (string, error) {
	_, prompt, err := s.prepare(req.Normalize())
	return prompt, err
}

func (s *service) prepare(req Request) (Attributes, string, error) {
	if err := req.Validate(); err != nil {
		return Attributes{}, "", err
	}
	if !req.Locale.Valid() {
		return Attributes{}, "", apperrors.Wrap("unsupported_locale", "unsupported locale", errors.New(string(req.Locale)))
	}
	birth, err := ParseBirthDate(req.BirthDate)
	if err != nil {
		return Attributes{}, "", apperrors.Wrap("invalid_input", messageFor(req.Locale, msgInvalidBirthDate), err)
	}
	attrs, err := DeriveAttributes(birth, req.BirthTime, req.Mood, req.Locale)
	if err != nil {
		return Attributes{}, "", err
	}
	prompt := BuildPrompt(PromptInput{
		Attributes: attrs,
		Name:       req.Name,
		Nickname:   req.Nickname,
		BirthDate:  req.BirthDate,
		Locale:     req.Locale,
		Today:      s.now().In(s.timezone),
	})
	return attrs, prompt, nil
}
