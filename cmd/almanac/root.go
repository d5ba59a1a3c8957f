package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanqian/ai-almanac/internal/domain/almanac"
	"github.com/yanqian/ai-almanac/internal/infra/almanac/generator"
	"github.com/yanqian/ai-almanac/internal/infra/config"
	"github.com/yanqian/ai-almanac/internal/infra/llm/tokenizer"
	"github.com/yanqian/ai-almanac/pkg/logger"
)

type options struct {
	name      string
	nickname  string
	birthdate string
	birthTime string
	mood      string
	language  string
	timezone  string
	offline   bool
}

func (o *options) request() almanac.Request {
	return almanac.Request{
		Name:      o.name,
		Nickname:  o.nickname,
		BirthDate: o.birthdate,
		BirthTime: almanac.TimeSlot(o.birthTime),
		Mood:      almanac.Mood(o.mood),
		Locale:    almanac.Locale(o.language),
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "almanac",
		Short:        "Generate a daily almanac reading",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.name, "name", "", "full name, used only in the prompt")
	flags.StringVar(&opts.nickname, "nickname", "", "nickname to address the reader by")
	flags.StringVar(&opts.birthdate, "birthdate", "", "birth date as YYYY-MM-DD")
	flags.StringVar(&opts.birthTime, "birth-time", "unknown", "dawn|morning|noon|afternoon|dusk|night|unknown")
	flags.StringVar(&opts.mood, "mood", "calm", "calm|anxious|impulsive|focused")
	flags.StringVar(&opts.language, "language", "en", "cn|en")
	flags.StringVar(&opts.timezone, "timezone", "", "IANA zone for today's date (overrides config)")
	flags.BoolVar(&opts.offline, "offline", false, "skip the provider and use fallback content")

	root.AddCommand(newReadCmd(opts), newPromptCmd(opts))
	return root
}

// buildService loads config and wires the same pipeline the HTTP server uses.
func buildService(ctx context.Context, opts *options, logOut io.Writer) (almanac.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.timezone != "" {
		cfg.Almanac.Timezone = opts.timezone
	}
	log := logger.NewTo(logOut)

	var gen almanac.Generator = generator.Offline{}
	if !opts.offline {
		gen, err = generator.FromConfig(ctx, cfg.LLM, tokenizer.New(cfg.LLM.TokenEncoding), log)
		if err != nil {
			return nil, err
		}
	}
	return almanac.NewService(almanac.Config{Timezone: cfg.Almanac.Timezone}, gen, log), nil
}
