package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/palemoky/decawise/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

// options are the command-line overrides on top of the config file.
type options struct {
	configPath string
	questions  string
	backend    string
	codec      string
	dataDir    string
	redisAddr  string
	winnerRule string
	seed       int64
	noSound    bool
}

func newRootCmd(opts *options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DECAWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "decawise",
		Short:   "A pass-the-keyboard trivia game for 2-4 players: ten answers per question.",
		Args:    cobra.NoArgs,
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), cfg)
		},
	}

	pfs := cmd.PersistentFlags()
	pfs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	pfs.StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the config file (env: DECAWISE_CONFIG)")
	pfs.StringVarP(&opts.questions, "questions", "q", "", "path to the questions file (env: DECAWISE_QUESTIONS)")
	pfs.StringVarP(&opts.backend, "backend", "b", "", "where to save games: file, redis, sqlite or memory (env: DECAWISE_BACKEND)")
	pfs.StringVar(&opts.codec, "codec", "", "saved game encoding: json or proto (env: DECAWISE_CODEC)")
	pfs.StringVar(&opts.dataDir, "data-dir", "", "directory for the file and sqlite backends (env: DECAWISE_DATA_DIR)")
	pfs.StringVar(&opts.redisAddr, "redis-addr", "", "redis address for the redis backend (env: DECAWISE_REDIS_ADDR)")
	pfs.StringVar(&opts.winnerRule, "winner-rule", "", "tie-break when several players reach the target: first or highest (env: DECAWISE_WINNER_RULE)")
	pfs.Int64Var(&opts.seed, "seed", 0, "random seed for question draws, 0 for the clock (env: DECAWISE_SEED)")
	pfs.BoolVar(&opts.noSound, "no-sound", false, "disable sound effects (env: DECAWISE_NO_SOUND)")

	pfs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = pfs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(
		newQuestionsCmd(opts),
		newSessionCmd(opts),
		newHistoryCmd(opts),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("decawise v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

// loadConfig reads the config file and applies flag overrides. A missing file
// is only an error when the path was given explicitly.
func loadConfig(opts *options, explicit bool) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("load config %s: %w", opts.configPath, err)
	}

	if opts.questions != "" {
		cfg.Game.QuestionsPath = opts.questions
	}
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
	}
	if opts.codec != "" {
		cfg.Storage.Codec = opts.codec
	}
	if opts.dataDir != "" {
		cfg.Storage.Path = opts.dataDir
		cfg.SQLite.Path = filepath.Join(opts.dataDir, filepath.Base(cfg.SQLite.Path))
	}
	if opts.redisAddr != "" {
		cfg.Redis.Addr = opts.redisAddr
	}
	if opts.winnerRule != "" {
		cfg.Game.WinnerRule = opts.winnerRule
	}
	if opts.seed != 0 {
		cfg.Game.Seed = opts.seed
	}
	if opts.noSound {
		cfg.Sound.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
