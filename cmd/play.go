package cmd

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/ratel-online/assistant/config"
	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/i18n"
	"github.com/ratel-online/assistant/network"
	"github.com/ratel-online/assistant/render"
	"github.com/ratel-online/assistant/service"
	"github.com/ratel-online/assistant/state"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
	"github.com/spf13/cobra"
)

var (
	configPath string
	flags      = config.Default()
	noColor    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game against the engine from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolve(cmd)
		if err != nil {
			return err
		}
		formatter, err := i18n.ByLanguage(cfg.Language)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		engine, closer, err := dial(ctx, cfg)
		if err != nil {
			return err
		}
		defer closer()

		session := service.NewSession(engine, service.Options{
			Formatter:        formatter,
			RequestTimeout:   cfg.RequestTimeout(),
			GuardOutstanding: cfg.GuardOutstanding,
		})
		client := state.NewClient(ctx, session, render.NewTerminal(color.Output, cfg.Colors))

		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
		async.Async(func() {
			for range interrupts {
				client.Interrupt()
			}
		})

		log.Infof("engine %s over %s\n", cfg.EngineURL, cfg.Transport)
		return client.Run(os.Stdin)
	},
}

// resolve loads the config file and lays explicitly set flags over it.
func resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	set := cmd.Flags().Changed
	if set("url") {
		cfg.EngineURL = flags.EngineURL
	}
	if set("transport") {
		cfg.Transport = flags.Transport
	}
	if set("lang") {
		cfg.Language = flags.Language
	}
	if set("timeout") {
		cfg.RequestTimeoutSeconds = flags.RequestTimeoutSeconds
	}
	if set("guard") {
		cfg.GuardOutstanding = flags.GuardOutstanding
	}
	if noColor {
		cfg.Colors = false
	}
	return cfg, cfg.Validate()
}

func dial(ctx context.Context, cfg *config.Config) (network.Engine, func(), error) {
	if cfg.Transport == "http" {
		return network.NewHTTPEngine(cfg.EngineURL, &http.Client{}), func() {}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, consts.DialTimeout)
	defer cancel()
	engine, err := network.DialSocketEngine(ctx, socketAddr(cfg.EngineURL))
	if err != nil {
		return nil, nil, err
	}
	return engine, func() { _ = engine.Close() }, nil
}

// socketAddr maps an http engine URL onto its websocket endpoint. ws and wss
// URLs are used as given.
func socketAddr(engineURL string) string {
	u, err := url.Parse(engineURL)
	if err != nil {
		return engineURL
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return engineURL
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String()
}

func init() {
	f := playCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	f.StringVar(&flags.EngineURL, "url", flags.EngineURL, "engine base URL")
	f.StringVar(&flags.Transport, "transport", flags.Transport, "engine transport: http or ws")
	f.StringVar(&flags.Language, "lang", flags.Language, "display language: en or zh")
	f.Float64Var(&flags.RequestTimeoutSeconds, "timeout", 0, "seconds before an engine call is abandoned, 0 for none")
	f.BoolVar(&flags.GuardOutstanding, "guard", false, "refuse a second action while one is in flight")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(playCmd)
}
