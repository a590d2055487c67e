package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/finch/internal/httpclient"
	"github.com/caas-team/finch/internal/logger"
	"github.com/caas-team/finch/pkg/config"
	"github.com/caas-team/finch/pkg/finch"
)

// NewCmdRun creates a new run command
func NewCmdRun() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run finch",
		Long:  `Finch will run the configured payment flows against the target API`,
		RunE:  run,
	}

	NewFlag("config", "config").StringP("c").
		Bind(cmd, "finch.yaml", "the path to the run configuration file")
	NewFlag("connector", "connector").String().
		Bind(cmd, "", "the connector whose fixtures drive the run")
	NewFlag("target.baseUrl", "base-url").String().
		Bind(cmd, "", "the base url of the payments API under test")
	NewFlag("stateFile", "state-file").String().
		Bind(cmd, "", "the path of the persisted state snapshot")
	NewFlag("profiles.dir", "profile-dir").String().
		Bind(cmd, "", "the directory containing the connector profile files")
	NewFlag("profiles.http.url", "profile-url").String().
		Bind(cmd, "", "the url to load the connector profiles from")
	NewFlag("profiles.http.token", "profile-token").String().
		Bind(cmd, "", "bearer token for the profile endpoint")
	NewFlag("scenarios", "scenarios").String().
		Bind(cmd, "", "comma-separated names of the flows to run; empty runs all")
	NewFlag("api.listeningAddress", "api-address").String().
		Bind(cmd, "", "the address the report api is listening on")
	NewFlag("serve", "serve").Bool().
		Bind(cmd, false, "keep serving the report api after the flows finish")

	return cmd
}

// run is the entry point to start finch
func run(cmd *cobra.Command, _ []string) error {
	log := logger.NewLogger()
	ctx := logger.IntoContext(cmd.Context(), log)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFile(ctx, viper.GetString("config"))
	if err != nil {
		log.Error("Error while loading the config", "error", err)
		return err
	}
	applyFlags(cfg)

	if err := cfg.Validate(ctx); err != nil {
		log.Error("Error while validating the config", "error", err)
		return err
	}

	ctx = httpclient.IntoContext(ctx, &http.Client{Timeout: cfg.Target.Timeout})

	log.Info("Running finch", "connector", cfg.Connector, "target", cfg.Target.BaseUrl)
	if err := finch.New(cfg).Run(ctx); err != nil {
		log.Error("Run finished with failures", "error", err)
		os.Exit(1)
	}
	return nil
}

// applyFlags overrides file-loaded config values with the flags that were set
func applyFlags(cfg *config.Config) {
	if v := viper.GetString("connector"); v != "" {
		cfg.Connector = v
	}
	if v := viper.GetString("target.baseUrl"); v != "" {
		cfg.Target.BaseUrl = v
	}
	if v := viper.GetString("stateFile"); v != "" {
		cfg.StateFile = v
	}
	if v := viper.GetString("profiles.dir"); v != "" {
		cfg.Profiles.Dir = v
	}
	if v := viper.GetString("profiles.http.url"); v != "" {
		cfg.Profiles.Http.Url = v
	}
	if v := viper.GetString("profiles.http.token"); v != "" {
		cfg.Profiles.Http.Token = v
	}
	if v := viper.GetString("scenarios"); v != "" {
		cfg.Scenarios = strings.Split(v, ",")
	}
	if v := viper.GetString("api.listeningAddress"); v != "" {
		cfg.Api.ListeningAddress = v
	}
	if viper.GetBool("serve") {
		cfg.Serve = true
	}
}
