package cmd

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/app"
	"github.com/mondai-quiz/mondai/internal/catalog"
	"github.com/mondai-quiz/mondai/internal/config"
	"github.com/mondai-quiz/mondai/internal/logging"
	"github.com/mondai-quiz/mondai/internal/results"
)

// runApp opens the store, builds dependencies, and launches the TUI at
// startPath.
func runApp(cmd *cobra.Command, startPath string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, dbPath, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	log, logFile, err := logging.NewFile(cfg.Log.Level, logging.PathFor(cfg.Log.File, dbPath))
	if err != nil {
		return err
	}
	defer logFile.Close()

	clientID, err := st.ClientID(ctx)
	if err != nil {
		return fmt.Errorf("load client id: %w", err)
	}

	cat, client := services(cfg, log)
	history := results.NewHistory()
	log.WithFields(logrus.Fields{
		"sets":  cat.Source().Location(),
		"api":   client.BaseURL(),
		"start": startPath,
	}).Info("starting mondai")

	return app.Run(ctx, app.Deps{
		Catalog:   cat,
		Submitter: client,
		Recorder:  history,
		History:   history,
		ClientID:  clientID,
		Timezone:  cfg.Timezone,
		Status:    cat.Source().Location(),
		Log:       log,
	}, startPath)
}

// services builds the set catalog and API client from cfg.
func services(cfg config.Config, log logrus.FieldLogger) (*catalog.Catalog, *api.Client) {
	hc := &http.Client{}
	cat := catalog.New(catalog.SourceFor(cfg.Sets.Source, hc), catalog.WithLogger(log))
	client := api.NewClient(cfg.API.URL,
		api.WithHTTPClient(hc),
		api.WithRetryPolicy(cfg.RetryPolicy()),
		api.WithLogger(log),
	)
	return cat, client
}
