package cmd

import (
	"context"
	"log"

	"github.com/scribesearch/talent-scout/internal/api"
	"github.com/scribesearch/talent-scout/internal/contently"
	"github.com/scribesearch/talent-scout/internal/filtering"
	"github.com/scribesearch/talent-scout/internal/interpret"
	"github.com/scribesearch/talent-scout/internal/logger"
	"github.com/scribesearch/talent-scout/internal/session"
	"github.com/scribesearch/talent-scout/internal/storage"
	"github.com/scribesearch/talent-scout/internal/talent"
	"github.com/scribesearch/talent-scout/internal/vocabulary"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the talent search over MCP on stdio",
	Run: func(_ *cobra.Command, _ []string) {
		mcpServe()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// platformSource fetches the candidate pool behind every search_talent call.
// The platform request is rebuilt per call so fresh profiles show up without a
// server restart.
type platformSource struct {
	client   *contently.Client
	criteria *contently.SearchCriteria
}

func (s *platformSource) Profiles(_ context.Context) (*talent.Profiles, error) {
	return s.client.Search(s.criteria)
}

func mcpServe() {
	ctx := context.Background()

	// stdout carries the MCP protocol, so logs must go to stderr as json.
	logger, err := logger.New(true, viper.GetBool("debug"), "stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		logger.Fatal(
			"loading platform api key",
			zap.Error(err),
			zap.String("hint", "set TALENT_SCOUT_API_KEY_FILE environment variable or the 'api-key-file' key in the configuration file"),
		)
	}

	client := contently.New(ctx, logger, apiKey)

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	store, err := storage.Open(config.DataDir)
	if err != nil {
		logger.Fatal("opening the starred profiles store", zap.Error(err))
	}
	defer store.Close()

	registry := vocabulary.NewRegistry(client, logger)
	registry.Load()

	sess := session.New(logger, registry, filtering.Deps{Logger: logger, Starred: store})

	if config.AI != nil && config.AI.Enabled {
		fallback, err := newAIInterpreter(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("skipping AI fallback", zap.Error(err))
		} else {
			sess.WithFallback(fallback)
		}
	}

	criteria := config.Search
	if criteria == nil {
		criteria = &contently.SearchCriteria{}
	}
	criteria.ContentExamples = interpret.NormalizeContentExamples(criteria.ContentExamples)

	srv := api.NewMCPServer(api.MCPDeps{
		Session:  sess,
		Registry: registry,
		Source:   &platformSource{client: client, criteria: criteria},
	})

	logger.Info("serving mcp on stdio", zap.String("version", version))

	if err := server.ServeStdio(srv); err != nil {
		logger.Fatal("mcp server stopped", zap.Error(err))
	}
}
