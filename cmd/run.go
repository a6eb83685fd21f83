package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/scribesearch/talent-scout/internal/ai"
	"github.com/scribesearch/talent-scout/internal/ai/gemini"
	"github.com/scribesearch/talent-scout/internal/contently"
	"github.com/scribesearch/talent-scout/internal/filtering"
	"github.com/scribesearch/talent-scout/internal/interpret"
	"github.com/scribesearch/talent-scout/internal/logger"
	"github.com/scribesearch/talent-scout/internal/ranking"
	"github.com/scribesearch/talent-scout/internal/secrets"
	"github.com/scribesearch/talent-scout/internal/session"
	"github.com/scribesearch/talent-scout/internal/storage"
	"github.com/scribesearch/talent-scout/internal/talent"
	"github.com/scribesearch/talent-scout/internal/vocabulary"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptQuery          = "Enter a search request"
	PromptShowMatches    = "Show current matches"
	PromptReportByRole   = "Report by role"
	PromptProfilesToFile = "Dump profiles to file"
	PromptStar           = "Star a profile"
	PromptUnstar         = "Unstar a profile"
	PromptStarredOnly    = "Toggle starred-only"
	PromptReset          = "Reset the session"
	PromptExit           = "Exit"
	PromptBack           = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptQuery, PromptShowMatches, PromptReportByRole, PromptProfilesToFile,
		PromptStar, PromptUnstar, PromptStarredOnly, PromptReset, PromptExit,
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the talent-scout interactive search session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("sort", "s", "", fmt.Sprintf("sort order for matches, one of: %s", strings.Join(orderNames(), ", ")))
	runCmd.Flags().IntP("results", "n", 0, "how many ranked matches to show per turn")

	viper.BindPFlag("sort", runCmd.Flags().Lookup("sort"))
	viper.BindPFlag("results", runCmd.Flags().Lookup("results"))
}

// runtime bundles everything the interactive loop needs.
type runtime struct {
	ctx        context.Context
	logger     *zap.Logger
	client     *contently.Client
	store      *storage.StarredStore
	registry   *vocabulary.Registry
	sess       *session.Session
	candidates *talent.Profiles
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the talent-scout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

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
	logger.Info("loaded vocabularies", zap.Int("terms", registry.Set().Len()))

	sess := session.New(logger, registry, filtering.Deps{Logger: logger, Starred: store})

	if config.AI != nil && config.AI.Enabled {
		fallback, err := newAIInterpreter(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("skipping AI fallback", zap.Error(err))
		} else {
			sess.WithFallback(fallback)
		}
	}

	if err := applyCliOverrides(sess); err != nil {
		logger.Fatal("applying cli flags", zap.Error(err))
	}

	criteria := config.Search
	if criteria == nil {
		criteria = &contently.SearchCriteria{}
	}
	criteria.ContentExamples = interpret.NormalizeContentExamples(criteria.ContentExamples)

	logger.Info("starting the search", zap.String("name", criteria.Name))

	candidates, err := client.Search(criteria)
	if err != nil {
		logger.Fatal("getting candidate profiles", zap.Error(err))
	}

	logger.Info("getting candidate profiles", zap.Int("count", candidates.Len()))

	if candidates.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidate profiles found"))
		return
	}

	rt := &runtime{
		ctx:        ctx,
		logger:     logger,
		client:     client,
		store:      store,
		registry:   registry,
		sess:       sess,
		candidates: candidates,
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, rt); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, rt *runtime) error {
	switch action {
	case PromptQuery:
		return query(rt)
	case PromptShowMatches:
		matches, err := rt.sess.Search(rt.candidates)
		if err != nil {
			return err
		}
		printProfiles(matches)
		return nil
	case PromptReportByRole:
		matches, err := rt.sess.Search(rt.candidates)
		if err != nil {
			return err
		}
		pretty, _ := json.MarshalIndent(matches.ReportByRole(), "", "  ")
		rt.logger.Info(string(pretty), zap.Int("profiles count", matches.Len()))
		return nil
	case PromptProfilesToFile:
		matches, err := rt.sess.Search(rt.candidates)
		if err != nil {
			return err
		}
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		rt.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptStar:
		return star(rt)
	case PromptUnstar:
		return unstar(rt)
	case PromptStarredOnly:
		state := rt.sess.State()
		state.StarredOnly = !state.StarredOnly
		rt.logger.Info("toggled starred-only", zap.Bool("starred_only", state.StarredOnly))
		return nil
	case PromptReset:
		rt.sess.Reset()
		return nil
	case PromptExit:
		rt.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// query runs one chat turn. Vocabularies are reloaded first so terms added on
// the platform since the last turn are matchable.
func query(rt *runtime) error {
	textPrompt := promptui.Prompt{Label: "Search request"}

	text, err := textPrompt.Run()
	if err != nil {
		return err
	}

	rt.registry.Load()

	result, err := rt.sess.Process(rt.ctx, text, rt.candidates)
	if err != nil {
		return err
	}

	fmt.Println(result.Feedback)
	rt.logger.Info("current list of matches", zap.Int("count", result.Profiles.Len()))
	printProfiles(result.Profiles)

	return nil
}

func star(rt *runtime) error {
	profile, err := selectProfile(rt)
	if profile == nil || err != nil {
		return err
	}

	if err := rt.store.Star(profile.ID); err != nil {
		return fmt.Errorf("starring profile %d: %w", profile.ID, err)
	}

	if err := rt.client.AddFavorite(profile.ID); err != nil {
		rt.logger.Warn("syncing favorite to the platform failed", zap.Error(err), zap.Int("talent_id", profile.ID))
	}

	rt.logger.Info("starred profile", zap.Int("talent_id", profile.ID), zap.String("name", profile.Name))
	return nil
}

func unstar(rt *runtime) error {
	profile, err := selectProfile(rt)
	if profile == nil || err != nil {
		return err
	}

	if err := rt.store.Unstar(profile.ID); err != nil {
		return fmt.Errorf("unstarring profile %d: %w", profile.ID, err)
	}

	if err := rt.client.RemoveFavorite(profile.ID); err != nil {
		rt.logger.Warn("syncing favorite removal to the platform failed", zap.Error(err), zap.Int("talent_id", profile.ID))
	}

	rt.logger.Info("unstarred profile", zap.Int("talent_id", profile.ID), zap.String("name", profile.Name))
	return nil
}

// selectProfile lets the user pick one of the current matches. A nil profile
// with a nil error means the user went back.
func selectProfile(rt *runtime) (*talent.Profile, error) {
	matches, err := rt.sess.Search(rt.candidates)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, matches.Len())
	for _, p := range matches.Items {
		items = append(items, profileLabel(p))
	}

	profilePrompt := promptui.Select{
		Label: "Choose a profile and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := profilePrompt.Run()
	if err != nil {
		return nil, err
	}

	if selected == PromptBack {
		return nil, nil
	}

	id, err := strconv.Atoi(strings.Split(selected, " ")[0])
	if err != nil {
		return nil, fmt.Errorf("parsing profile id from %q: %w", selected, err)
	}

	profile := matches.FindByID(id)
	if profile == nil {
		return nil, fmt.Errorf("there is no such profile id %d", id)
	}

	return profile, nil
}

func profileLabel(p *talent.Profile) string {
	return fmt.Sprintf("%d %s / %s / score %.1f / %d years / %d projects",
		p.ID, p.Name, p.Role, p.Score, p.YearsOfExperience, p.CompletedProjects,
	)
}

func printProfiles(p *talent.Profiles) {
	for _, profile := range p.Items {
		fmt.Println(profileLabel(profile))
	}
}

func resolveAPIKey(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	keyFile := strings.TrimSpace(config.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("api-key-file"))
	}

	if keyFile == "" {
		return "", errors.New("platform api key file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "platform api key",
		File: keyFile,
	})
}

func newAIInterpreter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Interpreter, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when the ai fallback is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	interpLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewInterpreter(generator, interpLogger, cfg.Gemini.MaxLogLength), nil
}

func applyCliOverrides(sess *session.Session) error {
	state := sess.State()

	if v := strings.TrimSpace(viper.GetString("sort")); v != "" {
		order := ranking.Order(v)
		if !order.Valid() {
			return fmt.Errorf("unknown sort order %q, expected one of: %s", v, strings.Join(orderNames(), ", "))
		}
		state.SortOrder = order
	}

	if n := viper.GetInt("results"); n >= 1 {
		state.ResultCount = n
	}

	return nil
}

func orderNames() []string {
	names := make([]string, 0, len(ranking.Orders()))
	for _, order := range ranking.Orders() {
		names = append(names, string(order))
	}
	return names
}
