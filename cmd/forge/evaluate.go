package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgeworks/idea-forge/internal/classify"
	"github.com/forgeworks/idea-forge/internal/common"
	"github.com/forgeworks/idea-forge/internal/engine"
	"github.com/forgeworks/idea-forge/internal/extract"
	"github.com/forgeworks/idea-forge/internal/input"
	"github.com/forgeworks/idea-forge/internal/llm"
	"github.com/forgeworks/idea-forge/internal/model"
	"github.com/forgeworks/idea-forge/internal/results"
	"github.com/forgeworks/idea-forge/internal/score"
	"github.com/forgeworks/idea-forge/internal/storage"
	"github.com/forgeworks/idea-forge/internal/verify"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a batch of idea submissions against a rubric",
		Long: `Run the full pipeline over a batch: extract attached-file content,
classify each idea, score it against the weighted rubric, verify the
results, and write the result artifact incrementally.`,
		RunE: runEvaluate,
	}

	cmd.Flags().String("ideas", "", "submissions CSV file (required)")
	cmd.Flags().String("rubric", "", "rubric JSON file (required)")
	cmd.Flags().String("files-dir", "", "directory of per-idea attachment folders")
	cmd.Flags().String("out", "results", "output directory for results and progress")
	cmd.Flags().Int("workers", 0, "worker pool size (default 8)")
	cmd.Flags().String("provider", "", "inference provider (openai, azure-openai, gemini)")
	cmd.Flags().String("db", "", "SQLite database path (empty disables the relational sink)")
	cmd.Flags().Bool("progress-bar", true, "show an interactive progress bar")

	_ = cmd.MarkFlagRequired("ideas")
	_ = cmd.MarkFlagRequired("rubric")

	_ = viper.BindPFlag("evaluate.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("database.path", cmd.Flags().Lookup("db"))

	return cmd
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	ideasPath, _ := cmd.Flags().GetString("ideas")
	rubricPath, _ := cmd.Flags().GetString("rubric")
	filesDir, _ := cmd.Flags().GetString("files-dir")
	outDir, _ := cmd.Flags().GetString("out")
	showBar, _ := cmd.Flags().GetBool("progress-bar")

	items, err := input.LoadItems(ideasPath, logger)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return common.ErrEmptyBatch
	}

	rubric, err := input.LoadRubric(rubricPath, logger)
	if err != nil {
		return err
	}

	input.AttachFiles(items, filesDir, logger)

	client, err := buildClient()
	if err != nil {
		return err
	}
	if closer, ok := client.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  viper.GetInt("llm.max_retries"),
		InitialDelay: viper.GetDuration("llm.retry_delay"),
	}

	batchID := uuid.New().String()

	writer, err := results.NewWriter(filepath.Join(outDir, fmt.Sprintf("results_%s.json", batchID)), logger)
	if err != nil {
		return err
	}
	publisher := results.NewFilePublisher(outDir, batchID, logger)

	var store engine.Store
	if dbPath := viper.GetString("database.path"); dbPath != "" {
		sqlStore, storeErr := storage.NewSQLiteStorage(dbPath)
		if storeErr != nil {
			return storeErr
		}
		defer func() { _ = sqlStore.Close() }()
		if migrateErr := sqlStore.Migrate(ctx); migrateErr != nil {
			return migrateErr
		}
		store = sqlStore
	}

	cfg := engine.Config{Workers: viper.GetInt("evaluate.workers")}

	var bar *progressbar.ProgressBar
	if showBar {
		bar = progressbar.NewOptions(len(items),
			progressbar.OptionSetDescription("evaluating ideas"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
		cfg.OnItemDone = func(_ *model.Item) {
			_ = bar.Add(1)
		}
	}

	e := engine.New(
		extract.New(client, logger, extract.DefaultConfig()),
		classify.New(client, logger, retryOpts),
		score.New(client, logger, retryOpts),
		verify.New(rubric),
		writer,
		store,
		publisher,
		logger,
		cfg,
	)

	start := time.Now()
	if err := e.Run(ctx, engine.Batch{ID: batchID, Items: items, Rubric: rubric}); err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}

	var completed, failed int
	for _, item := range writer.Items() {
		if item.Status == model.ItemFailed {
			failed++
		} else {
			completed++
		}
	}

	logger.Info("evaluation finished",
		"batch_id", batchID,
		"completed", completed,
		"failed", failed,
		"elapsed", time.Since(start).Round(time.Second),
		"progress_file", publisher.Path())

	return nil
}

func buildClient() (llm.Client, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Endpoint:    viper.GetString("llm.endpoint"),
		Model:       viper.GetString("llm.model"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}

	if cfg.Provider == "" {
		return nil, fmt.Errorf("%w: llm.provider is required (flag --provider or FORGE_LLM_PROVIDER)", common.ErrMissingConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: llm.api_key is required", common.ErrMissingConfig)
	}

	return llm.NewClient(cfg)
}
