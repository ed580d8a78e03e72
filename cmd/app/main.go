package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lecture-quiz/internal/config"
	"lecture-quiz/internal/domain/ports/adapter"
	aiAdapters "lecture-quiz/internal/infra/adapters/ai"
	pg "lecture-quiz/internal/infra/db/postgres"
	"lecture-quiz/internal/infra/export"
	"lecture-quiz/internal/infra/logging"
	"lecture-quiz/internal/infra/metrics"
	red "lecture-quiz/internal/infra/redis"
	"lecture-quiz/internal/infra/storage"
	"lecture-quiz/internal/infra/web"
	"lecture-quiz/internal/infra/worker"
	"lecture-quiz/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop AI providers)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled: AI providers are stubbed")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)

	// ---- File store ----
	store, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal().Err(err).Msg("upload store")
	}

	// ---- Repositories ----
	videoRepo := pg.NewPostgresVideoRepo(pool)
	segmentRepo := pg.NewPostgresSegmentRepo(pool)
	questionRepo := pg.NewPostgresQuestionRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- AI adapters ----
	var transcriber adapter.Transcriber
	var generator adapter.QuestionGenerator
	switch {
	case cfg.Runtime.Dev:
		transcriber = &aiAdapters.NoopTranscriber{}
		generator = &aiAdapters.NoopGenerator{Questions: cfg.AI.QuestionsPerWindow}
	case cfg.AI.OpenAIKey != "":
		transcriber, err = aiAdapters.NewWhisperTranscriber(cfg.AI.OpenAIKey, cfg.AI.WhisperModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("whisper transcriber")
		}
		if cfg.AI.GeminiKey != "" {
			generator, err = aiAdapters.NewGeminiGenerator(ctx, cfg.AI.GeminiKey, "", cfg.AI.QuestionsPerWindow)
			if err != nil {
				logger.Fatal().Err(err).Msg("gemini generator")
			}
			logger.Info().Str("whisper_model", cfg.AI.WhisperModel).Msg("AI providers: OpenAI transcription, Gemini generation")
		} else {
			generator, err = aiAdapters.NewOpenAIGenerator(cfg.AI.OpenAIKey, cfg.AI.ChatModel, cfg.AI.QuestionsPerWindow)
			if err != nil {
				logger.Fatal().Err(err).Msg("openai generator")
			}
			logger.Info().Str("chat_model", cfg.AI.ChatModel).Str("whisper_model", cfg.AI.WhisperModel).Msg("AI provider: OpenAI")
		}
	default:
		// Transcription always needs the OpenAI audio API; a Gemini key
		// alone cannot drive the pipeline.
		logger.Fatal().Msg("no usable AI provider: set ai.openai_key (or run with -dev)")
	}

	// ---- Use cases ----
	uploadUC := usecase.NewUploadUseCase(videoRepo, store, cfg.Upload.MaxSizeBytes, logger)
	statusUC := usecase.NewStatusUseCase(videoRepo)
	resultsUC := usecase.NewResultsUseCase(videoRepo, segmentRepo, questionRepo)
	exportUC := usecase.NewExportUseCase(resultsUC, map[string]usecase.Exporter{
		"json": export.NewJSONExporter(),
		"pdf":  export.NewPDFExporter(),
	})

	// ---- Pipeline ----
	runner := worker.NewPipelineRunner(
		videoRepo, segmentRepo, questionRepo, tm,
		transcriber, generator, locker,
		cfg.AI.TranscribeTimeout, cfg.AI.GenerateTimeout,
		logger,
	)
	wpool := worker.NewPool(cfg.Server.Workers, logger)
	wpool.Start(ctx)
	defer wpool.Stop()
	scheduler := worker.NewScheduler(wpool, runner)

	// ---- HTTP ----
	metrics.MustRegister()
	srv := web.NewServer(uploadUC, statusUC, resultsUC, exportUC, scheduler, cfg.Upload.MaxSizeBytes, logger)
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Minute, // large uploads
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	if err := httpSrv.Shutdown(shutCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
