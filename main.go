package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"labor-contract/api/handler"
	"labor-contract/api/router"
	"labor-contract/job"
	"labor-contract/logger"
	"labor-contract/logic/chat"
	"labor-contract/logic/ingestion/loaders"
	"labor-contract/logic/ingestion/transform"
	"labor-contract/logic/wizard"
	"labor-contract/service"
	"labor-contract/storage/es"
	"labor-contract/storage/memory"
	"labor-contract/storage/milvus"
	"labor-contract/storage/postgres"
	"labor-contract/vars"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "labor-contract",
		Short:        "Korean standard labor contract wizard backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	})

	var (
		catalogPath string
		force       bool
	)
	ingest := &cobra.Command{
		Use:   "ingest",
		Short: "Index the KSCO occupation table into Elasticsearch and Milvus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(configPath)
			if err != nil {
				return err
			}
			if catalogPath == "" {
				catalogPath = cfg.Catalog.Path
			}
			svc, closeFn, err := buildCatalog(cmd.Context(), cfg.Catalog)
			if err != nil {
				return err
			}
			defer closeFn()
			n, err := svc.Ingest(cmd.Context(), catalogPath, force)
			if err != nil {
				return err
			}
			logger.L().Info("catalog ingested", zap.Int("occupations", n))
			return nil
		},
	}
	ingest.Flags().StringVar(&catalogPath, "path", "", "catalog file (built-in table when empty)")
	ingest.Flags().BoolVar(&force, "force", false, "re-index even when the indexes are populated")

	catalog := &cobra.Command{Use: "catalog", Short: "Occupation catalog tools"}
	catalog.AddCommand(ingest)
	root.AddCommand(catalog)
	return root
}

func setup(configPath string) (vars.Config, error) {
	v, err := vars.Load(configPath)
	if err != nil {
		return vars.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg := vars.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return vars.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return vars.Config{}, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg vars.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logger.L().Sync() }()

	// 1. 会话存储
	var store service.SessionStore
	switch cfg.Session.Driver {
	case vars.STORE_POSTGRES:
		db, err := postgres.InitDB(cfg.Postgres.DSN())
		if err != nil {
			return err
		}
		store = postgres.NewSessionRepo(db)
	case vars.STORE_MEMORY, "":
		store = memory.NewSessionStore()
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Session.Driver)
	}

	// 2. 模型
	chatModel, err := chat.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("init chat model: %w", err)
	}

	// 3. 职业目录（可选）
	var catalogSvc *service.CatalogService
	if cfg.Catalog.Enabled {
		svc, closeFn, err := buildCatalog(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		defer closeFn()
		if _, err := svc.Ingest(ctx, cfg.Catalog.Path, false); err != nil {
			logger.L().Warn("catalog ingest failed, classification uses the full guide", zap.Error(err))
		} else {
			catalogSvc = svc
		}
	}

	// 4. Service / Handler
	wizardSvc := service.NewWizardService(store, wizard.NewMachine(cfg.Compliance))
	reviewSvc := service.NewReviewService(chatModel, cfg.LLM, wizardSvc, catalogSvc)

	purge, err := job.StartCronJob(cfg.Session.PurgeCron, cfg.Session.IdleTTL, wizardSvc)
	if err != nil {
		return err
	}
	defer purge.Stop()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.NewEngine(
		handler.NewContractHandler(wizardSvc, reviewSvc, catalogSvc),
		handler.NewSessionHandler(wizardSvc, reviewSvc),
	)

	// 5. 启动 Web Server
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("llm", cfg.LLM.Provider+"/"+cfg.LLM.Model),
			zap.String("store", cfg.Session.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildCatalog connects the embedder, Elasticsearch and Milvus. The
// returned func releases the Milvus connection.
func buildCatalog(ctx context.Context, cfg vars.CatalogConfig) (*service.CatalogService, func(), error) {
	loader, err := loaders.NewCatalogLoader(ctx)
	if err != nil {
		return nil, nil, err
	}
	embedder, err := transform.NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	keyword, err := es.NewCatalog(strings.Split(cfg.ESAddr, ","), cfg.ESIndex)
	if err != nil {
		return nil, nil, err
	}
	vector, err := milvus.Connect(ctx, cfg.MilvusAddr, cfg.MilvusCollection, embedder)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := vector.Close(); err != nil {
			logger.L().Warn("close milvus", zap.Error(err))
		}
	}
	return service.NewCatalogService(loader, keyword, vector, cfg.TopK), closeFn, nil
}
