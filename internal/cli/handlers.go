package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/BartekS5/uni-etl/internal/api"
	"github.com/BartekS5/uni-etl/internal/config"
	"github.com/BartekS5/uni-etl/internal/etl"
	"github.com/BartekS5/uni-etl/internal/render"
	"github.com/BartekS5/uni-etl/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func loadConfig(global *GlobalOptions, override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if global.DBDriver != "" {
		cfg.DBDriver = global.DBDriver
	}
	if global.DBDSN != "" {
		cfg.DBDSN = global.DBDSN
	}
	if global.Table != "" {
		cfg.Table = global.Table
	}
	if global.LogFile != "" {
		cfg.LogFile = global.LogFile
	}
	if global.LogLevel != "" {
		cfg.LogLevel = global.LogLevel
	}
	if override != nil {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, func(), error) {
	return logger.New(logger.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Console: cmd.ErrOrStderr(),
	})
}

func storeOf(cfg *config.Config) etl.Store {
	return etl.Store{Driver: cfg.DBDriver, DSN: cfg.DBDSN}
}

func runPipeline(cmd *cobra.Command, global *GlobalOptions, opts *RunOptions) error {
	cfg, err := loadConfig(global, func(c *config.Config) {
		if opts.URL != "" {
			c.APIURL = opts.URL
		}
		if opts.Filter != "" {
			c.NameFilter = opts.Filter
		}
	})
	if err != nil {
		return err
	}

	log, cleanup, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	store := storeOf(cfg)

	var loader etl.Loader = etl.NewSQLLoader(store, cfg.Table, log.Named(etl.StageLoad))
	if cfg.MirrorEnabled() {
		mirror := etl.NewMongoLoader(cfg.MongoConnString, cfg.MongoDatabase, cfg.Table, log.Named(etl.StageLoad))
		loader = etl.MultiLoader{loader, mirror}
	}

	pipeline := etl.NewPipeline(
		etl.NewHTTPExtractor(cfg.APIURL, cfg.HTTPTimeout, log.Named(etl.StageExtract)),
		etl.NewTransformer(cfg.NameFilter, log.Named(etl.StageTransform)),
		loader,
		opts.DryRun,
		log,
	)

	_, table, err := pipeline.Run(ctx)
	out := cmd.OutOrStdout()
	if table != nil {
		if rerr := render.Table(out, table.Rows); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return err
	}

	if opts.DryRun || opts.NoReadBack {
		return nil
	}
	return readBack(ctx, out, store, cfg.Table, log.Named(etl.StageReadBack))
}

func readBack(ctx context.Context, out io.Writer, store etl.Store, table string, log *zap.Logger) error {
	rows, err := etl.NewSQLReader(store, table).ReadAll(ctx)
	if err != nil {
		log.Error("Error reading data: " + err.Error())
		return &etl.StageError{Stage: etl.StageReadBack, Err: err}
	}
	log.Info("Data read back successfully", zap.Int("rows", len(rows)))
	return render.Table(out, rows)
}

func runShow(cmd *cobra.Command, global *GlobalOptions) error {
	cfg, err := loadConfig(global, nil)
	if err != nil {
		return err
	}

	log, cleanup, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return readBack(cmd.Context(), cmd.OutOrStdout(), storeOf(cfg), cfg.Table, log.Named(etl.StageReadBack))
}

func runServe(cmd *cobra.Command, global *GlobalOptions, addr string) error {
	cfg, err := loadConfig(global, func(c *config.Config) {
		if addr != "" {
			c.ListenAddr = addr
		}
	})
	if err != nil {
		return err
	}

	log, cleanup, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(etl.NewSQLReader(storeOf(cfg), cfg.Table), log.Named("api")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("Serving table over HTTP", zap.String("addr", cfg.ListenAddr), zap.String("table", cfg.Table))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
