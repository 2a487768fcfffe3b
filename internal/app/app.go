package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	config "github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/pharmacy-storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/pharmacy-storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/pharmacy-storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/pharmacy-storefront/internal/repository/redis"
	"github.com/DRSN-tech/pharmacy-storefront/internal/session"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/clients"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/closer"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	sessions   *session.Store
	storefront *usecase.StorefrontUseCase
	httpSrv    *v1Http.Server
	grpcSrv    *v1Grpc.GRPCServer
}

// NewApp собирает зависимости. Внешние ресурсы (Kafka, Redis) регистрируются в closer сразу,
// чтобы закрыться последними.
func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	idx, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Errorf(err, "failed to load catalog")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	logger.Infof("catalog loaded: %d products, %d categories", len(idx.Products()), len(idx.Categories()))

	publisher, err := initPublisher(cfg.Kafka, logger, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	limiter, err := initRateLimiter(cfg.Redis, logger, cl)
	if err != nil {
		_ = cl.Close(context.Background())
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sessions := session.NewStore(cfg.Session.IdleTTL, logger)
	storefrontUC := usecase.NewStorefrontUC(idx, sessions, publisher, logger)

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc, logger)
	grpcSrv.RegisterServices(storefrontUC)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg.Http, logger)
	router.Init(storefrontUC, limiter)

	return &App{
		cfg:        cfg,
		logger:     logger,
		closer:     cl,
		sessions:   sessions,
		storefront: storefrontUC,
		httpSrv:    v1Http.NewServer(r, cfg.Http),
		grpcSrv:    grpcSrv,
	}, nil
}

// Run запускает серверы и уборщик сессий и блокируется до сигнала или фатальной ошибки.
func (a *App) Run() error {
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		a.sessions.Run(janitorCtx, a.cfg.Session.JanitorInterval)
	}()

	a.closer.Add("checkout events", a.storefront.WaitForPublishes)
	a.closer.Add("session janitor", func(ctx context.Context) error {
		stopJanitor()
		select {
		case <-janitorDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Http.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
	}

	a.logger.Infof("Application shutdown complete (active sessions dropped: %d)", a.sessions.Len())
	return appErr
}

// initPublisher выбирает Kafka, если заданы брокеры, иначе события только пишутся в лог.
func initPublisher(cfg *config.KafkaCfg, logger logger.Logger, cl *closer.Closer) (usecase.EventPublisher, error) {
	const topicTimeout = 10 * time.Second

	if !cfg.Enabled() {
		logger.Infof("KAFKA_BROKERS is not set, checkout events will be logged only")
		return kafka.NewLogPublisher(logger), nil
	}

	producer := kafka.NewProducer(logger, cfg)
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		// топик может создаваться брокером автоматически
		logger.Warnf("failed to ensure kafka topic %s: %v", cfg.Topic, err)
	}

	cl.Add("kafka producer", func(context.Context) error {
		return producer.Close()
	})

	logger.Infof("checkout events will be published to kafka topic %s", cfg.Topic)
	return producer, nil
}

// initRateLimiter возвращает nil-интерфейс, если Redis не настроен.
func initRateLimiter(cfg *config.RedisCfg, logger logger.Logger, cl *closer.Closer) (usecase.RateLimiter, error) {
	const pingTimeout = 5 * time.Second

	if !cfg.Enabled() {
		logger.Infof("REDIS_ADDR is not set, rate limiting disabled")
		return nil, nil
	}

	redisClient := clients.NewRedisClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		logger.Errorf(err, "failed to connect to redis")
		_ = redisClient.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cl.Add("redis", redisClient.Close)

	logger.Infof("rate limiting enabled: %d requests per %s", cfg.RateLimit, cfg.RateLimitTick)
	return redis.NewRateLimitRepo(redisClient, cfg, logger), nil
}
