package wire

import (
	"Fanscope/internal/api"
	"Fanscope/internal/api/config"
	"Fanscope/internal/api/handler"
	"Fanscope/internal/job"
	"Fanscope/internal/pkg/cron"
	"Fanscope/internal/pkg/es"
	"Fanscope/internal/pkg/kafka"
	pkgmongo "Fanscope/internal/pkg/mongo"
	"Fanscope/internal/platform"
	"Fanscope/internal/platform/fansly"
	"Fanscope/internal/platform/onlyfans"
	"Fanscope/internal/platform/reddit"
	"Fanscope/internal/platform/transport"
	"Fanscope/internal/repository"
	"Fanscope/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Producer     kafka.Producer
	Browser      *transport.BrowserFetcher
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	registry, browser := buildRegistry(cfg)

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewPlatformAccountRepository(db)
	metricsRepo := repository.NewCreatorMetricsRepository(db)
	exportRepo := repository.NewExportRecordRepository(db)

	rawSnapshotRepo := pkgmongo.NewRawSnapshotRepo(mongoDB)
	snapshotESRepo := es.NewSnapshotRepo(es.Client)

	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo)
	metricsService := service.NewMetricsService(registry, metricsRepo, rawSnapshotRepo, snapshotESRepo)
	trendingService := service.NewTrendingService(registry)
	recommendService := service.NewRecommendService(registry, metricsService)
	accountService := service.NewAccountService(registry, accountRepo, metricsService)
	exportService := service.NewExportService(metricsRepo, exportRepo, producer)
	taskService := service.NewTaskService(registry, accountRepo, producer)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService),
		AccountHandler:   handler.NewAccountHandler(accountService),
		MetricsHandler:   handler.NewMetricsHandler(metricsService),
		TrendingHandler:  handler.NewTrendingHandler(trendingService),
		RecommendHandler: handler.NewRecommendHandler(recommendService),
		ExportHandler:    handler.NewExportHandler(exportService),
		TaskHandler:      handler.NewTaskHandler(taskService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, metricsService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewMetricsSnapshotJob(accountRepo, metricsService),
		job.NewTrendingRefreshJob(trendingService),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Producer:     producer,
		Browser:      browser,
	}, nil
}

// buildRegistry 按配置组装各平台客户端，缺配置的平台直接跳过
func buildRegistry(cfg *config.Config) (*platform.Registry, *transport.BrowserFetcher) {
	clients := make([]platform.Client, 0, len(cfg.Platforms))
	var browser *transport.BrowserFetcher

	for name, pc := range cfg.Platforms {
		switch name {
		case "onlyfans":
			clients = append(clients, onlyfans.New(pc.ToClientConfig()))
		case "reddit":
			clients = append(clients, reddit.New(pc.ToClientConfig()))
		case "fansly":
			// Fansly 的趋势页是前端渲染的，被拦截时回退无头浏览器
			proxy := ""
			if len(pc.Proxies) > 0 {
				proxy = pc.Proxies[0]
			}
			ua := ""
			if len(pc.UserAgents) > 0 {
				ua = pc.UserAgents[0]
			}
			b, err := transport.NewBrowserFetcher(ua, proxy)
			if err != nil {
				log.Warn("Browser fetcher unavailable, fansly falls back to plain HTTP", "err", err)
			} else {
				browser = b
			}
			clients = append(clients, fansly.New(pc.ToClientConfig(), browser))
		default:
			log.Warn("Unknown platform in config, skipped", "platform", name)
		}
	}

	return platform.NewRegistry(clients...), browser
}
