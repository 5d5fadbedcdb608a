package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/model"
	"microblog/internal/pkg/logger"
	mysqlClient "microblog/internal/platform/mysql"
	rabbitmqClient "microblog/internal/platform/rabbitmq"
	redisClient "microblog/internal/platform/redis"
	"microblog/internal/worker"
)

type App struct {
	Config      *config.Config
	Log         *zap.Logger
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	Timeline    *cache.TimelineCache
	Events      *rabbitmqClient.EventPublisher
	StatsWorker *worker.StatsWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.Account{}, &model.Message{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	timeline := cache.NewTimelineCache(redisCli, time.Duration(cfg.Redis.TimelineTTLSeconds)*time.Second)
	events := rabbitmqClient.NewEventPublisher(mqConn, cfg.RabbitMQ.MessageEventQueue)
	statsWorker := worker.NewStatsWorker(mqConn, timeline, cfg.RabbitMQ.MessageEventQueue, log)
	if err := statsWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start stats worker failed: %w", err)
	}

	return &App{
		Config:      cfg,
		Log:         log,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		Timeline:    timeline,
		Events:      events,
		StatsWorker: statsWorker,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.StatsWorker != nil {
		a.StatsWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return closeErr
}
