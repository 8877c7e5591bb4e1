package bootstrap

import (
	"context"
	"fmt"
	"log"

	"ats-assistant-be/internal/config"
	"ats-assistant-be/internal/controller"
	"ats-assistant-be/internal/model"
	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/internal/pkg/mailer"
	"ats-assistant-be/internal/repository/implementation"
	"ats-assistant-be/internal/repository/memory"
	"ats-assistant-be/internal/service"
	"ats-assistant-be/internal/websocket"
	"ats-assistant-be/pkg/assistant"
	"ats-assistant-be/pkg/ats"
	"ats-assistant-be/pkg/database"
	"ats-assistant-be/pkg/events"
	"ats-assistant-be/pkg/llm/factory"
	pktNats "ats-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// Engine is the dispatcher with its ATS collaborators. The REST server and
// the CLI both build one.
type Engine struct {
	Client     *ats.RESTClient
	Directory  *ats.CachedDirectory
	Dispatcher *assistant.Dispatcher
}

func NewEngine(cfg *config.Config, sysLogger logger.ILogger) (*Engine, error) {
	zl := sysLogger.Zap()

	client := ats.NewRESTClient(cfg.ATS.BaseURL, cfg.ATS.Token, cfg.ATS.Timeout, zl)

	directory, err := ats.NewCachedDirectory(ats.Directories{
		Jobs:         client,
		Candidates:   client,
		Applications: client,
		Interviews:   client,
	}, cfg.ATS.CacheMaxCost, cfg.ATS.CacheTTL, zl)
	if err != nil {
		return nil, err
	}

	chat, err := factory.NewChatBackend(
		cfg.Ai.ChatBackend,
		client,
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat backend: %w", err)
	}

	var emails ats.CandidateEmailService
	if cfg.SMTP.Host != "" {
		emails = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	} else {
		sysLogger.Warn("Bootstrap", "SMTP_HOST not set, candidate e-mail disabled", nil)
	}

	dispatcher := assistant.NewDispatcher(assistant.Deps{
		Directories:   directory.Directories(client),
		Notifications: client,
		Emails:        emails,
		Chat:          chat,
		Logger:        zl,
	})

	return &Engine{
		Client:     client,
		Directory:  directory,
		Dispatcher: dispatcher,
	}, nil
}

// Close stops the list cache.
func (e *Engine) Close() {
	e.Directory.Close()
}

type Container struct {
	Engine            *Engine
	ChatbotController controller.IChatbotController

	// Background services, started by main.go
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	closers []func()
}

func NewContainer(cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Engine
	engine, err := NewEngine(cfg, sysLogger)
	if err != nil {
		return nil, err
	}

	c := &Container{Engine: engine}
	c.closers = append(c.closers, engine.Close)

	// 2. Redis (history backend and cross-instance WebSocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
			rdb.Close()
			rdb = nil
		} else {
			c.closers = append(c.closers, func() { rdb.Close() })
		}
	}

	// 3. History
	store, err := newHistoryStore(cfg, rdb, sysLogger)
	if err != nil {
		c.Close()
		return nil, err
	}
	chats := assistant.NewChatHistory(store, cfg.History.SessionLimit)
	searches := assistant.NewSearchHistory(store, cfg.History.SearchLimit)

	// 4. Event bus: in-process gochannel, forwarded to NATS when configured
	var publisher events.Publisher
	if cfg.Assistant.DispatchEvents {
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
		c.closers = append(c.closers, func() { pubSub.Close() })
		publisher = service.NewEventBus(pubSub)

		var sink events.Publisher
		if cfg.App.NatsURL != "" {
			natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger.Zap())
			if err != nil {
				sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
			} else {
				sink = natsPub
				c.closers = append(c.closers, natsPub.Close)
			}
		}
		c.ConsumerService = service.NewConsumerService(pubSub, service.EventsTopic, sink, sysLogger)
	}

	// 5. Service, streaming and controller
	chatbotService := service.NewChatbotService(engine.Dispatcher, chats, searches, publisher, sysLogger, nil)

	c.WebSocketHub = websocket.NewHub(rdb, sysLogger)
	stream := websocket.NewChatStream(c.WebSocketHub, chatbotService, cfg.Assistant.TypingInterval, sysLogger)

	c.ChatbotController = controller.NewChatbotController(chatbotService, stream.Handler())

	return c, nil
}

func newHistoryStore(cfg *config.Config, rdb *redis.Client, sysLogger logger.ILogger) (assistant.HistoryStore, error) {
	switch cfg.History.Backend {
	case "", "memory":
		return memory.NewHistoryStore(cfg.History.TTL), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("history backend redis requires a reachable REDIS_URL")
		}
		return implementation.NewRedisHistoryStore(rdb, cfg.History.TTL), nil
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production", &model.HistoryBlob{})
		if err != nil {
			return nil, fmt.Errorf("unable to connect to GORM DB: %w", err)
		}
		sysLogger.Info("Bootstrap", "History stored in postgres", nil)
		return implementation.NewGormHistoryStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", cfg.History.Backend)
	}
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
