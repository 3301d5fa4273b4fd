package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/mailservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	db          pinger
	users       userResolver
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	db, err := common.NewDB(cfg.DatabaseURL, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.MaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	logger.Info("connected to the database")

	err = common.MigrateDB(db)
	if err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens, err := userservice.NewTokenMaker(cfg.Secret, cfg.TokenLifetime)
	if err != nil {
		logger.Error("failed to create the token maker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var producer common.MessageProducer = common.NopProducer{}
	var mailService *mailservice.MailService

	if cfg.RabbitMQURL != "" {
		broker, err := common.NewMessageBroker(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = broker.Declare(common.UserCreatedBinding)
		if err != nil {
			logger.Error("failed to declare the broker topology", slog.String("error", err.Error()))
			os.Exit(1)
		}

		producer = broker

		if cfg.mailEnabled() {
			mailService = mailservice.NewMailService(broker, mailservice.Config{
				Host:      cfg.Mail.Host,
				Port:      cfg.Mail.Port,
				Username:  cfg.Mail.User,
				Password:  cfg.Mail.Password,
				Sender:    cfg.Mail.Sender,
				Recipient: cfg.Mail.Recipient,
			}, logger)

			err = mailService.NotifyUserCreated()
			if err != nil {
				logger.Error("failed to start the registration mailer", slog.String("error", err.Error()))
				os.Exit(1)
			}
			defer mailService.Close()
		}
	}

	cache := common.NewCache(cfg.UserCacheTTL, 2*cfg.UserCacheTTL+time.Minute)
	userService := userservice.NewUserService(db, tokens, producer, cache, logger)

	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		users:       userService,
		userService: userService,
		blogService: blogservice.NewBlogService(db, logger),
		mailService: mailService,
	}

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
