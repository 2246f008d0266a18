package main

import (
	"context"
	"flag"
	"log"
	"os"

	"storefront/config"
	"storefront/internal/account"
	"storefront/internal/broker"
	"storefront/internal/report"
	"storefront/internal/seed"
	"storefront/internal/service"
	"storefront/internal/simulation"
	"storefront/internal/util"

	"go.uber.org/zap"
)

func main() {
	lang := flag.String("lang", "", "report language (overrides REPORT_LANGUAGE)")
	username := flag.String("user", "user1", "account to log in as")
	password := flag.String("password", "password1", "account credential")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := util.InitLogger(cfg.Server.Env, true); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()
	logger := util.GetLogger()

	ctx := context.Background()

	data, source, err := seed.Load(ctx, cfg.Seed)
	if err != nil {
		logger.Fatal("Failed to load seed", zap.String("source", source), zap.Error(err))
	}
	cat, accounts, err := seed.Build(data, account.Options{
		HashCost:         cfg.Business.PasswordHashCost,
		StrictMergeStock: cfg.Business.StrictMergeStock,
	})
	if err != nil {
		logger.Fatal("Failed to build shop", zap.Error(err))
	}

	var producer broker.Producer = broker.NewLogProducer(logger)
	if cfg.KafkaEnabled() {
		producer = broker.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer producer.Close()

	shop := service.NewShop(cat, accounts, service.Options{
		EventPublisher:     broker.NewEventPublisher(producer),
		StrictPaymentStock: cfg.Business.StrictPaymentStock,
	})

	language := cfg.Business.ReportLanguage
	if *lang != "" {
		language = *lang
	}

	script := simulation.DefaultScript()
	script.Username = *username
	script.Password = *password

	driver := simulation.NewDriver(shop, report.New(os.Stdout, language))
	res := driver.Run(ctx, script)
	if !res.Paid() {
		util.SyncLogger()
		os.Exit(1)
	}
}
