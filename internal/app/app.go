package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Scan-Checkin/config"
	"github.com/andreyxaxa/Scan-Checkin/internal/controller/restapi"
	"github.com/andreyxaxa/Scan-Checkin/internal/controller/worker/scanqueue"
	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure/directory"
	infrakafka "github.com/andreyxaxa/Scan-Checkin/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure/notifier"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure/printer"
	"github.com/andreyxaxa/Scan-Checkin/internal/repo"
	"github.com/andreyxaxa/Scan-Checkin/internal/repo/persistent"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase/checkin"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase/scan"
	"github.com/andreyxaxa/Scan-Checkin/pkg/httpserver"
	"github.com/andreyxaxa/Scan-Checkin/pkg/kafka/producer"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/postgres"
	"github.com/andreyxaxa/Scan-Checkin/pkg/queue"
	"github.com/andreyxaxa/Scan-Checkin/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Queue
	scanQueue := queue.New[entity.ScanEvent]()

	// Repository

	// csv audit log
	csvAudit, err := persistent.NewCSVAuditLog(cfg.Audit.CSVPath)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - persistent.NewCSVAuditLog: %w", err))
	}
	auditLogs := []repo.AuditLog{csvAudit}

	// postgres audit mirror
	if cfg.PG.URL != "" {
		pg, err := postgres.New(ctx, cfg.PG.URL,
			postgres.MaxPoolSize(cfg.PG.PoolMax),
			postgres.ConnAttempts(cfg.PG.ConnAttempts),
			postgres.ConnTimeout(cfg.PG.ConnTimeout),
		)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
		}
		defer pg.Close()

		pgAudit := persistent.NewAuditPostgresRepo(pg)

		err = pgAudit.Migrate(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - pgAudit.Migrate: %w", err))
		}

		auditLogs = append(auditLogs, pgAudit)
	}

	// Infrastructure

	// guest directory
	guestDirectory := directory.New(
		cfg.Directory.BaseURL,
		cfg.Directory.APIKey,
		directory.EventID(cfg.Directory.EventID),
		directory.Timeout(cfg.Directory.Timeout),
	)

	// printer
	emitter, err := printer.New(cfg.Printer, l)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - printer.New: %w", err))
	}

	// s3 receipt archive
	if cfg.S3.Endpoint != "" {
		s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
		defer s3Cancel()

		s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, s3client.Region(cfg.S3.Region))
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
		}

		err = s3c.EnsureBucket(s3Ctx, cfg.S3.Bucket)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - s3c.EnsureBucket: %w", err))
		}

		emitter = printer.NewArchived(emitter, persistent.NewReceiptArchiveRepo(s3c, cfg.S3.Bucket), l)
	}

	// kafka outcome publisher
	var publishers []infrastructure.OutcomePublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers,
			producer.ConnAttempts(cfg.Kafka.ConnAttempts),
			producer.ConnTimeout(cfg.Kafka.ConnTimeout),
			producer.BatchTimeout(cfg.Kafka.BatchTimeout),
			producer.WriteTimeout(cfg.Kafka.WriteTimeout),
			producer.AutoCreateTopic(cfg.Kafka.AutoCreateTopic),
		)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
		}

		publishers = append(publishers, infrakafka.NewOutcomeProducer(kafkaProducer, cfg.Kafka.OutcomeTopic))
	}

	// result sink
	resultSink := notifier.New(l, publishers...)

	// Use-Case
	scanUseCase := scan.New(scanQueue, l)

	checkInUseCase := checkin.New(
		guestDirectory,
		emitter,
		persistent.NewAuditFanOut(auditLogs...),
		resultSink,
		l,
		cfg.Pipeline,
		cfg.Directory.MarkCheckedIn,
	)

	// Scan Queue Worker
	scanConsumer := scanqueue.New(checkInUseCase, scanQueue, l)

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.BodyLimit(cfg.HTTP.BodyLimit),
		httpserver.ReadTimeout(cfg.HTTP.ReadTimeout),
		httpserver.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)
	restapi.NewRouter(httpServer.App, cfg, scanUseCase, checkInUseCase, resultSink, l)

	// Start Components
	err = resultSink.Start()
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - resultSink.Start: %w", err))
	}
	err = scanConsumer.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - scanConsumer.Start: %w", err))
	}
	httpServer.Start()

	l.Info("app - Run - printer=%s audit=%s postgres=%t s3=%t kafka=%t",
		cfg.Printer.Driver, cfg.Audit.CSVPath, cfg.PG.URL != "", cfg.S3.Endpoint != "", len(publishers) > 0)

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	scanQueue.Close()

	scShutdownCtx, scShutdownCancel := context.WithTimeout(ctx, cfg.Pipeline.ShutdownTimeout)
	defer scShutdownCancel()
	err = scanConsumer.Shutdown(scShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - scanConsumer.Shutdown: %w", err))
	}

	rsShutdownCtx, rsShutdownCancel := context.WithTimeout(ctx, cfg.Pipeline.ShutdownTimeout)
	defer rsShutdownCancel()
	err = resultSink.Shutdown(rsShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - resultSink.Shutdown: %w", err))
	}
}
