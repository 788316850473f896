package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP      HTTP
		Log       Log
		Directory Directory
		Printer   Printer
		Audit     Audit
		PG        PG
		S3        S3
		Kafka     Kafka
		Pipeline  Pipeline
		Swagger   Swagger
	}

	// HTTP has no prefork switch: the scan queue lives in this process.
	HTTP struct {
		Port            string        `env:"HTTP_PORT" envDefault:"8765"`
		BodyLimit       int           `env:"HTTP_BODY_LIMIT" envDefault:"1048576"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"5s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"3s"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	Directory struct {
		BaseURL       string        `env:"DIRECTORY_BASE_URL" envDefault:"https://public-api.luma.com/v1/event"`
		APIKey        string        `env:"DIRECTORY_API_KEY"`
		EventID       string        `env:"DIRECTORY_EVENT_ID"`
		Timeout       time.Duration `env:"DIRECTORY_TIMEOUT" envDefault:"15s"`
		MarkCheckedIn bool          `env:"DIRECTORY_MARK_CHECKED_IN" envDefault:"false"`
	}

	Printer struct {
		Driver   string        `env:"PRINTER_DRIVER" envDefault:"log"` // log, tcp, spool
		Addr     string        `env:"PRINTER_ADDR"`                    // tcp: host:port of a raw receipt printer
		SpoolDir string        `env:"PRINTER_SPOOL_DIR" envDefault:"receipts"`
		Timeout  time.Duration `env:"PRINTER_TIMEOUT" envDefault:"10s"`
	}

	Audit struct {
		CSVPath string `env:"AUDIT_CSV_PATH" envDefault:"checkins.csv"`
	}

	// PG mirrors the audit log into postgres when URL is set.
	PG struct {
		PoolMax      int           `env:"PG_POOL_MAX" envDefault:"2"`
		URL          string        `env:"PG_URL"`
		ConnAttempts int           `env:"PG_CONN_ATTEMPTS" envDefault:"10"`
		ConnTimeout  time.Duration `env:"PG_CONN_TIMEOUT" envDefault:"1s"`
	}

	// S3 archives a PNG of every printed receipt when Endpoint is set.
	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT"`
		AccessKey      string        `env:"S3_ACCESS_KEY"`
		SecretKey      string        `env:"S3_SECRET_KEY"`
		Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
		Bucket         string        `env:"S3_BUCKET" envDefault:"receipts"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	// Kafka publishes every outcome when Brokers is set.
	Kafka struct {
		Brokers         []string      `env:"KAFKA_BROKERS"`
		OutcomeTopic    string        `env:"KAFKA_OUTCOME_TOPIC" envDefault:"checkin-outcomes"`
		ConnAttempts    int           `env:"KAFKA_CONN_ATTEMPTS" envDefault:"10"`
		ConnTimeout     time.Duration `env:"KAFKA_CONN_TIMEOUT" envDefault:"1s"`
		BatchTimeout    time.Duration `env:"KAFKA_BATCH_TIMEOUT" envDefault:"10ms"`
		WriteTimeout    time.Duration `env:"KAFKA_WRITE_TIMEOUT" envDefault:"5s"`
		AutoCreateTopic bool          `env:"KAFKA_AUTO_CREATE_TOPIC" envDefault:"true"`
	}

	Pipeline struct {
		ResolveTimeout  time.Duration `env:"PIPELINE_RESOLVE_TIMEOUT" envDefault:"20s"`
		EmitTimeout     time.Duration `env:"PIPELINE_EMIT_TIMEOUT" envDefault:"15s"`
		AuditTimeout    time.Duration `env:"PIPELINE_AUDIT_TIMEOUT" envDefault:"5s"`
		ShutdownTimeout time.Duration `env:"PIPELINE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
