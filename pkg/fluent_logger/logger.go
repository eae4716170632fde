package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config - настройки подключения к forward input Fluent Bit.
type Config struct {
	Host      string
	Port      int
	TagPrefix string // с него начинается каждый тег сервиса
	Timeout   time.Duration
	// Async - буферизация и отправка из фоновой горутины.
	Async bool
}

// NewClient создает клиент Fluent Bit. Пинга нет: недоступный коллектор
// проявится ошибками при первом Post.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("fluentd host is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost:         cfg.Host,
		FluentPort:         cfg.Port,
		TagPrefix:          cfg.TagPrefix,
		Timeout:            cfg.Timeout,
		WriteTimeout:       cfg.Timeout,
		Async:              cfg.Async,
		SubSecondPrecision: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return logger, nil
}
