package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config contém os dados de conexão do Redis
type Config struct {
	Address  string
	Password string
	DB       int
}

// ErrEmptyAddress indica que REDIS_ADDR não foi configurado
var ErrEmptyAddress = errors.New("endereço do redis não configurado")

const connectionTimeout = 5 * time.Second

// NewClient cria o cliente e verifica a conexão com um PING
func NewClient(cfg Config) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
	}

	return client, nil
}
