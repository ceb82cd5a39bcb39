package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"parking-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *redis.Client
	config config.RedisConfig
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	LastPing       time.Time     `json:"lastPing"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

// NewClient creates a Redis client from the configured URL, falling back to
// host:port options when no URL is set.
func NewClient(cfg config.RedisConfig) *Client {
	c := &Client{config: cfg}

	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v, falling back to host:port", err)
			c.client = redis.NewClient(c.hostPortOptions())
			return c
		}
		opt.PoolSize = cfg.PoolSize
		opt.DialTimeout = cfg.DialTimeout
		opt.ReadTimeout = cfg.ReadTimeout
		opt.WriteTimeout = cfg.WriteTimeout
		c.client = redis.NewClient(opt)
		return c
	}

	c.client = redis.NewClient(c.hostPortOptions())
	return c
}

func (c *Client) hostPortOptions() *redis.Options {
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", c.config.Host, c.config.Port),
		Password:     c.config.Password,
		DB:           c.config.DB,
		PoolSize:     c.config.PoolSize,
		DialTimeout:  c.config.DialTimeout,
		ReadTimeout:  c.config.ReadTimeout,
		WriteTimeout: c.config.WriteTimeout,
	}
}

// GetClient exposes the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

func (c *Client) HealthCheck() HealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := c.client.Ping(ctx).Err()
	elapsed := time.Since(start)

	status := HealthStatus{
		LastPing:       start,
		ResponseTime:   elapsed,
		ConnectionInfo: c.client.Options().Addr,
	}

	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.IsConnected = true
	return status
}

func (c *Client) Close() error {
	return c.client.Close()
}
