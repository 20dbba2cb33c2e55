package main

import (
	"log"

	"gymangel-backend/internal/shared/utils"
)

// Config holds all configuration for the worker
type Config struct {
	RedisAddr     string
	RedisPassword string
	SMTPHost      string
	SMTPPort      string
	SMTPFrom      string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
		SMTPHost:      utils.GetEnvVariable("SMTP_HOST", "localhost"),
		SMTPPort:      utils.GetEnvVariable("SMTP_PORT", "1025"),
		SMTPFrom:      utils.GetEnvVariable("SMTP_FROM", "no-reply@gymangel.vn"),
	}

	log.Printf("[Config] Redis: %s, SMTP: %s:%s",
		cfg.RedisAddr, cfg.SMTPHost, cfg.SMTPPort)

	return cfg
}
