package config

import (
	"fmt"
	"os"
)

// Config reúne toda a configuração lida do ambiente.
type Config struct {
	Porta        string
	BaseURL      string
	AsaasAPIKey  string
	AsaasBaseURL string
	JWTSecret    string
	RedisAddr    string
}

// Load lê as variáveis de ambiente e valida as obrigatórias.
func Load() (*Config, error) {
	cfg := &Config{
		Porta:        getEnv("PORT", "8080"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		AsaasAPIKey:  os.Getenv("ASAAS_API_KEY"),
		AsaasBaseURL: getEnv("ASAAS_BASE_URL", "https://api.asaas.com/v3"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
	}

	if cfg.AsaasAPIKey == "" {
		return nil, fmt.Errorf("ASAAS_API_KEY não configurada")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET não configurada")
	}

	return cfg, nil
}

func getEnv(chave, padrao string) string {
	if v := os.Getenv(chave); v != "" {
		return v
	}
	return padrao
}
