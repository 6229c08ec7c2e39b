package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

// Config groups client and server settings.
type Config struct {
	Client ClientConfig
	Server ServerConfig
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	ServerURL     string
	UserID        string
	DisplayName   string
	Submit        chat.SubmitPolicy
	SendTimeout   time.Duration
	MaxDraft      int
	MaxReconnects int
	LogFile       string
}

// ServerConfig configures the messaging backend.
type ServerConfig struct {
	Addr         string
	HistoryLimit int
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	client, err := loadClientConfig()
	if err != nil {
		return nil, err
	}

	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Client: client, Server: server}, nil
}

func loadClientConfig() (ClientConfig, error) {
	trim, err := parseBoolEnv("CHAT_TRIM_OUTGOING", false)
	if err != nil {
		return ClientConfig{}, err
	}

	restore, err := parseBoolEnv("CHAT_RESTORE_DRAFT", true)
	if err != nil {
		return ClientConfig{}, err
	}

	timeout, err := parsePositiveIntEnv("CHAT_SEND_TIMEOUT", 10)
	if err != nil {
		return ClientConfig{}, err
	}

	maxDraft, err := parsePositiveIntEnv("CHAT_MAX_DRAFT", 500)
	if err != nil {
		return ClientConfig{}, err
	}

	maxReconnects, err := parsePositiveIntEnv("CHAT_MAX_RECONNECTS", 5)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		ServerURL:   getEnvOrDefault("CHAT_SERVER_URL", "ws://localhost:8080/ws"),
		UserID:      getEnvOrDefault("CHAT_USER_ID", "seller-1"),
		DisplayName: getEnvOrDefault("CHAT_DISPLAY_NAME", "Seller"),
		Submit: chat.SubmitPolicy{
			TrimOutgoing:          trim,
			RestoreDraftOnFailure: restore,
		},
		SendTimeout:   time.Duration(timeout) * time.Second,
		MaxDraft:      maxDraft,
		MaxReconnects: maxReconnects,
		LogFile:       strings.TrimSpace(os.Getenv("CHAT_LOG_FILE")),
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	addr := getEnvOrDefault("CHAT_ADDR", "")
	if addr == "" {
		port := getEnvOrDefault("PORT", "8080")
		if strings.Contains(port, " ") {
			return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
		}
		// ":8080" and "127.0.0.1:8080" are accepted as is.
		if strings.Contains(port, ":") {
			addr = port
		} else {
			addr = ":" + port
		}
	}

	limit, err := parsePositiveIntEnv("CHAT_HISTORY_LIMIT", 200)
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{Addr: addr, HistoryLimit: limit}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parsePositiveIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 1 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}
