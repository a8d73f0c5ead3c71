package transport

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/infrastructure/logging"
)

var (
	clientCache   = make(map[string]Client)
	clientCacheMu sync.Mutex
)

func cacheKey(cfg entities.SwitchConfig) string {
	keyData := struct {
		Transport      string
		Target         string
		Port           int
		Username       string
		Password       string
		EnablePassword string
		SnmpCommunity  string
	}{
		Transport:      cfg.Transport,
		Target:         cfg.Target,
		Port:           cfg.Port,
		Username:       cfg.Username,
		Password:       cfg.Password,
		EnablePassword: cfg.EnablePassword,
		SnmpCommunity:  cfg.SnmpCommunity,
	}
	bytes, _ := json.Marshal(keyData)
	hash := sha256.Sum256(bytes)
	return hex.EncodeToString(hash[:])
}

// Get returns a cached client for the provided configuration or creates a new one
func Get(cfg entities.SwitchConfig, logger *slog.Logger) (Client, error) {
	clientCacheMu.Lock()
	defer clientCacheMu.Unlock()
	key := cacheKey(cfg)
	if client, exists := clientCache[key]; exists {
		return client, nil
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	clientCache[key] = client
	return client, nil
}

// Release disconnects the cached client for cfg and forgets it
func Release(cfg entities.SwitchConfig) {
	clientCacheMu.Lock()
	defer clientCacheMu.Unlock()
	key := cacheKey(cfg)
	if client, exists := clientCache[key]; exists {
		client.Disconnect()
		delete(clientCache, key)
	}
}

// CloseAll releases every cached client session
func CloseAll() {
	clientCacheMu.Lock()
	defer clientCacheMu.Unlock()
	for key, client := range clientCache {
		client.Disconnect()
		delete(clientCache, key)
	}
}

func newClient(cfg entities.SwitchConfig, logger *slog.Logger) (Client, error) {
	switch cfg.Transport {
	case entities.TransportSSH, "":
		return NewSSHClient(cfg, logger), nil
	case entities.TransportTelnet:
		return NewTelnetClient(cfg, logger), nil
	case entities.TransportSNMP:
		return NewSNMPClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransport, cfg.Transport)
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}
