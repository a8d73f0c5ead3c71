package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/carlosrabelo/vlaninv/domain/entities"
	"github.com/carlosrabelo/vlaninv/platform"
)

// Runner fetches the VLAN listing of a switch through a cached transport
// session and the platform driver configured for it.
type Runner struct {
	logger    *slog.Logger
	locks     sync.Map
	getClient func(entities.SwitchConfig, *slog.Logger) (Client, error)
	release   func(entities.SwitchConfig)
}

// NewRunner creates a runner backed by the package client cache
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{
		logger:    orDiscard(logger),
		getClient: Get,
		release:   Release,
	}
}

// RunCommand returns the raw VLAN listing of sw. Sessions stay cached so a
// host listed twice reuses its session; a broken session is released.
func (r *Runner) RunCommand(ctx context.Context, sw entities.SwitchConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mu := r.lock(sw)
	mu.Lock()
	defer mu.Unlock()

	client, err := r.getClient(sw, r.logger)
	if err != nil {
		return "", err
	}
	adapter := NewSwitchAdapter(client)

	driver, err := r.driver(sw, client, adapter)
	if err != nil {
		r.release(sw)
		return "", err
	}

	cmd := driver.VLANCommand()
	output, err := adapter.ExecuteCommand(cmd)
	if err != nil {
		r.release(sw)
		return "", err
	}
	if driver.IsCommandError(output) {
		return "", fmt.Errorf("%w: %s rejected %q", ErrUnsupportedCommand, sw.Target, cmd)
	}
	return output, nil
}

func (r *Runner) driver(sw entities.SwitchConfig, client Client, adapter *SwitchAdapter) (platform.SwitchDriver, error) {
	if sw.PlatformID() == platform.Auto {
		driver, err := platform.Detect(adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to detect platform of %s: %w", sw.Target, err)
		}
		if sw.IsDebugEnabled() {
			r.logger.Debug("platform detected", "host", sw.Target, "platform", driver.Name())
		}
		return driver, nil
	}

	driver, err := platform.Get(sw.PlatformID())
	if err != nil {
		return nil, err
	}
	if ac, ok := client.(AuthConfigurable); ok && !client.IsConnected() {
		ac.SetAuthSequence(driver.GetAuthenticationSequence(sw.Username, sw.Password))
	}
	return driver, nil
}

func (r *Runner) lock(sw entities.SwitchConfig) *sync.Mutex {
	mu, _ := r.locks.LoadOrStore(cacheKey(sw), &sync.Mutex{})
	return mu.(*sync.Mutex)
}
