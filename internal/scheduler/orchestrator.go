package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Refresher reloads cached data.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Orchestrator keeps the metadata cache warm
type Orchestrator struct {
	refresher Refresher
	config    *Config
	logger    *log.Logger

	mu          sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
	lastRefresh time.Time
	lastErr     error
}

// Config holds scheduler configuration
type Config struct {
	RefreshInterval time.Duration // Default: 5m
	MaxRetries      int           // Default: 3
	RetryDelay      time.Duration // Default: 5s
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		RefreshInterval: 5 * time.Minute,
		MaxRetries:      3,
		RetryDelay:      5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(refresher Refresher, config *Config, logger *log.Logger) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[scheduler] ", log.LstdFlags)
	}
	return &Orchestrator{
		refresher: refresher,
		config:    config,
		logger:    logger,
	}
}

// Start refreshes immediately, then on every interval, until ctx is
// cancelled or Stop is called. It blocks.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	o.mu.Lock()
	o.cancel = cancel
	o.done = done
	o.mu.Unlock()
	defer close(done)

	o.logger.Printf("→ Metadata refresh started (interval: %v)", o.config.RefreshInterval)

	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	o.refreshWithRetry(ctx)

	for {
		select {
		case <-ctx.Done():
			o.logger.Println("→ Metadata refresh stopped")
			return
		case <-ticker.C:
			o.refreshWithRetry(ctx)
		}
	}
}

// refreshWithRetry runs one refresh, retrying failures
func (o *Orchestrator) refreshWithRetry(ctx context.Context) {
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		err = o.refresher.Refresh(ctx)
		if err == nil {
			break
		}

		o.logger.Printf("  ⚠️  Refresh attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	o.mu.Lock()
	o.lastErr = err
	if err == nil {
		o.lastRefresh = time.Now()
	}
	o.mu.Unlock()

	if err != nil {
		o.logger.Printf("  ❌ All %d refresh attempts failed", o.config.MaxRetries)
		return
	}
	o.logger.Printf("  ✓ Metadata cache refreshed")
}

// Stop cancels the refresh loop and waits for it to exit
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	cancel, done := o.cancel, o.done
	o.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := map[string]interface{}{
		"refresh_interval": o.config.RefreshInterval.String(),
	}
	if !o.lastRefresh.IsZero() {
		status["last_refresh"] = o.lastRefresh.Format(time.RFC3339)
	}
	if o.lastErr != nil {
		status["last_error"] = o.lastErr.Error()
	}
	return status
}
