// Package client implements the status-polling side of the processing
// protocol: a cancellable periodic task that watches one video until it
// reaches a terminal state.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = 3 * time.Second

// StatusUpdate is one observed poll result.
type StatusUpdate struct {
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Terminal reports whether polling should stop after this update.
func (u StatusUpdate) Terminal() bool {
	return u.Status == "completed" || u.Status == "error"
}

type statusEnvelope struct {
	Success bool          `json:"success"`
	Data    *StatusUpdate `json:"data"`
	Error   string        `json:"error"`
}

// Poller repeatedly fetches a video's status until the video reaches a
// terminal state or the caller stops it. At most one loop runs per
// Poller: Start replaces any loop already running, and the old loop is
// fully drained before the new one ticks.
type Poller struct {
	baseURL  string
	httpc    *http.Client
	interval time.Duration
	log      *zerolog.Logger

	// OnUpdate receives every successful check, including the terminal
	// one. OnError receives transient fetch failures; the loop keeps
	// going after calling it.
	OnUpdate func(StatusUpdate)
	OnError  func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(baseURL string, httpc *http.Client, interval time.Duration, logger *zerolog.Logger) *Poller {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	l := logger.With().Str("component", "StatusPoller").Logger()
	return &Poller{baseURL: baseURL, httpc: httpc, interval: interval, log: &l}
}

// Start begins polling for videoID, checking immediately and then on
// every tick. A loop already running for this Poller is cancelled and
// awaited first, so its ticks can never interleave with the new loop's.
func (p *Poller) Start(ctx context.Context, videoID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go p.loop(runCtx, videoID, done)
}

// Stop cancels the active loop, if any, and waits for it to exit.
// Stopping the poller never cancels the server-side pipeline.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Poller) loop(ctx context.Context, videoID string, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if p.checkOnce(ctx, videoID) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.checkOnce(ctx, videoID) {
				return
			}
		}
	}
}

// checkOnce performs one status fetch. It returns true when polling
// should stop (terminal status observed). A failed fetch is surfaced
// through OnError and never stops the loop.
func (p *Poller) checkOnce(ctx context.Context, videoID string) bool {
	update, err := p.fetch(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		p.log.Warn().Err(err).Str("video_id", videoID).Msg("status check failed")
		if p.OnError != nil {
			p.OnError(err)
		}
		return false
	}

	if p.OnUpdate != nil {
		p.OnUpdate(*update)
	}
	if update.Terminal() {
		p.log.Info().Str("video_id", videoID).Str("status", update.Status).Msg("polling finished")
		return true
	}
	return false
}

func (p *Poller) fetch(ctx context.Context, videoID string) (*StatusUpdate, error) {
	url := fmt.Sprintf("%s/api/videos/%s/status", p.baseURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env statusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	if !env.Success || env.Data == nil {
		if env.Error != "" {
			return nil, fmt.Errorf("status check: %s", env.Error)
		}
		return nil, fmt.Errorf("status check: http %d", resp.StatusCode)
	}
	return env.Data, nil
}
