package listing

import (
	"context"
	"errors"
	"sync"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

var (
	// ErrStaleResponse is returned by Load when a newer load (or Close)
	// superseded it; its result was discarded.
	ErrStaleResponse = errors.New("listing: response superseded by a newer load")
	// ErrNotFailed is returned by Retry outside the Failed state.
	ErrNotFailed = errors.New("listing: retry is only allowed after a failed load")
	ErrClosed    = errors.New("listing: controller is closed")
)

// FetchFunc loads the unfiltered raw list from the data source.
type FetchFunc func(ctx context.Context) ([]domain.RawRecord, error)

// Controller holds the listing view state and drives
// Idle -> Loading -> Loaded | Failed. Records are fetched once per Load;
// filter, sort and page changes recompute the visible page from memory.
//
// Every Load takes a new generation number and cancels the previous
// in-flight fetch. A response is applied only while its generation is still
// the current one.
type Controller struct {
	fetch    FetchFunc
	pipeline *Pipeline

	mu         sync.Mutex
	status     domain.ListingStatus
	state      ViewState
	records    []domain.PropertyRecord
	result     Result
	err        error
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

func NewController(fetch FetchFunc, pipeline *Pipeline, initial ViewState) *Controller {
	if pipeline == nil {
		pipeline = NewPipeline(nil)
	}
	c := &Controller{
		fetch:    fetch,
		pipeline: pipeline,
		status:   domain.StatusIdle,
		state:    sanitize(initial),
	}
	c.recompute()
	return c
}

// Load fetches and normalizes the records, then recomputes the view.
func (c *Controller) Load(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingController",
	})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.status = domain.StatusLoading
	c.err = nil
	c.mu.Unlock()

	logger.Debug("Fetching records", port.Fields{"generation": gen})

	raws, fetchErr := c.fetch(fetchCtx)
	var records []domain.PropertyRecord
	if fetchErr == nil {
		records = NormalizeAll(ctx, raws)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if c.closed || gen != c.generation {
		logger.Debug("Discarding stale response", port.Fields{
			"generation": gen,
			"current":    c.generation,
		})
		return ErrStaleResponse
	}
	c.cancel = nil

	if fetchErr != nil {
		logger.Error("Failed to fetch records", fetchErr, port.Fields{"generation": gen})
		c.status = domain.StatusFailed
		c.err = fetchErr
		c.records = nil
		c.recompute()
		return fetchErr
	}

	c.status = domain.StatusLoaded
	c.records = records
	c.recompute()
	logger.Debug("Records loaded", port.Fields{
		"generation": gen,
		"records":    len(records),
		"dropped":    len(raws) - len(records),
	})
	return nil
}

// Retry re-enters Loading after a failure. There is no automatic retry.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()

	if status != domain.StatusFailed {
		return ErrNotFailed
	}
	return c.Load(ctx)
}

// Dispatch reduces action into the view state. While Loaded the visible page
// is recomputed right away; otherwise it is computed when the load ends.
func (c *Controller) Dispatch(action Action) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = Reduce(c.state, action)
	c.recompute()
	return c.state
}

func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Status() domain.ListingStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Records returns the normalized list of the last successful load.
func (c *Controller) Records() []domain.PropertyRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}

// View returns the current output snapshot.
func (c *Controller) View() domain.ListingView {
	c.mu.Lock()
	defer c.mu.Unlock()

	cards := c.result.Cards
	if cards == nil {
		cards = []domain.CardModel{}
	}
	return domain.ListingView{
		VisibleRecords: cards,
		TotalCount:     c.result.TotalCount,
		IsLoading:      c.status == domain.StatusLoading,
		Error:          c.err,
		Status:         c.status,
		Filters:        c.state.Filters,
		Variant:        c.state.ViewMode,
		Page:           c.state.Page,
		PerPage:        c.state.PerPage,
		TotalPages:     c.result.TotalPages,
	}
}

// Close cancels the in-flight load. Responses arriving afterwards are
// discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// recompute must be called with mu held.
func (c *Controller) recompute() {
	c.result = c.pipeline.Run(c.records, c.state)
}
