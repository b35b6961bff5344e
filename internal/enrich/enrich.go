// Package enrich orchestrates the website enrichment batch: fetch each
// listing's site, run the signal extractors, checkpoint results so an
// interrupted batch resumes where it stopped.
package enrich

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/extract"
	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/scrape"
	"github.com/therapistindex/directory-cli/internal/store"
)

// Enrichment status values, from strongest signal to weakest.
const (
	StatusFull    = "enriched_full"
	StatusBasic   = "enriched_basic"
	StatusCleaned = "cleaned"
)

// Result summarizes one enrichment batch.
type Result struct {
	Run       *model.Run
	Full      int
	Basic     int
	NoContent int
	Resumed   int
}

// Enricher runs the enrichment batch over a set of listings.
type Enricher struct {
	retriever scrape.Retriever
	extractor *extract.Extractor
	store     store.Store
	limiter   *rate.Limiter

	concurrency     int
	checkpointEvery int

	hostMu sync.Mutex
	hosts  map[string]*sync.Mutex
}

// New creates an Enricher. delayMs spaces requests across all workers so
// the batch stays polite regardless of concurrency.
func New(retriever scrape.Retriever, extractor *extract.Extractor, st store.Store, cfg config.EnrichConfig, delayMs int) *Enricher {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	checkpointEvery := cfg.CheckpointEvery
	if checkpointEvery <= 0 {
		checkpointEvery = 50
	}

	limit := rate.Inf
	if delayMs > 0 {
		limit = rate.Every(time.Duration(delayMs) * time.Millisecond)
	}

	return &Enricher{
		retriever:       retriever,
		extractor:       extractor,
		store:           st,
		limiter:         rate.NewLimiter(limit, 1),
		concurrency:     concurrency,
		checkpointEvery: checkpointEvery,
		hosts:           make(map[string]*sync.Mutex),
	}
}

// Run enriches listings in place. With resume, a previous incomplete run
// for the enrich stage is picked up and its checkpointed listings are not
// refetched.
func (e *Enricher) Run(ctx context.Context, listings []model.Listing, resume bool) (*Result, error) {
	run, checkpoints, err := e.prepareRun(ctx, len(listings), resume)
	if err != nil {
		return nil, err
	}

	if err := e.store.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
		return nil, err
	}

	res := &Result{Run: run}

	// Apply checkpoints before any worker starts so the progress counter is
	// only ever touched under mu once the group is running.
	pending := make([]*model.Listing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if cp, ok := checkpoints[l.Key()]; ok {
			applyCheckpoint(l, cp)
			res.Resumed++
			continue
		}
		pending = append(pending, l)
	}

	var mu sync.Mutex
	processed := res.Resumed

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, l := range pending {
		g.Go(func() error {
			cp, err := e.processListing(gctx, run.ID, l)
			if err != nil {
				return err
			}
			applyCheckpoint(l, cp)

			mu.Lock()
			processed++
			if processed%e.checkpointEvery == 0 {
				if err := e.store.UpdateRunProgress(gctx, run.ID, processed); err != nil {
					zap.L().Warn("enrich: progress update failed", zap.Error(err))
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		_ = e.store.UpdateRunStatus(ctx, run.ID, model.RunStatusFailed)
		return res, eris.Wrap(err, "enrich: batch")
	}

	if err := e.store.UpdateRunProgress(ctx, run.ID, processed); err != nil {
		return res, err
	}
	if err := e.store.UpdateRunStatus(ctx, run.ID, model.RunStatusComplete); err != nil {
		return res, err
	}
	run.Status = model.RunStatusComplete
	run.Processed = processed

	for i := range listings {
		switch listings[i].EnrichmentStatus {
		case StatusFull:
			res.Full++
		case StatusBasic:
			res.Basic++
		default:
			if listings[i].Website == "" || isNoContent(&listings[i]) {
				res.NoContent++
			}
		}
	}

	return res, nil
}

func (e *Enricher) prepareRun(ctx context.Context, total int, resume bool) (*model.Run, map[string]model.Checkpoint, error) {
	if resume {
		prev, err := e.store.LatestRun(ctx, "enrich")
		if err != nil {
			return nil, nil, err
		}
		if prev != nil && prev.Status != model.RunStatusComplete {
			checkpoints, err := e.store.LoadCheckpoints(ctx, prev.ID)
			if err != nil {
				return nil, nil, err
			}
			zap.L().Info("enrich: resuming run",
				zap.String("run_id", prev.ID),
				zap.Int("checkpoints", len(checkpoints)),
			)
			return prev, checkpoints, nil
		}
	}

	run, err := e.store.CreateRun(ctx, "enrich", total)
	if err != nil {
		return nil, nil, err
	}
	return run, map[string]model.Checkpoint{}, nil
}

// processListing fetches and extracts one listing and saves its checkpoint.
// Retrieval failure is "no content", not an error; only the store can fail
// the batch.
func (e *Enricher) processListing(ctx context.Context, runID string, l *model.Listing) (model.Checkpoint, error) {
	cp := model.Checkpoint{RunID: runID, ListingKey: l.Key()}

	if l.Website == "" {
		cp.NoContent = true
		return cp, e.store.SaveCheckpoint(ctx, cp)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return cp, err
	}

	unlock := e.lockHost(l.Website)
	page, ok := e.retriever.Retrieve(ctx, l.Website)
	unlock()

	if !ok {
		cp.NoContent = true
		return cp, e.store.SaveCheckpoint(ctx, cp)
	}

	cp.Enrichment = e.extractor.FromText(page.Text, page.HTML, page.URL)
	return cp, e.store.SaveCheckpoint(ctx, cp)
}

// lockHost serializes requests to the same host so concurrent workers never
// hit one site in parallel.
func (e *Enricher) lockHost(rawURL string) func() {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = strings.ToLower(u.Host)
	}

	e.hostMu.Lock()
	m, ok := e.hosts[host]
	if !ok {
		m = &sync.Mutex{}
		e.hosts[host] = m
	}
	e.hostMu.Unlock()

	m.Lock()
	return m.Unlock
}

func applyCheckpoint(l *model.Listing, cp model.Checkpoint) {
	l.Enrichment = cp.Enrichment
	l.EnrichmentStatus = StatusFor(cp.Enrichment)
}

// StatusFor derives the enrichment status column: full when insurance was
// found, basic when any secondary signal was, cleaned otherwise.
func StatusFor(enr *model.Enrichment) string {
	if enr == nil {
		return StatusCleaned
	}
	if len(enr.InsuranceAccepted) > 0 {
		return StatusFull
	}
	if len(enr.Specializations) > 0 ||
		(enr.Telehealth != "" && enr.Telehealth != model.TelehealthUnknown) ||
		(enr.AcceptingPatients != "" && enr.AcceptingPatients != model.AcceptingUnknown) {
		return StatusBasic
	}
	return StatusCleaned
}

func isNoContent(l *model.Listing) bool {
	return l.Enrichment == nil || l.Enrichment.Empty()
}
