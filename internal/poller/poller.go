// Package poller watches a GCS inbox prefix for new return files and
// publishes one ingestion job per object.
package poller

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dvloznov/cnab-returns/internal/gcs"
	"github.com/dvloznov/cnab-returns/internal/jobs"
	"github.com/dvloznov/cnab-returns/internal/logger"
)

// Lister is the part of gcs.StorageService the poller needs. ListObjects
// returns gs:// URIs.
type Lister interface {
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
}

// Poller publishes jobs for inbox objects it has not seen yet. The ledger
// deduplicates by checksum, so a restart that republishes old objects only
// produces skipped jobs.
type Poller struct {
	lister    Lister
	publisher jobs.Publisher
	bucket    string
	prefix    string

	mu   sync.Mutex
	seen map[string]bool
	cron *cron.Cron
}

// New creates a poller over gs://bucket/prefix.
func New(lister Lister, publisher jobs.Publisher, bucket, prefix string) *Poller {
	return &Poller{
		lister:    lister,
		publisher: publisher,
		bucket:    bucket,
		prefix:    prefix,
		seen:      make(map[string]bool),
	}
}

// PollOnce lists the inbox and publishes a job per unseen object. It returns
// the number of jobs published.
func (p *Poller) PollOnce(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	uris, err := p.lister.ListObjects(ctx, p.bucket, p.prefix)
	if err != nil {
		return 0, fmt.Errorf("PollOnce: listing gs://%s/%s: %w", p.bucket, p.prefix, err)
	}

	published := 0
	for _, uri := range uris {
		if !p.claim(uri) {
			continue
		}

		job := &jobs.ParseReturnFileJob{Source: uri}
		if err := p.publisher.PublishParseReturnFile(ctx, job); err != nil {
			// Released so the next tick tries again.
			p.release(uri)
			return published, fmt.Errorf("PollOnce: publishing %s: %w", uri, err)
		}
		published++

		log.Info().Str("job_id", job.JobID).Str("source", uri).Msg("return file queued")
	}

	return published, nil
}

// claim marks uri as seen and reports whether it was new. The lock is not
// held while publishing, so a full queue cannot block Stop.
func (p *Poller) claim(uri string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seen[uri] {
		return false
	}
	p.seen[uri] = true
	return true
}

func (p *Poller) release(uri string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.seen, uri)
}

// Start polls on the given cron schedule until Stop is called.
func (p *Poller) Start(ctx context.Context, schedule string) error {
	log := logger.FromContext(ctx)

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := p.PollOnce(ctx)
		if err != nil {
			log.Error().Err(err).Msg("inbox poll failed")
			return
		}
		log.Debug().Int("published", n).Msg("inbox polled")
	})
	if err != nil {
		return fmt.Errorf("Poller.Start: schedule %q: %w", schedule, err)
	}

	p.mu.Lock()
	p.cron = c
	p.mu.Unlock()

	c.Start()
	log.Info().Str("schedule", schedule).Str("inbox", gcs.BuildURI(p.bucket, p.prefix)).Msg("poller started")
	return nil
}

// Stop halts the schedule and waits for a running poll to finish.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Lister = (gcs.StorageService)(nil)
