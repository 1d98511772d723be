package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/dvloznov/cnab-returns/internal/jobs"
	"github.com/dvloznov/cnab-returns/internal/logger"
)

type MockLister struct {
	ListObjectsFunc func(ctx context.Context, bucketName, prefix string) ([]string, error)
}

func (m *MockLister) ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error) {
	return m.ListObjectsFunc(ctx, bucketName, prefix)
}

type MockPublisher struct {
	PublishFunc func(ctx context.Context, job *jobs.ParseReturnFileJob) error
	published   []string
}

func (m *MockPublisher) PublishParseReturnFile(ctx context.Context, job *jobs.ParseReturnFileJob) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, job); err != nil {
			return err
		}
	}
	m.published = append(m.published, job.Source)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

func testContext() context.Context {
	return logger.WithContext(context.Background(), zerolog.Nop())
}

func TestPollOnce_PublishesUnseenObjects(t *testing.T) {
	objects := []string{"gs://returns/inbox/CB010124.RET", "gs://returns/inbox/CB020124.RET"}
	lister := &MockLister{
		ListObjectsFunc: func(ctx context.Context, bucketName, prefix string) ([]string, error) {
			if bucketName != "returns" || prefix != "inbox/" {
				t.Errorf("listed %s/%s", bucketName, prefix)
			}
			return objects, nil
		},
	}
	pub := &MockPublisher{}
	p := New(lister, pub, "returns", "inbox/")

	n, err := p.PollOnce(testContext())
	if err != nil {
		t.Fatalf("PollOnce() error = %v", err)
	}
	if n != 2 {
		t.Errorf("published %d, want 2", n)
	}

	objects = append(objects, "gs://returns/inbox/CB030124.RET")
	n, err = p.PollOnce(testContext())
	if err != nil {
		t.Fatalf("second PollOnce() error = %v", err)
	}
	if n != 1 {
		t.Errorf("second poll published %d, want 1", n)
	}

	want := []string{
		"gs://returns/inbox/CB010124.RET",
		"gs://returns/inbox/CB020124.RET",
		"gs://returns/inbox/CB030124.RET",
	}
	if diff := cmp.Diff(want, pub.published); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}
}

func TestPollOnce_PublishFailureIsRetriedNextTick(t *testing.T) {
	fail := true
	pub := &MockPublisher{
		PublishFunc: func(ctx context.Context, job *jobs.ParseReturnFileJob) error {
			if fail {
				return errors.New("queue is closed")
			}
			return nil
		},
	}
	lister := &MockLister{
		ListObjectsFunc: func(ctx context.Context, bucketName, prefix string) ([]string, error) {
			return []string{"gs://returns/inbox/a.RET"}, nil
		},
	}
	p := New(lister, pub, "returns", "inbox/")

	if _, err := p.PollOnce(testContext()); err == nil {
		t.Fatal("expected publish error")
	}

	fail = false
	n, err := p.PollOnce(testContext())
	if err != nil || n != 1 {
		t.Errorf("PollOnce() = %d, %v; want 1, nil", n, err)
	}
}

func TestPollOnce_ListError(t *testing.T) {
	listErr := errors.New("permission denied")
	lister := &MockLister{
		ListObjectsFunc: func(ctx context.Context, bucketName, prefix string) ([]string, error) {
			return nil, listErr
		},
	}
	p := New(lister, &MockPublisher{}, "returns", "inbox/")

	if _, err := p.PollOnce(testContext()); !errors.Is(err, listErr) {
		t.Errorf("error = %v, want %v", err, listErr)
	}
}

func TestStart_InvalidSchedule(t *testing.T) {
	p := New(&MockLister{}, &MockPublisher{}, "returns", "inbox/")
	if err := p.Start(testContext(), "not a schedule"); err == nil {
		t.Error("expected error for invalid schedule")
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Errorf("Stop() without start error = %v", err)
	}
}

func TestStartStop(t *testing.T) {
	lister := &MockLister{
		ListObjectsFunc: func(ctx context.Context, bucketName, prefix string) ([]string, error) {
			return nil, nil
		},
	}
	p := New(lister, &MockPublisher{}, "returns", "inbox/")
	if err := p.Start(testContext(), "@every 1h"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestPollOnce_BlockedPublishDoesNotHoldLock(t *testing.T) {
	lister := &MockLister{
		ListObjectsFunc: func(ctx context.Context, bucketName, prefix string) ([]string, error) {
			return []string{"gs://returns/inbox/CB010124.RET"}, nil
		},
	}
	entered := make(chan struct{}, 1)
	unblock := make(chan struct{})
	pub := &MockPublisher{
		PublishFunc: func(ctx context.Context, job *jobs.ParseReturnFileJob) error {
			entered <- struct{}{}
			<-unblock
			return nil
		},
	}
	p := New(lister, pub, "returns", "inbox/")

	done := make(chan error, 1)
	go func() {
		_, err := p.PollOnce(testContext())
		done <- err
	}()
	<-entered

	// A concurrent poll must not publish the object being published.
	n, err := p.PollOnce(testContext())
	if err != nil || n != 0 {
		t.Errorf("concurrent PollOnce() = %d, %v, want 0, nil", n, err)
	}

	if err := p.Start(testContext(), "@every 1h"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Errorf("Stop() while a publish is blocked: %v", err)
	}

	close(unblock)
	if err := <-done; err != nil {
		t.Errorf("PollOnce() error = %v", err)
	}
	if diff := cmp.Diff([]string{"gs://returns/inbox/CB010124.RET"}, pub.published); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}
}
