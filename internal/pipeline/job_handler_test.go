package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dvloznov/cnab-returns/internal/cnab/bradesco/bradescotest"
	infra "github.com/dvloznov/cnab-returns/internal/infra/bigquery"
	"github.com/dvloznov/cnab-returns/internal/jobs"
)

type otherJob struct{}

func (otherJob) GetID() string             { return "x" }
func (otherJob) GetType() jobs.JobType     { return "other" }
func (otherJob) GetStatus() jobs.JobStatus { return jobs.JobStatusPending }

func TestJobHandler_Success(t *testing.T) {
	handler := NewJobHandler(testDeps(&MockLedgerRepository{}, nil), time.Minute)
	job := &jobs.ParseReturnFileJob{Source: writeFile(t, sampleFile())}

	if err := handler(context.Background(), job); err != nil {
		t.Fatalf("handler() error = %v", err)
	}
	if job.FileID == "" || job.ParsingRunID != "run-1" || job.Transactions != 2 {
		t.Errorf("job = %+v", job)
	}
}

func TestJobHandler_Errors(t *testing.T) {
	broken := bradescotest.File(bradescotest.HeaderLine(bradescotest.Header{}), "", bradescotest.TrailerLine(0, 0))
	otherBank := bradescotest.File(
		bradescotest.HeaderLine(bradescotest.Header{BankCode: "341", Date: "010124"}),
		bradescotest.TrailerLine(0, 0),
	)
	insertErr := errors.New("bigquery unavailable")

	tests := []struct {
		name          string
		repo          *MockLedgerRepository
		job           jobs.Job
		wantPermanent bool
	}{
		{
			name:          "structural error",
			repo:          &MockLedgerRepository{},
			job:           &jobs.ParseReturnFileJob{Source: writeFile(t, broken)},
			wantPermanent: true,
		},
		{
			name:          "unregistered bank",
			repo:          &MockLedgerRepository{},
			job:           &jobs.ParseReturnFileJob{Source: writeFile(t, otherBank)},
			wantPermanent: true,
		},
		{
			name: "ledger failure is retryable",
			repo: &MockLedgerRepository{
				InsertTransactionsFunc: func(ctx context.Context, rows []*infra.ReturnTransactionRow) error {
					return insertErr
				},
			},
			job: &jobs.ParseReturnFileJob{Source: writeFile(t, sampleFile())},
		},
		{
			name:          "wrong job type",
			repo:          &MockLedgerRepository{},
			job:           otherJob{},
			wantPermanent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewJobHandler(testDeps(tt.repo, nil), 0)(context.Background(), tt.job)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := jobs.IsPermanent(err); got != tt.wantPermanent {
				t.Errorf("IsPermanent(%v) = %v, want %v", err, got, tt.wantPermanent)
			}
		})
	}
}
