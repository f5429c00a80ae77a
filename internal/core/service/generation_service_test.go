package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aicv/cv-service/internal/core/domain"
	"github.com/aicv/cv-service/internal/core/ports"
)

// memLedger mirrors the store semantics: initialization is idempotent and
// consumption is an atomic compare-and-decrement.
type memLedger struct {
	mu       sync.Mutex
	starting int
	balance  map[string]int
	err      error
	commits  int
}

func newMemLedger(starting int) *memLedger {
	return &memLedger{starting: starting, balance: make(map[string]int)}
}

func (l *memLedger) EnsureInitialized(_ context.Context, accountID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return 0, l.err
	}
	if _, ok := l.balance[accountID]; !ok {
		l.balance[accountID] = l.starting
	}
	return l.balance[accountID], nil
}

func (l *memLedger) TryConsumeOne(_ context.Context, accountID string) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return 0, false, l.err
	}
	l.commits++
	if l.balance[accountID] <= 0 {
		return 0, false, nil
	}
	l.balance[accountID]--
	return l.balance[accountID], true, nil
}

type stubRelay struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *stubRelay) Generate(_ context.Context, _ domain.Profile, _ string, _ domain.Language) (domain.CVDocument, string, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.err != nil {
		return domain.CVDocument{}, "", r.err
	}
	doc := domain.CVDocument{Description: "tailored"}
	return doc, `{"description":"tailored"}`, nil
}

type memAudit struct {
	mu      sync.Mutex
	records []domain.GenerationRecord
}

func (a *memAudit) Enqueue(record domain.GenerationRecord) {
	a.mu.Lock()
	a.records = append(a.records, record)
	a.mu.Unlock()
}

func validInput() ports.GenerateCVInput {
	return ports.GenerateCVInput{
		AccountID:      "acc_1",
		Profile:        testProfile(),
		JobDescription: "backend role",
		TargetLang:     "es",
	}
}

func TestGenerationService_Generate_Success(t *testing.T) {
	ledger := newMemLedger(3)
	relay := &stubRelay{}
	audit := &memAudit{}
	svc := NewGenerationService(ledger, relay, audit, zerolog.Nop())

	result, err := svc.Generate(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Remaining != 2 {
		t.Fatalf("expected 2 remaining, got %d", result.Remaining)
	}
	if result.Text != `{"description":"tailored"}` {
		t.Fatalf("unexpected text: %s", result.Text)
	}
	if relay.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", relay.calls)
	}
	if len(audit.records) != 1 || audit.records[0].Remaining != 2 || audit.records[0].TargetLang != domain.LangES {
		t.Fatalf("unexpected audit records: %+v", audit.records)
	}
}

func TestGenerationService_Generate_InvalidRequest(t *testing.T) {
	ledger := newMemLedger(3)
	relay := &stubRelay{}
	svc := NewGenerationService(ledger, relay, &memAudit{}, zerolog.Nop())

	cases := []ports.GenerateCVInput{
		{AccountID: "acc_1", Profile: domain.Profile{}, JobDescription: "job"},
		{AccountID: "acc_1", Profile: testProfile(), JobDescription: "   "},
	}
	for _, input := range cases {
		if _, err := svc.Generate(context.Background(), input); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest, got %v", err)
		}
	}
	if relay.calls != 0 {
		t.Fatalf("upstream must not be called on invalid input")
	}
	if n, _ := ledger.EnsureInitialized(context.Background(), "acc_1"); n != 3 {
		t.Fatalf("invalid requests must not touch the ledger, balance %d", n)
	}
}

func TestGenerationService_Generate_QuotaExhausted(t *testing.T) {
	ledger := newMemLedger(0)
	relay := &stubRelay{}
	svc := NewGenerationService(ledger, relay, &memAudit{}, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), validInput()); !errors.Is(err, domain.ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
	if relay.calls != 0 {
		t.Fatalf("exhausted account must not reach upstream, got %d calls", relay.calls)
	}
}

func TestGenerationService_Generate_UpstreamFailureKeepsCredit(t *testing.T) {
	ledger := newMemLedger(3)
	relay := &stubRelay{err: domain.ErrUpstreamUnavailable}
	svc := NewGenerationService(ledger, relay, &memAudit{}, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), validInput()); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if n, _ := ledger.EnsureInitialized(context.Background(), "acc_1"); n != 3 {
		t.Fatalf("failed generation must not cost a credit, balance %d", n)
	}
}

func TestGenerationService_Generate_StoreError(t *testing.T) {
	ledger := newMemLedger(3)
	ledger.err = errors.New("connection reset")
	relay := &stubRelay{}
	svc := NewGenerationService(ledger, relay, &memAudit{}, zerolog.Nop())

	if _, err := svc.Generate(context.Background(), validInput()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if relay.calls != 0 {
		t.Fatalf("upstream must not be called when the ledger is unreachable")
	}
}

// commitRaceLedger reports a healthy balance at the precheck but loses the
// commit, simulating a concurrent request taking the last credit in between.
type commitRaceLedger struct{}

func (commitRaceLedger) EnsureInitialized(context.Context, string) (int, error) { return 1, nil }
func (commitRaceLedger) TryConsumeOne(context.Context, string) (int, bool, error) {
	return 0, false, nil
}

func TestGenerationService_Generate_CommitRaceDiscardsContent(t *testing.T) {
	relay := &stubRelay{}
	audit := &memAudit{}
	svc := NewGenerationService(commitRaceLedger{}, relay, audit, zerolog.Nop())

	result, err := svc.Generate(context.Background(), validInput())
	if !errors.Is(err, domain.ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
	if result != nil {
		t.Fatalf("generated content must be discarded on a lost commit")
	}
	if len(audit.records) != 0 {
		t.Fatalf("lost commit must not be audited")
	}
}

// commitErrorLedger fails only at commit time.
type commitErrorLedger struct{}

func (commitErrorLedger) EnsureInitialized(context.Context, string) (int, error) { return 1, nil }
func (commitErrorLedger) TryConsumeOne(context.Context, string) (int, bool, error) {
	return 0, false, errors.New("connection reset")
}

func TestGenerationService_Generate_CommitStoreErrorFailsClosed(t *testing.T) {
	relay := &stubRelay{}
	svc := NewGenerationService(commitErrorLedger{}, relay, &memAudit{}, zerolog.Nop())

	result, err := svc.Generate(context.Background(), validInput())
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if result != nil {
		t.Fatalf("content must be discarded when the commit outcome is unknown")
	}
}

func TestGenerationService_Generate_ConcurrentNeverOversells(t *testing.T) {
	const credits = 3
	const requests = 10

	ledger := newMemLedger(credits)
	relay := &stubRelay{}
	svc := NewGenerationService(ledger, relay, &memAudit{}, zerolog.Nop())

	var wg sync.WaitGroup
	results := make(chan int, requests)
	failures := make(chan error, requests)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Generate(context.Background(), validInput())
			if err != nil {
				failures <- err
				return
			}
			results <- result.Remaining
		}()
	}
	wg.Wait()
	close(results)
	close(failures)

	var remaining []int
	for r := range results {
		remaining = append(remaining, r)
	}
	if len(remaining) != credits {
		t.Fatalf("expected exactly %d successes, got %d", credits, len(remaining))
	}
	sort.Ints(remaining)
	for i, r := range remaining {
		if r != i {
			t.Fatalf("remaining values must be the distinct set 0..%d, got %v", credits-1, remaining)
		}
	}

	for err := range failures {
		if !errors.Is(err, domain.ErrQuotaExhausted) {
			t.Fatalf("losers must see ErrQuotaExhausted, got %v", err)
		}
	}
	if n, _ := ledger.EnsureInitialized(context.Background(), "acc_1"); n != 0 {
		t.Fatalf("ledger must end at zero, got %d", n)
	}
}

func TestGenerationService_Remaining(t *testing.T) {
	ledger := newMemLedger(3)
	svc := NewGenerationService(ledger, &stubRelay{}, &memAudit{}, zerolog.Nop())

	n, err := svc.Remaining(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("first sight must seed the starting allotment, got %d", n)
	}

	if _, err := svc.Generate(context.Background(), ports.GenerateCVInput{
		AccountID: "fresh", Profile: testProfile(), JobDescription: "job",
	}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	n, _ = svc.Remaining(context.Background(), "fresh")
	if n != 2 {
		t.Fatalf("balance must survive re-initialization after a decrement, got %d", n)
	}
}
