package monthly

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"fleettrack-backend/internal/fleet/items"
)

// ---- Collaborator contracts ----

// ItemSource is the read-only slice of the record store the report needs.
type ItemSource interface {
	ListInWindow(ctx context.Context, start, end time.Time) ([]items.Item, error)
}

// Sender delivers one email; false means it didn't go out and nobody retries.
type Sender interface {
	Send(ctx context.Context, subject, htmlBody, to string) bool
}

// ---- Clock & ID ----

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ---- Reporter ----

// Reporter owns the daily timer. It checks every 24 hours (first check right
// at boot) and only does work when the server-local calendar day is the 1st.
// It reads the store and sends mail; it never writes a record.
type Reporter struct {
	src       ItemSource
	sender    Sender
	recipient string
	clock     Clock
	id        IDGen
	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
}

func NewReporter(src ItemSource, sender Sender, recipient string) *Reporter {
	return &Reporter{
		src:       src,
		sender:    sender,
		recipient: recipient,
		clock:     realClock{},
		id:        ulidGen{},
		interval:  24 * time.Hour,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the timer goroutine. The first check fires immediately so a
// restart on the 1st still sends that month's report.
func (r *Reporter) Start() {
	go func() {
		defer close(r.done)
		r.tick()
		t := time.NewTicker(r.interval)
		defer t.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-t.C:
				r.tick()
			}
		}
	}()
	log.Printf("[INFO] monthly: reporter started (interval %s)", r.interval)
}

func (r *Reporter) Stop() {
	close(r.stop)
	<-r.done
	log.Printf("[INFO] monthly: reporter stopped")
}

// tick absorbs everything. A bad cycle is logged and the next day's tick
// still runs.
func (r *Reporter) tick() {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[ERROR] monthly: report job panicked: %v", p)
		}
	}()
	if err := r.RunOnce(context.Background(), r.clock.Now()); err != nil {
		log.Printf("[ERROR] monthly: report job failed: %v", err)
	}
}

// RunOnce executes one gate check + pipeline pass. Errors carry the failed
// stage so the log says whether the store, the renderer, or the transport
// broke. On any day other than the 1st it does nothing at all.
func (r *Reporter) RunOnce(ctx context.Context, now time.Time) error {
	if now.Day() != 1 {
		return nil
	}

	runID := r.id.NewULID(now)

	// Window: today through today+30, both ends inclusive. This is wider
	// than "the rest of this month" on purpose.
	start := items.DateOnly(now)
	end := start.AddDate(0, 0, items.ExpiryHorizonDays)

	rows, err := r.src.ListInWindow(ctx, start, end)
	if err != nil {
		return fmt.Errorf("run %s: query: %w", runID, err)
	}

	// The SQL window is authoritative in practice; the classifier re-checks
	// so the pipeline's semantics don't depend on the store's dialect.
	inWindow := rows[:0:0]
	for _, it := range rows {
		if items.InWindow(it, start, end) {
			inWindow = append(inWindow, it)
		}
	}
	items.SortByInsurance(inWindow)

	if len(inWindow) == 0 {
		log.Printf("[INFO] monthly: run %s: nothing to report", runID)
		return nil
	}

	html, err := BuildReport(inWindow)
	if err != nil {
		return fmt.Errorf("run %s: render: %w", runID, err)
	}

	if ok := r.sender.Send(ctx, ReportSubject, html, r.recipient); !ok {
		return fmt.Errorf("run %s: send: delivery failed (%d items)", runID, len(inWindow))
	}
	log.Printf("[INFO] monthly: run %s: report sent (%d items)", runID, len(inWindow))
	return nil
}

// SendTest pushes a fixed test mail through the real transport so an
// operator can verify credentials without waiting for the 1st.
func (r *Reporter) SendTest(ctx context.Context) bool {
	return r.sender.Send(ctx, "Test Fleet Email", "<p>Hello from Fleet Tracker</p>", r.recipient)
}
