package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/catalog"
)

// Event types.
const (
	TypeProductViewed     = "product_viewed"
	TypeAddToCart         = "add_to_cart"
	TypeCheckoutInitiated = "checkout_initiated"
)

const (
	defaultBuffer  = 64
	publishTimeout = 5 * time.Second
)

// Event is one analytics record.
type Event struct {
	ID           string           `json:"event_id"`
	Type         string           `json:"event_type"`
	ProductID    string           `json:"product_id,omitempty"`
	ProductTitle string           `json:"product_title,omitempty"`
	VariantID    string           `json:"variant_id,omitempty"`
	Quantity     int              `json:"quantity,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	CartTotal    *decimal.Decimal `json:"cart_total,omitempty"`
	ItemCount    int              `json:"item_count,omitempty"`
	CurrencyCode string           `json:"currency_code,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Sink delivers events somewhere.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Options configure a Tracker.
type Options struct {
	Buffer int
	Logger *logrus.Entry
	Now    func() time.Time
}

// Tracker records storefront events without blocking the caller. Events are
// queued and handed to the sink by a single worker; when the queue is full the
// event is dropped and logged.
type Tracker struct {
	sink Sink
	log  *logrus.Entry
	now  func() time.Time

	mu     sync.RWMutex
	closed bool
	events chan Event
	done   chan struct{}
}

// NewTracker starts a tracker publishing to sink.
func NewTracker(sink Sink, opts Options) *Tracker {
	if opts.Buffer <= 0 {
		opts.Buffer = defaultBuffer
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	t := &Tracker{
		sink:   sink,
		log:    opts.Logger.WithField("component", "analytics"),
		now:    opts.Now,
		events: make(chan Event, opts.Buffer),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

// ProductViewed records that a product detail was opened.
func (t *Tracker) ProductViewed(p catalog.Product) {
	t.enqueue(Event{
		Type:         TypeProductViewed,
		ProductID:    p.ID,
		ProductTitle: p.Title,
	})
}

// AddToCart records a variant being added to the cart.
func (t *Tracker) AddToCart(p catalog.Product, v catalog.Variant, quantity int) {
	price := v.Price.Amount
	t.enqueue(Event{
		Type:         TypeAddToCart,
		ProductID:    p.ID,
		ProductTitle: p.Title,
		VariantID:    v.ID,
		Quantity:     quantity,
		Price:        &price,
		CurrencyCode: v.Price.CurrencyCode,
	})
}

// CheckoutInitiated records the start of a checkout.
func (t *Tracker) CheckoutInitiated(total decimal.Decimal, itemCount int, currency string) {
	t.enqueue(Event{
		Type:         TypeCheckoutInitiated,
		CartTotal:    &total,
		ItemCount:    itemCount,
		CurrencyCode: currency,
	})
}

func (t *Tracker) enqueue(e Event) {
	e.ID = uuid.NewString()
	e.Timestamp = t.now()

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	select {
	case t.events <- e:
	default:
		t.log.WithField("event_type", e.Type).Warn("analytics queue full, dropping event")
	}
}

func (t *Tracker) run() {
	defer close(t.done)
	for e := range t.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := t.sink.Publish(ctx, e); err != nil {
			t.log.WithError(err).WithField("event_type", e.Type).Warn("failed to publish analytics event")
		}
		cancel()
	}
}

// Close stops accepting events and waits for queued ones to be published.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		<-t.done
		return
	}
	t.closed = true
	close(t.events)
	t.mu.Unlock()
	<-t.done
}
