package checkout

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/cart"
	"github.com/five82/cartly/internal/state"
	"github.com/five82/cartly/internal/storefront"
)

// Outcome labels reported to the Recorder.
const (
	OutcomeSuccess        = "success"
	OutcomeUserError      = "user_error"
	OutcomeTransportError = "transport_error"
	OutcomeMissingURL     = "missing_url"
)

const (
	failurePrefix      = "Checkout failed: "
	unreachableMessage = "unable to reach the store"
	missingURLMessage  = "Checkout URL not found"
)

// CartCreator creates a remote cart. *storefront.Client implements it.
type CartCreator interface {
	CreateCart(ctx context.Context, lines []storefront.LineInput) (*storefront.Cart, error)
}

// Store is the part of *state.Store the orchestrator needs.
type Store interface {
	Dispatch(action state.Action)
	Snapshot() state.AppState
}

// Notifier surfaces failures. *notify.Scheduler implements it.
type Notifier interface {
	Error(message string) string
}

// Tracker receives checkout analytics. *analytics.Tracker implements it.
type Tracker interface {
	CheckoutInitiated(total decimal.Decimal, itemCount int, currency string)
}

// Recorder counts checkout outcomes. *metrics.Collector implements it.
type Recorder interface {
	CheckoutOutcome(outcome string)
}

// Options configure an Orchestrator. Tracker, Recorder and Logger are optional.
type Options struct {
	Store    Store
	Creator  CartCreator
	Notifier Notifier
	Tracker  Tracker
	Recorder Recorder
	Logger   *logrus.Entry
}

// Orchestrator turns the active cart into a hosted checkout URL.
type Orchestrator struct {
	store    Store
	creator  CartCreator
	notifier Notifier
	tracker  Tracker
	recorder Recorder
	log      *logrus.Entry
}

// New builds an Orchestrator.
func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{
		store:    opts.Store,
		creator:  opts.Creator,
		notifier: opts.Notifier,
		tracker:  opts.Tracker,
		recorder: opts.Recorder,
		log:      log.WithField("component", "checkout"),
	}
}

// Initiate creates a remote cart from the active lines and returns its
// checkout URL. Failures are reported through the notifier and yield
// ("", false); no error reaches the caller. Saved lines are never sent.
func (o *Orchestrator) Initiate(ctx context.Context) (string, bool) {
	snap := o.store.Snapshot()
	active := snap.ActiveItems()
	totals := cart.TotalsOf(active)
	if o.tracker != nil {
		o.tracker.CheckoutInitiated(totals.Subtotal, totals.ItemCount, totals.CurrencyCode)
	}

	lines := make([]storefront.LineInput, 0, len(active))
	for _, item := range active {
		lines = append(lines, storefront.LineInput{MerchandiseID: item.VariantID, Quantity: item.Quantity})
	}

	log := o.log.WithFields(logrus.Fields{
		"lines":      len(lines),
		"item_count": totals.ItemCount,
		"subtotal":   totals.Subtotal.StringFixed(2),
	})

	remote, err := o.creator.CreateCart(ctx, lines)
	if err != nil {
		outcome, message := classify(err)
		log.WithError(err).WithField("outcome", outcome).Warn("checkout failed")
		return o.fail(outcome, message)
	}
	if remote == nil || remote.CheckoutURL == "" {
		log.WithField("outcome", OutcomeMissingURL).Warn("checkout failed: no checkout url")
		return o.fail(OutcomeMissingURL, missingURLMessage)
	}

	if remote.ID != "" {
		o.store.Dispatch(state.SetCartID{ID: remote.ID})
	}
	o.record(OutcomeSuccess)
	log.WithField("cart_id", remote.ID).Info("checkout ready")
	return remote.CheckoutURL, true
}

func (o *Orchestrator) fail(outcome, message string) (string, bool) {
	o.record(outcome)
	o.notifier.Error(failurePrefix + message)
	return "", false
}

func (o *Orchestrator) record(outcome string) {
	if o.recorder != nil {
		o.recorder.CheckoutOutcome(outcome)
	}
}

// classify maps a CreateCart error to an outcome label and the message shown
// to the user. Validation problems surface the store's first message; every
// other failure gets a generic one.
func classify(err error) (outcome, message string) {
	var userErrs storefront.UserErrors
	if errors.As(err, &userErrs) && len(userErrs) > 0 {
		return OutcomeUserError, userErrs[0].Message
	}
	var gqlErr *storefront.GraphQLError
	if errors.As(err, &gqlErr) {
		return OutcomeUserError, gqlErr.Error()
	}
	return OutcomeTransportError, unreachableMessage
}
