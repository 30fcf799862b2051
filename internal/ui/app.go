package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/cartly/internal/catalog"
	"github.com/five82/cartly/internal/logtail"
	"github.com/five82/cartly/internal/state"
)

// Store is the part of *state.Store the UI needs.
type Store interface {
	Dispatch(action state.Action)
	Snapshot() state.AppState
}

// Cart mutates the cart. *cart.Engine implements it.
type Cart interface {
	AddToCart(p catalog.Product, variantID string, quantity int) bool
	UpdateQuantity(variantID string, quantity int)
	RemoveFromCart(variantID string) bool
	ToggleSaveForLater(variantID string)
	RestoreSavedItem(variantID string)
}

// Checkout starts a hosted checkout. *checkout.Orchestrator implements it.
type Checkout interface {
	Initiate(ctx context.Context) (string, bool)
}

// Notifier dismisses notifications. *notify.Scheduler implements it.
type Notifier interface {
	Dismiss(id string)
}

// Tracker records product views. *analytics.Tracker implements it.
type Tracker interface {
	ProductViewed(p catalog.Product)
}

// ProductSource looks up a single product. *storefront.Client implements it.
type ProductSource interface {
	FetchProduct(ctx context.Context, handle string) (*catalog.Product, error)
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Store    Store
	Cart     Cart
	Checkout Checkout
	Notifier Notifier
	Tracker  Tracker
	// Products refreshes a product when its details are opened. Optional.
	Products ProductSource
	Logger   *logrus.Entry
	Tick     time.Duration
	// LogPath is the session log shown by the activity panel. Empty hides it.
	LogPath  string
}

const (
	logLimit   = 200
	logRefresh = 2 * time.Second
)

type focus int

const (
	focusProducts focus = iota
	focusDetail
	focusCart
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	store    Store
	cart     Cart
	checkout Checkout
	notifier Notifier
	tracker  Tracker
	products ProductSource
	log      *logrus.Entry
	tick     time.Duration
	keys     keyMap

	width  int
	height int
	ready  bool
	focus  focus

	snapshot state.AppState

	productCursor int
	variantCursor int
	cartCursor    int
	tagCursor     int

	searching bool
	search    textinput.Model

	checkingOut bool
	checkoutURL string

	logPath  string
	showLogs bool
	logLines []logtail.Entry

	showHelp bool
}

type tickMsg time.Time

type snapshotMsg state.AppState

type checkoutMsg struct {
	url string
	ok  bool
}

type productMsg struct {
	handle  string
	product *catalog.Product
	err     error
}

type logTickMsg time.Time

type logLinesMsg []logtail.Entry

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick == 0 {
		tick = 200 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	search := textinput.New()
	search.Placeholder = "Search products"
	search.Prompt = "/ "
	search.CharLimit = 120

	m := Model{
		ctx:      ctx,
		store:    opts.Store,
		cart:     opts.Cart,
		checkout: opts.Checkout,
		notifier: opts.Notifier,
		tracker:  opts.Tracker,
		products: opts.Products,
		log:      log.WithField("component", "ui"),
		tick:     tick,
		keys:     DefaultKeyMap(),
		search:   search,
		logPath:  opts.LogPath,
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.tick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		// Timers expire notifications outside the update loop, so the
		// snapshot is re-read on every tick.
		m.refresh()
		return m, tickCmd(m.tick)

	case snapshotMsg:
		m.setSnapshot(state.AppState(msg))
		return m, nil

	case checkoutMsg:
		m.checkingOut = false
		if msg.ok {
			m.checkoutURL = msg.url
			m.log.WithField("checkout_url", msg.url).Info("checkout ready")
		}
		m.refresh()
		return m, nil

	case productMsg:
		switch {
		case msg.err != nil:
			m.log.WithError(msg.err).WithField("handle", msg.handle).Debug("product refresh failed")
		case msg.product != nil:
			m.dispatch(state.UpdateProduct{Product: *msg.product})
		}
		return m, nil

	case logTickMsg:
		if !m.showLogs {
			return m, nil
		}
		return m, tea.Batch(readLogCmd(m.logPath), logTickCmd())

	case logLinesMsg:
		m.logLines = msg
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.setSnapshot(m.store.Snapshot())
}

// setSnapshot replaces the rendered state and keeps every cursor in range.
func (m *Model) setSnapshot(s state.AppState) {
	m.snapshot = s
	m.productCursor = clamp(m.productCursor, len(s.VisibleProducts()))
	m.cartCursor = clamp(m.cartCursor, len(m.cartRows()))
	m.tagCursor = clamp(m.tagCursor, len(catalog.Tags(s.Products)))
	if p, ok := m.selectedProduct(); ok {
		m.variantCursor = clamp(m.variantCursor, len(p.Variants))
	} else {
		m.variantCursor = 0
	}
	switch {
	case s.CartOpen:
		m.focus = focusCart
	case m.focus == focusCart:
		m.focus = focusProducts
	case m.focus == focusDetail:
		if _, ok := m.selectedProduct(); !ok {
			m.focus = focusProducts
		}
	}
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) selectedProduct() (catalog.Product, bool) {
	visible := m.snapshot.VisibleProducts()
	if m.productCursor < 0 || m.productCursor >= len(visible) {
		return catalog.Product{}, false
	}
	return visible[m.productCursor], true
}

// cartRow is one rendered line of the cart drawer: active lines first, then
// saved ones.
type cartRow struct {
	item  state.CartLineItem
	saved bool
}

func (m Model) cartRows() []cartRow {
	active := m.snapshot.ActiveItems()
	saved := m.snapshot.SavedItems()
	rows := make([]cartRow, 0, len(active)+len(saved))
	for _, item := range active {
		rows = append(rows, cartRow{item: item})
	}
	for _, item := range saved {
		rows = append(rows, cartRow{item: item, saved: true})
	}
	return rows
}

func (m Model) selectedRow() (cartRow, bool) {
	rows := m.cartRows()
	if m.cartCursor < 0 || m.cartCursor >= len(rows) {
		return cartRow{}, false
	}
	return rows[m.cartCursor], true
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func logTickCmd() tea.Cmd {
	return tea.Tick(logRefresh, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Read(path, logLimit)
		if err != nil {
			return logLinesMsg{{Message: err.Error()}}
		}
		return logLinesMsg(entries)
	}
}

func fetchProductCmd(ctx context.Context, src ProductSource, handle string) tea.Cmd {
	return func() tea.Msg {
		p, err := src.FetchProduct(ctx, handle)
		return productMsg{handle: handle, product: p, err: err}
	}
}

func checkoutCmd(ctx context.Context, c Checkout) tea.Cmd {
	return func() tea.Msg {
		url, ok := c.Initiate(ctx)
		return checkoutMsg{url: url, ok: ok}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	popts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		popts = append(popts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
