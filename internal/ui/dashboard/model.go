// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/prefs"
	"github.com/OmarMoust/LibreChat/internal/telemetry"
	"github.com/OmarMoust/LibreChat/internal/ui/components"
	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// TABS
// =============================================================================

// Tab identifies one of the dashboard views.
type Tab int

const (
	TabSummary Tab = iota
	TabTransactions
)

// String returns the tab label shown in the tab bar.
func (t Tab) String() string {
	switch t {
	case TabSummary:
		return "Summary"
	case TabTransactions:
		return "Transactions"
	default:
		return "Unknown"
	}
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// defaultPageSize is the transactions page size.
	defaultPageSize = 25

	// defaultRefreshInterval is the auto-refresh cadence. Zero disables
	// auto refresh; manual refresh stays available on r.
	defaultRefreshInterval = 30 * time.Second

	// sparklinePlotHeight is the plot height of the daily sparkline.
	sparklinePlotHeight = 6
)

// =============================================================================
// DASHBOARD MODEL
// =============================================================================

// Model is the Bubble Tea model for the usage dashboard.
type Model struct {
	// Data access
	store      *ledger.Store
	aggregator *usage.Aggregator
	prefsStore *prefs.Store
	prefsCh    chan prefs.Preferences

	// Report scope
	userID string
	period usage.Period

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Active view
	activeTab Tab

	// Presentation components
	header    *components.Header
	summary   *components.SummaryPanel
	modelBars *components.ModelBars
	sparkline *components.Sparkline
	rateBadge *components.RateBadge
	statusBar *components.StatusBar

	// UI components
	viewport viewport.Model
	txTable  table.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Live rate estimation. One estimator tracks one generation at a
	// time; ticking guards against overlapping tick loops.
	estimator *telemetry.Estimator
	ticking   bool

	// Loaded data
	summaryData  *usage.UsageSummary
	transactions []*ledger.Transaction
	txTotal      int64
	txOffset     int
	txLimit      int

	// Load state
	loadingSummary bool
	loadingTx      bool
	loadedOnce     bool
	lastRefresh    time.Time
	lastErr        error

	// Auto refresh cadence
	refreshEvery time.Duration

	// Help overlay
	showHelp bool
}

// New creates a dashboard model reading from store and prefsStore, scoped
// to userID. The telemetry preference is read at construction and the
// model subscribes to further changes; Close must be called when the
// program exits to release the subscription.
func New(theme *styles.Theme, store *ledger.Store, prefsStore *prefs.Store, userID string) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}

	vp := viewport.New(80, 20)
	vp.SetContent("")

	txTable := table.New(
		table.WithColumns(components.TransactionColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	txTable.SetStyles(tableStyles(theme))

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.BrailleSpinner.Frames,
		FPS:    styles.BrailleSpinner.Duration(),
	}
	sp.Style = theme.Spinner

	estimator := telemetry.NewEstimator()
	rateBadge := components.NewRateBadge(theme, estimator)

	var prefsCh chan prefs.Preferences
	if prefsStore != nil {
		rateBadge.SetVisible(prefsStore.ShowTokenTelemetry())
		prefsCh = prefsStore.Subscribe()
	}

	header := components.NewHeader(theme)
	header.SetUser(userID)
	header.SetPeriod(string(usage.PeriodMonth))

	statusBar := components.NewStatusBar(theme)

	var aggregator *usage.Aggregator
	if store != nil {
		aggregator = usage.NewAggregator(store)
	}

	return Model{
		store:          store,
		aggregator:     aggregator,
		prefsStore:     prefsStore,
		prefsCh:        prefsCh,
		userID:         userID,
		period:         usage.PeriodMonth,
		theme:          theme,
		activeTab:      TabSummary,
		header:         header,
		summary:        components.NewSummaryPanel(theme),
		modelBars:      components.NewModelBars(theme),
		sparkline:      components.NewSparkline(theme),
		rateBadge:      rateBadge,
		statusBar:      statusBar,
		viewport:       vp,
		txTable:        txTable,
		spinner:        sp,
		keyMap:         DefaultKeyMap(),
		estimator:      estimator,
		txLimit:        defaultPageSize,
		loadingSummary: true,
		loadingTx:      true,
		refreshEvery:   defaultRefreshInterval,
	}
}

// tableStyles maps the theme onto the transactions table. Header and cell
// keep the default 0,1 padding; the column widths account for it.
func tableStyles(theme *styles.Theme) table.Styles {
	s := table.DefaultStyles()
	if theme == nil {
		return s
	}
	s.Header = theme.TableHeader.Padding(0, 1)
	s.Cell = theme.TableRow.Padding(0, 1)
	s.Selected = theme.TableSelected
	return s
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the first data loads, the spinner, the preference
// subscription wait, and the auto-refresh timer.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadSummaryCmd(),
		m.loadTransactionsCmd(),
		m.spinner.Tick,
	}
	if m.prefsCh != nil {
		cmds = append(cmds, waitPrefs(m.prefsCh))
	}
	if m.refreshEvery > 0 {
		cmds = append(cmds, refreshTick(m.refreshEvery))
	}

	return tea.Batch(cmds...)
}

// View renders the dashboard.
func (m Model) View() string {
	return m.renderDashboard()
}

// =============================================================================
// GETTERS AND SETTERS
// =============================================================================

// SetPeriod changes the reporting window before the program starts.
func (m *Model) SetPeriod(p usage.Period) {
	m.period = usage.ParsePeriod(string(p))
	m.header.SetPeriod(string(m.period))
}

// SetRefreshInterval changes the auto-refresh cadence. Zero or negative
// disables auto refresh.
func (m *Model) SetRefreshInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	m.refreshEvery = d
}

// SetPageSize changes the transactions page size.
func (m *Model) SetPageSize(n int) {
	m.txLimit = ledger.ClampLimit(n)
}

// Period returns the active reporting window.
func (m *Model) Period() usage.Period {
	return m.period
}

// ActiveTab returns the currently displayed tab.
func (m *Model) ActiveTab() Tab {
	return m.activeTab
}

// TelemetryVisible reports whether the rate badge is currently shown.
func (m *Model) TelemetryVisible() bool {
	return m.rateBadge.Visible()
}

// Close releases the preference subscription. Safe to call more than once.
func (m *Model) Close() {
	if m.prefsStore != nil && m.prefsCh != nil {
		m.prefsStore.Unsubscribe(m.prefsCh)
		m.prefsCh = nil
	}
}
