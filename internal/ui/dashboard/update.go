// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OmarMoust/LibreChat/internal/telemetry"
	"github.com/OmarMoust/LibreChat/internal/ui/components"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SummaryLoadedMsg:
		return m.handleSummaryLoaded(msg)

	case TransactionsLoadedMsg:
		return m.handleTransactionsLoaded(msg)

	case GenerationProgressMsg:
		return m.handleGenerationProgress(msg)

	case TelemetryTickMsg:
		return m.handleTelemetryTick(msg)

	case RefreshTickMsg:
		return m.handleRefreshTick(msg)

	case PrefsChangedMsg:
		return m.handlePrefsChanged(msg)

	case PrefsToggledMsg:
		return m.handlePrefsToggled(msg)

	case spinner.TickMsg:
		if m.loadingSummary || m.loadingTx {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		// Mouse wheel and other events drive the active widget.
		return m.updateActiveWidget(msg)
	}
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Reserved rows around the content area. Conservative estimates;
	// renderDashboard measures actual heights and clamps on mismatch.
	const (
		headerHeight = 4 // rounded box: borders + brand + subtitle
		tabBarHeight = 2 // tab row + underline
		statusHeight = 2 // border top + content
	)

	contentHeight := m.height - headerHeight - tabBarHeight - statusHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	contentWidth := m.width
	if contentWidth < 1 {
		contentWidth = 1
	}

	if m.theme != nil {
		m.theme.SetSize(m.width, m.height)
	}

	m.header.SetWidth(m.width)
	m.summary.SetWidth(contentWidth)
	m.modelBars.SetWidth(contentWidth)
	m.sparkline.SetSize(contentWidth, sparklinePlotHeight)
	m.statusBar.SetWidth(m.width)

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight

	// Clear rows before swapping columns; a leftover row wider than the
	// new column set would index past it.
	m.txTable.SetRows(nil)
	m.txTable.SetColumns(components.TransactionColumns(contentWidth))
	m.txTable.SetRows(components.TransactionRows(m.transactions, contentWidth))
	m.txTable.SetWidth(contentWidth)
	tableHeight := contentHeight - 1 // one row reserved for the page line
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.txTable.SetHeight(tableHeight)

	m.refreshViewportContent()

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	// Help overlay swallows keys until dismissed.
	if m.showHelp {
		switch keyStr {
		case "?", "esc", "q", "enter":
			m.showHelp = false
		}
		return m, nil
	}

	switch keyStr {
	case "ctrl+c", "q":
		m.Close()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "tab":
		if m.activeTab == TabSummary {
			m.activeTab = TabTransactions
		} else {
			m.activeTab = TabSummary
		}
		return m, nil

	case "d":
		return m.setPeriod(usage.PeriodDay)

	case "w":
		return m.setPeriod(usage.PeriodWeek)

	case "m":
		return m.setPeriod(usage.PeriodMonth)

	case "a":
		return m.setPeriod(usage.PeriodAll)

	case "r":
		return m.refresh()

	case "t":
		return m, m.togglePrefsCmd()

	case "left", "h":
		return m.prevPage()

	case "right", "l":
		return m.nextPage()

	case "home", "g":
		return m.gotoTop()

	case "end", "G":
		return m.gotoBottom()
	}

	// Remaining keys reach the active widget for scrolling.
	return m.updateActiveWidget(msg)
}

func (m Model) gotoTop() (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case TabTransactions:
		m.txTable.GotoTop()
	default:
		m.viewport.GotoTop()
	}
	return m, nil
}

func (m Model) gotoBottom() (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case TabTransactions:
		m.txTable.GotoBottom()
	default:
		m.viewport.GotoBottom()
	}
	return m, nil
}

// setPeriod switches the reporting window and reloads both views. The
// transactions page resets to the first page of the new window.
func (m Model) setPeriod(p usage.Period) (tea.Model, tea.Cmd) {
	if p == m.period {
		return m, nil
	}
	m.period = p
	m.header.SetPeriod(string(p))
	m.txOffset = 0
	m.loadingSummary = true
	m.loadingTx = true
	m.updateStatus()
	return m, tea.Batch(m.loadSummaryCmd(), m.loadTransactionsCmd(), m.spinner.Tick)
}

// refresh reloads both views at the current period and page.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.loadingSummary = true
	m.loadingTx = true
	m.updateStatus()
	return m, tea.Batch(m.loadSummaryCmd(), m.loadTransactionsCmd(), m.spinner.Tick)
}

func (m Model) prevPage() (tea.Model, tea.Cmd) {
	if m.activeTab != TabTransactions || m.txOffset == 0 {
		return m, nil
	}
	m.txOffset -= m.txLimit
	if m.txOffset < 0 {
		m.txOffset = 0
	}
	m.loadingTx = true
	m.updateStatus()
	return m, tea.Batch(m.loadTransactionsCmd(), m.spinner.Tick)
}

func (m Model) nextPage() (tea.Model, tea.Cmd) {
	if m.activeTab != TabTransactions {
		return m, nil
	}
	next := m.txOffset + m.txLimit
	if int64(next) >= m.txTotal {
		return m, nil
	}
	m.txOffset = next
	m.loadingTx = true
	m.updateStatus()
	return m, tea.Batch(m.loadTransactionsCmd(), m.spinner.Tick)
}

// updateActiveWidget forwards a message to the widget on the active tab.
func (m Model) updateActiveWidget(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabTransactions:
		m.txTable, cmd = m.txTable.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// DATA HANDLERS
// =============================================================================

func (m Model) handleSummaryLoaded(msg SummaryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Period != m.period {
		return m, nil
	}

	m.loadingSummary = false
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.updateStatus()
		return m, nil
	}

	m.lastErr = nil
	m.loadedOnce = true
	m.summaryData = msg.Summary
	m.summary.SetSummary(msg.Summary)
	m.modelBars.SetBreakdown(msg.Summary.ModelBreakdown, msg.Summary.TotalTokens)
	m.sparkline.SetDaily(msg.Summary.DailyUsage)
	m.statusBar.SetCounts(int(msg.Summary.TransactionCount), int(msg.Summary.TotalTokens))
	m.lastRefresh = time.Now()
	m.statusBar.SetLastRefresh(m.lastRefresh)
	m.refreshViewportContent()
	m.updateStatus()
	return m, nil
}

func (m Model) handleTransactionsLoaded(msg TransactionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Period != m.period || msg.Offset != m.txOffset {
		return m, nil
	}

	m.loadingTx = false
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.updateStatus()
		return m, nil
	}

	m.lastErr = nil
	m.loadedOnce = true
	m.transactions = msg.Transactions
	m.txTotal = msg.Total

	width := m.width
	if width <= 0 {
		width = 80
	}
	m.txTable.SetRows(components.TransactionRows(msg.Transactions, width))
	m.updateStatus()
	return m, nil
}

// =============================================================================
// TELEMETRY HANDLERS
// =============================================================================

func (m Model) handleGenerationProgress(msg GenerationProgressMsg) (tea.Model, tea.Cmd) {
	m.estimator.Observe(msg.MessageID, msg.TextLen, msg.Producing)

	// Entering the streaming state starts the sample tick loop.
	if m.estimator.State() == telemetry.StateStreaming && !m.ticking {
		m.ticking = true
		return m, telemetryTick()
	}
	return m, nil
}

func (m Model) handleTelemetryTick(TelemetryTickMsg) (tea.Model, tea.Cmd) {
	m.estimator.Tick()

	// The tick loop stops as soon as the estimator leaves streaming.
	if m.estimator.State() == telemetry.StateStreaming {
		return m, telemetryTick()
	}
	m.ticking = false
	return m, nil
}

// =============================================================================
// REFRESH AND PREFERENCE HANDLERS
// =============================================================================

func (m Model) handleRefreshTick(RefreshTickMsg) (tea.Model, tea.Cmd) {
	if m.refreshEvery <= 0 {
		return m, nil
	}
	m.loadingSummary = true
	m.loadingTx = true
	m.updateStatus()
	return m, tea.Batch(
		m.loadSummaryCmd(),
		m.loadTransactionsCmd(),
		m.spinner.Tick,
		refreshTick(m.refreshEvery),
	)
}

func (m Model) handlePrefsChanged(msg PrefsChangedMsg) (tea.Model, tea.Cmd) {
	m.rateBadge.SetVisible(msg.Prefs.ShowTokenTelemetry)
	if m.prefsCh != nil {
		return m, waitPrefs(m.prefsCh)
	}
	return m, nil
}

func (m Model) handlePrefsToggled(msg PrefsToggledMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.updateStatus()
	}
	return m, nil
}

// =============================================================================
// SHARED STATE UPDATES
// =============================================================================

// refreshViewportContent rebuilds the summary tab content. The viewport
// keeps its scroll offset, clamped to the new content.
func (m *Model) refreshViewportContent() {
	m.viewport.SetContent(m.summaryContent())
}

// updateStatus derives the status bar state from load and error state.
func (m *Model) updateStatus() {
	switch {
	case m.lastErr != nil:
		m.statusBar.SetStatus(components.StatusError)
	case m.loadingSummary || m.loadingTx:
		if m.loadedOnce {
			m.statusBar.SetStatus(components.StatusRefreshing)
		} else {
			m.statusBar.SetStatus(components.StatusLoading)
		}
	case m.refreshEvery > 0:
		m.statusBar.SetStatus(components.StatusWatching)
	default:
		m.statusBar.SetStatus(components.StatusReady)
	}
}
