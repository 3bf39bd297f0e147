// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keyflow/internal/generator"
	"github.com/verte-zerg/keyflow/internal/model"
	"github.com/verte-zerg/keyflow/internal/session"
	"github.com/verte-zerg/keyflow/internal/stats"
	"github.com/verte-zerg/keyflow/internal/store"
)

const pollEvery = 100 * time.Millisecond

// Model implements the Bubble Tea typing UI.
type Model struct {
	config            model.Config
	store             *store.Store
	gen               *generator.Generator
	words             []string
	wordListPath      string
	punctSet          []rune
	weakSet           map[rune]struct{}
	weakNoticePrinted bool

	width  int
	height int

	sess      *session.Session
	started   bool
	startedAt time.Time

	live    stats.Measurement
	hasLive bool

	finished bool
	results  viewport.Model

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM      float64
	allAcc      float64
	allSessions int
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C87A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	resultsTitle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// NewModel constructs a typing TUI model.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, words []string, wordListPath string, punctSet []rune, weakSet map[rune]struct{}) (*Model, error) {
	m := &Model{
		config:       cfg,
		store:        st,
		gen:          gen,
		words:        words,
		wordListPath: wordListPath,
		punctSet:     punctSet,
		weakSet:      weakSet,
		results:      viewport.New(0, 0),
	}
	if err := m.resetSession(); err != nil {
		return nil, err
	}
	m.loadFooterStats()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.results.Width = msg.Width
		m.results.Height = maxInt(1, msg.Height-2)
		return m, nil
	case tickMsg:
		if m.started && !m.finished {
			if measurement, ok := m.sess.Poll(m.elapsed()); ok {
				m.live = measurement
				m.hasLive = true
			}
		}
		return m, tickCmd()
	case tea.KeyMsg:
		if m.finished {
			return m.updateResults(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if err := m.resetSession(); err != nil {
			logErrf("failed to start next session: %v\n", err)
			return m, tea.Quit
		}
		return m, tea.ClearScreen
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return m.viewResults()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	text := m.sess.Text()
	if text.Len() == 0 {
		return ""
	}
	styledRunes := buildStyledRunes(text, m.sess.Pos())
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewResults() string {
	if m.width == 0 || m.height == 0 {
		return m.results.View()
	}
	title := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, resultsTitle.Render("Session Results"))
	help := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footerStyle.Render("enter: next  q/esc: quit  up/down: scroll"))
	return title + "\n" + m.results.View() + "\n" + help
}

func (m *Model) handleBackspace() {
	m.sess.Delete(m.elapsed())
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if m.sess.Done() {
			return
		}
		if !m.started {
			m.started = true
			m.startedAt = time.Now()
		}
		if _, err := m.sess.Input(r, m.elapsed()); err != nil {
			return
		}
		if m.sess.Done() {
			m.finishSession()
			return
		}
	}
}

func (m *Model) elapsed() time.Duration {
	if !m.started {
		return 0
	}
	return time.Since(m.startedAt)
}

func (m *Model) measureInterval() time.Duration {
	if m.config.MeasureEvery <= 0 {
		return stats.DefaultMeasureInterval
	}
	return time.Duration(m.config.MeasureEvery * float64(time.Second))
}

func (m *Model) loadFooterStats() {
	ctx := context.Background()
	sessions, err := m.store.ListSessions(ctx, model.StatsConfig{Lang: m.config.Lang})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM = last.WPMActual
	m.lastAcc = last.AccActual
	m.hasLast = true

	var sumWPM, sumAcc float64
	for _, s := range sessions {
		sumWPM += s.WPMActual
		sumAcc += s.AccActual
	}
	m.allSessions = len(sessions)
	m.allWPM = sumWPM / float64(len(sessions))
	m.allAcc = sumAcc / float64(len(sessions))
}

func (m *Model) renderFooter() string {
	progress := int(m.sess.Progress() * 100)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.hasLive {
		segments = append(segments, fmt.Sprintf("Now %.1f WPM · %.1f%%", m.live.WPM.Actual, m.live.Accuracy.Actual*100))
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	if m.allSessions > 0 {
		segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) resetSession() error {
	text := m.generateText()
	sess, err := session.New(text, session.WithMeasureInterval(m.measureInterval()))
	if err != nil {
		return err
	}
	m.sess = sess
	m.started = false
	m.startedAt = time.Time{}
	m.hasLive = false
	m.finished = false
	return nil
}

func (m *Model) generateText() string {
	params := generator.Params{
		Words:    m.config.Words,
		CapsPct:  m.config.CapsPct,
		PunctPct: m.config.PunctPct,
		PunctSet: m.punctSet,
	}
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		params.WeakSet = m.weakSet
		params.WeakFactor = m.config.WeakFactor
	}
	return m.gen.Text(m.words, params)
}

func (m *Model) finishSession() {
	if !m.started {
		return
	}
	endedAt := time.Now()
	summary := m.sess.Finalize(endedAt.Sub(m.startedAt))

	rec := model.SessionRecord{
		StartedAt:    m.startedAt,
		EndedAt:      endedAt,
		Lang:         m.config.Lang,
		Words:        m.config.Words,
		CapsPct:      m.config.CapsPct,
		PunctPct:     m.config.PunctPct,
		PunctSet:     m.config.PunctSet,
		WordListPath: m.wordListPath,
		Corrects:     summary.Counters.Corrects,
		Errors:       summary.Counters.Errors,
		Corrections:  summary.Counters.Corrections,
		Deletions:    summary.Counters.Deletes,
		WPMRaw:       summary.Final.WPM.Raw,
		WPMActual:    summary.Final.WPM.Actual,
		AccRaw:       summary.Final.Accuracy.Raw,
		AccActual:    summary.Final.Accuracy.Actual,
		Consistency:  summary.Final.Consistency.ActualPercent,
		DurationMs:   summary.Duration.Milliseconds(),
	}

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, rec, charStatsFrom(summary.Counters), measurementsFrom(summary.Measurements)); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	m.lastWPM = rec.WPMActual
	m.lastAcc = rec.AccActual
	m.hasLast = true
	m.allWPM = (m.allWPM*float64(m.allSessions) + rec.WPMActual) / float64(m.allSessions+1)
	m.allAcc = (m.allAcc*float64(m.allSessions) + rec.AccActual) / float64(m.allSessions+1)
	m.allSessions++

	if m.config.FocusWeak {
		m.refreshWeakSet()
	}

	m.results.SetContent(renderResults(summary))
	m.results.GotoTop()
	m.finished = true
}

func charStatsFrom(counters stats.Counters) []model.CharStats {
	merged := map[rune]model.CharStats{}
	for ch, n := range counters.CharHits {
		entry := merged[ch]
		entry.Char = string(ch)
		entry.Correct = n
		merged[ch] = entry
	}
	for ch, n := range counters.CharErrors {
		entry := merged[ch]
		entry.Char = string(ch)
		entry.Errors = n
		merged[ch] = entry
	}
	out := make([]model.CharStats, 0, len(merged))
	for _, entry := range merged {
		out = append(out, entry)
	}
	return out
}

func measurementsFrom(measurements []stats.Measurement) []model.MeasurementRecord {
	out := make([]model.MeasurementRecord, 0, len(measurements))
	for _, m := range measurements {
		out = append(out, model.MeasurementRecord{
			ElapsedMs:   m.Elapsed.Milliseconds(),
			WPMRaw:      m.WPM.Raw,
			WPMActual:   m.WPM.Actual,
			AccRaw:      m.Accuracy.Raw,
			AccActual:   m.Accuracy.Actual,
			Consistency: m.Consistency.ActualPercent,
		})
	}
	return out
}

func (m *Model) refreshWeakSet() {
	ctx := context.Background()
	aggs, err := m.store.GetWeakChars(ctx, m.config.WeakWindow, m.config.Lang)
	if err != nil {
		logErrf("failed to load weak chars: %v\n", err)
		return
	}
	if len(aggs) == 0 {
		if !m.weakNoticePrinted {
			logErrln("no stats available for weak-char focus yet; using normal generator")
			m.weakNoticePrinted = true
		}
		m.weakSet = map[rune]struct{}{}
		return
	}
	m.weakSet = stats.SelectWeakChars(aggs, m.config.WeakTop)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
