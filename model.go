package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/philtim/offsetclock/clock"
	"github.com/philtim/offsetclock/offset"
	"github.com/philtim/offsetclock/script"
	"github.com/philtim/offsetclock/zones"
)

// viewState represents the current view state
type viewState int

const (
	viewMain viewState = iota
	viewAdd
	viewHome
	viewDelete
	viewExport
	viewConvert
	viewConfirm
)

// form fields
const (
	fieldName = iota
	fieldOffset
)

// tickMsg is sent every second to update the clocks
type tickMsg time.Time

// conversionRow is one line of the convert view
type conversionRow struct {
	name  string
	label string
	conv  clock.Conversion
}

// model represents the application state
type model struct {
	// Core data
	ctx       context.Context
	repo      *zones.Repository
	src       clock.Source
	exportDir string
	kind      script.Kind

	home    zones.Entry
	entries []zones.Entry
	clocks  []*clock.Clock
	now     time.Time

	// View state
	state    viewState
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	quitting bool
	dark     bool
	status   string

	// Add / home form state
	nameInput       textinput.Model
	offsetInput     textinput.Model
	focus           int
	formErr         string
	justEnteredForm bool // Flag to prevent initial key from appearing in input

	// Delete / export list state
	listCursor     int
	deleteSelected map[int]bool

	// Convert state
	timeInput   textinput.Model
	conversions []conversionRow
	convertErr  string

	// Confirm mode state
	confirmMsg    string
	confirmAction func() error
}

// newModel loads the persisted state and builds the initial model
func newModel(ctx context.Context, repo *zones.Repository, src clock.Source, exportDir string, kind script.Kind) model {
	name := textinput.New()
	name.Placeholder = "e.g., New York, London"
	name.CharLimit = 50
	name.Width = 40

	off := textinput.New()
	off.Placeholder = "e.g., UTC-4, GMT+2"
	off.CharLimit = 10
	off.Width = 40

	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 10

	m := model{
		ctx:            ctx,
		repo:           repo,
		src:            src,
		exportDir:      exportDir,
		kind:           kind,
		now:            src.Now(),
		state:          viewMain,
		nameInput:      name,
		offsetInput:    off,
		timeInput:      ti,
		deleteSelected: make(map[int]bool),
		dark:           repo.DarkMode(ctx),
	}
	m.reload()
	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			// Reserve space for the command bar (1 newline + 1 bar line)
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.viewport.YPosition = 0
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}

	case tickMsg:
		m.now = m.src.Now()
		cmds = append(cmds, tickCmd())
	}

	// Update text inputs of the active form
	switch m.state {
	case viewAdd, viewHome:
		if !m.justEnteredForm {
			if m.focus == fieldName {
				m.nameInput, cmd = m.nameInput.Update(msg)
			} else {
				m.offsetInput, cmd = m.offsetInput.Update(msg)
			}
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			m.justEnteredForm = false
		}
	case viewConvert:
		if !m.justEnteredForm {
			m.timeInput, cmd = m.timeInput.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		} else {
			m.justEnteredForm = false
		}
	}

	// Update viewport
	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input based on current view state
func (m *model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	switch m.state {
	case viewMain:
		return m.handleMainKeys(msg)
	case viewAdd, viewHome:
		return m.handleFormKeys(msg)
	case viewDelete:
		return m.handleDeleteKeys(msg)
	case viewExport:
		return m.handleExportKeys(msg)
	case viewConvert:
		return m.handleConvertKeys(msg)
	case viewConfirm:
		return m.handleConfirmKeys(msg)
	}
	return nil
}

// handleMainKeys handles keys in main view
func (m *model) handleMainKeys(msg tea.KeyMsg) tea.Cmd {
	m.status = ""

	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit

	case "a":
		return m.openForm(viewAdd)

	case "h":
		cmd := m.openForm(viewHome)
		m.nameInput.SetValue(m.home.Name)
		m.offsetInput.SetValue(m.home.Label)
		return cmd

	case "d":
		if len(m.entries) == 0 {
			m.status = "No time zones to delete"
			return nil
		}
		m.state = viewDelete
		m.deleteSelected = make(map[int]bool)
		m.listCursor = 0

	case "x":
		m.state = viewExport
		m.listCursor = 0

	case "c":
		m.state = viewConvert
		m.timeInput.Reset()
		m.conversions = nil
		m.convertErr = ""
		m.justEnteredForm = true
		return m.timeInput.Focus()

	case "t":
		m.dark = !m.dark
		if err := m.repo.SetDarkMode(m.ctx, m.dark); err != nil {
			m.status = "Could not save theme preference"
		}
	}

	return nil
}

// openForm resets the name/offset form and switches to state
func (m *model) openForm(state viewState) tea.Cmd {
	m.state = state
	m.nameInput.Reset()
	m.offsetInput.Reset()
	m.formErr = ""
	m.focus = fieldName
	m.justEnteredForm = true // Prevent the command key from appearing in input
	m.offsetInput.Blur()
	return m.nameInput.Focus()
}

// handleFormKeys handles keys in the add and home views
func (m *model) handleFormKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.state = viewMain
		return nil

	case "tab", "shift+tab", "up", "down":
		m.justEnteredForm = true // keep the navigation key out of the inputs
		if m.focus == fieldName {
			m.focus = fieldOffset
			m.nameInput.Blur()
			return m.offsetInput.Focus()
		}
		m.focus = fieldName
		m.offsetInput.Blur()
		return m.nameInput.Focus()

	case "enter":
		m.justEnteredForm = true
		m.submitForm()
	}

	return nil
}

// submitForm validates the form and stores the entry
func (m *model) submitForm() {
	e, err := zones.NewEntry(m.nameInput.Value(), m.offsetInput.Value())
	if err != nil {
		m.formErr = formError(err)
		return
	}

	if m.state == viewHome {
		if err := m.repo.SetHome(m.ctx, e); err != nil {
			m.formErr = fmt.Sprintf("Could not save home time zone: %v", err)
			return
		}
		m.status = fmt.Sprintf("Home set to %s (%s)", e.Name, e.Label)
	} else {
		if _, err := m.repo.Add(m.ctx, e); err != nil {
			m.formErr = fmt.Sprintf("Could not save time zone: %v", err)
			return
		}
		m.status = fmt.Sprintf("Added %s (%s)", e.Name, e.Label)
	}

	m.reload()
	m.state = viewMain
}

// formError maps validation errors to the messages shown under the form
func formError(err error) string {
	switch {
	case errors.Is(err, zones.ErrEmptyName):
		return "Please enter a name for the time zone"
	case errors.Is(err, zones.ErrEmptyOffset):
		return "Please enter a time zone offset"
	case errors.Is(err, offset.ErrFormat):
		return "Please enter a valid time zone format (e.g., UTC+1, GMT-4)"
	case errors.Is(err, offset.ErrRange):
		return "Time zone offset must be between -12 and +12"
	default:
		return err.Error()
	}
}

// handleDeleteKeys handles keys in delete view
func (m *model) handleDeleteKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.state = viewMain
		return nil

	case "up":
		if m.listCursor > 0 {
			m.listCursor--
		}

	case "down":
		if m.listCursor < len(m.entries)-1 {
			m.listCursor++
		}

	case " ":
		m.deleteSelected[m.listCursor] = !m.deleteSelected[m.listCursor]

	case "enter":
		var toDelete []zones.Entry
		for idx, selected := range m.deleteSelected {
			if selected && idx < len(m.entries) {
				toDelete = append(toDelete, m.entries[idx])
			}
		}
		if len(toDelete) == 0 {
			m.status = "No time zones selected"
			m.state = viewMain
			return nil
		}

		m.state = viewConfirm
		if len(toDelete) == 1 {
			m.confirmMsg = fmt.Sprintf("Delete '%s'? (y/n)", toDelete[0].Name)
		} else {
			m.confirmMsg = fmt.Sprintf("Delete %d selected time zones? (y/n)", len(toDelete))
		}
		m.confirmAction = func() error {
			for _, e := range toDelete {
				if _, err := m.repo.Remove(m.ctx, e.ID); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return nil
}

// exportTargets lists home first, then every entry
func (m *model) exportTargets() []zones.Entry {
	return append([]zones.Entry{m.home}, m.entries...)
}

// handleExportKeys handles keys in export view
func (m *model) handleExportKeys(msg tea.KeyMsg) tea.Cmd {
	targets := m.exportTargets()

	switch msg.String() {
	case "esc":
		m.state = viewMain

	case "up":
		if m.listCursor > 0 {
			m.listCursor--
		}

	case "down":
		if m.listCursor < len(targets)-1 {
			m.listCursor++
		}

	case "enter":
		e := targets[m.listCursor]
		path, err := script.Export(m.exportDir, m.kind, e)
		if err != nil {
			log.Error().Err(err).Str("name", e.Name).Msg("Error exporting script")
			m.status = fmt.Sprintf("Export failed: %v", err)
		} else {
			log.Info().Str("path", path).Msg("Script exported")
			m.status = fmt.Sprintf("Wrote %s", path)
		}
		m.state = viewMain
	}

	return nil
}

// handleConvertKeys handles keys in convert view
func (m *model) handleConvertKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.timeInput.Blur()
		m.state = viewMain
	case "enter":
		m.runConversion()
	}
	return nil
}

// runConversion converts the typed home time to every entry
func (m *model) runConversion() {
	m.conversions = nil
	m.convertErr = ""

	input := m.timeInput.Value()
	rows := make([]conversionRow, 0, len(m.entries))
	for _, e := range m.entries {
		conv, err := clock.ConvertOn(m.now, input, m.home.Offset, e.Offset)
		if err != nil {
			m.convertErr = "Please enter a time as HH:MM (24-hour)"
			return
		}
		rows = append(rows, conversionRow{name: e.Name, label: e.Label, conv: conv})
	}
	if len(rows) == 0 {
		if _, err := clock.ConvertOn(m.now, input, m.home.Offset, m.home.Offset); err != nil {
			m.convertErr = "Please enter a time as HH:MM (24-hour)"
			return
		}
	}
	m.conversions = rows
}

// handleConfirmKeys handles keys in confirm view
func (m *model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y":
		if err := m.confirmAction(); err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", err)
		}
		m.reload()
		m.state = viewMain

	case "n", "esc":
		m.state = viewMain
	}

	return nil
}

// reload reads the collection and home entry and recreates clocks
func (m *model) reload() {
	m.home = m.repo.Home(m.ctx)
	m.entries = m.repo.List(m.ctx)

	m.clocks = clocksFor(m.entries)
}

// tickCmd returns a command that sends a tick message every second
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
