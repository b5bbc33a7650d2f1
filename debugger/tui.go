package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/dcpu16/config"
	"github.com/lookbusy1344/dcpu16/vm"
)

// TUI paints the memory-mapped 32x12 console alongside registers,
// disassembly and breakpoints (spec §6).
type TUI struct {
	Debugger *Debugger
	Config   *config.Config
	App      *tview.Application
	Pages    *tview.Pages

	MainLayout *tview.Flex

	ConsoleView     *tview.TextView
	RegisterView    *tview.TextView
	DisassemblyView *tview.TextView
	BreakpointsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField
}

// NewTUI creates a new text user interface around dbg, painting the
// console with cfg's palette. A nil cfg falls back to config.DefaultConfig.
func NewTUI(dbg *Debugger, cfg *config.Config) *TUI {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	t := &TUI{
		Debugger: dbg,
		Config:   cfg,
		App:      tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initializeViews() {
	t.ConsoleView = tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	t.ConsoleView.SetBorder(true).SetTitle(" Console ")

	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.DisassemblyView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.BreakpointsView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.BreakpointsView.SetBorder(true).SetTitle(" Breakpoints ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	leftPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.ConsoleView, ConsoleViewRows+2, 0, false).
		AddItem(t.DisassemblyView, 0, 1, false)

	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 5, 0, false).
		AddItem(t.BreakpointsView, 0, 1, false)

	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftPanel, 0, 2, false).
		AddItem(rightPanel, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 6, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.Pages = tview.NewPages().AddPage("main", t.MainLayout, true, true)
}

// setupKeyBindings wires debugger shortcuts plus a pass-through that
// forwards any key not consumed by the command input to the emulated
// keyboard (spec §6): arrows map to the special LEFT/RIGHT/UP/DOWN
// codes, printable runes map to their ASCII value.
func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}

		if t.App.GetFocus() == t.CommandInput {
			return event
		}

		switch event.Key() {
		case tcell.KeyLeft:
			t.Debugger.Machine.PressKey(vm.KeyLeft)
			return nil
		case tcell.KeyRight:
			t.Debugger.Machine.PressKey(vm.KeyRight)
			return nil
		case tcell.KeyUp:
			t.Debugger.Machine.PressKey(vm.KeyUp)
			return nil
		case tcell.KeyDown:
			t.Debugger.Machine.PressKey(vm.KeyDown)
			return nil
		case tcell.KeyRune:
			t.Debugger.Machine.PressKey(vm.Key(event.Rune()))
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd != "" {
		t.executeCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) executeCommand(cmd string) {
	err := t.Debugger.ExecuteCommand(cmd)
	output := t.Debugger.GetOutput()
	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}
	t.RefreshAll()
}

func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

func (t *TUI) RefreshAll() {
	t.UpdateConsoleView()
	t.UpdateRegisterView()
	t.UpdateDisassemblyView()
	t.UpdateBreakpointsView()
	t.App.Draw()
}

// UpdateConsoleView paints the 32x12 memory-mapped console, coloring
// each cell from its fg/bg nibble via the configured palette.
func (t *TUI) UpdateConsoleView() {
	m := t.Debugger.Machine
	var lines []string
	for row := 0; row < vm.ConsoleRows; row++ {
		var b strings.Builder
		lastFg, lastBg := uint8(255), uint8(255)
		for col := 0; col < vm.ConsoleCols; col++ {
			cell := m.ConsoleCell(row, col)
			ch := cell.Ch
			if ch < 32 || ch >= 127 {
				ch = ' '
			}
			if cell.Fg != lastFg || cell.Bg != lastBg {
				fg := t.Config.Palette.Foreground[cell.Fg&0xF]
				bg := t.Config.Palette.Background[cell.Bg&0xF]
				fmt.Fprintf(&b, "[%s:%s]", fg, bg)
				lastFg, lastBg = cell.Fg, cell.Bg
			}
			b.WriteString(tview.Escape(string(ch)))
		}
		lines = append(lines, b.String())
	}
	t.ConsoleView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateRegisterView() {
	c := t.Debugger.Machine.CPU
	var lines []string
	names := []string{"A", "B", "C", "X", "Y", "Z", "I", "J"}
	for i := 0; i < len(names); i += RegisterGroupSize {
		var cols []string
		for j := i; j < i+RegisterGroupSize && j < len(names); j++ {
			cols = append(cols, fmt.Sprintf("%s: 0x%04X", names[j], c.Registers[j]))
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	lines = append(lines, fmt.Sprintf("PC: 0x%04X  SP: 0x%04X  O: 0x%04X", c.PC, c.SP, c.O))
	t.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateDisassemblyView() {
	pc := int(t.Debugger.Machine.CPU.PC)
	image := t.Debugger.Machine.Mem.Snapshot()

	var lines []string
	addr := pc
	for i := 0; i < 16 && addr < 65536; i++ {
		next, text := vm.Disassemble(image, addr)

		marker := "  "
		color := "white"
		if addr == pc {
			marker, color = "->", "yellow"
		}
		if t.Debugger.Breakpoints.GetBreakpoint(uint16(addr)) != nil {
			marker = "* "
		}
		lines = append(lines, fmt.Sprintf("[%s]%s 0x%04X: %s[white]", color, marker, addr, text))
		addr = next
	}
	t.DisassemblyView.SetText(strings.Join(lines, "\n"))
}

func (t *TUI) UpdateBreakpointsView() {
	bps := t.Debugger.Breakpoints.GetAllBreakpoints()
	if len(bps) == 0 {
		t.BreakpointsView.SetText("[yellow]No breakpoints set[white]")
		return
	}
	var lines []string
	for _, bp := range bps {
		status, color := "enabled", "green"
		if !bp.Enabled {
			status, color = "disabled", "red"
		}
		lines = append(lines, fmt.Sprintf("%d: [%s]%s[white] 0x%04X (hits: %d)", bp.ID, color, status, bp.Address, bp.HitCount))
	}
	t.BreakpointsView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI application.
func (t *TUI) Run() error {
	t.RefreshAll()
	t.WriteOutput("[green]DCPU-16 debugger[white]\n")
	t.WriteOutput("F5 continue, F11 step, type 'help' for the command list\n\n")
	return t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput).Run()
}

// Stop stops the TUI application.
func (t *TUI) Stop() {
	t.App.Stop()
}
