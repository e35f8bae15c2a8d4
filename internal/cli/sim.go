package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwessel/phigrid/pkg/store"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
	"github.com/mwessel/phigrid/pkg/watch"
)

// simCommand creates the interactive simulator command.
func (c *CLI) simCommand() *cobra.Command {
	sf := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the interactive simulator",
		Long: `Run the interactive simulator.

Cycle through the three architectures and watch the topology and Φ
readout change. Every selection generates a fresh complex; the previous
one is discarded whole. The language/self-model toggles are purely
presentational annotations and never affect generation or the metric.

Keys:
  ←/→, tab    cycle architecture        1/2/3  select architecture
  r           regenerate (new randomness)
  l           toggle language module     m     toggle self-model module
  s           save snapshot              q     quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			snaps, err := sf.open(ctx)
			if err != nil {
				return err
			}
			defer snaps.Close(ctx)

			holder := watch.New()
			defer holder.Close()

			m := newSimModel(ctx, c, holder, snaps)
			if err := m.generate(c.Config.Architecture()); err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	sf.register(cmd)
	return cmd
}

// =============================================================================
// simModel - Interactive Architecture Selection
// =============================================================================

// simModel is the bubbletea model for the simulator.
//
// The model owns the session's watch.Holder: every architecture selection
// generates a fresh complex and publishes it through the holder, then the
// view renders holder's current snapshot. The complex is never mutated in
// place.
type simModel struct {
	ctx    context.Context
	cli    *CLI
	holder *watch.Holder
	snaps  store.Store

	archIdx int
	modules moduleToggles
	status  string
	width   int
}

// moduleToggles are the presentational annotation flags.
type moduleToggles struct {
	Language  bool
	SelfModel bool
}

func newSimModel(ctx context.Context, c *CLI, holder *watch.Holder, snaps store.Store) *simModel {
	archs := system.Architectures()
	idx := 0
	for i, a := range archs {
		if a == c.Config.Architecture() {
			idx = i
		}
	}
	return &simModel{
		ctx:     ctx,
		cli:     c,
		holder:  holder,
		snaps:   snaps,
		archIdx: idx,
		modules: moduleToggles{
			Language:  c.Config.Modules.Language,
			SelfModel: c.Config.Modules.SelfModel,
		},
	}
}

// generate builds a fresh complex for arch and publishes it.
func (m *simModel) generate(arch system.Architecture) error {
	c, err := topology.Generate(arch, m.cli.Config.Generation.Elements,
		topology.WithGridWidth(m.cli.Config.Generation.GridWidth),
		topology.WithEvaluator(m.cli.Config.Scale()),
	)
	if err != nil {
		return err
	}
	m.holder.Set(c)
	return nil
}

func (m *simModel) selectArch(idx int) {
	archs := system.Architectures()
	m.archIdx = ((idx % len(archs)) + len(archs)) % len(archs)
	if err := m.generate(archs[m.archIdx]); err != nil {
		m.status = "error: " + err.Error()
		return
	}
	m.status = ""
}

func (m *simModel) Init() tea.Cmd {
	return nil
}

func (m *simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			m.selectArch(m.archIdx - 1)
		case "right", "tab":
			m.selectArch(m.archIdx + 1)
		case "1":
			m.selectArch(0)
		case "2":
			m.selectArch(1)
		case "3":
			m.selectArch(2)
		case "r":
			m.selectArch(m.archIdx)
		case "l":
			m.modules.Language = !m.modules.Language
		case "m":
			m.modules.SelfModel = !m.modules.SelfModel
		case "s":
			m.saveSnapshot()
		}
	}
	return m, nil
}

// saveSnapshot stores the current complex under an architecture-stamped
// name.
func (m *simModel) saveSnapshot() {
	c, _ := m.holder.Current()
	if c == nil {
		return
	}
	name := fmt.Sprintf("%s-%s", c.Architecture, time.Now().Format("20060102-150405"))
	rec, err := store.NewRecord(name, c)
	if err != nil {
		m.status = "error: " + err.Error()
		return
	}
	if err := m.snaps.Save(m.ctx, name, rec); err != nil {
		m.status = "error: " + err.Error()
		return
	}
	m.status = "saved snapshot " + name
}

func (m *simModel) View() string {
	c, _ := m.holder.Current()
	if c == nil {
		return styleDim.Render("generating...")
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("phigrid — information integration simulator"))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("←/→ architecture  r regenerate  l/m toggles  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderSelector())
	b.WriteString("\n\n")

	view := newComplexView(c)
	b.WriteString(view.renderGrid())
	if extra := view.renderExtraEdges(); extra != "" {
		b.WriteString("\n")
		b.WriteString(extra)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderReadout(c.Phi, m.cli.Config.Thresholds()))
	b.WriteString("   ")
	b.WriteString(styleDim.Render(fmt.Sprintf("%d elements, %d edges", c.Graph.Len(), c.Graph.EdgeCount())))
	b.WriteString("\n\n")

	mods := m.cli.Config.Modules
	mods.Language = m.modules.Language
	mods.SelfModel = m.modules.SelfModel
	b.WriteString(renderModules(mods))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		if strings.HasPrefix(m.status, "error:") {
			b.WriteString(styleIconError.Render("✗") + " " + m.status)
		} else {
			b.WriteString(styleIconOK.Render("✓") + " " + m.status)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderSelector draws the three architecture labels with their reference
// Φ values, highlighting the selection.
func (m *simModel) renderSelector() string {
	scale := m.cli.Config.Scale()
	parts := make([]string, 0, 3)
	for i, arch := range system.Architectures() {
		phi, err := scale.Phi(arch)
		label := arch.String()
		if err == nil {
			label = fmt.Sprintf("%s (Φ %.1f)", arch, phi)
		}
		if i == m.archIdx {
			parts = append(parts, styleSelected.Render("▸ "+label))
		} else {
			parts = append(parts, styleDim.Render("  "+label))
		}
	}
	return strings.Join(parts, "   ")
}
