package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"ptx/internal/domain"
)

// CommandFunc synthesizes the run command for an entity of a file. A nil
// selector means the whole file.
type CommandFunc func(filePath string, selector *domain.Selector) string

// Viewer displays a scanned inventory in an interactive TUI: entity tree on
// the left, details and the synthesized run command on the right.
type Viewer struct {
	buildCommand CommandFunc
}

// NewViewer creates a Viewer.
func NewViewer(buildCommand CommandFunc) *Viewer {
	return &Viewer{buildCommand: buildCommand}
}

// nodeRef is attached to every tree node so the details pane knows what is
// selected.
type nodeRef struct {
	file   string
	entity *domain.TestEntity // nil for file nodes
}

// View runs the TUI over the inventory until the user exits.
func (v *Viewer) View(inventory *domain.Inventory) error {
	if len(inventory.Files) == 0 {
		fmt.Println("No tests in the saved inventory. Run a scan first.")
		return nil
	}

	app := tview.NewApplication()

	root := tview.NewTreeNode(inventory.Meta.Root).
		SetColor(tcell.ColorDarkCyan).
		SetSelectable(false)
	for i := range inventory.Files {
		file := &inventory.Files[i]
		fileNode := tview.NewTreeNode(file.Path).
			SetReference(&nodeRef{file: file.Path}).
			SetColor(tcell.ColorYellow)
		for _, entity := range file.Entities {
			fileNode.AddChild(v.entityNode(file.Path, entity))
		}
		root.AddChild(fileNode)
	}

	tree := tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root.GetChildren()[0])

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	headerView.SetText(fmt.Sprintf(
		" Test Inventory (%d files, %d tests) | ↑↓ navigate, Enter expand/collapse, Ctrl+C exit ",
		inventory.Meta.TotalTestFiles, inventory.Meta.TotalTests))

	updateDetails := func(node *tview.TreeNode) {
		ref, _ := node.GetReference().(*nodeRef)
		if ref == nil {
			detailsView.SetText("")
			return
		}
		detailsView.SetText(v.formatDetails(ref))
	}
	tree.SetChangedFunc(updateDetails)
	tree.SetSelectedFunc(func(node *tview.TreeNode) {
		if len(node.GetChildren()) > 0 {
			node.SetExpanded(!node.IsExpanded())
			return
		}
		updateDetails(node)
	})
	updateDetails(tree.GetCurrentNode())

	tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			app.Stop()
			return nil
		}
		return event
	})

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(tree, 0, 1, true).
		AddItem(detailsContainer, 0, 2, false)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(tree).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (v *Viewer) entityNode(file string, entity *domain.TestEntity) *tview.TreeNode {
	label := entity.Name
	if entity.Kind == domain.KindClass {
		label = "class " + label
	}
	node := tview.NewTreeNode(label).
		SetReference(&nodeRef{file: file, entity: entity})
	if entity.Kind == domain.KindClass {
		node.SetColor(tcell.ColorFuchsia)
	}
	for _, child := range entity.Children {
		node.AddChild(v.entityNode(file, child))
	}
	return node
}

func (v *Viewer) formatDetails(ref *nodeRef) string {
	var b strings.Builder

	if ref.entity == nil {
		fmt.Fprintf(&b, "[cyan]File:[white] %s\n\n", ref.file)
		fmt.Fprintf(&b, "[yellow]Run command:[white]\n%s\n", v.buildCommand(ref.file, nil))
		return b.String()
	}

	entity := ref.entity
	fmt.Fprintf(&b, "[cyan]%s:[white] %s\n", entity.Kind, entity.QualifiedName)
	fmt.Fprintf(&b, "[cyan]File:[white] %s\n", ref.file)
	if entity.EndLine > 0 {
		fmt.Fprintf(&b, "[cyan]Lines:[white] %d-%d\n", entity.StartLine, entity.EndLine)
	} else {
		fmt.Fprintf(&b, "[cyan]Line:[white] %d\n", entity.StartLine)
	}
	if entity.Async {
		fmt.Fprintf(&b, "[cyan]Async:[white] yes\n")
	}
	if entity.Parametrized {
		fmt.Fprintf(&b, "[cyan]Parametrized:[white] yes\n")
	}
	if len(entity.Fixtures) > 0 {
		fmt.Fprintf(&b, "[cyan]Fixtures:[white] %s\n", strings.Join(entity.Fixtures, ", "))
	}

	selector := &domain.Selector{QualifiedName: entity.QualifiedName, Kind: entity.Kind}
	fmt.Fprintf(&b, "\n[yellow]Run command:[white]\n%s\n", v.buildCommand(ref.file, selector))
	return b.String()
}
