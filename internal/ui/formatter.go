package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"ptx/internal/domain"
)

// Formatter renders discovery results on the console.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintTree prints the entity tree of one file.
func (f *Formatter) PrintTree(filePath string, entities []*domain.TestEntity) {
	color.Cyan("%s", filePath)
	if len(entities) == 0 {
		color.Yellow("  no tests discovered")
		return
	}
	for _, entity := range entities {
		f.printEntity(entity, 1)
	}
}

func (f *Formatter) printEntity(entity *domain.TestEntity, depth int) {
	indent := strings.Repeat("  ", depth)
	label := entityLabel(entity)

	switch entity.Kind {
	case domain.KindClass:
		fmt.Printf("%s%s %s\n", indent, color.MagentaString("class"), color.WhiteString(label))
	default:
		fmt.Printf("%s%s %s\n", indent, color.GreenString("test"), label)
	}
	for _, child := range entity.Children {
		f.printEntity(child, depth+1)
	}
}

func entityLabel(entity *domain.TestEntity) string {
	var marks []string
	if entity.Async {
		marks = append(marks, "async")
	}
	if entity.Parametrized {
		marks = append(marks, "parametrized")
	}
	if len(entity.Fixtures) > 0 {
		marks = append(marks, "fixtures: "+strings.Join(entity.Fixtures, ", "))
	}

	label := fmt.Sprintf("%s  %s", entity.Name, color.New(color.Faint).Sprintf("line %d", entity.StartLine))
	if len(marks) > 0 {
		label += "  " + color.New(color.Faint).Sprintf("[%s]", strings.Join(marks, "; "))
	}
	return label
}

// PrintScanSummary prints the statistics table after a workspace scan.
func (f *Formatter) PrintScanSummary(inventory *domain.Inventory) {
	meta := inventory.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Test Discovery Summary                    ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	fmt.Printf("│ %-31s │ ", "Test Files")
	color.White("%-27d │\n", meta.TotalTestFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	fmt.Printf("│ %-31s │ ", "Runnable Tests")
	color.Green("%-27d │\n", meta.TotalTests)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	fmt.Printf("│ %-31s │ ", "Duration")
	color.White("%-27s │\n", meta.Duration)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")
}

// PrintNonTestWarning prints the one-line warning for files that do not match
// the test-file naming convention.
func (f *Formatter) PrintNonTestWarning(filePath string) {
	color.Yellow("%s does not look like a test file (expected test_*.py or *_test.py)", filePath)
}
