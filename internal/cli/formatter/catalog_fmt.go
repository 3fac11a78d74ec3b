package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/liftplan/internal/domain"
)

// FormatCatalogStats renders total and per-equipment counts.
func FormatCatalogStats(total int, byEquipment []domain.EquipmentCount) string {
	if total == 0 {
		return Dim("The catalog is empty. Import one with `liftplan catalog import FILE`.") + "\n"
	}

	rows := make([][]string, 0, len(byEquipment))
	for _, ec := range byEquipment {
		rows = append(rows, []string{ec.Equipment, strconv.Itoa(ec.Count)})
	}

	var b strings.Builder
	b.WriteString(Header("Catalog") + "\n")
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Total exercises:"), Bold(strconv.Itoa(total)))
	b.WriteString(RenderTableAligned([]string{"EQUIPMENT", "COUNT"}, []Align{AlignLeft, AlignRight}, rows))
	return b.String()
}

// FormatExerciseList renders catalog records as a table.
func FormatExerciseList(records []*domain.ExerciseRecord) string {
	if len(records) == 0 {
		return Dim("No exercises found.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			TitleCase(r.Name),
			orDash(r.BodyPart),
			orDash(r.Target),
			r.Equipment,
		})
	}
	return RenderTable([]string{"ID", "NAME", "BODY PART", "TARGET", "EQUIPMENT"}, rows)
}

// FormatExercise renders one catalog record with its instructions.
func FormatExercise(r *domain.ExerciseRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:       "), r.ID)
	if r.ExternalID != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Source ID:"), *r.ExternalID)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Equipment:"), r.Equipment)
	fmt.Fprintf(&b, "%s %s\n", Dim("Body part:"), orDash(r.BodyPart))
	fmt.Fprintf(&b, "%s %s", Dim("Target:   "), orDash(r.Target))

	if r.Instructions != nil && strings.TrimSpace(*r.Instructions) != "" {
		b.WriteString("\n\n" + Bold("Instructions") + "\n")
		for i, step := range strings.Split(*r.Instructions, "\n") {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}
	return RenderBox(TitleCase(r.Name), strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatImportResult renders a one-line import summary.
func FormatImportResult(imported, created, updated int) string {
	return StyleGreen.Render("✔") + fmt.Sprintf(" Imported %d exercises ", imported) +
		Dim(fmt.Sprintf("(%d new, %d updated)", created, updated)) + "\n"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("-")
	}
	return s
}
