package formatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
)

// FormatPlan renders a generated plan as a boxed header followed by an
// exercise table. Dropped suggestions are listed underneath.
func FormatPlan(resp *contract.GeneratePlanResponse) string {
	plan := resp.Plan

	var meta strings.Builder
	meta.WriteString(Bold(plan.Name) + "\n")
	if plan.Description != "" {
		meta.WriteString(StyleFg.Render(plan.Description) + "\n")
	}
	meta.WriteString("\n")
	meta.WriteString(Dim("Duration   ") + FormatMinutes(plan.EstimatedMinutes) + "\n")
	meta.WriteString(Dim("Exercises  ") + strconv.Itoa(len(plan.Exercises)) + "\n")
	meta.WriteString(Dim("Drawn from ") + fmt.Sprintf("%d catalog exercises", resp.CandidatesCount))
	if resp.Model != "" {
		meta.WriteString("\n" + Dim("Model      ") + resp.Model)
	}

	var b strings.Builder
	b.WriteString(RenderBox("Workout Plan", meta.String()))
	b.WriteString("\n\n")
	b.WriteString(renderExerciseTable(plan.Exercises))

	if notes := planNotes(plan.Exercises); notes != "" {
		b.WriteString("\n" + Header("Notes") + "\n")
		b.WriteString(notes)
	}

	if len(resp.UnmatchedNames) > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%d suggested exercise(s) were not in the catalog and were dropped:", len(resp.UnmatchedNames))) + "\n")
		b.WriteString(BulletList(resp.UnmatchedNames))
	}

	return b.String()
}

func renderExerciseTable(entries []domain.ResolvedExerciseEntry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			TitleCase(e.Name),
			strconv.Itoa(e.Sets),
			e.Reps,
			FormatRest(e.RestSeconds),
		})
	}
	return RenderTableAligned(
		[]string{"#", "EXERCISE", "SETS", "REPS", "REST"},
		[]Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight},
		rows,
	)
}

func planNotes(entries []domain.ResolvedExerciseEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if e.Notes == nil || strings.TrimSpace(*e.Notes) == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s: %s\n", Dim(strconv.Itoa(i+1)+"."), TitleCase(e.Name), strings.TrimSpace(*e.Notes))
	}
	return b.String()
}

// FormatGenerationError renders a failed generation. NO_EXERCISES_MATCHED
// includes the suggested names so the user can see what the generator
// proposed.
func FormatGenerationError(err error) string {
	var ge *contract.GenerationError
	if !errors.As(err, &ge) {
		ge = contract.Classify(err)
	}

	var b strings.Builder
	b.WriteString(CodeBadge(ge.Code) + "  " + ge.Message + "\n")

	if d := ge.Diagnostics; d != nil {
		b.WriteString("\n" + FormatDiagnostics(*d))
	}

	if hint := errorHint(ge.Code); hint != "" {
		b.WriteString("\n" + Dim(hint) + "\n")
	}
	return b.String()
}

// FormatDiagnostics renders match diagnostics.
func FormatDiagnostics(d domain.MatchDiagnostics) string {
	var b strings.Builder
	b.WriteString(Header("Match diagnostics") + "\n")
	fmt.Fprintf(&b, "%s %d\n", Dim("Catalog candidates:"), d.CandidatesCount)
	if len(d.SuggestedNames) == 0 {
		b.WriteString(Dim("The generator suggested no exercises.") + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("Suggested (%d):", len(d.SuggestedNames))))
	b.WriteString(BulletList(d.SuggestedNames))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("Unmatched (%d):", len(d.UnmatchedNames))))
	b.WriteString(BulletList(d.UnmatchedNames))
	return b.String()
}

func errorHint(code contract.GenerateErrorCode) string {
	switch code {
	case contract.ErrCatalogEmpty:
		return "Run `liftplan catalog import FILE` to load an exercise catalog."
	case contract.ErrNoCandidates:
		return "Run `liftplan catalog stats` to see which equipment the catalog covers."
	case contract.ErrNotConfigured:
		return "Set LIFTPLAN_LLM_PROVIDER and, for openai, LIFTPLAN_LLM_API_KEY."
	}
	if code.Retryable() {
		return "This may succeed if you try again."
	}
	return ""
}
