package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/liftplan/internal/cli/formatter"
	"github.com/alexanderramin/liftplan/internal/contract"
	"github.com/alexanderramin/liftplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		goal      string
		equipment []string
		duration  int
		focus     string
		limit     int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workout plan from the exercise catalog",
		Example: `  liftplan generate --goal "build strength" --equipment barbell,dumbbell --duration 45 --focus upper-body
  liftplan generate            # prompts for missing values on a terminal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if app.interactive() && !asJSON && missingGenerateInput(goal, equipment, duration, focus) {
				in := generateInput{
					Goal:      goal,
					Equipment: equipment,
					Focus:     focus,
				}
				if duration > 0 {
					in.Duration = strconv.Itoa(duration)
				}
				if in.Focus == "" {
					in.Focus = string(domain.FocusFullBody)
				}
				if err := generateForm(&in, catalogEquipment(ctx, app)).Run(); err != nil {
					return err
				}
				goal = in.Goal
				equipment = in.equipment()
				duration = parsePositiveInt(in.Duration, duration)
				focus = in.Focus
			}

			req := contract.NewGeneratePlanRequest(goal, equipment, duration, domain.FocusArea(focus))
			req.CandidateLimit = limit

			generate := func(ctx context.Context) (*contract.GeneratePlanResponse, error) {
				return app.Workouts.GeneratePlan(ctx, req)
			}
			var (
				resp *contract.GeneratePlanResponse
				err  error
			)
			if app.interactive() && !asJSON {
				resp, err = runWithProgress(ctx, cmd.ErrOrStderr(), "Generating your plan...", generate)
			} else {
				resp, err = generate(ctx)
			}

			out := cmd.OutOrStdout()
			if err != nil {
				if asJSON {
					if werr := writeJSONError(out, err); werr != nil {
						return werr
					}
				} else {
					fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatGenerationError(err))
				}
				return &reportedError{err: err}
			}

			if asJSON {
				return writeIndentedJSON(out, resp)
			}
			if len(resp.UnmatchedNames) > 0 {
				app.logger().Debug("partial plan", "unmatched", resp.UnmatchedNames)
			}
			fmt.Fprint(out, formatter.FormatPlan(resp))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goal, "goal", "g", "", "Training goal, e.g. \"build strength\"")
	cmd.Flags().StringSliceVarP(&equipment, "equipment", "e", nil, "Available equipment (repeat or comma-separate)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "Session length in minutes")
	cmd.Flags().StringVarP(&focus, "focus", "f", "", "Focus area: full-body, upper-body, lower-body, core")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum catalog exercises offered to the generator (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan or error as JSON")
	cmd.Flags().SetNormalizeFunc(generateFlagAliases)

	return cmd
}

// generateFlagAliases accepts the request field names as flag spellings.
func generateFlagAliases(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch strings.ReplaceAll(name, "_", "-") {
	case "minutes", "duration-minutes":
		name = "duration"
	case "focus-area":
		name = "focus"
	case "candidate-limit":
		name = "limit"
	}
	return pflag.NormalizedName(name)
}

func missingGenerateInput(goal string, equipment []string, duration int, focus string) bool {
	return strings.TrimSpace(goal) == "" || len(equipment) == 0 || duration <= 0 || focus == ""
}

// catalogEquipment lists the catalog's equipment tags for the form. Errors
// fall back to free-text entry.
func catalogEquipment(ctx context.Context, app *App) []string {
	if app.Catalog == nil {
		return nil
	}
	stats, err := app.Catalog.Stats(ctx)
	if err != nil {
		app.logger().Debug("catalog equipment unavailable", "error", err)
		return nil
	}
	out := make([]string, 0, len(stats.ByEquipment))
	for _, ec := range stats.ByEquipment {
		out = append(out, ec.Equipment)
	}
	return out
}

type jsonError struct {
	Code        contract.GenerateErrorCode `json:"code"`
	Message     string                     `json:"message"`
	Retryable   bool                       `json:"retryable"`
	Diagnostics *domain.MatchDiagnostics   `json:"diagnostics,omitempty"`
}

func writeJSONError(w io.Writer, err error) error {
	var ge *contract.GenerationError
	if !errors.As(err, &ge) {
		ge = contract.Classify(err)
	}
	return writeIndentedJSON(w, map[string]jsonError{"error": {
		Code:        ge.Code,
		Message:     ge.Message,
		Retryable:   ge.Code.Retryable(),
		Diagnostics: ge.Diagnostics,
	}})
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
