package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/liftplan/internal/domain"
)

// ErrNoExercisesMatched is matched by *NoExercisesMatchedError.
var ErrNoExercisesMatched = errors.New("no generated exercises matched the catalog")

// NoExercisesMatchedError reports a generation where no suggested name
// resolved to a candidate.
type NoExercisesMatchedError struct {
	Diagnostics domain.MatchDiagnostics
}

func (e *NoExercisesMatchedError) Error() string {
	return fmt.Sprintf("none of %d suggested exercises matched %d candidates",
		len(e.Diagnostics.SuggestedNames), e.Diagnostics.CandidatesCount)
}

func (e *NoExercisesMatchedError) Unwrap() error { return ErrNoExercisesMatched }

// MatchKind records which phase resolved a name.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchContains
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchContains:
		return "contains"
	default:
		return "none"
	}
}

// MatchResult is the outcome of matching one payload against a candidate list.
type MatchResult struct {
	Resolved  []domain.ResolvedExerciseEntry
	Kinds     []MatchKind // parallel to Resolved
	Suggested []string
	Unmatched []string
}

// Matcher resolves generated names against a fixed candidate list.
type Matcher struct {
	candidates []*domain.ExerciseRecord
	lowered    []string
}

// NewMatcher prepares a matcher over candidates. The list order is the
// tie-break order for both phases.
func NewMatcher(candidates []*domain.ExerciseRecord) *Matcher {
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = normalizeName(c.Name)
	}
	return &Matcher{candidates: candidates, lowered: lowered}
}

// Find resolves one generated name. An exact case-insensitive match wins over
// containment; within a phase the first candidate in order wins.
func (m *Matcher) Find(name string) (*domain.ExerciseRecord, MatchKind) {
	needle := normalizeName(name)
	if needle == "" {
		return nil, MatchNone
	}
	for i, cand := range m.lowered {
		if cand == needle {
			return m.candidates[i], MatchExact
		}
	}
	for i, cand := range m.lowered {
		if cand == "" {
			continue
		}
		if strings.Contains(cand, needle) || strings.Contains(needle, cand) {
			return m.candidates[i], MatchContains
		}
	}
	return nil, MatchNone
}

// Match resolves every entry in order. Unmatched entries are dropped from the
// plan and listed in the result. When nothing resolves, the returned error is
// a *NoExercisesMatchedError carrying diagnostics.
func (m *Matcher) Match(entries []domain.GeneratedExerciseEntry) (MatchResult, error) {
	res := MatchResult{
		Resolved:  make([]domain.ResolvedExerciseEntry, 0, len(entries)),
		Suggested: make([]string, 0, len(entries)),
		Unmatched: []string{},
	}
	for _, e := range entries {
		res.Suggested = append(res.Suggested, e.Name)
		rec, kind := m.Find(e.Name)
		if rec == nil {
			res.Unmatched = append(res.Unmatched, e.Name)
			continue
		}
		res.Resolved = append(res.Resolved, resolve(rec, e))
		res.Kinds = append(res.Kinds, kind)
	}

	if len(res.Resolved) == 0 {
		return res, &NoExercisesMatchedError{Diagnostics: domain.MatchDiagnostics{
			SuggestedNames:  res.Suggested,
			UnmatchedNames:  res.Unmatched,
			CandidatesCount: len(m.candidates),
		}}
	}
	return res, nil
}

// MatchExercises is shorthand for NewMatcher(candidates).Match(entries).
func MatchExercises(entries []domain.GeneratedExerciseEntry, candidates []*domain.ExerciseRecord) (MatchResult, error) {
	return NewMatcher(candidates).Match(entries)
}

func resolve(rec *domain.ExerciseRecord, e domain.GeneratedExerciseEntry) domain.ResolvedExerciseEntry {
	sets := e.Sets
	if sets <= 0 {
		sets = domain.DefaultSets
	}
	reps := strings.TrimSpace(e.Reps)
	if reps == "" {
		reps = domain.DefaultReps
	}
	rest := e.RestSeconds
	if rest <= 0 {
		rest = domain.DefaultRestSeconds
	}
	return domain.ResolvedExerciseEntry{
		ExerciseID:  rec.ID,
		Name:        rec.Name,
		Sets:        sets,
		Reps:        reps,
		RestSeconds: rest,
		Notes:       e.Notes,
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
