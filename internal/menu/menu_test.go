package menu_test

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"world-report/internal/menu"
	"world-report/internal/query"
	"world-report/internal/render"
	"world-report/internal/usecase/report"
)

type recordingRunner struct {
	requests []query.Request
	table    render.Table
}

func (r *recordingRunner) Run(_ context.Context, req query.Request) report.Report {
	r.requests = append(r.requests, req)
	return report.Report{Request: req, Table: r.table, NotFound: report.NotFoundMessage(req.Family)}
}

type recordingSaver struct {
	names []string
}

func (s *recordingSaver) Save(name string, t render.Table) string {
	if t.Empty() {
		return ""
	}
	s.names = append(s.names, name)
	return "/reports/" + name
}

func run(t *testing.T, input string, runner menu.Runner, opts ...menu.Option) string {
	t.Helper()
	var out bytes.Buffer
	opts = append([]menu.Option{menu.WithColor(false)}, opts...)
	m := menu.New(strings.NewReader(input), &out, runner, opts...)
	require.NoError(t, m.Start(context.Background()))
	return out.String()
}

func TestMenu_EveryEntryBuildsItsRequest(t *testing.T) {
	inputs := map[query.Scope]string{
		query.ScopeContinent: "Asia",
		query.ScopeRegion:    "Caribbean",
		query.ScopeCountry:   "France",
		query.ScopeDistrict:  "California",
		query.ScopeCity:      "Mumbai",
	}

	for _, e := range menu.Entries {
		t.Run(e.Label, func(t *testing.T) {
			var b strings.Builder
			b.WriteString(strconv.Itoa(e.Choice) + "\n")
			want := query.Request{Family: e.Family, Scope: e.Scope, Cardinality: query.All()}
			if e.Scope.Filtered() && e.Family != query.FamilyPopulationBreakdown {
				b.WriteString(inputs[e.Scope] + "\n")
				want.Filter = inputs[e.Scope]
			}
			if e.Top {
				b.WriteString("4\n")
				want.Cardinality = query.Top(4)
			}
			b.WriteString("0\n")

			runner := &recordingRunner{}
			run(t, b.String(), runner)

			require.Len(t, runner.requests, 1)
			assert.Equal(t, want, runner.requests[0])
		})
	}
}

func TestMenu_InvalidChoiceKeepsLooping(t *testing.T) {
	runner := &recordingRunner{}

	out := run(t, "abc\n99\n-1\n26\n0\n", runner)

	assert.Equal(t, 3, strings.Count(out, "Invalid choice. Try again."))
	require.Len(t, runner.requests, 1)
	assert.Equal(t, query.FamilyPopulation, runner.requests[0].Family)
	assert.Contains(t, out, "Exiting menu...")
}

func TestMenu_InvalidNumber(t *testing.T) {
	runner := &recordingRunner{}

	out := run(t, "4\nten\n0\n", runner)

	assert.Contains(t, out, "Invalid number. Try again.")
	assert.Empty(t, runner.requests)
}

func TestMenu_NegativeNIsPassedThrough(t *testing.T) {
	runner := &recordingRunner{}

	run(t, "12\n-5\n0\n", runner)

	require.Len(t, runner.requests, 1)
	assert.Equal(t, query.Top(-5), runner.requests[0].Cardinality)
}

func TestMenu_EOFExitsCleanly(t *testing.T) {
	for _, input := range []string{"", "2\n", "5\nAfrica\n"} {
		runner := &recordingRunner{}
		run(t, input, runner)
		assert.Empty(t, runner.requests)
	}
}

func TestMenu_PrintsTableAndSaves(t *testing.T) {
	runner := &recordingRunner{table: render.Table{
		Headers: []string{"Name", "Population"},
		Numeric: []bool{false, true},
		Rows:    [][]string{{"World", "6078749450"}},
	}}
	saver := &recordingSaver{}

	out := run(t, "26\n0\n", runner, menu.WithSaver(saver))

	assert.Contains(t, out, "| World | 6078749450 |")
	assert.Equal(t, []string{"population-world.md"}, saver.names)
}

func TestMenu_EmptyReportPrintsNotFound(t *testing.T) {
	runner := &recordingRunner{}
	saver := &recordingSaver{}

	out := run(t, "2\nAtlantis\n0\n", runner, menu.WithSaver(saver))

	assert.Contains(t, out, "No countries found\n")
	assert.Empty(t, saver.names)
}

func TestMenu_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := menu.New(strings.NewReader("1\n"), &bytes.Buffer{}, &recordingRunner{}, menu.WithColor(false))
	assert.ErrorIs(t, m.Start(ctx), context.Canceled)
}

func TestLookup(t *testing.T) {
	e, ok := menu.Lookup(15)
	require.True(t, ok)
	assert.Equal(t, query.FamilyCity, e.Family)
	assert.Equal(t, query.ScopeCountry, e.Scope)
	assert.True(t, e.Top)

	_, ok = menu.Lookup(33)
	assert.False(t, ok)

	for i, e := range menu.Entries {
		assert.Equal(t, i+1, e.Choice)
	}
}
