package pipeline

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/hubrank/pkg/cache"
	"github.com/matzehuels/hubrank/pkg/centrality"
	"github.com/matzehuels/hubrank/pkg/errors"
)

const testAirports = `Name,City,IATA
John F Kennedy Intl,New York,JFK
Los Angeles Intl,Los Angeles,LAX
Chicago O'Hare Intl,Chicago,ORD
Hartsfield-Jackson,Atlanta,ATL
`

const testRoutes = `Airline,Source airport,Destination airport
AA,JFK,LAX
AA,JFK,ORD
UA,LAX,ORD
DL,JFK,LAX
`

func writeDataset(t *testing.T, airports, routes string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	ap := filepath.Join(dir, "airports.csv")
	rp := filepath.Join(dir, "routes.csv")
	if err := os.WriteFile(ap, []byte(airports), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rp, []byte(routes), 0o644); err != nil {
		t.Fatal(err)
	}
	return ap, rp
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"directed", false},
		{"undirected", false},
		{"Directed", true}, // case-sensitive
		{"both", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidMode) {
			t.Errorf("ValidateMode(%q) code = %v, want %v", tt.mode, errors.GetCode(err), errors.ErrCodeInvalidMode)
		}
	}
}

func TestValidateDedupe(t *testing.T) {
	for _, p := range []string{"keep", "unique"} {
		if err := ValidateDedupe(p); err != nil {
			t.Errorf("ValidateDedupe(%q) = %v", p, err)
		}
	}
	if err := ValidateDedupe("drop"); !errors.Is(err, errors.ErrCodeInvalidPolicy) {
		t.Errorf("ValidateDedupe(drop) = %v, want INVALID_POLICY", err)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{AirportsPath: "a.csv", RoutesPath: "r.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Mode != DefaultMode || opts.Dedupe != DefaultDedupe || opts.Top != DefaultTop {
		t.Errorf("defaults = (%q, %q, %d)", opts.Mode, opts.Dedupe, opts.Top)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Top = 3
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Top != 3 {
		t.Errorf("second call changed Top to %d", opts.Top)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"MissingAirports", Options{RoutesPath: "r.csv"}, errors.ErrCodeInvalidPath},
		{"MissingRoutes", Options{AirportsPath: "a.csv"}, errors.ErrCodeInvalidPath},
		{"BadMode", Options{AirportsPath: "a", RoutesPath: "r", Mode: "both"}, errors.ErrCodeInvalidMode},
		{"BadDedupe", Options{AirportsPath: "a", RoutesPath: "r", Dedupe: "x"}, errors.ErrCodeInvalidPolicy},
		{"TopTooLarge", Options{AirportsPath: "a", RoutesPath: "r", Top: errors.MaxTopK + 1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)

	tests := []struct {
		name   string
		mode   string
		dedupe string
		want   []centrality.Entry
	}{
		{
			name:   "DirectedKeep",
			mode:   ModeDirected,
			dedupe: DedupeKeep,
			want: []centrality.Entry{
				{ID: 0, Label: "John F Kennedy Intl", Degree: 3},
				{ID: 1, Label: "Los Angeles Intl", Degree: 1},
				{ID: 2, Label: "Chicago O'Hare Intl", Degree: 0},
			},
		},
		{
			name:   "DirectedUnique",
			mode:   ModeDirected,
			dedupe: DedupeUnique,
			want: []centrality.Entry{
				{ID: 0, Label: "John F Kennedy Intl", Degree: 2},
				{ID: 1, Label: "Los Angeles Intl", Degree: 1},
				{ID: 2, Label: "Chicago O'Hare Intl", Degree: 0},
			},
		},
		{
			name:   "UndirectedKeep",
			mode:   ModeUndirected,
			dedupe: DedupeKeep,
			want: []centrality.Entry{
				{ID: 0, Label: "John F Kennedy Intl", Degree: 3},
				{ID: 1, Label: "Los Angeles Intl", Degree: 3},
				{ID: 2, Label: "Chicago O'Hare Intl", Degree: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, nil, nil)
			res, err := runner.Execute(context.Background(), Options{
				AirportsPath: ap,
				RoutesPath:   rp,
				Mode:         tt.mode,
				Dedupe:       tt.dedupe,
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if !reflect.DeepEqual(res.Ranking, tt.want) {
				t.Errorf("Ranking = %v, want %v", res.Ranking, tt.want)
			}
			if res.CacheHit {
				t.Error("NullCache run should not be a cache hit")
			}
			if res.Stats.Nodes != 3 || res.Stats.Airports != 4 || res.Stats.Routes != 4 {
				t.Errorf("Stats = %+v", res.Stats)
			}
		})
	}
}

func TestExecuteStats(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		AirportsPath: ap, RoutesPath: rp, Mode: ModeUndirected, Dedupe: DedupeUnique,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Duplicates != 1 || res.Stats.Edges != 3 || res.Stats.Arcs != 6 {
		t.Errorf("Stats = %+v, want 1 duplicate, 3 edges, 6 arcs", res.Stats)
	}
	if res.Registry.Len() != 3 || res.Graph.NumNodes() != 3 {
		t.Errorf("registry %d / graph %d nodes, want 3", res.Registry.Len(), res.Graph.NumNodes())
	}
}

func TestExecuteTop(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(context.Background(), Options{AirportsPath: ap, RoutesPath: rp, Top: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Ranking) != 1 || res.Ranking[0].Label != "John F Kennedy Intl" {
		t.Errorf("Top 1 = %v", res.Ranking)
	}

	res, err = runner.Execute(context.Background(), Options{AirportsPath: ap, RoutesPath: rp, Top: -1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Ranking) != 3 {
		t.Errorf("Top -1 returned %d entries, want all 3", len(res.Ranking))
	}
}

func TestExecuteUnlabeled(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes+"BA,LHR,JFK\n")
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{AirportsPath: ap, RoutesPath: rp})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.Unlabeled != 1 {
		t.Errorf("Unlabeled = %d, want 1", res.Stats.Unlabeled)
	}
	for _, e := range res.Ranking {
		if e.ID == 3 {
			t.Errorf("unlabeled LHR should not be ranked: %v", res.Ranking)
		}
	}
	// LHR still contributes to the graph
	if res.Scores[3] != 1 {
		t.Errorf("Scores[LHR] = %d, want 1", res.Scores[3])
	}
}

func TestExecuteEmptyRoutes(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, "Source airport,Destination airport\n")
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{AirportsPath: ap, RoutesPath: rp})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Ranking) != 0 || res.Graph.NumNodes() != 0 {
		t.Errorf("empty routes gave ranking %v, %d nodes", res.Ranking, res.Graph.NumNodes())
	}
}

func TestExecuteCache(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()
	opts := Options{AirportsPath: ap, RoutesPath: rp}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Fatalf("CacheHit = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if !reflect.DeepEqual(first.Ranking, second.Ranking) {
		t.Errorf("cached ranking %v != fresh ranking %v", second.Ranking, first.Ranking)
	}
	if second.Graph != nil {
		t.Error("cache hit should not carry a graph")
	}

	// Options that change the output miss the cache
	other, err := runner.Execute(ctx, Options{AirportsPath: ap, RoutesPath: rp, Mode: ModeUndirected})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("different mode should miss the cache")
	}

	// Refresh skips the read
	refreshed, err := runner.Execute(ctx, Options{AirportsPath: ap, RoutesPath: rp, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}

	// Changing the file content invalidates the entry
	if err := os.WriteFile(rp, []byte(testRoutes+"AA,ORD,JFK\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	changed, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if changed.CacheHit {
		t.Error("changed input should miss the cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	_, badRoutes := writeDataset(t, testAirports, "Source airport,Destination airport\nJFK,LAX\nORD\n")
	_, noColumn := writeDataset(t, testAirports, "From,To\nJFK,LAX\n")

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"MissingFile", Options{AirportsPath: ap, RoutesPath: filepath.Join(t.TempDir(), "nope.csv")}, errors.ErrCodeFileNotFound},
		{"BadRecord", Options{AirportsPath: ap, RoutesPath: badRoutes}, errors.ErrCodeInvalidRecord},
		{"MissingColumn", Options{AirportsPath: ap, RoutesPath: noColumn}, errors.ErrCodeMissingColumn},
		{"BadMode", Options{AirportsPath: ap, RoutesPath: rp, Mode: "sideways"}, errors.ErrCodeInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecuteSkipInvalid(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes+"XX\n")
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		AirportsPath: ap, RoutesPath: rp, SkipInvalid: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.SkippedRoutes != 1 {
		t.Errorf("SkippedRoutes = %d, want 1", res.Stats.SkippedRoutes)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{AirportsPath: ap, RoutesPath: rp})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestBuildAndRank(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	res, err := runner.Build(ctx, Options{AirportsPath: ap, RoutesPath: rp})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Graph == nil || res.Ranking != nil || res.Scores != nil {
		t.Fatalf("Build should stop before ranking: %+v", res)
	}
	if len(res.Labels) != 3 {
		t.Errorf("Labels = %v", res.Labels)
	}

	if err := runner.Rank(ctx, res, Options{Top: 2}); err != nil {
		t.Fatal(err)
	}
	if len(res.Ranking) != 2 || res.Ranking[0].ID != 0 {
		t.Errorf("Ranking = %v", res.Ranking)
	}

	if err := runner.Rank(ctx, &Result{}, Options{}); err == nil {
		t.Error("Rank without a graph should fail")
	}
}

func TestResultModeAndNeighbors(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		mode string
		id   int
		want []string
	}{
		{ModeDirected, 0, []string{"LAX", "ORD"}}, // JFK->LAX twice collapses
		{ModeDirected, 2, []string{}},
		{ModeUndirected, 1, []string{"JFK", "ORD"}},
		{ModeUndirected, 2, []string{"JFK", "LAX"}},
	}
	for _, tt := range tests {
		res, err := runner.Build(ctx, Options{AirportsPath: ap, RoutesPath: rp, Mode: tt.mode})
		if err != nil {
			t.Fatal(err)
		}
		if res.Mode() != tt.mode {
			t.Errorf("Mode() = %q, want %q", res.Mode(), tt.mode)
		}
		if got := res.Neighbors(tt.id); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s Neighbors(%d) = %v, want %v", tt.mode, tt.id, got, tt.want)
		}
	}

	var empty Result
	if empty.Mode() != "" || empty.Neighbors(0) != nil {
		t.Error("a result without a graph should report no mode and no neighbors")
	}
}

func TestExportDOT(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Build(context.Background(), Options{AirportsPath: ap, RoutesPath: rp})
	if err != nil {
		t.Fatal(err)
	}

	out, hit, err := runner.Export(context.Background(), res, ExportOptions{Format: "dot", Top: 1})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if hit {
		t.Error("DOT export is never cached")
	}
	dot := string(out)
	if !strings.HasPrefix(dot, "digraph G {") || !strings.Contains(dot, "Top 1 airports by degree (directed)") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}
	if strings.Contains(dot, "n1 [") {
		t.Errorf("Top 1 without neighbors should draw only JFK:\n%s", dot)
	}

	if _, _, err := runner.Export(context.Background(), res, ExportOptions{Format: "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Export(gif) = %v, want INVALID_FORMAT", err)
	}
}

func TestExportSVGCached(t *testing.T) {
	ap, rp := writeDataset(t, testAirports, testRoutes)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()
	res, err := runner.Build(ctx, Options{AirportsPath: ap, RoutesPath: rp})
	if err != nil {
		t.Fatal(err)
	}

	svg, hit, err := runner.Export(ctx, res, ExportOptions{Format: "svg"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if hit || !strings.Contains(string(svg), "<svg") {
		t.Fatalf("first export hit=%v, output %.100s", hit, svg)
	}
	again, hit, err := runner.Export(ctx, res, ExportOptions{Format: "svg"})
	if err != nil || !hit || string(again) != string(svg) {
		t.Errorf("second export hit=%v err=%v", hit, err)
	}
}
