// Package dataset reads the airport and route relations from delimited text.
//
// Both relations are CSV with a header row. Columns are located by header
// name, so extra or reordered columns are fine. The defaults match the
// OpenFlights exports:
//
//	airports: IATA (key), Name (display name)
//	routes:   Source airport, Destination airport
//
// OpenFlights writes \N for null values. An airport whose key is empty or
// \N is skipped, since nothing can reference it. A route with an empty or
// \N endpoint is an invalid record.
//
// Invalid records are reported as [*RecordError] carrying the 1-based line
// number. With [Options.SkipInvalid] set they are counted and skipped
// instead. A missing header column is never skippable.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/hubrank/pkg/registry"
)

// Null is the OpenFlights marker for a missing value.
const Null = `\N`

var (
	// ErrMissingColumn is returned when a configured column is absent from
	// the header row.
	ErrMissingColumn = errors.New("missing column")

	// ErrShortRecord is returned when a record has fewer fields than the
	// highest configured column index.
	ErrShortRecord = errors.New("record has too few fields")

	// ErrEmptyEndpoint is returned for a route with an empty or null endpoint.
	ErrEmptyEndpoint = errors.New("route endpoint is empty")
)

// RecordError reports a malformed record and the line it starts on.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// AirportColumns names the airport relation's columns.
type AirportColumns struct {
	Key  string `toml:"key"`
	Name string `toml:"name"`
}

// RouteColumns names the route relation's columns.
type RouteColumns struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
}

// Columns holds the header names of both relations.
type Columns struct {
	Airports AirportColumns `toml:"airports"`
	Routes   RouteColumns   `toml:"routes"`
}

// DefaultColumns returns the OpenFlights header names.
func DefaultColumns() Columns {
	return Columns{
		Airports: AirportColumns{Key: "IATA", Name: "Name"},
		Routes:   RouteColumns{Source: "Source airport", Destination: "Destination airport"},
	}
}

// withDefaults fills empty names from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.Airports.Key == "" {
		c.Airports.Key = d.Airports.Key
	}
	if c.Airports.Name == "" {
		c.Airports.Name = d.Airports.Name
	}
	if c.Routes.Source == "" {
		c.Routes.Source = d.Routes.Source
	}
	if c.Routes.Destination == "" {
		c.Routes.Destination = d.Routes.Destination
	}
	return c
}

// Options configures a read.
type Options struct {
	Columns     Columns
	SkipInvalid bool
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// Airports is the loaded airport relation.
type Airports struct {
	// Names maps airport key to display name. A later record with the same
	// key overwrites an earlier one.
	Names map[string]string
	// Records counts data rows read, excluding the header.
	Records int
	// Unkeyed counts rows skipped for an empty or null key.
	Unkeyed int
	// Skipped counts invalid rows dropped under SkipInvalid.
	Skipped int
}

// Route is one (source, destination) record.
type Route struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Routes is the loaded route relation in file order.
type Routes struct {
	Routes  []Route
	Records int
	Skipped int
}

// ReadAirports reads the airport relation from r.
func ReadAirports(r io.Reader, opts Options) (*Airports, error) {
	cols := opts.Columns.withDefaults()
	out := &Airports{Names: make(map[string]string)}

	err := scan(r, opts, []string{cols.Airports.Key, cols.Airports.Name}, func(line int, f []string) error {
		out.Records++
		key := clean(f[0])
		if key == "" {
			out.Unkeyed++
			return nil
		}
		out.Names[key] = clean(f[1])
		return nil
	}, &out.Skipped)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadRoutes reads the route relation from r.
func ReadRoutes(r io.Reader, opts Options) (*Routes, error) {
	cols := opts.Columns.withDefaults()
	out := &Routes{}

	err := scan(r, opts, []string{cols.Routes.Source, cols.Routes.Destination}, func(line int, f []string) error {
		out.Records++
		src, dst := clean(f[0]), clean(f[1])
		if src == "" || dst == "" {
			return &RecordError{Line: line, Err: ErrEmptyEndpoint}
		}
		out.Routes = append(out.Routes, Route{Source: src, Destination: dst})
		return nil
	}, &out.Skipped)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scan reads the header, resolves want to column indexes, and calls fn with
// the selected fields of every record. Record-level failures either abort
// the scan or, under SkipInvalid, bump *skipped.
func scan(r io.Reader, opts Options, want []string, fn func(line int, fields []string) error, skipped *int) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return recordError(err)
	}

	index, err := columnIndex(header, want)
	if err != nil {
		return &RecordError{Line: 1, Err: err}
	}

	maxIdx := 0
	for _, i := range index {
		maxIdx = max(maxIdx, i)
	}

	fields := make([]string, len(index))
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if opts.SkipInvalid && errors.As(err, &pe) {
				*skipped++
				continue
			}
			return recordError(err)
		}

		line, _ := cr.FieldPos(0)
		if len(record) <= maxIdx {
			if opts.SkipInvalid {
				*skipped++
				continue
			}
			return &RecordError{
				Line: line,
				Err:  fmt.Errorf("%w: got %d, need %d", ErrShortRecord, len(record), maxIdx+1),
			}
		}

		for i, idx := range index {
			fields[i] = record[idx]
		}
		if err := fn(line, fields); err != nil {
			var re *RecordError
			if opts.SkipInvalid && errors.As(err, &re) {
				*skipped++
				continue
			}
			return err
		}
	}
}

func columnIndex(header, want []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, ok := pos[h]; !ok {
			pos[h] = i
		}
	}

	index := make([]int, len(want))
	for i, name := range want {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		index[i] = p
	}
	return index, nil
}

// recordError lifts a csv.ParseError into a RecordError.
func recordError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &RecordError{Line: pe.StartLine, Err: pe.Err}
	}
	return err
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == Null {
		return ""
	}
	return s
}

// Pairs returns the routes as registry key pairs in file order.
func (r *Routes) Pairs() []registry.Pair {
	pairs := make([]registry.Pair, len(r.Routes))
	for i, rt := range r.Routes {
		pairs[i] = registry.Pair{From: rt.Source, To: rt.Destination}
	}
	return pairs
}
