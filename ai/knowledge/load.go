package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Base names of the record files inside a data directory. Each may be
// stored as .json, .yaml or .yml; the first existing extension wins.
const (
	EventsFile        = "events"
	BenchmarksFile    = "benchmarks"
	KPILibraryFile    = "kpi_library"
	OrganizationsFile = "organizations"
)

var extensions = []string{".json", ".yaml", ".yml"}

// ParseError reports a record file that exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("knowledge: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type eventsDoc struct {
	Celebration Celebration `json:"celebration" yaml:"celebration"`
	Events      []Event     `json:"events" yaml:"events"`
}

type benchmarksDoc struct {
	Benchmarks []BenchmarkCase `json:"benchmarks" yaml:"benchmarks"`
}

type kpiDoc struct {
	Categories []KPICategory `json:"categories" yaml:"categories"`
}

type organizationsDoc struct {
	Organizations []Organization `json:"organizations" yaml:"organizations"`
}

// Load reads the four record files from dir concurrently.
// A missing file leaves that record set empty; a malformed one fails the
// whole load with a *ParseError.
func Load(ctx context.Context, dir string) (*Store, error) {
	var (
		events eventsDoc
		bench  benchmarksDoc
		kpis   kpiDoc
		orgs   organizationsDoc
	)

	g, ctx := errgroup.WithContext(ctx)
	for name, dst := range map[string]any{
		EventsFile:        &events,
		BenchmarksFile:    &bench,
		KPILibraryFile:    &kpis,
		OrganizationsFile: &orgs,
	} {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return loadDoc(dir, name, dst)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store := NewStore(Dataset{
		Celebration:   events.Celebration,
		Events:        events.Events,
		Benchmarks:    bench.Benchmarks,
		KPICategories: kpis.Categories,
		Organizations: orgs.Organizations,
	})
	slog.Info("knowledge: store loaded",
		"dir", dir,
		"events", len(events.Events),
		"benchmarks", len(bench.Benchmarks),
		"kpi_categories", len(kpis.Categories),
		"organizations", len(orgs.Organizations),
	)
	return store, nil
}

func loadDoc(dir, name string, dst any) error {
	path, data, err := readFirst(dir, name)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("knowledge: record file not found, starting empty", "dir", dir, "name", name)
		return nil
	}
	if err != nil {
		return err
	}
	if err := decode(path, data, dst); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

func readFirst(dir, name string) (string, []byte, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return path, nil, fmt.Errorf("knowledge: read %s: %w", path, err)
		}
		return path, data, nil
	}
	return "", nil, fs.ErrNotExist
}

func decode(path string, data []byte, dst any) error {
	if filepath.Ext(path) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		return dec.Decode(dst)
	}
	return yaml.Unmarshal(data, dst)
}
