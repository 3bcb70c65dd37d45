package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/heatsim/internal/analysis"
	"github.com/san-kum/heatsim/internal/heat"
)

const (
	metadataFile = "metadata.json"
	fieldFile    = "field.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string           `json:"id"`
	Scheme    string           `json:"scheme"`
	Profile   string           `json:"profile"`
	Timestamp time.Time        `json:"timestamp"`
	Grid      heat.Grid        `json:"grid"`
	R         float64          `json:"r"`
	Boundary  heat.Boundary    `json:"boundary"`
	Elapsed   time.Duration    `json:"elapsed"`
	Summary   analysis.Summary `json:"summary"`
	MaxErr    float64          `json:"max_err,omitempty"`
}

// Run is a finished solve ready to be persisted.
type Run struct {
	Scheme   string
	Profile  string
	Grid     heat.Grid
	Boundary heat.Boundary
	Elapsed  time.Duration
	Field    *heat.Field
	MaxErr   float64
}

func (s *Store) Save(run Run) (string, error) {
	if run.Field == nil {
		return "", fmt.Errorf("save %s: no field", run.Scheme)
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.newRunDir(run.Scheme, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scheme:    run.Scheme,
		Profile:   run.Profile,
		Timestamp: now,
		Grid:      run.Grid,
		R:         run.Grid.R(),
		Boundary:  run.Boundary,
		Elapsed:   run.Elapsed,
		Summary:   analysis.Summarize(run.Field, run.Grid.R(), analysis.DefaultBound),
		MaxErr:    run.MaxErr,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFieldCSV(filepath.Join(runDir, fieldFile), run.Grid, run.Field); err != nil {
		return "", err
	}
	return runID, nil
}

// newRunDir creates a fresh run directory, suffixing the ID when two runs
// land on the same clock reading.
func (s *Store) newRunDir(scheme string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", scheme, now.UnixNano())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFieldCSV(path string, g heat.Grid, field *heat.Field) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for i := 0; i < field.Nx(); i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for n := 0; n < field.Nt(); n++ {
		row := []string{strconv.FormatFloat(g.TimeAt(n), 'g', -1, 64)}
		for _, v := range field.Layer(n) {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns stored runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadField reads the stored field and the time of each layer.
func (s *Store) LoadField(runID string) (*heat.Field, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("run %s: empty field", runID)
	}

	times := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)
	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
			}
			vals[j] = v
		}
		times = append(times, vals[0])
		rows = append(rows, vals[1:])
	}

	f, err := heat.NewField(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return f, times, nil
}
