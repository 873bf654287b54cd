package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/timeline"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"

	// frameColumns precede the p_<label> columns in frames.csv.
	frameColumns = 10
)

var ErrRunNotFound = errors.New("storage: run not found")

// Frame is the stored frame type.
type Frame = timeline.Frame[timeline.Snapshot]

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
	ID         string             `json:"id"`
	Circuit    string             `json:"circuit"`
	Source     string             `json:"source,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	QubitCount int                `json:"qubit_count"`
	Steps      int                `json:"steps"`
	Frames     int                `json:"frames"`
	FrameRate  int                `json:"frame_rate"`
	Easing     string             `json:"easing"`
	Duration   float64            `json:"duration"`
	Chain      string             `json:"chain"`
	Labels     []string           `json:"labels"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta and frames under a fresh run directory and returns
// the run ID. ID, Timestamp, Frames and Labels are filled in when unset.
func (s *Store) Save(meta RunMetadata, frames []Frame) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)
	if meta.Labels == nil {
		meta.Labels = labelsOf(frames)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, meta, frames); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, newest first.
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// writeRun writes both run files, closing each before returning.
func writeRun(runDir string, meta RunMetadata, frames []Frame) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return err
	}
	if err := writeFrames(csvFile, meta, frames); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeFrames(out io.Writer, meta RunMetadata, frames []Frame) error {
	w := csv.NewWriter(out)
	header := []string{"index", "time", "step", "description", "color", "hold", "x", "y", "z", "entanglement"}
	for _, l := range meta.Labels {
		header = append(header, "p_"+l)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	dt := 0.0
	if meta.FrameRate > 0 {
		dt = 1 / float64(meta.FrameRate)
	}
	for _, f := range frames {
		v := f.Payload.Vector
		ent := ""
		if f.Payload.Pair != nil {
			ent = formatFloat(f.Payload.Pair.Entanglement)
		}
		row := []string{
			strconv.Itoa(f.Index),
			formatFloat(float64(f.Index) * dt),
			strconv.Itoa(f.Step),
			f.Description,
			f.Color,
			strconv.FormatBool(f.Hold),
			formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z),
			ent,
		}
		for _, l := range meta.Labels {
			row = append(row, formatFloat(f.Payload.Distribution.Get(l)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadFrames reads back the frames of a run.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return []Frame{}, nil
	}

	header := records[0]
	if len(header) < frameColumns {
		return nil, fmt.Errorf("storage: %s: header has %d columns, want at least %d", framesFile, len(header), frameColumns)
	}
	var labels []string
	for _, h := range header[frameColumns:] {
		labels = append(labels, strings.TrimPrefix(h, "p_"))
	}

	frames := make([]Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		f, err := parseFrame(rec, labels)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(rec []string, labels []string) (Frame, error) {
	var f Frame
	var err error
	if f.Index, err = strconv.Atoi(rec[0]); err != nil {
		return f, err
	}
	if f.Step, err = strconv.Atoi(rec[2]); err != nil {
		return f, err
	}
	f.Description, f.Color = rec[3], rec[4]
	if f.Hold, err = strconv.ParseBool(rec[5]); err != nil {
		return f, err
	}

	var xyz [3]float64
	for i := range xyz {
		if xyz[i], err = strconv.ParseFloat(rec[6+i], 64); err != nil {
			return f, err
		}
	}
	f.Payload.Vector = bloch.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}

	if rec[9] != "" {
		e, err := strconv.ParseFloat(rec[9], 64)
		if err != nil {
			return f, err
		}
		f.Payload.Pair = &timeline.PairState{Entanglement: e}
	}

	f.Payload.Distribution = make(dist.Distribution, len(labels))
	for i, l := range labels {
		p, err := strconv.ParseFloat(rec[10+i], 64)
		if err != nil {
			return f, err
		}
		f.Payload.Distribution[l] = p
	}
	return f, nil
}

func labelsOf(frames []Frame) []string {
	ds := make([]dist.Distribution, len(frames))
	for i, f := range frames {
		ds[i] = f.Payload.Distribution
	}
	return dist.Union(ds...)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
