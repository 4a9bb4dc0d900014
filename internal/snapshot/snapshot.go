// Package snapshot reads and writes whole-store seed files. The format is
// picked from the file name: .yaml/.yml or .json, optionally followed by .xz.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/phillip-england/recruitdesk/internal/records"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var ErrUnknownFormat = errors.New("unknown snapshot format: use .yaml, .yml or .json, optionally with .xz")

type Snapshot struct {
	Candidates []records.Candidate `json:"candidates" yaml:"candidates"`
	Clients    []records.Client    `json:"clients" yaml:"clients"`
	Jobs       []records.Job       `json:"jobs" yaml:"jobs"`
	CallLogs   []records.CallLog   `json:"callLogs" yaml:"call_logs"`
}

func Capture(st *store.Store) Snapshot {
	return Snapshot{
		Candidates: st.Candidates(),
		Clients:    st.Clients(),
		Jobs:       st.Jobs(),
		CallLogs:   st.CallLogs(),
	}
}

func Defaults() Snapshot {
	return Snapshot{
		Candidates: store.DefaultCandidates(),
		Clients:    store.DefaultClients(),
		Jobs:       store.DefaultJobs(),
		CallLogs:   store.DefaultCallLogs(),
	}
}

// Apply replaces every collection of st with the snapshot contents.
func (s Snapshot) Apply(st *store.Store) {
	st.SetCandidates(s.Candidates)
	st.SetClients(s.Clients)
	st.SetJobs(s.Jobs)
	st.SetCallLogs(s.CallLogs)
}

type format struct {
	json       bool
	compressed bool
}

func formatFor(name string) (format, error) {
	lower := strings.ToLower(filepath.Base(name))
	var f format
	if strings.HasSuffix(lower, ".xz") {
		f.compressed = true
		lower = strings.TrimSuffix(lower, ".xz")
	}
	switch filepath.Ext(lower) {
	case ".yaml", ".yml":
	case ".json":
		f.json = true
	default:
		return format{}, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return f, nil
}

func Load(path string) (Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()
	return Decode(file, path)
}

// Decode reads a snapshot encoded in the format implied by name.
func Decode(r io.Reader, name string) (Snapshot, error) {
	f, err := formatFor(name)
	if err != nil {
		return Snapshot{}, err
	}
	if f.compressed {
		zr, err := xz.NewReader(r)
		if err != nil {
			return Snapshot{}, fmt.Errorf("decompress snapshot: %w", err)
		}
		r = zr
	}

	var snap Snapshot
	if f.json {
		err = json.NewDecoder(r).Decode(&snap)
	} else {
		err = yaml.NewDecoder(r).Decode(&snap)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func Write(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := Encode(file, path, snap); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func Encode(w io.Writer, name string, snap Snapshot) error {
	f, err := formatFor(name)
	if err != nil {
		return err
	}

	var zw *xz.Writer
	if f.compressed {
		zw, err = xz.NewWriter(w)
		if err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
		w = zw
	}

	if f.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(snap)
	} else {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(snap)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress snapshot: %w", err)
		}
	}
	return nil
}
