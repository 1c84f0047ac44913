package tables

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest records the size and checksum of each generated table file, so
// a regeneration can be verified byte-identical (spec.md §8.10) without
// re-running the tools that consume the tables.
type Manifest struct {
	Tables map[string]TableInfo `yaml:"tables"`
}

type TableInfo struct {
	Entries  int    `yaml:"entries"`
	Bytes    int    `yaml:"bytes"`
	SHA256   string `yaml:"sha256"`
	Filename string `yaml:"filename"`
}

const (
	flushTableFile = "flush_table.bin"
	rankTableFile  = "rank_table.bin"
	manifestFile   = "manifest.yaml"
)

// Generate builds the flush and rank tables and writes them, plus a
// manifest, into dir. It is the implementation behind cmd/gentables.
func Generate(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tables: create dir: %w", err)
	}
	flush := BuildFlushTable()
	hash := BuildHashTable()
	rank := BuildRankTable(hash)

	m := Manifest{Tables: map[string]TableInfo{}}
	if err := writeTable(dir, flushTableFile, flush[:], &m); err != nil {
		return err
	}
	if err := writeTable(dir, rankTableFile, rank[:], &m); err != nil {
		return err
	}
	out, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("tables: marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), out, 0o644); err != nil {
		return fmt.Errorf("tables: write manifest: %w", err)
	}
	return nil
}

func writeTable(dir, name string, entries []int32, m *Manifest) error {
	buf := make([]byte, 4*len(entries))
	for i, v := range entries {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	sum := sha256.Sum256(buf)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("tables: write %s: %w", name, err)
	}
	m.Tables[name] = TableInfo{
		Entries:  len(entries),
		Bytes:    len(buf),
		SHA256:   fmt.Sprintf("%x", sum),
		Filename: name,
	}
	return nil
}

// Tables holds the loaded (or freshly built) evaluator tables.
type Tables struct {
	Flush [FlushTableSize]int32
	Rank  [RankTableSize]int32
	Hash  HashTable
}

// BuildInMemory constructs all tables directly, without touching disk.
// Used when no tableDir is configured.
func BuildInMemory() *Tables {
	hash := BuildHashTable()
	return &Tables{
		Flush: BuildFlushTable(),
		Rank:  BuildRankTable(hash),
		Hash:  hash,
	}
}

// Load reads previously generated tables from dir (see Generate).
func Load(dir string) (*Tables, error) {
	flush, err := readTable(filepath.Join(dir, flushTableFile), FlushTableSize)
	if err != nil {
		return nil, err
	}
	rank, err := readTable(filepath.Join(dir, rankTableFile), RankTableSize)
	if err != nil {
		return nil, err
	}
	t := &Tables{Hash: BuildHashTable()}
	copy(t.Flush[:], flush)
	copy(t.Rank[:], rank)
	return t, nil
}

func readTable(path string, n int) ([]int32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tables: read %s: %w", path, err)
	}
	if len(raw) != n*4 {
		return nil, fmt.Errorf("tables: %s has %d bytes, want %d", path, len(raw), n*4)
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}
