package jpltables

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"
)

// BlockConfig controls how raw data files are split into records.
type BlockConfig struct {
	// Sentinel is the second field of the two-field line that opens every
	// record. It equals the release's NCOEFF.
	Sentinel string
}

// DefaultBlockConfig matches the DE4xx ASCII releases.
var DefaultBlockConfig = BlockConfig{Sentinel: "1018"}

// compressedSuffix marks data files that are streamed through zstd.
const compressedSuffix = ".zst"

// ReadBlocks reads the data files in the given order, as if they were one
// concatenated file, and returns their records. Records that appear in more
// than one file are returned as many times as they appear.
func ReadBlocks(paths []string, config ...BlockConfig) ([]DataBlock, error) {
	cfg := blockConfig(config)
	s := &blockSplitter{sentinel: cfg.Sentinel}

	for _, path := range paths {
		if err := readBlockFile(path, s); err != nil {
			return nil, err
		}
	}

	return s.finish()
}

// ParseBlocks splits a single data stream into records.
func ParseBlocks(r io.Reader, config ...BlockConfig) ([]DataBlock, error) {
	cfg := blockConfig(config)
	s := &blockSplitter{sentinel: cfg.Sentinel}
	if err := s.feed(r); err != nil {
		return nil, err
	}
	return s.finish()
}

func blockConfig(config []BlockConfig) BlockConfig {
	cfg := DefaultBlockConfig
	if len(config) > 0 && config[0].Sentinel != "" {
		cfg = config[0]
	}
	return cfg
}

// readBlockFile feeds one data file into s, decompressing it when needed.
func readBlockFile(path string, s *blockSplitter) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, compressedSuffix) {
		zr := zstd.NewReader(f)
		defer zr.Close()
		r = zr
	}

	if err := s.feed(r); err != nil {
		return fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	return nil
}

// blockSplitter accumulates the tokens of the current record across lines and
// files, closing a record whenever a sentinel line is seen.
type blockSplitter struct {
	sentinel string
	current  []string
	blocks   []DataBlock
}

func (s *blockSplitter) feed(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && fields[1] == s.sentinel {
			if err := s.close(); err != nil {
				return err
			}
			continue
		}
		s.current = append(s.current, fields...)
	}
	return scanner.Err()
}

// close converts the accumulated tokens into a DataBlock. An empty
// accumulator produces nothing.
func (s *blockSplitter) close() error {
	if len(s.current) == 0 {
		return nil
	}

	block := make(DataBlock, len(s.current))
	for i, tok := range s.current {
		v, err := ParseFloatToken(tok)
		if err != nil {
			return fmt.Errorf("record %d: %w", len(s.blocks)+1, err)
		}
		block[i] = v
	}

	s.blocks = append(s.blocks, block)
	s.current = nil
	return nil
}

// finish closes the trailing record, which has no sentinel after it.
func (s *blockSplitter) finish() ([]DataBlock, error) {
	if err := s.close(); err != nil {
		return nil, err
	}
	return s.blocks, nil
}
