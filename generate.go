package jpltables

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator converts one DE release into per-body interpolation tables.
type Generator struct {
	cfg    *Config
	logger *zap.Logger

	headerParser headerParser
	blockReader  blockReader
	tableWriter  tableWriter
}

// BodyLayout pairs a body with the parameters its table is cut with.
type BodyLayout struct {
	Body   CelestialBody
	Params TableParameters
}

// NewGenerator returns a Generator for cfg. A nil logger disables logging.
func NewGenerator(cfg *Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:          cfg,
		logger:       logger,
		headerParser: headerParserImpl{},
		blockReader:  blockReaderImpl{},
		tableWriter:  tableWriterImpl{},
	}
}

// Run parses the header and data files, extracts every configured body and
// writes one table per body. It returns the written paths in body order.
//
// Bodies are converted concurrently, each with its own EpochSet. The first
// failure cancels the remaining bodies; tables already committed stay on disk,
// but no table is ever left half written.
func (g *Generator) Run(ctx context.Context) ([]string, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	bodies, err := g.cfg.CelestialBodies()
	if err != nil {
		return nil, err
	}

	emrat, layout, err := g.headerParser.parseHeader(g.cfg.HeaderFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	g.logger.Info("parsed header",
		zap.String("release", g.cfg.Release),
		zap.String("path", g.cfg.HeaderFile),
		zap.Float64("emrat", emrat),
		zap.Int("columns", len(layout[0])))

	g.logDataFiles()
	blocks, err := g.blockReader.readBlocks(g.cfg.DataFiles, g.cfg.blockConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to read data files: %w", err)
	}
	g.logger.Info("read data records", zap.Int("records", len(blocks)))
	g.checkRecordLengths(blocks)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ensureDir(g.cfg.OutputDir); err != nil {
		return nil, err
	}

	paths := make([]string, len(bodies))
	eg, egCtx := errgroup.WithContext(ctx)
	if g.cfg.Workers > 0 {
		eg.SetLimit(g.cfg.Workers)
	}

	for i, body := range bodies {
		i, body := i, body
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			table, err := g.convert(blocks, emrat, layout, body)
			if err != nil {
				return err
			}

			if err := egCtx.Err(); err != nil {
				return err
			}
			path, err := g.tableWriter.writeTable(g.cfg.OutputDir, table)
			if err != nil {
				return fmt.Errorf("%s: %w", body, err)
			}

			g.logger.Info("wrote table",
				zap.Stringer("body", body),
				zap.String("path", path),
				zap.Int("segments", len(table.X)))
			paths[i] = path
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// convert extracts one body's table with a fresh EpochSet.
func (g *Generator) convert(blocks []DataBlock, emrat float64, layout LayoutTable, body CelestialBody) (*OutputTable, error) {
	params, err := resolveExtractionParameters(body, layout)
	if err != nil {
		return nil, err
	}

	table, seen, err := ExtractCoefficients(blocks, emrat, g.cfg.Window, body, params, EpochSet{})
	if err != nil {
		return nil, err
	}

	g.logger.Debug("extracted coefficients",
		zap.Stringer("body", body),
		zap.Int("start_index", params.StartIndex),
		zap.Int("stop_index", params.StopIndex),
		zap.Int("coeffs_per_poly", params.CoeffsPerPoly),
		zap.Int("polys_per_block", params.PolysPerBlock),
		zap.Int("pieces", len(seen)))
	return table, nil
}

// Describe parses the header and reports the mass ratio and the parameters of
// every configured body.
func (g *Generator) Describe() (float64, []BodyLayout, error) {
	bodies, err := g.cfg.CelestialBodies()
	if err != nil {
		return 0, nil, err
	}

	emrat, layout, err := g.headerParser.parseHeader(g.cfg.HeaderFile)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	out := make([]BodyLayout, 0, len(bodies))
	for _, body := range bodies {
		params, err := resolveExtractionParameters(body, layout)
		if err != nil {
			return 0, nil, err
		}
		out = append(out, BodyLayout{Body: body, Params: params})
	}
	return emrat, out, nil
}

func (g *Generator) logDataFiles() {
	for _, path := range g.cfg.DataFiles {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		g.logger.Info("reading data file",
			zap.String("path", path),
			zap.String("size", humanize.Bytes(uint64(info.Size()))))
	}
}

// checkRecordLengths warns when records differ in length, which points at a
// sentinel mismatch or a truncated file.
func (g *Generator) checkRecordLengths(blocks []DataBlock) {
	if len(blocks) == 0 {
		g.logger.Warn("no data records found")
		return
	}
	want := len(blocks[0])
	for i, b := range blocks {
		if len(b) != want {
			g.logger.Warn("record length differs from first record",
				zap.Int("record", i+1),
				zap.Int("values", len(b)),
				zap.Int("expected", want))
		}
	}
}
