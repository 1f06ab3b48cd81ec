package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-kit/log"

	"github.com/openhiker/trailnav/config"
	"github.com/openhiker/trailnav/internal/metrics"
	"github.com/openhiker/trailnav/osmpbf"
)

// extractOutput is the data contract handed to the routing-graph builder.
type extractOutput struct {
	Nodes map[int64]osmpbf.Node `json:"nodes"`
	Ways  []osmpbf.Way          `json:"ways"`
}

func runExtract(logger log.Logger, cfg config.Config, pbfPath, outPath, bboxStr string) error {
	if pbfPath == "" {
		return fmt.Errorf("extract: -pbf is required")
	}

	bbox := osmpbf.BoundingBox{
		North: cfg.Extract.North,
		South: cfg.Extract.South,
		East:  cfg.Extract.East,
		West:  cfg.Extract.West,
	}
	if bboxStr != "" {
		var err error
		if bbox, err = parseBBox(bboxStr); err != nil {
			return err
		}
	}
	if !bbox.Valid() {
		return fmt.Errorf("extract: invalid bounding box %+v", bbox)
	}

	data, err := os.ReadFile(pbfPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var col *metrics.Collector
	if cfg.Metrics.Addr != "" {
		col = metrics.NewCollector()
		srv := col.Serve(cfg.Metrics.Addr, logger)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 3*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	p := osmpbf.NewParser(bbox)
	p.Logger = log.With(logger, "component", "osmpbf")
	if col != nil {
		p.Metrics = col
	}
	lastDecile := -1
	p.Progress = func(done, total uint64) {
		if total == 0 {
			return
		}
		if decile := int(done * 10 / total); decile != lastDecile {
			lastDecile = decile
			_ = logger.Log("bytes", done, "total", total)
		}
	}

	start := time.Now()
	res, err := p.Parse(ctx, data)
	if err != nil {
		return fmt.Errorf("could not build routing data: %w", err)
	}
	if col != nil {
		col.ParseDuration.Observe(time.Since(start).Seconds())
	}
	_ = logger.Log("nodes", len(res.Nodes), "ways", len(res.Ways), "issues", len(res.Issues), "took", time.Since(start))

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return json.NewEncoder(out).Encode(extractOutput{Nodes: res.Nodes, Ways: res.Ways})
}

func parseBBox(s string) (osmpbf.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return osmpbf.BoundingBox{}, fmt.Errorf("bbox must be north,south,east,west")
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return osmpbf.BoundingBox{}, fmt.Errorf("bbox component %q: %w", part, err)
		}
		vals[i] = v
	}
	return osmpbf.BoundingBox{North: vals[0], South: vals[1], East: vals[2], West: vals[3]}, nil
}
