// Copyright 2026 The geoindex (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command geoindex builds a spatial index over a GeoJSON collection of
// chateau boundaries, optionally writes it to a snapshot, and answers
// bounding box queries against it.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/catenarymaps/geoindex"
	"github.com/catenarymaps/geoindex/internal/config"
	"github.com/catenarymaps/geoindex/internal/logger"
	"github.com/catenarymaps/geoindex/packedrtree"
	"github.com/paulmach/orb/geojson"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "YAML configuration file")
	envFile := flag.String("env", ".env", "dotenv file with GEOINDEX_* overrides")
	fromSnapshot := flag.String("from-snapshot", "", "load the index from this snapshot instead of building it")
	bbox := flag.String("bbox", "", "query box as west,south,east,north")
	touch := flag.Bool("touch", false, "only report features touching the query box")
	flag.Parse()

	l := logger.Setup()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *cfgPath, *envFile, *fromSnapshot, *bbox, *touch); err != nil {
		l.Error("geoindex_failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, envFile, fromSnapshot, bbox string, touch bool) error {
	l := logger.L()
	load := config.Load
	if fromSnapshot != "" {
		load = config.LoadWithoutInput
	}
	cfg, err := load(cfgPath, envFile)
	if err != nil {
		return err
	}

	var q packedrtree.Box
	if bbox != "" {
		if q, err = parseBox(bbox); err != nil {
			return err
		}
	}

	index, err := geoindex.NewIndex(geoindex.StringPropDecoder(cfg.Property), cfg.NodeSize, cfg.ChunkSize)
	if err != nil {
		return err
	}

	start := time.Now()
	if fromSnapshot != "" {
		tree, err := readSnapshot(fromSnapshot, cfg.Property)
		if err != nil {
			return err
		}
		index.Store(tree)
		l.Info("snapshot_loaded", "path", fromSnapshot, "entries", tree.Len(), "height", tree.Height(), "elapsed", time.Since(start))
	} else {
		if err = build(ctx, index, cfg); err != nil {
			return err
		}
		tree := index.Load()
		l.Info("index_built", "input", cfg.Input, "entries", tree.Len(), "height", tree.Height(), "bounds", tree.Bounds().String(), "parallel", cfg.Parallel, "elapsed", time.Since(start))
		if cfg.Snapshot != "" {
			n, err := writeSnapshot(cfg.Snapshot, tree)
			if err != nil {
				return err
			}
			l.Info("snapshot_written", "path", cfg.Snapshot, "bytes", n)
		}
	}

	if bbox == "" {
		return nil
	}
	rs := index.Query(q, touch)
	l.Debug("query", "box", q.String(), "touch", touch, "results", len(rs))
	w := bufio.NewWriter(os.Stdout)
	for _, f := range rs {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", f.Props, f.Box)
	}
	return w.Flush()
}

func build(ctx context.Context, index *geoindex.Index[string], cfg config.Config) error {
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	if cfg.Parallel {
		return index.Rebuild(ctx, fc)
	}
	tree, err := geoindex.Build(fc, geoindex.StringPropDecoder(cfg.Property), cfg.NodeSize)
	if err != nil {
		return err
	}
	index.Store(tree)
	return nil
}

func readSnapshot(path, property string) (*packedrtree.RTree[geoindex.Feature[string]], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return geoindex.UnmarshalIndex(bufio.NewReader(f), geoindex.StringPropDecoder(property))
}

func writeSnapshot(path string, tree *packedrtree.RTree[geoindex.Feature[string]]) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return geoindex.MarshalIndex(f, tree)
}

func parseBox(s string) (packedrtree.Box, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return packedrtree.Box{}, fmt.Errorf("bbox %q: want west,south,east,north", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return packedrtree.Box{}, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = f
	}
	return geoindex.BoxFromBounds(v[0], v[1], v[2], v[3])
}
