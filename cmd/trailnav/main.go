package main

import (
	"flag"
	"os"

	"github.com/go-kit/log"

	"github.com/openhiker/trailnav/config"
)

func main() {
	var (
		mode      = flag.String("mode", "extract", "extract|replay")
		cfgPath   = flag.String("config", "config.yml", "configuration file")
		pbfPath   = flag.String("pbf", "", "input .osm.pbf file (extract mode)")
		outPath   = flag.String("out", "", "output JSON path, stdout when empty (extract mode)")
		bboxStr   = flag.String("bbox", "", "north,south,east,west bounding box override")
		routePath = flag.String("route", "", "route JSON file (replay mode)")
		fixesPath = flag.String("fixes", "", "fix log, one JSON object per line (replay mode)")
		publish   = flag.Bool("publish", false, "publish guidance events to NATS (replay mode)")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		_ = logger.Log("during", "config", "err", err)
		os.Exit(1)
	}

	switch *mode {
	case "extract":
		err = runExtract(logger, cfg, *pbfPath, *outPath, *bboxStr)
	case "replay":
		err = runReplay(logger, cfg, *routePath, *fixesPath, *publish)
	default:
		_ = logger.Log("err", "unknown mode "+*mode)
		os.Exit(2)
	}
	if err != nil {
		_ = logger.Log("mode", *mode, "err", err)
		os.Exit(1)
	}
}
