package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"

	"github.com/openhiker/trailnav/config"
	"github.com/openhiker/trailnav/geo"
	"github.com/openhiker/trailnav/internal/metrics"
	"github.com/openhiker/trailnav/internal/publisher"
	"github.com/openhiker/trailnav/tracking"
)

// fixRecord is one line of the replay fix log.
type fixRecord struct {
	Lat float64   `json:"lat"`
	Lon float64   `json:"lon"`
	At  time.Time `json:"at"`
}

// runReplay feeds a recorded fix log through the tracker sequentially,
// logging positions and optionally publishing events to NATS. Useful for
// tuning thresholds against real hikes without leaving the desk.
func runReplay(logger log.Logger, cfg config.Config, routePath, fixesPath string, publish bool) error {
	if routePath == "" || fixesPath == "" {
		return fmt.Errorf("replay: -route and -fixes are required")
	}

	routeData, err := os.ReadFile(routePath)
	if err != nil {
		return err
	}
	var route tracking.Route
	if err := json.Unmarshal(routeData, &route); err != nil {
		return fmt.Errorf("route %s: %w", routePath, err)
	}

	f, err := os.Open(fixesPath)
	if err != nil {
		return err
	}
	defer f.Close()

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

	var pub *publisher.NATSPublisher
	if publish {
		var pm publisher.Metrics
		if col != nil {
			pm = col
		}
		pub, err = publisher.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, log.With(logger, "component", "nats"), pm)
		if err != nil {
			return err
		}
		defer pub.Close()
	}

	tracker := tracking.NewTracker(tracking.Config{
		OffRouteEnterMeters: cfg.Guidance.OffRouteEnterMeters,
		OffRouteClearMeters: cfg.Guidance.OffRouteClearMeters,
		ApproachTurnMeters:  cfg.Guidance.ApproachTurnMeters,
		AtTurnMeters:        cfg.Guidance.AtTurnMeters,
		ArriveMeters:        cfg.Guidance.ArriveMeters,
	})
	tracker.Start(route)
	defer tracker.Stop()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var fix fixRecord
		if err := json.Unmarshal([]byte(text), &fix); err != nil {
			_ = logger.Log("line", line, "err", err)
			continue
		}

		pos, events := tracker.Update(geo.Coordinate{Lat: fix.Lat, Lon: fix.Lon}, fix.At)
		if col != nil {
			col.FixesProcessed.Inc()
		}
		for _, ev := range events {
			_ = logger.Log("event", ev.Kind, "direction", ev.Direction, "progress", fmt.Sprintf("%.3f", pos.Progress))
			if col != nil {
				col.GuidanceEvents.WithLabelValues(ev.Kind.String()).Inc()
			}
			if pub == nil {
				continue
			}
			msg := publisher.GuidanceMessage{
				Kind:            ev.Kind.String(),
				Progress:        pos.Progress,
				RemainingMeters: pos.RemainingDistance,
				Timestamp:       fix.At,
			}
			if ev.Kind == tracking.EventApproachingTurn || ev.Kind == tracking.EventAtTurn {
				msg.Direction = ev.Direction.String()
			}
			if err := pub.PublishEvent(msg); err != nil {
				_ = logger.Log("during", "publish", "err", err)
			}
		}
	}
	return sc.Err()
}
