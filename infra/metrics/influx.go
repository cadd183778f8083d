package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/Matze99/solar-sim/core/metrics"
	"github.com/Matze99/solar-sim/core/model"
	"github.com/Matze99/solar-sim/infra/logger"
)

// InfluxSink writes solver events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolve writes one solve event as line protocol.
func (s *InfluxSink) RecordSolve(ev coremetrics.SolveEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sizing_solve").
		AddTag("run_id", ev.RunID).
		AddTag("failed", strconv.FormatBool(ev.Failed)).
		AddField("pv_capacity", round3(ev.PVCapacity)).
		AddField("objective", round3(ev.Objective)).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(time.Now())
	if ev.Diagnostic != "" {
		p = p.AddField("diagnostic", ev.Diagnostic)
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSweep writes the sweep summary.
func (s *InfluxSink) RecordSweep(ev coremetrics.SweepEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sizing_sweep").
		AddTag("sweep_id", ev.SweepID).
		AddField("points", ev.Points).
		AddField("failures", ev.Failures).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// ExportHourlySeries writes the full hourly profile of a sizing result,
// one point per hour anchored at start. Intended for one-shot exports
// after a solve, not for the sweep hot path.
func (s *InfluxSink) ExportHourlySeries(ctx context.Context, res *model.SizingResult, start time.Time) error {
	h := res.Hourly
	for t := 0; t < len(h.PVUsed); t++ {
		p := write.NewPointWithMeasurement("sizing_hourly").
			AddTag("run_id", res.RunID).
			AddField("pv_used", round3(h.PVUsed[t])).
			AddField("overproduction", round3(h.Overproduction[t])).
			AddField("grid", round3(h.Grid[t])).
			AddField("battery_level", round3(h.BatteryLevel[t])).
			AddField("total_demand", round3(h.TotalDemand[t])).
			SetTime(start.Add(time.Duration(t) * time.Hour))
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
