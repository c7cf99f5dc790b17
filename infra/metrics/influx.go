package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/courierlab/dispatchsim/core/record"
	"github.com/courierlab/dispatchsim/infra/logger"
)

// InfluxSink writes cycle summaries and courier transitions to InfluxDB
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
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

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopRecorder when the health check fails, so an unreachable sink never
// blocks a replay.
func NewInfluxSinkWithFallback(url, token, org, bucket string) record.Recorder {
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
		return record.NopRecorder{}
	}
	return sink
}

// RecordAssignment is a no-op; influx series are cycle-grained.
func (s *InfluxSink) RecordAssignment(record.AssignmentRecord) error { return nil }

// RecordCycle writes one cycle summary point.
func (s *InfluxSink) RecordCycle(r record.CycleRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("dispatch_cycle").
		AddTag("run_id", r.RunID).
		AddField("orders", r.Orders).
		AddField("couriers", r.Couriers).
		AddField("proposed", r.Proposed).
		AddField("accepted", r.Accepted).
		AddField("rejected", r.Rejected).
		AddField("orders_assigned", r.OrdersAssigned).
		AddField("assignment_rate", r.AssignmentRate).
		AddField("acceptance_rate", r.AcceptanceRate).
		AddField("avg_cost", r.AvgCost).
		AddField("agreement_rate", r.AgreementRate).
		AddField("fleet_utilization", r.FleetUtilization).
		SetTime(time.Unix(r.DispatchTime, 0))
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTransition writes one courier state change point.
func (s *InfluxSink) RecordTransition(r record.TransitionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("courier_transition").
		AddTag("run_id", r.RunID).
		AddTag("courier_id", strconv.FormatInt(r.CourierID, 10)).
		AddTag("new_state", r.NewState).
		AddField("reason", r.Reason).
		SetTime(time.Unix(r.Timestamp, 0))
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
