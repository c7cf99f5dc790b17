// Package metrics provides optional telemetry sinks for replay runs.
// Sinks implement the record.Recorder interface and are selected by
// name from configuration.
package metrics

import (
	"fmt"

	"github.com/courierlab/dispatchsim/core/factory"
	"github.com/courierlab/dispatchsim/core/record"
	"github.com/courierlab/dispatchsim/core/simerr"
)

var registry = factory.NewRegistry[record.Recorder]()

// init registers the built-in sinks.
func init() {
	_ = registry.Register("nop", func(map[string]any) (record.Recorder, error) {
		return record.NopRecorder{}, nil
	})

	_ = registry.Register("prometheus", func(conf map[string]any) (record.Recorder, error) {
		var c struct {
			Listen string `json:"listen"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewPromSink(c.Listen)
	})

	_ = registry.Register("influxdb", func(conf map[string]any) (record.Recorder, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}

// NewSink builds the configured sinks and fans records out to all of
// them. With no sinks configured a NopRecorder is returned.
func NewSink(cfgs []factory.ModuleConfig) (record.Recorder, error) {
	sinks := make([]record.Recorder, 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := registry.Create(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: metrics sink: %v", simerr.ErrConfiguration, err)
		}
		sinks = append(sinks, s)
	}
	return record.NewMulti(sinks...), nil
}
