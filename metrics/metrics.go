package metrics

import "time"

type Tags map[string]string

type Client interface {
	Counter(name string, tags Tags, value int64)

	Distribution(name string, tags Tags, value float64)

	Gauge(name string, tags Tags, value int64)

	Timing(name string, tags Tags, duration time.Duration)

	WithTags(tags Tags) Client
}

// NewNoopClient returns a client that discards all recorded values.
func NewNoopClient() Client {
	return &noopClient{}
}

type noopClient struct{}

func (noopClient) Counter(name string, tags Tags, value int64)            {}
func (noopClient) Distribution(name string, tags Tags, value float64)     {}
func (noopClient) Gauge(name string, tags Tags, value int64)              {}
func (noopClient) Timing(name string, tags Tags, duration time.Duration)  {}
func (n noopClient) WithTags(tags Tags) Client                            { return n }
