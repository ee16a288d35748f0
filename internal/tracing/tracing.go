package tracing

import (
	"io"

	"github.com/pkg/errors"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type config interface {
	ServiceName() string
}

// Init installs a global Jaeger tracer. Without it the opentracing spans
// in the session layer are no-ops.
func Init(conf config) (io.Closer, error) {
	cfg := jaegercfg.Configuration{
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}

	closer, err := cfg.InitGlobalTracer(conf.ServiceName())
	if err != nil {
		return nil, errors.Wrap(err, "cannot init tracing")
	}
	return closer, nil
}
