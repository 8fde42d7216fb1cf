package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfJWSSign is perf metric
	PerfJWSSign = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_jws_sign",
		Help:         "perf_jws_sign provides the sample metrics of JWS signing",
		RequiredTags: []string{"alg"},
	}

	// PerfJWSVerify is perf metric
	PerfJWSVerify = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_jws_verify",
		Help:         "perf_jws_verify provides the sample metrics of JWS parsing and verification",
		RequiredTags: []string{"alg"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfJWSSign,
	&PerfJWSVerify,
}
