package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// AvatarOutcomeServed is the label for an avatar sent to the client.
	AvatarOutcomeServed = "served"
	// AvatarOutcomeCached is the label for an avatar sent from the cache.
	AvatarOutcomeCached = "cached"
	// AvatarOutcomeNotFound is the label for a missing image asset.
	AvatarOutcomeNotFound = "not_found"
	// AvatarOutcomeInvalid is the label for a request rejected by validation.
	AvatarOutcomeInvalid = "invalid"
	// AvatarOutcomeErrored is the label for an internal failure.
	AvatarOutcomeErrored = "errored"
)

// AvatarsServed is a counter of the resolved avatars, labelled by mode (text
// or image) and outcome.
var AvatarsServed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "avatars",
		Subsystem: "resolver",
		Name:      "requests_total",

		Help: "Number of avatar resolutions, labelled by mode and outcome.",
	},
	[]string{"mode", "outcome"},
)

// AssetFetchDurations is a histogram of the durations in seconds of the
// fetches from the asset store, labelled by store kind and result.
var AssetFetchDurations = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "avatars",
		Subsystem: "store",
		Name:      "fetch_durations",

		Help: "Durations in seconds of the fetches from the asset store, labelled by store kind and result.",

		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	},
	[]string{"store", "result"},
)

func init() {
	prometheus.MustRegister(AvatarsServed, AssetFetchDurations)
}
