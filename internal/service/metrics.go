package service

import "github.com/prometheus/client_golang/prometheus"

var (
	onboardingSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_onboarding_steps_total",
			Help: "Store onboarding step attempts by outcome",
		},
		[]string{"step", "result"},
	)
	imageUploadSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_image_upload_duration_seconds",
			Help:    "Latency of store image uploads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"image", "result"},
	)
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notifications handled by kind and outcome",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	prometheus.MustRegister(onboardingSteps, imageUploadSeconds, notificationsTotal)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
