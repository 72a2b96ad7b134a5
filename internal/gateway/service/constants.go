package service

import "time"

const (
	// DownstreamTimeout bounds a single call to the inference service,
	// connection and full body included.
	DownstreamTimeout = 60 * time.Second

	// ProbeTimeout bounds a single reachability probe.
	ProbeTimeout = 5 * time.Second

	// RunPath is the inference endpoint on the downstream service.
	RunPath = "/v1/run/tinyllama"

	// maxBodyBytes caps how much of a downstream body is read.
	maxBodyBytes = 8 << 20
)
