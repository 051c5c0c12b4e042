package services

import (
	"time"

	"github.com/sony/gobreaker"

	"github.com/syedmehedi34/scsi-job-task-server/logging"
)

// NewStoreBreaker builds the circuit breaker the services wrap around store
// calls. Not-found and conflict results are normal outcomes and must not
// count against the store's health.
func NewStoreBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isBusinessOutcome(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}
