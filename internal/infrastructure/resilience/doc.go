/*
Package resilience provides the circuit breaker the transport can wrap
around remote calls.

# States

  - Closed: calls pass through and failures are counted
  - Open: calls fail fast with ErrCircuitOpen until Timeout elapses
  - Half-Open: up to MaxRequests trial calls decide whether to close again

	Closed --[ReadyToTrip]-> Open --[Timeout]-> Half-Open --[successes]-> Closed
	                                               |
	                                           [failure]
	                                               v
	                                             Open

# Usage

	breaker := resilience.New("appwrite", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 4xx responses are the caller's fault, not the server's
		IsSuccessful: func(err error) bool {
			return err == nil || client.IsClientError(err)
		},
	})

	err := breaker.Do(func() error {
		resp, err = transport.Call(ctx, method, path, headers, params)
		return err
	})
*/
package resilience
