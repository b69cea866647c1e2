/*
Package monitoring provides Prometheus metrics for the client.

# Metrics

  - appwrite_client_calls_total{method,status}
  - appwrite_client_call_duration_seconds{method}
  - appwrite_client_call_retries_total{method}
  - appwrite_client_uploads_active
  - appwrite_client_uploads_total{result}
  - appwrite_client_chunks_uploaded_total
  - appwrite_client_bytes_uploaded_total
  - appwrite_client_breaker_state{name}

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	timer := monitoring.NewTimer(metrics, "GET")
	// ... perform call ...
	timer.Stop(200)

Every method tolerates a nil *Metrics, so components can take metrics as an
optional dependency.
*/
package monitoring
