// Package retry holds the retry policies and fallback table used by the
// scrapping pipeline.
//
// # Policies
//
// Each failure class (collection, conversion, integration) owns one Policy.
// The delay before attempt n+1 is
//
//	min(InitialDelay * BackoffMultiplier^(n-1), MaxDelay)
//
// # Fallbacks
//
// The FallbackTable maps an error Condition (value_out_of_range,
// missing_required_field, ...) to the Action the orchestrator takes. Only
// retry_later and rollback_and_retry lead to another attempt.
//
// # Usage
//
//	attempts, err := retry.Do(ctx, policy, isRetryable, func(ctx context.Context) error {
//	    return client.Call(ctx)
//	})
package retry
