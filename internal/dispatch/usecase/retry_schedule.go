package usecase

import "time"

// retryDelays is the backoff schedule between delivery attempts. Attempts
// past the last entry reuse it.
var retryDelays = []time.Duration{
	1 * time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	1 * time.Hour,
	2 * time.Hour,
}

func retryDelay(retryCount int) time.Duration {
	if retryCount >= len(retryDelays) {
		return retryDelays[len(retryDelays)-1]
	}
	return retryDelays[retryCount]
}
