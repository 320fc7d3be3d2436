// Package auth owns the OAuth2 client-credentials token lifecycle shared by
// every outbound scheme call. One process-wide source caches the current
// bearer token, de-duplicates concurrent refreshes, renews ahead of expiry,
// and retries failed refreshes on a bounded delay.
package auth
