// Package retrysaver provides a saver that retries failed saves a bounded number of times.
//
// Retries are immediate. Each Save call keeps its attempt count in a local variable,
// so concurrent calls never affect each other's retries.
//
// The Saver can be configured with options:
//   - WithMaxAttempts: Sets the total number of attempts per item (default 3)
//   - WithOnRetry: Sets a callback invoked before each retry
package retrysaver
