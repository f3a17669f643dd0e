/*
Package wallet provisions blockchain wallets for onboarded users.

One provisioning task exists per (user, chain) pair. Tasks for distinct
chains run concurrently and independently: a failing chain never blocks or
invalidates another. Transient backend failures are retried with bounded
backoff; a task that exhausts its attempt budget is terminally Failed and is
only retried by an explicit new provisioning request.

Usage:

	svc := wallet.NewService(repo, backend, cache, wallet.Config{}, &wallet.NoopMetricsCollector{})

	// Fan out provisioning across chains (fire-and-forget per chain)
	err := svc.Provision(ctx, userID, chains)

	// Read-side aggregation, never blocks on in-flight work
	summary, err := svc.Status(ctx, userID)

	// Deposit address for a Ready wallet (provisions on demand if absent)
	addr, err := svc.DepositAddress(ctx, userID, models.ChainETH)

Error Handling:

Unsupported chains fail the whole request before any task is created, so a
batch naming one bad chain among good ones is rejected atomically.
Provisioning failures are recorded on the task, not surfaced to the
triggering call.
*/
package wallet
