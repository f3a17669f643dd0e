// Package onboarding implements the identity onboarding lifecycle: starting
// a record, accepting KYC submissions, processing provider callbacks, and
// aggregating progress for the read side.
//
// Transitions for one user are serialized through a keyed mutex, so two
// concurrent submissions cannot both reach the pending state. Callback
// processing is idempotent: replaying a decision is a no-op, while a
// contradicting decision is rejected without touching state.
package onboarding
