// Package services implements the client-side session model of ThumbKeeper.
//
// SessionStore is the single source of truth for who is signed in. It owns
// the session and the profile. ProfileSync (reached through
// SessionStore.Profiles) loads and edits the profile. HistoryRepository
// follows the store and keeps the signed-in user's generation history.
// Generator calls the generation endpoint and feeds successful results into
// the in-session gallery and the history.
//
// Consumers read state through snapshots (State, Snapshot, Gallery) and
// mutate it only through methods. Listeners registered with Subscribe run
// outside the store's lock.
package services
