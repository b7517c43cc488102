// Package state holds the in-memory view of both collections for one
// session and is the only path through which records are changed.
//
// Every mutation goes validator → store → cache → subscribers. The cache is
// consistent with the store after each completed call: new records are
// prepended (creation times are strictly increasing, so this matches a
// fresh GetAll), updated records are replaced in place, deleted records are
// dropped.
//
// Mutations on the same collection are serialized; customer and invoice
// mutations may run concurrently. Listener delivery is serialized by a
// single notify lock held from taking a snapshot until every listener has
// returned, so listeners receive snapshots in the order the changes were
// made and the last one delivered is always the newest. Failures from the store set State.Error
// and are returned. Validation and uniqueness failures are only returned,
// since they belong next to the offending input.
package state
