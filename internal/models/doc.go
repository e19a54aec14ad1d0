// Package models defines the core domain models for the competition leaderboard.
//
// # Entities
//
//   - Student: a competitor with the participations loaded from the store
//   - Competition: a named event students take part in
//   - Participation: one student's result (problems solved, placement) in one competition
//
// # Identity
//
// Students are stored and matched by StudentKey (first name, last name, email).
// DisplayName ("First Last") is a presentation field only. Name-based lookups
// that come from the outer shell (remove by name, show results by name) still
// match on display name, so two students with the same full name collide there:
// the first one in roster order wins and the collision is logged.
//
// Competitions are matched by name; the store never creates two competitions
// with the same name.
//
// # Read-model lifecycle
//
// Students and competitions are never patched in place. The roster is thrown
// away and rebuilt from the store after every write (see package roster).
package models
