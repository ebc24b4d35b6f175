// Package core contains pipeline plumbing utilities: channel helpers, worker
// configuration via context, and the locomotive that drives one worker line.
// It does not define business logic; lite builds its runners on top of it.
package core
