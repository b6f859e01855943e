// Package probe implements the interactive contact checks: a single-scene
// contact check ([Check]), a forward sweep over a scene dataset that stops
// at the first scene producing active contacts ([Scanner.Sweep]), and the
// contact point debug drawing ([DebugDrawContacts]).
package probe
