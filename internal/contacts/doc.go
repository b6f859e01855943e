// Package contacts turns raw contact points into reportable contact
// pairs.
//
//   - [Pairs]: folds contact points into pair keys with max distance
//   - [ComponentName]: human-readable name for one side of a pair
//   - [AllObjectIDs]: object id to descriptive name map for a whole world
//
// The pair map is rebuilt from scratch on every call; nothing here keeps
// cross-frame state.
package contacts
