// Package briefboard decides when the periodic briefing prompt is shown.
//
// The decision is a pure function over the prompt settings, the last time the
// prompt was seen and the current instant. Gates are evaluated in a fixed
// order and the first one that disqualifies wins:
//
//  1. frequency never
//  2. specific calendar dates
//  3. allowed weekdays
//  4. allowed times of day (a 60 minute window each side)
//  5. first visit
//  6. minimum interval of the frequency
//
// Service persists settings and last-seen instants per user scope in a
// kvstore.Store.
package briefboard
