/*
Package live defines the port to the host's remote object model: a
path-addressed tree of tracks, scenes, clips, devices and cue points.

Objects are live views into host state, never owned by this layer.
Paths are space-delimited and index-based ("live_set tracks 2 devices 0")
and shift whenever siblings are inserted or removed before a given
index; the Path type centralizes the index arithmetic so that callers
never repeat it inline.
*/
package live
