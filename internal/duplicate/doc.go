/*
Package duplicate implements the duplication engine: it composes the
host's coarse structural primitives (duplicate a whole track, duplicate
a whole scene, copy a clip into one slot) into the richer operations
exposed to agents, such as duplicating N times with auto-incremented
names, duplicating a track without its clips or devices, duplicating a
single device, or placing a clip in the arrangement at an arbitrary
length.

The host tree shifts sibling indices on every insertion and deletion,
so operations here are ordered sequences of host calls with the index
arithmetic handled through live.Path. Transient objects (the holding
clip used for truncation, the temporary track used for device copies)
are released on every exit path.
*/
package duplicate
