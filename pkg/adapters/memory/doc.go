/*
Package memory provides an in-memory implementation of the live object
model: a full session (tracks, scenes, clip slots, devices, arrangement
clips, cue points) with the host's native structural primitives,
including the sibling index shifts they cause.

It backs the engine's test suite and the demo fixture mode of the serve
commands. Access is sequential, matching the host's own model; the
adapter performs no internal locking.
*/
package memory
