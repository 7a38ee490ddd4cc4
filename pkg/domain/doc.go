/*
Package domain contains the core domain models for the Producer Pal
duplication engine.

It defines the request/response DTOs exchanged with transports, the
value types read from the host (clips, locators, time signatures) and
the error types raised by validation. This package is kept pure and free
of external dependencies like I/O or the live object model, following
Hexagonal Architecture principles.

# Key Entities

  - DuplicateRequest: What to duplicate, how many times, and where.
  - Duplicated: One created object (track, scene, clip or device).
  - ClipSpec: A read-only snapshot of a source clip.
  - Locator: A named cue point on the arrangement timeline.
*/
package domain
