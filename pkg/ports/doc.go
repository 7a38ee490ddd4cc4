// Package ports defines the secondary interfaces consumed by the
// duplication engine. Implementations live in pkg/adapters and in the
// host bridge; the core depends only on these contracts.
package ports
