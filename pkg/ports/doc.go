/*
Package ports defines the driven ports (interfaces) of the questionnaire service.

These interfaces decouple session handling from concrete backends, so the same
session manager works with an in-memory map or a shared Redis instance.

# Key Interfaces

  - StateStore: persists and loads questionnaire session State.
  - DistributedLocker: serializes concurrent access to a session across replicas.
*/
package ports
