/*
Package ports defines the driven ports (interfaces) of the solliq calculator.

These interfaces decouple curve sampling from external implementations, allowing
the calculator to work with various cache backends.

# Key Interfaces

  - CurveCache: Stores sampled curves (e.g., in memory, Redis or SQLite).
  - DistributedLocker: Coordinates replicas so that a curve is sampled once.
*/
package ports
