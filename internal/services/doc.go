// Package services implements the business logic layer of the rate
// comparison engine. It sits between the HTTP handlers and the snapshot
// files on disk, ensuring the comparison rules stay centralized and
// testable.
//
// Services follow these principles:
//
//	1. Interface-free concrete types wired by dependency injection
//	2. Context propagation for cancellation and tracing
//	3. Absence expressed as sentinel errors, never as zero values
//	4. Cross-cutting concerns (logging, metrics) handled here, not in
//	   the pure engines under internal/comparison and internal/insights
package services
