// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document and chunk persistence plus substring matching
//   - TextExtractor: Source file bytes to plain text (PDF extraction)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ResultCache: Search result caching. Without it every search
//     recomputes; behaviour is identical apart from latency.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
