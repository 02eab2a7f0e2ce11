// Package ingest turns a pasted social-media link into a tracked content
// record under the right platform account.
//
// PIPELINE:
//
//	raw URL → Classify → SynthesizeTitle → Resolver.Resolve → Registrar.Register
//
// Classify and SynthesizeTitle are pure functions. The Resolver and Registrar
// talk to two collaborators, a PlatformDirectory and a ContentCatalog, which
// may live in-process (see service.NewPlatformDirectory) or behind HTTP
// (see client.Client). The Orchestrator sequences the stages and owns the
// failure policy:
//
//	Idle → Classifying → Resolving → Registering → Done
//	          │              │             │
//	          └──────────────┴─────────────┴──→ Failed
//
// A failed run is never rolled back. If registration fails after a platform
// was created, that platform stays behind with no content attached (an
// "orphan platform"); nothing in this package detects or cleans it up.
package ingest
