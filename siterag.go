// Package siterag provides a retrieval-augmented question answering pipeline
// over the content of a single website. It crawls pages from a seed URL,
// extracts and chunks their text, enriches each chunk with a synthesized
// title and an embedding vector, stores the result in a vector-searchable
// chunk store, and answers natural language questions grounded in the
// retrieved chunks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package siterag
