// Package pagemark extracts the readable content of an HTML page and renders
// it as Markdown-like plain text. It isolates the main content region and
// drops navigation, scripts, styling and footer material.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goquery/, sqlite/) or after
// the concern they own when they have none (scan/, markdown/, batch/).
package pagemark
