// Package platform provides cross-platform filesystem operations, chiefly
// permission management for documents that may carry secrets. On Unix
// systems it uses chmod directly; on Windows, which has no Unix permission
// bits, the operations are no-ops.
package platform
