// Package visitor serves the visitor analytics log: filtered and paginated
// listing with lazy enrichment, bulk deletion by time range, and the
// location filter options.
package visitor
