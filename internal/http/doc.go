// Package http provides optional HTTP adapters for the waste operations APIs.
//
// Routes mount under /api by default:
//   - Containers: /containers, /containers/{id}, /containers/search,
//     /containers/high-fill, /containers/export, /containers/{id}/fill-level,
//     /containers/{id}/status, /containers/{id}/empty,
//     /containers/{id}/request-emptying
//   - Complaints: /complaints, /complaints/{id}, /complaints/{id}/status,
//     /complaints/age
//   - Collections: /collections, /collections/totals, /collections/trend,
//     /collections/week-over-week
//   - Neighborhoods: /neighborhoods, /neighborhoods/{key},
//     /neighborhoods/stats, /neighborhoods/top
//   - Reports: /reports/summary, /reports/fullness, /reports/map
//   - Ingest: /ingest/refresh, /ingest/status
//
// Host applications can register handlers on their own mux/router as needed.
package http
