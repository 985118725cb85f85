// Package server exposes layout routing as a JSON HTTP API.
//
// # Routes
//
//	POST /v1/select          route one slide, respond with layout, rule and analysis
//	POST /v1/decks           route a deck, respond with ordered results and stats
//	GET  /v1/layouts         list the layout catalog (?group= filters)
//	GET  /v1/layouts/{name}  resolve one layout name
//	GET  /v1/rules           active rule table (?format=dot for a Graphviz diagram)
//	GET  /v1/schema          JSON Schema (?name=slide|result)
//	GET  /healthz            liveness
//	GET  /version            build information
//
// Every response carries an X-Request-ID header. A caller-supplied ID is
// echoed; otherwise a UUID is generated. The ID is attached to audit records.
//
// Errors are JSON objects {"error": CODE, "message": text} with the status
// derived from the error code.
package server
