// Package bamboo provides the authenticated HTTP client for the BambooHR
// REST API.
//
// # Overview
//
// One Client is constructed per tenant at startup and shared read-only by
// every tool handler. It exposes generic verb operations (Get, Post, Put,
// Delete) plus specialized I/O: GetXML for content-negotiated reads,
// UploadFile for multipart writes, and DownloadFile for raw binary reads.
//
// # Authentication
//
// BambooHR uses token-only HTTP Basic auth: the API key is the username and
// the literal "x" is the password. The Authorization header is computed once
// at construction.
//
// # Error classification
//
// Every failure is mapped to exactly one Category before it reaches callers:
// status-code categories (bad request, unauthorized, forbidden, not found,
// rate limited, upstream error, unknown status), CategoryNetwork for requests
// that never reached the upstream, and CategoryRequestSetup for requests that
// failed before being sent. Handlers therefore never observe an unclassified
// transport error.
package bamboo
