// Package api exposes the HTTP surface of the service: request decoding
// and validation, routing of deck and card operations to the application
// services, and translation of service results into HTTP responses.
package api
