// Package fhirhttp implements driven.ResourceClient over net/http.
//
// Every request carries an X-Request-ID so uploads can be correlated with
// server logs. An optional token bucket throttles requests; there is no
// retry. Timeouts are the caller's choice and default to none.
package fhirhttp
