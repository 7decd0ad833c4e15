// Package omdb provides an HTTP client for the OMDb movie database API.
//
// # Overview
//
// Two read-only operations are exposed, both plain GET requests against a
// single base URL with the API key as a query parameter:
//
//   - Search(ctx, query): ?apikey=K&s=<query>, a list of MovieSummary values
//   - Lookup(ctx, id):    ?apikey=K&i=<imdbID>, a single MovieDetail
//
// # Tagged Results
//
// OMDb signals "no match" with HTTP 200 and {"Response":"False"}, so field
// presence alone does not say what happened. The client converts every
// response into an explicit tag:
//
//	SearchSuccess  | SearchNotFound | SearchFailure
//	DetailFound    | DetailNotFound | DetailFailure
//
// Failures are always accompanied by a non-nil error:
//
//   - *StatusError for non-2xx HTTP statuses
//   - "execute request: ..." for transport errors
//   - "decode response: ..." for malformed JSON
//
// A cancelled context produces an error for which errors.Is(err,
// context.Canceled) is true. Callers that supersede requests use this to
// suppress the failure entirely.
//
// # Configuration
//
// The API key and base URL are constructor arguments; there is no package
// state. The default http.Client carries no timeout, so a request stays
// pending until the transport fails or its context ends. Use WithHTTPClient
// to inject a different client (tests, proxies, timeouts).
//
// # Testing Considerations
//
// Use httptest.Server to mock the API and the Searcher interface to stub the
// client in data-source tests.
package omdb
