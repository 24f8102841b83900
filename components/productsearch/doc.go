// Package productsearch provides a small net/http handler that answers the
// search-as-you-type product lookups of the line-item editor with JSON
// options.
//
// The handler responds to GET and HEAD requests. Keywords below the minimum
// length return an empty result set, mirroring the editors, and a request
// without a currency is rejected because prices are currency-scoped.
package productsearch
