// Package storefront is a client for the Shopify Storefront GraphQL API.
//
// Every call is a POST of a GraphQL document to
// https://{domain}/api/{version}/graphql.json carrying the storefront access
// token header. Requests pass through a token-bucket limiter so the client
// stays under the shop's request budget.
//
// Failures are typed: *StatusError for HTTP error statuses, *GraphQLError for
// top-level GraphQL errors and UserErrors (matching ErrUserErrors) for
// validation problems reported by cart mutations.
package storefront
