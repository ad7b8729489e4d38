// Package identity verifies bearer tokens and maps them to the borrower making a request.
//
// Tokens are HS256 JWTs with a user_id claim naming the borrower.
package identity
