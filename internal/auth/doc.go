// Package auth implements the QuickBooks OAuth2 token lifecycle.
//
// It provides:
//   - Discovery: resolves the authorization, token and revocation endpoints
//     from Intuit's OpenID discovery document, cached for the process
//     lifetime.
//   - Store: file-backed persistence of the current TokenSet. A missing,
//     empty or unparseable file reads back as "never authorized".
//   - Flow: the one-shot interactive authorization-code flow. It opens the
//     operator's browser, receives the redirect on a local listener,
//     exchanges the code via golang.org/x/oauth2 and persists the result.
//     The realm (company) id delivered alongside the code is stored with
//     the tokens and scopes every data API call.
//   - Revoke: best-effort revocation of the stored refresh token.
//
// Token refresh on expiry is performed by the quickbooks package as part of
// its authenticated request path, using the Store and Discovery from here.
package auth
