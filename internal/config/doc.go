// Package config loads the QuickBooks OAuth client configuration.
//
// Configuration comes from environment variables, with an optional .env file
// in the working directory providing defaults:
//
//	QB_CLIENT_ID     - Intuit app client id (required)
//	QB_CLIENT_SECRET - Intuit app client secret (required)
//	QB_REDIRECT_URI  - OAuth redirect URI (default: http://localhost:3000/callback)
//	QB_ENVIRONMENT   - "sandbox" or "production" (default: sandbox)
//
// The environment selects both the OpenID discovery document used to resolve
// the OAuth endpoints and the QuickBooks data API base URL.
package config
