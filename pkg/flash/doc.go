// Package flash persists one-time data across the POST -> redirect -> GET
// cycle: validation errors and notification messages that must survive
// exactly one redirect and then disappear.
//
// The adapter pulls pending data at render time and exposes it through the
// reserved "errors" and "flash" props. Two stores ship with the package:
// CookieStore (encrypted cookie, no server state) and RedisStore
// (server-side, keyed by a client ID cookie). Custom stores implement the
// Store interface.
package flash
