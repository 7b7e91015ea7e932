// Package cookie provides HTTP cookie management with AES-GCM encryption
// and one-time flash values.
//
// The Manager carries shared cookie attributes (path, domain, SameSite)
// and a secret for encrypted values. Flash values are encrypted, read
// once, and deleted — the transport used to carry validation errors and
// notifications across a redirect.
//
//	cm := cookie.New(cookie.WithSecret(secret), cookie.WithSecure(true))
//	_ = cm.SetFlash(w, "errors", map[string]string{"email": "taken"})
//
//	// next request
//	var errs map[string]string
//	_ = cm.Flash(w, r, "errors", &errs)
package cookie
