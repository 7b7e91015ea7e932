// Package inertia is a server-side adapter for the Inertia.js protocol:
// it lets classic route handlers drive a single-page-application client by
// sending page objects (component name, props, protocol metadata) instead
// of rendered HTML fragments.
//
// # Quick Start
//
// Create an Adapter at startup, share cross-cutting props, and call Render
// from handlers:
//
//	i := inertia.New(
//	    inertia.WithVersionResolver(version.Manifest("public/build/manifest.json")),
//	    inertia.WithFlashStore(flash.NewCookieStore(cookie.New(cookie.WithSecret(secret)))),
//	    inertia.WithLogger(log),
//	)
//	i.Share("appName", "Acme")
//
//	func showUser(w http.ResponseWriter, r *http.Request) {
//	    if err := i.Render(w, r, "Users/Show", inertia.Props{
//	        "user":     user,
//	        "activity": inertia.Defer(func() any { return loadActivity(user) }),
//	    }); err != nil {
//	        http.Error(w, "internal error", http.StatusInternalServerError)
//	    }
//	}
//
// The first browser visit receives a full HTML document embedding the page
// object; every later navigation is an XHR that receives the page object
// as JSON with the X-Inertia header set.
//
// # Prop Lifecycles
//
// Values in a Props bag may be raw data, zero-argument computations, or
// wrapped props carrying a policy:
//
//	inertia.Props{
//	    "user":    user,                                  // sent always
//	    "stats":   inertia.Defer(loadStats),              // fetched after first render
//	    "export":  inertia.Optional(buildExport),         // only on explicit partial request
//	    "toasts":  inertia.Always(loadToasts),            // bypasses partial filters
//	    "feed":    inertia.Merge(nextFeedPage),           // client appends instead of replacing
//	    "roles":   inertia.Once(loadRoles).As("roles"),   // client caches under a shared key
//	}
//
// Computations run at most once per response and only when the partial
// reload policy includes the prop, so expensive lookups are skipped for
// responses that do not need them.
//
// # Partial Reloads
//
// The client may re-request the current component with only a subset of
// props (X-Inertia-Partial-Data) or with some excluded
// (X-Inertia-Partial-Except). Exclusion wins over inclusion; Always props
// and the reserved "errors" and "flash" names bypass the allowlist. A
// partial header naming a different component than the one being rendered
// is ignored and the render is treated as a full load.
//
// # Versioning and Redirects
//
// Every payload carries the asset version. When an Inertia GET arrives
// with a stale version the adapter answers 409 with X-Inertia-Location,
// and the client performs a full reload. Redirects after PUT, PATCH, and
// DELETE are upgraded from 302 to 303 so browsers follow with a GET.
// External targets under an Inertia request also become 409 + location,
// because the client cannot follow cross-origin redirects internally.
//
// # Flash Data
//
// Validation errors and one-time messages survive the POST -> redirect ->
// GET cycle through a flash.Store (cookie or Redis backed) and surface as
// the reserved "errors" and "flash" props:
//
//	if errs := validate(form); len(errs) > 0 {
//	    _ = i.FlashErrors(w, r, errs)
//	    i.Back(w, r)
//	    return
//	}
//
// # Middleware
//
// middlewares.Inertia papers over the protocol's response rules for
// handlers that forget them (303 upgrades, empty responses becoming
// back-redirects), and middlewares.Recover turns prop computation panics
// into logged 500s.
package inertia
