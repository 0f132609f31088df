// Package cookies locates the cookie stores that browsers keep on disk (or
// expose through an OS API) and imports them into a single CookieJar usable
// by an HTTP client.
//
// Every store is reached through an Importer bound to one BrowserConfig.
// Importers never panic and never partially commit: GetCookies either adds
// all of a store's cookies for the target URL to the jar and returns Success,
// or leaves the jar untouched and returns the ImportResult describing why.
//
// Cookie values are never logged or formatted into error messages. Only the
// browser name, profile and store path appear in diagnostics.
package cookies
