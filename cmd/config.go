package cmd

const DESCRIPTION = `
cookiegetter finds the cookie stores your browsers keep on disk and
prints the cookies they would send to a site, so scripts and download
tools can reuse a session you already opened in the browser.
`

const (
	ListDescription = `The list command displays every cookie store found for
the current user, OS browsers first. The numbers shown
can be passed to "cookiegetter select".

Example:
        cookiegetter list
        cookiegetter list --available

`
	GetDescription = `The get command imports the cookies sendable to the
given url and prints them as a Cookie header (default),
Netscape cookies.txt lines or JSON.

Without flags the first available store that succeeds
is used. Narrow the search with --browser, --profile
and --engine, read a store directly with --file or use
the store remembered by "cookiegetter select" with
--selected.

Example:
        cookiegetter get https://example.com
        cookiegetter get -b Firefox -o json https://example.com
        cookiegetter get -f ~/cookies.txt https://example.com

`
	ExportDescription = `The export command writes the cookies sendable to the
given url in Netscape cookies.txt format, readable by
curl, wget and yt-dlp.

Example:
        cookiegetter export -O cookies.txt https://example.com

`
	SelectDescription = `The select command remembers a cookie store so later
commands can use it with --selected. Pick a store by
the number shown by "cookiegetter list", by browser
and profile name, or by file path.

Example:
        cookiegetter select 2
        cookiegetter select -b Firefox -p default-release
        cookiegetter select -f ~/cookies.txt
        cookiegetter select --show

`
)
