// Package content is the facade the HTTP layer talks to. It owns the fixed,
// ordered list of page sections and refuses to read or write anything else;
// storage itself is delegated to the sections package.
package content
