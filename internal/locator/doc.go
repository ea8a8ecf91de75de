// Package locator evaluates a parsed selector.Selector against the live
// accessibility tree exposed by accessibility.Port, wrapping every lookup in
// a bounded backoff-retry loop and an ordered fallback-selector list.
package locator
