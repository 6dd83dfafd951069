// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dispatch sends chat messages through an HTTP relay.

The relay accepts POST {relay}?key={key} with either {"content": text} or
{"raw": payload}, and answers a 2xx whose body starts with "ok" when the
message was forwarded. Anything else counts as a failure. Failures are
logged and reported as false; nothing is retried.

A single Dispatcher should be shared by the whole process: it owns the
only rate limiter, so sends from HTTP handlers and background jobs are all
spaced by the configured interval.
*/
package dispatch
