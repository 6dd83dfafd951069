// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package worker provides a small bounded pool for fire-and-forget jobs
// such as announcing matches or publishing poll results.
package worker
