// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are resolved in three layers. A .env file in the working directory is
loaded first if present (it never overrides variables already set), then the
environment is decoded into Config through env struct tags, then CLI flags
are applied on top.

# Environment Variables and Flags

	PORT               -p               default 3318
	DATABASE_URL       -d               required
	DATABASE_TYPE      -t               sqlite | postgres, default sqlite
	BASE_URL           --base-url       prefix for match, vote and close links
	ADMIN_KEY_SALT     --admin-salt     required
	RELAY_URL          --relay          chat relay endpoint; empty disables sending
	RELAY_KEY          --relay-key
	SEND_INTERVAL      --send-interval  default 1s
	SEND_TIMEOUT       --send-timeout   default 12s
	MAX_MESSAGE_LEN    --max-message-len default 2000
	DISCORD_PUBLIC_KEY --discord-key    hex Ed25519 key for /interactions
	WORKERS            --workers        default 2
	QUEUE_SIZE         --queue-size     default 16

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL or ADMIN_KEY_SALT is missing,
the database type is unknown, or any count or duration is not positive.
*/
package cliparse
