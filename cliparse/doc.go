// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DeleteKeySalt: Secret for scenario delete key HMAC (required)
  - MasterDataFile: YAML file of stages and weapons to seed (optional)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-seed         Master data seed file
	-delete-salt  Delete key salt

# Environment Variables

Environment variables are read first (github.com/caarlos0/env), then flags
override them:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	MASTERDATA_FILE → -seed
	DELETE_KEY_SALT → -delete-salt

main loads a .env file into the environment before parsing.
*/
package cliparse
