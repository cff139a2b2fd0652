package model

// Dialect captures the backend tag and capability flags the DDL generator
// needs. It is a plain value so statement generation never requires a live
// connection; connectors fill in the capability flags by probing the server
// once at connect time.
type Dialect struct {
	// Driver is the backend tag: "postgres", "mysql", or "sqlite".
	Driver string

	// SupportsCitext is true when the postgres citext extension is installed,
	// letting email columns use a case-insensitive text type.
	SupportsCitext bool

	// SupportsPartialIndexes is true on backends that accept a WHERE predicate
	// on index definitions (postgres, sqlite). MySQL gets a full unique index
	// substituted instead.
	SupportsPartialIndexes bool

	// SupportsFractionalSeconds is true when MySQL reports fractional-seconds
	// support, selecting CURRENT_TIMESTAMP(6) over bare CURRENT_TIMESTAMP.
	SupportsFractionalSeconds bool
}

// DialectFor returns generation defaults for a driver tag, used when no live
// connection is available to probe capabilities.
func DialectFor(driver string) Dialect {
	switch driver {
	case "postgres":
		return Dialect{Driver: driver, SupportsCitext: true, SupportsPartialIndexes: true}
	case "mysql":
		return Dialect{Driver: driver, SupportsFractionalSeconds: true}
	case "sqlite":
		return Dialect{Driver: driver, SupportsPartialIndexes: true}
	default:
		return Dialect{Driver: driver}
	}
}
