package config

const (
	defaultLogDir               = "~/.local/share/fileman/logs"
	defaultHistoryDB            = "~/.local/share/fileman/history.db"
	defaultScheme               = SchemeYearMonth
	defaultOnConflict           = ConflictRename
	defaultMonthCase            = MonthCaseTitle
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultHistoryRetentionDays = 180
)

// Grouping schemes accepted by organize.scheme.
const (
	SchemeYearMonth     = "year/month"
	SchemeYearMonthDay  = "year/month/day"
	SchemeYearMonthName = "year/month-name"
)

// Collision policies accepted by organize.on_conflict.
const (
	ConflictRename    = "rename"
	ConflictSkip      = "skip"
	ConflictOverwrite = "overwrite"
)

// Month-label casings accepted by organize.month_case.
const (
	MonthCaseTitle = "title"
	MonthCaseUpper = "upper"
	MonthCaseLower = "lower"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Organize: Organize{
			Scheme:       defaultScheme,
			OnConflict:   defaultOnConflict,
			MonthCase:    defaultMonthCase,
			VerifyCopies: true,
		},
		History: History{
			Enabled:       true,
			RetentionDays: defaultHistoryRetentionDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
