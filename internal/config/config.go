package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-RelDate/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "go-reldate"
	AppID             = "com.github.tartampluch.go-reldate"
	KeyringService    = "com.github.tartampluch.go-reldate"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug    = "debug"
	FlagLogFile  = "log-file"
	FlagRules    = "rules"
	FlagAnchor   = "anchor"
	FlagCalendar = "calendar"
	FlagFrom     = "from"
	FlagTo       = "to"
	FlagFirst    = "first"
	FlagLast     = "last"
	FlagICS      = "ics"
	FlagPreset   = "preset"
	FlagPort     = "port"
	FlagInterval = "interval"

	FlagDescDebug    = "Enable debug logging"
	FlagDescLogFile  = "Also write logs to a file in the user cache directory"
	FlagDescRules    = "Rules file (.yaml, .yml or .toml)"
	FlagDescAnchor   = "Anchor date (YYYY-MM-DD or RFC 3339), defaults to now"
	FlagDescCalendar = "Calendar key (built-in, preset or rules-file calendar)"
	FlagDescFrom     = "First day of the range (YYYY-MM-DD), open when empty"
	FlagDescTo       = "Last day of the range (YYYY-MM-DD), open when empty"
	FlagDescFirst    = "Print the k-th business day of every week"
	FlagDescLast     = "Print the k-th last business day of every week"
	FlagDescICS      = "Print the holidays as an iCalendar document"
	FlagDescPreset   = "Holiday preset to load (us)"
	FlagDescPort     = "HTTP port for the observance feed"
	FlagDescInterval = "Refresh interval in minutes (0 disables refresh)"

	CmdUseRoot     = AppName
	CmdUseEval     = "eval <expression>"
	CmdUseBizDays  = "bizdays"
	CmdUseHolidays = "holidays"
	CmdUseFeed     = "feed"
	CmdUseServe    = "serve"
	CmdUseVersion  = "version"

	CmdShortRoot     = "Relative-date expressions and business-day calculus"
	CmdShortEval     = "Evaluate a relative-date expression"
	CmdShortBizDays  = "List business days of a calendar"
	CmdShortHolidays = "List holidays of a calendar"
	CmdShortFeed     = "Print the observance feed of a rules file"
	CmdShortServe    = "Serve the observance feed over HTTP"
	CmdShortVersion  = "Show application version"

	MsgVersionOutput = "%s version %s (%s, %s) %s/%s\n"
	FormatEvalResult = "%s\t%s\n"
	FormatDateLine   = "%s\t%s\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort        = "18080"
	DefaultRefreshMin  = 60
	DefaultLanguage    = "en"
	DefaultPresetYears = 1 // Preset calendars cover the anchor year +/- this many years.
	DisabledInterval   = 0

	// UID Generation
	UIDSalt      = "go-reldate-v1"
	UIDSeparator = "|"

	// Observance rolling
	RollFollowing = "following"
	RollPreceding = "preceding"
	RollNone      = "none"

	// Holiday sources
	SourceModeWeb   = "web"
	SourceModeLocal = "local"

	// Rules file extensions
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtTOML = ".toml"
)

// -----------------------------------------------------------------------------
// Calendars & Ranges
// -----------------------------------------------------------------------------

const (
	// Built-in calendar keys, always present in a catalog.
	CalendarDay         = "CalendarDay"
	CalendarBusinessDay = "BusinessDay"

	// Keys of the calendars backing the weekday and weekend-day units.
	CalendarWeekday    = "Weekday"
	CalendarWeekendDay = "WeekendDay"

	// CompositeCalendarKey identifies calendars built by Catalog.Merge.
	CompositeCalendarKey = "__composite"

	// DefaultRulesCalendar names the rules-file calendar when no key is given.
	DefaultRulesCalendar = "Rules"

	// Open range sides in DateRange.String.
	RangeOpenBegin = "Inception"
	RangeOpenEnd   = "Future"
	RangeSeparator = " - "

	// Workweek notations accepted by ParseWorkweek.
	WorkweekMonFri  = "mon-fri"
	WorkweekWeekend = "weekend"
	WorkweekAll     = "all"
	WorkweekSep     = ","
)

// -----------------------------------------------------------------------------
// Expression Language
// -----------------------------------------------------------------------------

const (
	// Action symbols.
	SymbolStart        = '^'
	SymbolAdd          = '+'
	SymbolSubtract     = '-'
	SymbolMoveTo       = '@'
	SymbolNext         = '>'
	SymbolPrevious     = '<'
	SymbolConditional  = '?'
	SymbolBranchOpen   = '{'
	SymbolBranchClose  = '}'
	SymbolLastModifier = "!"

	// Dynamic unit keys.
	UnitKeyYear        = "y"
	UnitKeyMonth       = "M"
	UnitKeyWeek        = "w"
	UnitKeyDay         = "d"
	UnitKeyHour        = "H"
	UnitKeyMinute      = "m"
	UnitKeySecond      = "s"
	UnitKeyMillisecond = "S"
	UnitKeyWeekday     = "D"
	UnitKeyWeekendDay  = "e"

	// UnitKeyBusinessDay is reserved for the business-day period and has no
	// registered unit.
	UnitKeyBusinessDay = "b"

	// Unit key length of day-of-week and month-of-year units ("mon", "jan").
	StaticUnitKeyLen = 3
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	LocaleFileEN = "locales/active.en.json"
	LocaleExt    = "json"

	TKeyStart            = "action_start"
	TKeyAdd              = "action_add"
	TKeySubtract         = "action_subtract"
	TKeyMoveTo           = "action_move_to"
	TKeyMoveNext         = "action_move_next"
	TKeyMovePrevious     = "action_move_previous"
	TKeyIf               = "action_if"
	TKeyIfThen           = "action_if_then"
	TKeyIfElse           = "action_if_else"
	TKeyIfThenElse       = "action_if_then_else"
	TKeyCustomCondition  = "condition_custom"
	TKeyUnitYearNth      = "unit_year_nth"
	TKeyUnitNth          = "unit_nth"
	TKeyUnitDayOfWeekNth = "unit_day_of_week_nth"
	TKeyUnitLastDayNth   = "unit_last_day_of_week_nth"
	TKeyUnitLastDayFirst = "unit_last_day_of_week_first"
	TKeyOrdinalPrefix    = "ordinal_"

	TKeyUnitYear        = "unit_year"
	TKeyUnitMonth       = "unit_month"
	TKeyUnitWeek        = "unit_week"
	TKeyUnitDay         = "unit_day"
	TKeyUnitHour        = "unit_hour"
	TKeyUnitMinute      = "unit_minute"
	TKeyUnitSecond      = "unit_second"
	TKeyUnitMillisecond = "unit_millisecond"
	TKeyUnitWeekday     = "unit_weekday"
	TKeyUnitWeekendDay  = "unit_weekend_day"
	TKeyUnitLastPrefix  = "unit_last"

	// Template data keys.
	TDataUnit    = "Unit"
	TDataCount   = "Count"
	TDataNth     = "Nth"
	TDataOrdinal = "Ordinal"
	TDataDay     = "Day"
	TDataThen    = "Then"
	TDataElse    = "Else"

	// Ordinal suffixes used beyond the translated ordinals.
	OrdinalSt = "st"
	OrdinalNd = "nd"
	OrdinalRd = "rd"
	OrdinalTh = "th"
	FormatOrd = "%d%s"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go RelDate//Engine//EN"
	ICalCalName = "Observances"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goreldate"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash    = "2006-01-02"
	DateFormatRFC3339     = time.RFC3339
	DateFormatRFC3339Nano = time.RFC3339Nano

	// FormatExpressionError expects the error kind, symbol, position and expression.
	FormatExpressionError = "%v: %q at position %d in %q"

	// Limits
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteEval           = "/eval"

	QueryExpr   = "expr"
	QueryAnchor = "anchor"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeCalendar        = "text/calendar"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	// Calendar model
	ErrInvalidRange    = "invalid date range"
	ErrInvalidOffset   = "business day offset must be between 1 and 7"
	ErrUnknownCalendar = "unknown calendar"
	ErrInvalidWorkweek = "invalid workweek"
	ErrICSDecode       = "failed to decode iCalendar data"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrUnknownPreset   = "unknown holiday preset"
	ErrInvalidHoliday  = "invalid holiday date"

	// Expression language
	ErrUnknownUnit          = "unknown unit"
	ErrUnknownAction        = "unknown action"
	ErrUnsupportedPeriod    = "unsupported period"
	ErrUnsupportedOperation = "unsupported operation for unit"
	ErrInvalidDate          = "invalid date"
	ErrSyntax               = "syntax error"
	ErrMissingUnit          = "missing unit"
	ErrUnbalancedBranch     = "unbalanced branch braces"
	ErrBranchNotAllowed     = "branches are only allowed on conditional actions"
	ErrTooManyBranches      = "a conditional takes at most two branches"
	ErrNumberRange          = "number out of range"

	// Rules & engine
	ErrRulesFormat    = "unsupported rules file format"
	ErrRulesRead      = "failed to read rules file"
	ErrRulesDecode    = "failed to decode rules file"
	ErrRuleInvalid    = "invalid rule"
	ErrRuleName       = "rule name is empty"
	ErrRollUnknown    = "unknown roll convention"
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrHolidaySource  = "failed to load holiday source"
	ErrAnchorParse    = "unable to parse anchor date"
	ErrDateParse      = "unable to parse date"

	// Transport
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrRequest        = "failed to create request"
	ErrNetwork        = "network error during fetch"
	ErrHTTPStatus     = "server returned unexpected status"
	ErrExprRequired   = "query parameter expr is required"

	// Process
	ErrLogFile    = "failed to open log file"
	ErrCacheDir   = "could not determine user cache dir"
	ErrCreateDir  = "could not create app cache dir"
	ErrAppFailed  = "application failed unexpectedly"
	ErrWriteResp  = "failed to write response body"
	ErrLocaleLoad = "failed to load locale file"
	ErrLocalize   = "failed to localize message"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	FallbackSummary = "Observance: %s"

	MsgSyncStarted      = "Synchronization started..."
	MsgSyncFinished     = "Sync finished"
	MsgSyncFailed       = "Synchronization failed"
	MsgWorkerStart      = "Background worker started"
	MsgWorkerStop       = "Worker stopping due to context cancellation"
	MsgAppStop          = "Application stopped gracefully"
	MsgAppStarting      = "Starting application"
	MsgServerListen     = "HTTP server listening"
	MsgServerStop       = "Shutting down HTTP server..."
	MsgCacheUpdated     = "Calendar cache updated"
	MsgGenSuccess       = "Calendar generation successful"
	MsgObservanceToday  = "Observance falls today"
	MsgSkippedEvent     = "Skipping malformed calendar event"
	MsgSkippedRule      = "Skipping rule for anchor year"
	MsgHolidaysLoaded   = "Holidays loaded"
	MsgSourceOpen       = "Opening holiday source"
	MsgCalendarReplaced = "Calendar replaced in catalog"
	MsgRegistryBuilt    = "Expression registry built"
	MsgRulesLoaded      = "Rules loaded"
	MsgPassFail         = "Password retrieval failed (might be empty)"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
	MsgDownloadStart    = "Initiating holiday calendar download"
	MsgDownloading      = "Holiday calendar downloading"
	MsgBadStatus        = "Server returned error status"
	MsgEvalRequest      = "Expression evaluated"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent  = "component"
	LogKeyError      = "error"
	LogKeyURL        = "url"
	LogKeyStatus     = "status_code"
	LogKeyFile       = "file"
	LogKeyKey        = "key"
	LogKeyPort       = "port"
	LogKeyMode       = "mode"
	LogKeyInterval   = "interval"
	LogKeyUser       = "user"
	LogKeySizeBytes  = "size_bytes"
	LogKeyETag       = "etag"
	LogKeyStats      = "stats"
	LogKeyCount      = "count"
	LogKeyName       = "name"
	LogKeyDuration   = "duration_ms"
	LogKeyCalendar   = "calendar"
	LogKeyExpression = "expression"
	LogKeyDate       = "date"
	LogKeyUnits      = "units"
	LogKeyActions    = "actions"
	LogKeyRules      = "rules"
	LogKeyHolidays   = "holidays"
	LogKeyOccur      = "occurrences"
	LogKeyToday      = "today"
	LogKeyContentLen = "content_length"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompCalendar = "calendar"
	CompICS      = "ics"
	CompRelDate  = "reldate"
	CompEngine   = "engine"
	CompRules    = "rules"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
)
