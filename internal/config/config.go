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
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// UserAgent identifies the HTTP client used for remote contact sources.
var UserAgent = "Go-DatePicker/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go DatePicker"
	AppID             = "com.github.tartampluch.go-datepicker"
	KeyringService    = "com.github.tartampluch.go-datepicker"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	SettingsFileName  = "settings.yaml"
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
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagTUI          = "tui"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to a YAML settings file (defaults to the user config dir)"
	FlagDescTUI      = "Run the terminal picker instead of the desktop window"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Grid Geometry
// -----------------------------------------------------------------------------

const (
	// DaysPerWeek is the fixed width of every grid row.
	DaysPerWeek = 7

	// MaxWeeksPerMonth is the most rows a month can span.
	MaxWeeksPerMonth = 6
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	PickerWinWidth      = 420
	PickerWinHeight     = 380
	SettingsWindowWidth = 460
	LayoutColumnsDouble = 2
	YearEntryMaxDigits  = 4
	PlaceholderURL      = "https://dav.example.com/addressbook.vcf"

	BtnPrevLabel = "◀"
	BtnNextLabel = "▶"

	// TodayMarker is appended to the day number of today's cell.
	TodayMarker = "•"
	// HighlightMarker is appended to the day number of highlighted cells.
	HighlightMarker = "*"

	DateFormatDisplay = "2006-01-02"

	// TUICellWidth is the printed width of one day in the terminal grid.
	TUICellWidth = 4
	TUIEllipsis  = "…"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// SundayStartRegions lists ISO 3166 regions whose calendars conventionally
// start the week on Sunday. Every other region starts on Monday.
var SundayStartRegions = []string{
	"US", "CA", "MX", "BR", "JP", "KR", "TW", "HK", "IL", "PH", "ZA", "AU", "IN", "SA",
}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle        = "win_title"
	TKeyMonthLabel      = "month_label"          // Requires Month, Year
	TKeyStatusSelected  = "status_selected"      // Requires Count > 0
	TKeyStatusNone      = "status_selected_zero" // Explicit key for 0
	TKeyStatusRange     = "status_range"         // Requires From, To
	TKeyEvtSummary      = "event_summary"
	TKeyEvtSummaryRange = "event_summary_range"
	TKeyBtnToday        = "btn_today"
	TKeyBtnClear        = "btn_clear"
	TKeyBtnCollapse     = "btn_collapse"
	TKeyHelpPrev        = "help_prev"
	TKeyHelpNext        = "help_next"
	TKeyHelpSelect      = "help_select"
	TKeyHelpMove        = "help_move"
	TKeyHelpToday       = "help_today"
	TKeyHelpCollapse    = "help_collapse"
	TKeyHelpClear       = "help_clear"
	TKeyHelpQuit        = "help_quit"
	TKeyHelpHelp        = "help_help"
	TKeyFormatDate      = "format_date_short"
	TKeyWinSettings     = "win_settings"
	TKeyBtnSettings     = "btn_settings"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyBtnBrowse       = "btn_browse"
	TKeyLblLanguage     = "lbl_language"
	TKeyLblMode         = "lbl_mode"
	TKeyLblFirstDay     = "lbl_first_day"
	TKeyLblAuto         = "lbl_auto"
	TKeyLblServer       = "lbl_server"
	TKeyLblPort         = "lbl_port"
	TKeyLblSource       = "lbl_source"
	TKeyLblURL          = "lbl_url"
	TKeyLblUser         = "lbl_user"
	TKeyLblPass         = "lbl_pass"
	TKeyLblPath         = "lbl_path"
	TKeyLblFooter       = "lbl_footer" // Requires Version
	TKeyMsgSaved        = "msg_saved"
	TKeySourceNone      = "source_none"
	TKeySourceWeb       = "source_web"
	TKeySourceLocal     = "source_local"

	// TKeyMonthPrefix and TKeyWeekdayPrefix are completed with the month
	// number (1-12) and weekday number (0 = Sunday).
	TKeyMonthPrefix   = "month_"
	TKeyWeekdayPrefix = "weekday_short_"

	// TKeyModePrefix is completed with a selection mode name.
	TKeyModePrefix = "mode_"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultLanguage      = "en"
	DefaultSelectionMode = "single"
	DefaultPort          = "18081"
	DefaultSourceMode    = SourceModeNone

	// HighlightYearsBack and HighlightYearsAhead bound the years for which
	// contact birthdays are projected onto the calendar.
	HighlightYearsBack  = 1
	HighlightYearsAhead = 1

	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
	UIDSalt         = "go-datepicker-v1-"
)

// Selection mode names accepted in settings.
const (
	ModeNameSingle   = "single"
	ModeNameMultiple = "multiple"
	ModeNameRange    = "range"
)

// Contact source modes.
const (
	SourceModeNone  = ""
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go DatePicker//Selection//EN"
	ICalCalName = "Selection"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "godatepicker"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ContactsLoadTimeout = 45 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxContactsSize     = 16 << 20
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteICS            = "/selection.ics"
	RouteJSON           = "/selection.json"
	AddrSeparator       = ":"
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
	MimeJSON            = "application/json; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrUnknownMode      = "configuration error: unknown selection mode"
	ErrInvalidBounds    = "configuration error: min date is after max date"
	ErrInvalidDate      = "configuration error: invalid date"
	ErrInvalidWeekday   = "configuration error: invalid weekday"
	ErrInvalidLanguage  = "configuration error: unsupported language"
	ErrSettingsRead     = "failed to read settings file"
	ErrSettingsParse    = "failed to parse settings file"
	ErrSettingsInvalid  = "invalid settings"
	ErrSettingsWrite    = "failed to write settings file"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrRequestBuild     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrContactsTooLarge = "address book exceeds the size limit"
	ErrKeyring          = "keyring access failed"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrSourceUnsupport  = "configuration error: unsupported contact source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrCellOutOfGrid    = "cell is outside the grid"
	ErrSelectionFailed  = "selection transition failed"
	ErrExportFailed     = "selection export failed"
	ErrContactsFailed   = "failed to load contact birthdays"
	ErrTUIFailed        = "terminal UI failed"
	ErrPickerInitFailed = "picker initialization failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Selection initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Selected: %s"
	FallbackSummaryRange = "Selected: %s - %s"
	FallbackStatus       = "%d selected"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when nothing is selected.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSettingsLoaded = "Settings loaded"
	MsgSettingsNone   = "No settings file, using defaults"
	MsgGridBuilt      = "Month grid built"
	MsgWeekRow        = "Building week row"
	MsgDateSelected   = "Date selected"
	MsgDateUnselected = "Date unselected"
	MsgRangeFilled    = "Range filled"
	MsgClickIgnored   = "Click ignored: date not selectable"
	MsgInitialSkipped = "Skipping initial selection outside selectable dates"
	MsgMonthChanged   = "Month changed"
	MsgPrevRejected   = "Previous month rejected by lower bound"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Selection feed updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgContactsLoaded = "Contact birthdays loaded"
	MsgFetchStarted   = "vCards downloading"
	MsgSettingsSaved  = "Settings saved"
	MsgOpenSettings   = "Opening settings window"
	MsgWindowFocus    = "Settings window already open, requesting focus"
	MsgFetchBadStatus = "Server returned error status"
	MsgTUIStart       = "Terminal picker started"
	MsgTUIStop        = "Terminal picker stopped"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyDate      = "date"
	LogKeyMonth     = "month"
	LogKeyWeeks     = "weeks"
	LogKeyCount     = "count"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyValue     = "value"
	LogKeyDuration  = "duration_ms"

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
	CompUI       = "ui"
	CompTUI      = "tui"
	CompGrid     = "grid"
	CompSelect   = "selection"
	CompNav      = "navigator"
	CompPicker   = "picker"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompContacts = "contacts"
	CompExport   = "export"
	CompMain     = "main"
	CompI18n     = "i18n"
)
