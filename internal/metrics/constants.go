package metrics

// Session metric names
const (
	MetricNameSessionsTotal   = "agribot_sessions_total"
	MetricNameSessionDuration = "agribot_session_duration_seconds"
	MetricNameStationsTotal   = "agribot_stations_processed_total"
)

// Bucket metric names
const (
	MetricNameDepositsTotal     = "agribot_bucket_deposits_total"
	MetricNameBulkRefillsTotal  = "agribot_bucket_bulk_refills_total"
	MetricNameWaterRefillsTotal = "agribot_water_refills_total"
)

// Chat metric names
const (
	MetricNameRepliesTotal     = "agribot_chat_replies_total"
	MetricNameReplyErrorsTotal = "agribot_chat_reply_errors_total"
)

// Log tailing metric names
const (
	MetricNameLogReadErrorsTotal = "agribot_log_read_errors_total"
	MetricNameLogResetsTotal     = "agribot_log_resets_total"
)

// Metric help text
const (
	HelpTextSessionsTotal      = "Total number of farming sessions by result"
	HelpTextSessionDuration    = "Farming session duration in seconds"
	HelpTextStationsTotal      = "Total number of stations processed"
	HelpTextDepositsTotal      = "Total number of bucket deposits into stations"
	HelpTextBulkRefillsTotal   = "Total number of bulk bucket refills"
	HelpTextWaterRefillsTotal  = "Total number of sessions that refilled station water"
	HelpTextRepliesTotal       = "Total number of chat auto-replies sent"
	HelpTextReplyErrorsTotal   = "Total number of chat auto-reply failures"
	HelpTextLogReadErrorsTotal = "Total number of log read errors"
	HelpTextLogResetsTotal     = "Total number of detected log truncations"
)

// Label names
const (
	LabelResult = "result"
)

// Session result label values
const (
	ResultCompleted = "completed"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
)

// SessionDurationBuckets covers sessions from under a minute to half an hour.
var SessionDurationBuckets = []float64{30, 60, 120, 300, 600, 900, 1800}
